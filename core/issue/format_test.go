package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatDateGerman(t *testing.T) {
	d := time.Date(2016, time.March, 10, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "10. März 2016", FormatDate(d, LayoutLong, language.German))
	assert.Equal(t, "Do, 10 Mär 2016 08:05:00 GMT", FormatDate(d, LayoutRFC1123, language.German))
	assert.Equal(t, "Donnerstag", FormatDate(d, "Monday", language.German))
	assert.Equal(t, "10.03.2016", FormatDate(d, LayoutShort, language.German))
}

func TestFormatDateEnglishAndFallback(t *testing.T) {
	d := time.Date(2016, time.March, 10, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "Thu, 10 Mar 2016 08:05:00 GMT", FormatDate(d, LayoutRFC1123, language.English))
	assert.Equal(t, "10. March 2016", FormatDate(d, LayoutLong, language.French))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, "de-DE", ParseLocale("de_DE.UTF-8").String())
	assert.Equal(t, "de", ParseLocale("de").String())
	assert.Equal(t, "en", ParseLocale("!!").String())
}
