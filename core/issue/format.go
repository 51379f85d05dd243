package issue

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Layouts used for issue dates.
const (
	// LayoutLong renders "12. Mai 2016" style dates for issue listings.
	LayoutLong = "02. January 2006"
	// LayoutShort renders the expected date of a future issue.
	LayoutShort = "02.01.2006"
	// LayoutRFC1123 renders feed timestamps.
	LayoutRFC1123 = "Mon, 02 Jan 2006 15:04:05 GMT"
)

type names struct {
	months      [12]string
	shortMonths [12]string
	days        [7]string
	shortDays   [7]string
}

var german = names{
	months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	shortMonths: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
		"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
	days:      [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	shortDays: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
}

var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

// ParseLocale parses a locale name such as "de", "de-DE" or "de_DE.UTF-8".
// Unparseable names yield English.
func ParseLocale(s string) language.Tag {
	s, _, _ = strings.Cut(s, ".")
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// FormatDate formats t with a Go layout, spelling month and weekday names
// in the given locale. Locales other than German render in English.
func FormatDate(t time.Time, layout string, locale language.Tag) string {
	_, idx, _ := matcher.Match(locale)
	if supported[idx] != language.German {
		return t.Format(layout)
	}

	var b strings.Builder
	start := 0
	flush := func(end int) {
		if end > start {
			b.WriteString(t.Format(layout[start:end]))
		}
	}
	for i := 0; i < len(layout); {
		var word string
		var n int
		switch rest := layout[i:]; {
		case strings.HasPrefix(rest, "January"):
			word, n = german.months[t.Month()-1], len("January")
		case strings.HasPrefix(rest, "Monday"):
			word, n = german.days[t.Weekday()], len("Monday")
		case strings.HasPrefix(rest, "Jan"):
			word, n = german.shortMonths[t.Month()-1], len("Jan")
		case strings.HasPrefix(rest, "Mon"):
			word, n = german.shortDays[t.Weekday()], len("Mon")
		default:
			i++
			continue
		}
		flush(i)
		b.WriteString(word)
		i += n
		start = i
	}
	flush(len(layout))
	return b.String()
}
