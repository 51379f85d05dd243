package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

const articleHTML = `<!DOCTYPE html>
<html><body>
<div id="content">
<p class="Unterzeile">Ein Teaser</p>
<p class="Titel">Der Titel</p>
<p class="Korrespondent">von Anna</p>
<p class="Initial">Vor<i>spann</i></p>
<p class="Brot">Überall gab es Straßen-Bau, <b>viel</b> davon.</p>
<p class="Zwischentitel">Zwischen</p>
<p class="BrotO">Weiter geht es.</p>
<p class="Fussnote">1 Quelle</p>
<p class="Other">ignoriert</p>
<p class="Brot">Ende.</p>
<p class="Fussnote">2 <span class="Quelle">Noch eine</span></p>
</div>
</body></html>`

func TestExtractArticle(t *testing.T) {
	doc, err := Parse(articleHTML)
	require.NoError(t, err)

	a, err := ExtractArticle(doc)
	require.NoError(t, err)

	assert.Equal(t, "Der Titel", a.Title)
	assert.Equal(t, "Ein Teaser", a.Teaser)
	assert.Equal(t, "von Anna", a.Author)
	assert.Equal(t, "Vor<i>spann</i>", a.Initial)
	assert.Equal(t, "Ü", a.FirstLetter)
	assert.Equal(t, "berall", a.Chunk)
	assert.Equal(t, " gab es Straßen-Bau, <b>viel</b> davon.", a.First)
	assert.Equal(t,
		`<p class="c-article-body__subheadline">Zwischen</p>`+
			`<p class="c-article-body">Weiter geht es.</p>`+
			`<p class="c-article-body">Ende.</p>`,
		a.Content)
	assert.Equal(t,
		`<p class="c-image__caption">1 Quelle</p>`+
			`<p class="c-image__caption">2 <span class="Quelle">Noch eine</span></p>`,
		a.Footnotes)
}

func TestExtractArticleOptionalFields(t *testing.T) {
	doc, err := Parse(`<div id="content"><p class="Titel">Nur Titel</p><p class="BrotO">Anfang.</p></div>`)
	require.NoError(t, err)

	a, err := ExtractArticle(doc)
	require.NoError(t, err)
	assert.Equal(t, "", a.Teaser)
	assert.Equal(t, "", a.Author)
	assert.Equal(t, "", a.Initial)
	assert.Equal(t, "", a.Footnotes)
	assert.Equal(t, "", a.Content)
	assert.Equal(t, "A", a.FirstLetter)
	assert.Equal(t, "nfang", a.Chunk)
	assert.Equal(t, ".", a.First)
}

func TestExtractArticleStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		field string
	}{
		{"empty document", ``, "content container"},
		{"missing title", `<div id="content"><p class="Brot">Text</p></div>`, "title"},
		{"missing body", `<div id="content"><p class="Titel">T</p><p class="Fussnote">1</p></div>`, "body paragraph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.html)
			require.NoError(t, err)

			_, err = ExtractArticle(doc)
			var se *core.StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, ArticlePage.Name, se.Page)
			assert.Equal(t, "article", se.Page)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestSplitDropCap(t *testing.T) {
	tests := []struct {
		in                   string
		letter, chunk, first string
	}{
		{"Straßen-Bau ist teuer", "S", "traßen-Bau", " ist teuer"},
		{"Ärger über Öl", "Ä", "rger", " über Öl"},
		{"A", "A", "", ""},
		{"„Zitat“ folgt", "„", "Zitat", "“ folgt"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		letter, chunk, first := SplitDropCap(tt.in)
		assert.Equal(t, tt.letter, letter, tt.in)
		assert.Equal(t, tt.chunk, chunk, tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.in, letter+chunk+first)
	}
}

func TestDropCapReconstructsParagraphText(t *testing.T) {
	doc, err := Parse(articleHTML)
	require.NoError(t, err)
	want := doc.Find(`p.Brot`).First().Text()

	a, err := ExtractArticle(doc)
	require.NoError(t, err)

	rebuilt, err := Parse("<p>" + a.FirstLetter + a.Chunk + a.First + "</p>")
	require.NoError(t, err)
	assert.Equal(t, want, rebuilt.Find("p").Text())
}

func TestClassRewriting(t *testing.T) {
	body := `<p class="Brot">a</p><p class="BrotO">b</p><p class="Zwischentitel">c</p><p class="Brotkrume">d</p>`
	once := RewriteBodyClasses(body)
	assert.Equal(t,
		`<p class="c-article-body">a</p><p class="c-article-body">b</p>`+
			`<p class="c-article-body__subheadline">c</p><p class="Brotkrume">d</p>`,
		once)
	assert.Equal(t, once, RewriteBodyClasses(once))

	notes := `<p class="Fussnote">1</p><span class="FussnoteRef">x</span>`
	rewritten := RewriteFootnoteClass(notes)
	assert.Equal(t, `<p class="c-image__caption">1</p><span class="FussnoteRef">x</span>`, rewritten)
	assert.Equal(t, rewritten, RewriteFootnoteClass(rewritten))
}
