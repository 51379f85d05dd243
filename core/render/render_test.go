package render

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/normalize"
)

func testIssue() *core.Issue {
	return &core.Issue{
		Date: time.Date(2016, time.May, 12, 0, 0, 0, 0, time.UTC),
		Index: &core.Index{
			Title:   "Le Monde Diplomatique",
			BuiltAt: time.Date(2016, time.May, 12, 9, 0, 0, 0, time.UTC),
			Articles: []core.ArticleRef{
				{Href: "artikel/!5301234", GUID: "5301234", Title: "Über Grenzen", Abstract: "Ein <b>Text</b>", Author: "Anna", Description: "Ein Text"},
				{Href: "artikel/!5301235", GUID: "5301235", Title: "Zweiter", Description: "Mehr"},
			},
		},
		Articles: []*core.Article{
			{
				Title: "Über Grenzen", Teaser: "Wohin?", Author: "von Anna",
				FirstLetter: "S", Chunk: "traßen", First: " sind <b>lang</b>.",
				Content:   `<p class="c-article-body__subheadline">Weiter</p><p class="c-article-body">Noch ein Absatz.</p>`,
				Footnotes: `<p class="c-image__caption">1 Quelle</p>`,
			},
			{Title: "Zweiter", FirstLetter: "E", Chunk: "nde", First: "."},
		},
	}
}

func TestTemplatesRenderIndexPage(t *testing.T) {
	tpl, err := NewTemplates()
	require.NoError(t, err)

	is := testIssue()
	out, err := tpl.Render(PageTemplate, is.Index.Record().Merge(core.Record{"stylesheet": "res/index_styles.css"}))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `href="res/index_styles.css"`)
	assert.Contains(t, html, `<a class="c-toc__link" href="artikel/!5301234"><strong>Über Grenzen</strong></a>`)
	assert.Contains(t, html, `<div class="c-toc__abstract">Ein <b>Text</b></div>`)
	assert.Less(t, strings.Index(html, "5301234"), strings.Index(html, "5301235"))
}

func TestTemplatesRenderArticleBook(t *testing.T) {
	tpl, err := NewTemplates()
	require.NoError(t, err)

	a := testIssue().Articles[0]
	rec := a.Record().Merge(core.Record{
		"stylesheet": "../res/index_styles.css",
		"date":       "2016-05-12",
		"home":       "../index.html",
		"next":       "!5301235",
	})
	out, err := tpl.Render(ArticleBookTemplate, rec)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<span class="c-dropcap">S</span><span class="c-dropcap__word">traßen</span> sind <b>lang</b>.</p>`)
	assert.Contains(t, html, `<p class="c-article-body">Noch ein Absatz.</p>`)
	assert.Contains(t, html, `<p class="c-image__caption">1 Quelle</p>`)
	assert.Contains(t, html, `<a href="../index.html">Inhalt</a>`)
	assert.Contains(t, html, `<a href="!5301235">Nächster Artikel</a>`)
}

func TestTemplatesEscapeText(t *testing.T) {
	tpl, err := NewTemplates()
	require.NoError(t, err)

	a := &core.Article{Title: "A <script>", FirstLetter: "x"}
	out, err := tpl.Render(ArticleWebTemplate, a.Record())
	require.NoError(t, err)
	assert.Contains(t, string(out), "A &lt;script&gt;")
}

func TestTemplatesUnknown(t *testing.T) {
	tpl, err := NewTemplates()
	require.NoError(t, err)
	_, err = tpl.Render("missing.html", core.Record{})
	assert.Error(t, err)
}

func TestResources(t *testing.T) {
	data, err := fs.ReadFile(Resources(), "index_styles.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".c-dropcap")
}

func TestRSS(t *testing.T) {
	is := testIssue()
	is.Index.Date = "12. Mai 2016"
	out, err := RSS(is.Index, Feed{Link: "http://monde-diplomatique.de", PubDate: "Thu, 12 May 2016 09:00:00 GMT", Logo: "/res/logo.png"})
	require.NoError(t, err)

	feed, err := gofeed.NewParser().ParseString(string(out))
	require.NoError(t, err)
	assert.Equal(t, "Le Monde Diplomatique", feed.Title)
	assert.Equal(t, "12. Mai 2016", feed.Description)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Über Grenzen", feed.Items[0].Title)
	assert.Equal(t, "http://monde-diplomatique.de/artikel/!5301234", feed.Items[0].Link)
	assert.Equal(t, "5301234", feed.Items[0].GUID)
	require.NotNil(t, feed.PublishedParsed)
	assert.Equal(t, 2016, feed.PublishedParsed.Year())
}

func TestMarkdownExport(t *testing.T) {
	r := NewMarkdownRenderer(normalize.New(), language.German)
	out, err := r.Export(testIssue())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# Le Monde Diplomatique\n\n_12. Mai 2016_"))
	assert.Contains(t, md, "1. [Über Grenzen](#a5301234)")
	assert.Contains(t, md, "## Über Grenzen")
	assert.Contains(t, md, "Straßen sind **lang**.")
	assert.Contains(t, md, "1 Quelle")
	assert.Less(t, strings.Index(md, "## Über Grenzen"), strings.Index(md, "## Zweiter"))
	assert.Equal(t, ".md", r.Extension())
}

func TestJSONExport(t *testing.T) {
	out, err := NewJSONRenderer().Export(testIssue())
	require.NoError(t, err)

	var decoded struct {
		Index struct {
			Articles []core.ArticleRef `json:"articles"`
		} `json:"index"`
		Articles []core.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Index.Articles, 2)
	assert.Equal(t, "5301235", decoded.Index.Articles[1].GUID)
	assert.Equal(t, "traßen", decoded.Articles[0].Chunk)
}

func TestPDFExport(t *testing.T) {
	r := NewPDFRenderer(language.German)
	out, err := r.Export(testIssue())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
	assert.Equal(t, ".pdf", r.Extension())
}

func TestParagraphs(t *testing.T) {
	paras, err := paragraphs(testIssue().Articles[0].Content + `<p class="c-article-body"> </p>` + testIssue().Articles[0].Footnotes)
	require.NoError(t, err)
	require.Len(t, paras, 3)
	assert.True(t, paras[0].subheading)
	assert.Equal(t, "Noch ein Absatz.", paras[1].text)
	assert.True(t, paras[2].caption)
	assert.Equal(t, "lang", plainText("<b>lang</b>"))
}
