package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/issue"
)

// PDFRenderer renders a whole issue as one PDF document: a contents page
// followed by every article, each opening with its drop cap.
type PDFRenderer struct {
	locale language.Tag
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(locale language.Tag) *PDFRenderer {
	return &PDFRenderer{locale: locale}
}

// paragraph is one block of article text.
type paragraph struct {
	text       string
	subheading bool
	caption    bool
}

// Export converts the issue into PDF bytes.
func (r *PDFRenderer) Export(is *core.Issue) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(is.Index.Title, true)
	// Core fonts are cp1252; translate umlauts and ß.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Times", "B", 24)
	pdf.MultiCell(0, 11, tr(is.Index.Title), "", "L", false)
	pdf.SetFont("Times", "I", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 6, tr(issue.FormatDate(is.Date, issue.LayoutLong, r.locale)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	for i, ref := range is.Index.Articles {
		pdf.SetFont("Times", "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, ref.Title)), "", "L", false)
		if d := strings.TrimSpace(ref.Description); d != "" {
			pdf.SetFont("Times", "", 10)
			pdf.MultiCell(0, 5, tr(d), "", "L", false)
		}
		pdf.Ln(2)
	}

	for i, a := range is.Articles {
		paras, err := paragraphs(a.Content + a.Footnotes)
		if err != nil {
			return nil, fmt.Errorf("article %s: %w", is.Index.Articles[i].Href, err)
		}
		renderArticle(pdf, tr, a, paras)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderArticle(pdf *gofpdf.Fpdf, tr func(string) string, a *core.Article, paras []paragraph) {
	pdf.AddPage()
	pdf.SetFont("Times", "B", 18)
	pdf.MultiCell(0, 8, tr(plainText(a.Title)), "", "L", false)
	pdf.Ln(2)

	if a.Teaser != "" {
		pdf.SetFont("Times", "I", 12)
		pdf.MultiCell(0, 6, tr(plainText(a.Teaser)), "", "L", false)
	}
	if a.Author != "" {
		pdf.SetFont("Times", "", 10)
		pdf.MultiCell(0, 5, tr(plainText(a.Author)), "", "L", false)
	}
	if a.Initial != "" {
		pdf.Ln(2)
		pdf.SetFont("Times", "B", 11)
		pdf.MultiCell(0, 5.5, tr(plainText(a.Initial)), "", "L", false)
	}
	pdf.Ln(4)

	// Drop cap: the letter large, the rest of the word in bold.
	pdf.SetFont("Times", "B", 28)
	pdf.Write(10, tr(plainText(a.FirstLetter)))
	pdf.SetFont("Times", "B", 11)
	pdf.Write(10, tr(plainText(a.Chunk)))
	pdf.SetFont("Times", "", 11)
	pdf.Write(10, tr(plainText(a.First)))
	pdf.Ln(12)

	for _, p := range paras {
		switch {
		case p.subheading:
			pdf.Ln(2)
			pdf.SetFont("Times", "B", 12)
			pdf.MultiCell(0, 6, tr(p.text), "", "L", false)
		case p.caption:
			pdf.SetFont("Times", "", 8)
			pdf.SetTextColor(90, 90, 90)
			pdf.MultiCell(0, 4, tr(p.text), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		default:
			pdf.SetFont("Times", "", 11)
			pdf.MultiCell(0, 5.5, tr(p.text), "", "J", false)
		}
	}
}

// paragraphs splits rewritten article markup into text blocks.
func paragraphs(html string) ([]paragraph, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing article markup: %w", err)
	}
	var out []paragraph
	for _, p := range doc.Find("p").EachIter() {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		out = append(out, paragraph{
			text:       text,
			subheading: p.HasClass("c-article-body__subheadline"),
			caption:    p.HasClass("c-image__caption"),
		})
	}
	return out, nil
}

// plainText strips markup from a fragment. Fragments that fail to parse
// are returned unchanged.
func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>" + fragment + "</p>"))
	if err != nil {
		return fragment
	}
	return doc.Find("p").First().Text()
}
