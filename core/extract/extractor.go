// Package extract turns parsed issue pages into core page models.
//
// Every page kind is described by a Page value naming its content
// container, its field extraction function and its default template.
// Extraction never modifies the parsed document; fields derived by
// removing nodes work on detached clones.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

// contentSelector locates the single container holding a page's content.
var contentSelector = cascadia.MustCompile("div#content")

// Page describes how to extract one kind of source page.
type Page[T core.Recorder] struct {
	// Name identifies the page kind in errors and logs.
	Name string
	// Container selects the required content container.
	Container goquery.Matcher
	// Template names the default render template.
	Template string
	// Fields extracts the page model from the content container.
	Fields func(content *goquery.Selection) (T, error)
}

// Extract locates page's content container in doc and extracts its fields.
// A missing container is a *core.StructuralError.
func Extract[T core.Recorder](doc *goquery.Document, page Page[T]) (T, error) {
	var zero T
	content := doc.FindMatcher(page.Container).First()
	if content.Length() == 0 {
		return zero, &core.StructuralError{Page: page.Name, Field: "content container"}
	}
	return page.Fields(content)
}

// Parse builds a document from raw HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// optionalText returns the text of the first match, or "" when absent.
func optionalText(s *goquery.Selection, m goquery.Matcher) string {
	node := s.FindMatcher(m).First()
	if node.Length() == 0 {
		return ""
	}
	return node.Text()
}

// outerHTML concatenates the outer markup of every node in s.
func outerHTML(s *goquery.Selection) (string, error) {
	var b strings.Builder
	for _, node := range s.EachIter() {
		html, err := goquery.OuterHtml(node)
		if err != nil {
			return "", fmt.Errorf("serializing node: %w", err)
		}
		b.WriteString(html)
	}
	return b.String(), nil
}
