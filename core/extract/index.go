package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

// IndexTitle is the display name of every issue.
const IndexTitle = "Le Monde Diplomatique"

const indexPageName = "index"

var (
	listSelector     = cascadia.MustCompile("ul")
	itemSelector     = cascadia.MustCompile("li")
	linkSelector     = cascadia.MustCompile("a")
	headingSelector  = cascadia.MustCompile("strong")
	emphasisSelector = cascadia.MustCompile("em")

	digitRun = regexp.MustCompile(`\d+`)
)

// now stamps the build date of an index; replaced in tests.
var now = time.Now

// IndexPage extracts the table of contents of an issue.
var IndexPage = Page[*core.Index]{
	Name:      indexPageName,
	Container: contentSelector,
	Template:  "page.html",
	Fields:    indexFields,
}

// ExtractIndex extracts the table of contents from an issue page.
func ExtractIndex(doc *goquery.Document) (*core.Index, error) {
	return Extract(doc, IndexPage)
}

func indexFields(content *goquery.Selection) (*core.Index, error) {
	idx := &core.Index{
		Title:   IndexTitle,
		BuiltAt: now(),
		Date:    issueDate(content),
	}

	toc := content.FindMatcher(listSelector).First()
	if toc.Length() == 0 {
		return nil, &core.StructuralError{Page: indexPageName, Field: "table of contents"}
	}

	seen := make(map[string]bool)
	for i, item := range toc.FindMatcher(itemSelector).EachIter() {
		link := item.FindMatcher(linkSelector).First()
		if link.Length() == 0 {
			continue
		}
		ref, err := articleRef(item, link)
		if err != nil {
			return nil, fmt.Errorf("toc entry %d: %w", i+1, err)
		}
		// Hrefs key the next-article chain; keep the first occurrence only.
		if seen[ref.Href] {
			continue
		}
		seen[ref.Href] = true
		idx.Articles = append(idx.Articles, ref)
	}
	return idx, nil
}

// issueDate returns the first heading outside the table of contents.
func issueDate(content *goquery.Selection) string {
	date := content.FindMatcher(headingSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("li").Length() == 0
	}).First()
	return strings.TrimSpace(date.Text())
}

func articleRef(item, link *goquery.Selection) (core.ArticleRef, error) {
	heading := link.FindMatcher(headingSelector).First()
	if heading.Length() == 0 {
		return core.ArticleRef{}, &core.StructuralError{Page: indexPageName, Field: "entry heading"}
	}

	href, _ := link.Attr("href")
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}

	ref := core.ArticleRef{
		Href:  StripLeadingSeparator(href),
		GUID:  GUID(href),
		Title: strings.TrimSpace(heading.Text()),
	}

	// Work on a detached copy so the parsed document stays intact.
	entry := item.Clone()
	entry.FindMatcher(linkSelector).First().FindMatcher(headingSelector).First().Remove()

	abstract, err := entry.Html()
	if err != nil {
		return core.ArticleRef{}, fmt.Errorf("serializing abstract: %w", err)
	}
	ref.Abstract = abstract

	emphasis := entry.FindMatcher(emphasisSelector)
	var author strings.Builder
	for _, em := range emphasis.EachIter() {
		author.WriteString(em.Text())
	}
	ref.Author = author.String()

	emphasis.Remove()
	ref.Description = entry.Text()
	return ref, nil
}

// StripLeadingSeparator removes at most one leading "/" from path.
func StripLeadingSeparator(path string) string {
	trimmed, _ := strings.CutPrefix(path, "/")
	return trimmed
}

// GUID returns the first run of decimal digits in href, or "".
func GUID(href string) string {
	return digitRun.FindString(href)
}
