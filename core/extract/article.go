package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

// Source paragraph classes. Matching is on the exact attribute value.
var (
	teaserSelector   = cascadia.MustCompile(`p[class="Unterzeile"]`)
	titleSelector    = cascadia.MustCompile(`p[class="Titel"]`)
	authorSelector   = cascadia.MustCompile(`p[class="Korrespondent"]`)
	initialSelector  = cascadia.MustCompile(`p[class="Initial"]`)
	footnoteSelector = cascadia.MustCompile(`p[class="Fussnote"]`)
	bodySelector     = cascadia.MustCompile(`p[class="Brot"], p[class="BrotO"], p[class="Zwischentitel"]`)
)

// dropCapWord matches the rest of the first word after the drop-cap letter.
var dropCapWord = regexp.MustCompile(`^[\wüÜöÖäÄß-]*`)

var (
	footnoteClasses = strings.NewReplacer(`class="Fussnote"`, `class="c-image__caption"`)
	bodyClasses     = strings.NewReplacer(
		`class="Brot"`, `class="c-article-body"`,
		`class="BrotO"`, `class="c-article-body"`,
		`class="Zwischentitel"`, `class="c-article-body__subheadline"`,
	)
)

const articlePageName = "article"

// ArticlePage extracts the body of one article.
var ArticlePage = Page[*core.Article]{
	Name:      articlePageName,
	Container: contentSelector,
	Template:  "article-book.html",
	Fields:    articleFields,
}

// ExtractArticle extracts an article page.
func ExtractArticle(doc *goquery.Document) (*core.Article, error) {
	return Extract(doc, ArticlePage)
}

func articleFields(content *goquery.Selection) (*core.Article, error) {
	title := content.FindMatcher(titleSelector).First()
	if title.Length() == 0 {
		return nil, &core.StructuralError{Page: articlePageName, Field: "title"}
	}

	article := &core.Article{
		Title:  title.Text(),
		Teaser: optionalText(content, teaserSelector),
		Author: optionalText(content, authorSelector),
	}

	if initial := content.FindMatcher(initialSelector).First(); initial.Length() > 0 {
		html, err := initial.Html()
		if err != nil {
			return nil, fmt.Errorf("serializing initial: %w", err)
		}
		article.Initial = html
	}

	footnotes, err := outerHTML(content.FindMatcher(footnoteSelector))
	if err != nil {
		return nil, err
	}
	article.Footnotes = RewriteFootnoteClass(footnotes)

	body := content.FindMatcher(bodySelector)
	if body.Length() == 0 {
		return nil, &core.StructuralError{Page: articlePageName, Field: "body paragraph"}
	}

	first, err := body.First().Html()
	if err != nil {
		return nil, fmt.Errorf("serializing first paragraph: %w", err)
	}
	article.FirstLetter, article.Chunk, article.First = SplitDropCap(first)

	rest, err := outerHTML(body.Slice(1, body.Length()))
	if err != nil {
		return nil, err
	}
	article.Content = RewriteBodyClasses(rest)
	return article, nil
}

// SplitDropCap splits paragraph markup into its first character, the rest
// of the first word, and everything after. The three parts concatenate to
// the input.
func SplitDropCap(markup string) (letter, chunk, rest string) {
	if markup == "" {
		return "", "", ""
	}
	_, size := utf8.DecodeRuneInString(markup)
	letter, rest = markup[:size], markup[size:]
	chunk = dropCapWord.FindString(rest)
	return letter, chunk, rest[len(chunk):]
}

// RewriteFootnoteClass renames the footnote class to the caption class.
func RewriteFootnoteClass(markup string) string {
	return footnoteClasses.Replace(markup)
}

// RewriteBodyClasses renames body, body-opening and subheading classes.
func RewriteBodyClasses(markup string) string {
	return bodyClasses.Replace(markup)
}
