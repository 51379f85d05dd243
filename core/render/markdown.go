package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/issue"
)

// MarkdownRenderer exports an issue as a single Markdown document.
type MarkdownRenderer struct {
	normalizer core.Normalizer
	locale     language.Tag
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(n core.Normalizer, locale language.Tag) *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: n, locale: locale}
}

// Export renders the table of contents followed by every article.
func (r *MarkdownRenderer) Export(is *core.Issue) ([]byte, error) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n\n", is.Index.Title)
	fmt.Fprintf(&buf, "_%s_\n\n", issue.FormatDate(is.Date, issue.LayoutLong, r.locale))

	for i, ref := range is.Index.Articles {
		fmt.Fprintf(&buf, "%d. [%s](#%s)\n", i+1, ref.Title, anchor(ref))
	}
	buf.WriteString("\n")

	for i, a := range is.Articles {
		ref := is.Index.Articles[i]
		fmt.Fprintf(&buf, "<a id=\"%s\"></a>\n\n## %s\n\n", anchor(ref), a.Title)
		if a.Teaser != "" {
			fmt.Fprintf(&buf, "_%s_\n\n", strings.TrimSpace(a.Teaser))
		}
		if a.Author != "" {
			fmt.Fprintf(&buf, "%s\n\n", strings.TrimSpace(a.Author))
		}

		html := "<p>" + a.Initial + "</p>" +
			"<p>" + a.FirstLetter + a.Chunk + a.First + "</p>" +
			a.Content
		body, err := r.normalizer.Normalize(html)
		if err != nil {
			return nil, fmt.Errorf("article %s: %w", ref.Href, err)
		}
		buf.WriteString(body)
		buf.WriteString("\n\n")

		notes, err := r.normalizer.Normalize(a.Footnotes)
		if err != nil {
			return nil, fmt.Errorf("article %s footnotes: %w", ref.Href, err)
		}
		if notes != "" {
			fmt.Fprintf(&buf, "---\n\n%s\n\n", notes)
		}
	}
	return []byte(buf.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func anchor(ref core.ArticleRef) string {
	if ref.GUID != "" {
		return "a" + ref.GUID
	}
	return strings.NewReplacer("/", "-", "!", "").Replace(ref.Href)
}
