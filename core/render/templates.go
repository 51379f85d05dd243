// Package render turns extracted page records into output documents:
// XHTML pages for the e-book tree, an RSS feed, and whole-issue exports
// in Markdown, JSON and PDF.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed res
var resFS embed.FS

// Template names.
const (
	PageTemplate        = "page.html"
	ArticleBookTemplate = "article-book.html"
	ArticleWebTemplate  = "article-web.html"
	EntryPageTemplate   = "entry-page.html"
)

// Resources returns the stylesheets shipped with every issue tree.
func Resources() fs.FS {
	sub, err := fs.Sub(resFS, "res")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// Templates renders page records through named HTML templates.
type Templates struct {
	set *template.Template
}

// NewTemplates parses the built-in templates.
func NewTemplates() (*Templates, error) {
	return NewTemplatesFS(templateFS, "templates/*.html")
}

// NewTemplatesFS parses the templates matching pattern in fsys.
func NewTemplatesFS(fsys fs.FS, pattern string) (*Templates, error) {
	set, err := template.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes the template called name with rec.
func (t *Templates) Render(name string, rec core.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, rec); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
