// Package core defines the pipeline types and interfaces for lmdpipe.
// An issue flows through fetch → extract → render → write; each stage
// is a small interface so it can be swapped out in tests.
package core

import (
	"context"
	"html/template"
	"time"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Record is the flat field mapping handed to the render boundary.
// String values are escaped by templates; template.HTML values are
// inserted as markup.
type Record map[string]any

// Merge returns a new Record holding r overlaid with each extra in order.
func (r Record) Merge(extra ...Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, e := range extra {
		for k, v := range e {
			out[k] = v
		}
	}
	return out
}

// String returns the field as plain text, whether it holds a string or markup.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case template.HTML:
		return string(v)
	default:
		return ""
	}
}

// Recorder is implemented by every extracted page model.
type Recorder interface {
	Record() Record
}

// ArticleRef is one table-of-contents entry of an issue.
type ArticleRef struct {
	Href        string `json:"href"`
	GUID        string `json:"guid"`
	Title       string `json:"title"`
	Abstract    string `json:"abstract"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Index is the table of contents of one issue.
type Index struct {
	Title    string       `json:"title"`
	BuiltAt  time.Time    `json:"builtdate"`
	Date     string       `json:"date,omitempty"`
	Articles []ArticleRef `json:"articles"`
}

// Record implements Recorder.
func (x *Index) Record() Record {
	articles := make([]Record, 0, len(x.Articles))
	for _, a := range x.Articles {
		articles = append(articles, Record{
			"href":        a.Href,
			"guid":        a.GUID,
			"title":       a.Title,
			"abstract":    template.HTML(a.Abstract),
			"author":      a.Author,
			"description": a.Description,
		})
	}
	return Record{
		"title":     x.Title,
		"charset":   "utf8",
		"builtdate": x.BuiltAt.Format(time.ANSIC),
		"date":      x.Date,
		"articles":  articles,
	}
}

// Hrefs returns the article references in document order.
func (x *Index) Hrefs() []string {
	hrefs := make([]string, len(x.Articles))
	for i, a := range x.Articles {
		hrefs[i] = a.Href
	}
	return hrefs
}

// Article is the extracted body of one article page.
type Article struct {
	Title       string `json:"title"`
	Teaser      string `json:"teaser"`
	Author      string `json:"author"`
	Initial     string `json:"initial"`
	Footnotes   string `json:"footnotes"`
	FirstLetter string `json:"first_letter"`
	Chunk       string `json:"chunk"`
	First       string `json:"first"`
	Content     string `json:"content"`
}

// Record implements Recorder.
func (a *Article) Record() Record {
	return Record{
		"charset":      "utf8",
		"title":        a.Title,
		"teaser":       a.Teaser,
		"author":       a.Author,
		"initial":      template.HTML(a.Initial),
		"footnotes":    template.HTML(a.Footnotes),
		"first_letter": template.HTML(a.FirstLetter),
		"chunk":        template.HTML(a.Chunk),
		"first":        template.HTML(a.First),
		"content":      template.HTML(a.Content),
	}
}

// Issue is one fully extracted edition. Articles[i] belongs to Index.Articles[i].
type Issue struct {
	Date     time.Time  `json:"date"`
	Index    *Index     `json:"index"`
	Articles []*Article `json:"articles"`
}

// Fetcher retrieves raw HTML from a URL or path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Normalizer converts extracted HTML fragments into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Exporter converts a whole issue into a single output document.
type Exporter interface {
	Export(issue *Issue) ([]byte, error)
	// Extension returns the file extension for this exporter (e.g. ".md", ".pdf").
	Extension() string
}
