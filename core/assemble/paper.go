// Package assemble builds the page tree of one issue: the index page
// followed by every article, each linked to its successor.
//
// Assembly is strictly sequential and all-or-nothing: the first failing
// page aborts the run and no later page is written.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/extract"
	"github.com/gaurav-prasanna/lmdpipe/core/fetch"
	"github.com/gaurav-prasanna/lmdpipe/core/issue"
	"github.com/gaurav-prasanna/lmdpipe/core/output"
	"github.com/gaurav-prasanna/lmdpipe/core/render"
)

// Links used by the pages of an assembled tree.
const (
	IndexFile         = "index.html"
	ResourceDir       = "res"
	homeLink          = "../" + IndexFile
	indexStylesheet   = ResourceDir + "/index_styles.css"
	articleStylesheet = "../" + ResourceDir + "/index_styles.css"
)

// Renderer renders a page record through a named template.
type Renderer interface {
	Render(name string, rec core.Record) ([]byte, error)
}

// Assembler fetches, extracts and writes the pages of an issue.
type Assembler struct {
	Renderer Renderer
	Logger   *slog.Logger
}

// New creates an Assembler. A nil logger means slog.Default().
func New(r Renderer, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{Renderer: r, Logger: logger}
}

// Result summarizes an assembled issue.
type Result struct {
	Issue *core.Issue
	// Pages lists the written page paths, index first.
	Pages []string
	Bytes int64
}

// Assemble writes the issue published on date (YYYY-MM-DD) into targetDir,
// reading pages from src. On success exactly len(articles)+1 pages exist.
func (a *Assembler) Assemble(ctx context.Context, targetDir, date string, src fetch.Source) (*Result, error) {
	day, err := issue.ParsePathDate(date)
	if err != nil {
		return nil, err
	}

	w, err := output.New(targetDir)
	if err != nil {
		return nil, err
	}
	if err := w.WriteFS(ResourceDir, render.Resources()); err != nil {
		return nil, fmt.Errorf("writing resources: %w", err)
	}

	log := a.Logger.With("date", date, "source", src.Mode.String())
	res := &Result{Issue: &core.Issue{Date: day}}

	idx, err := Load(ctx, src.Fetcher, src.IndexURL(date), extract.IndexPage, log)
	if err != nil {
		log.Error("index page failed", "error", err)
		return nil, fmt.Errorf("index: %w", err)
	}
	page, err := a.write(w, extract.IndexPage.Template, IndexFile, idx.Record().Merge(core.Record{
		"stylesheet": indexStylesheet,
	}))
	if err != nil {
		log.Error("index page failed", "error", err)
		return nil, fmt.Errorf("index: %w", err)
	}
	res.Issue.Index = idx
	res.Pages = append(res.Pages, page)

	hrefs := idx.Hrefs()
	for i, href := range hrefs {
		next := hrefs[(i+1)%len(hrefs)]
		art, err := Load(ctx, src.Fetcher, src.ArticleURL(href), extract.ArticlePage, log)
		if err != nil {
			log.Error("article page failed", "href", href, "error", err)
			return nil, fmt.Errorf("article %d (%s): %w", i+1, href, err)
		}
		page, err := a.write(w, extract.ArticlePage.Template, href, art.Record().Merge(core.Record{
			"stylesheet": articleStylesheet,
			"date":       date,
			"home":       homeLink,
			"next":       path.Base(next),
		}))
		if err != nil {
			log.Error("article page failed", "href", href, "error", err)
			return nil, fmt.Errorf("article %d (%s): %w", i+1, href, err)
		}
		res.Issue.Articles = append(res.Issue.Articles, art)
		res.Pages = append(res.Pages, page)
	}

	res.Bytes = w.BytesWritten()
	log.Info("issue assembled", "pages", len(res.Pages), "bytes", res.Bytes, "dir", w.OutputDir)
	return res, nil
}

func (a *Assembler) write(w *output.Writer, template, relPath string, rec core.Record) (string, error) {
	data, err := a.Renderer.Render(template, rec)
	if err != nil {
		return "", err
	}
	return w.Write(relPath, data)
}

// Load fetches url and extracts it as page. A fetch failure is logged and
// the page treated as empty, so the extractor reports the missing content
// as a *core.StructuralError carrying the URL.
func Load[T core.Recorder](ctx context.Context, f core.Fetcher, url string, page extract.Page[T], log *slog.Logger) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	start := time.Now()
	doc, err := document(ctx, f, url, log)
	if err != nil {
		return zero, err
	}
	rec, err := extract.Extract(doc, page)
	var se *core.StructuralError
	if errors.As(err, &se) {
		se.URL = url
	}
	if err != nil {
		return zero, err
	}
	log.Debug("page extracted", "page", page.Name, "url", url, "elapsed", time.Since(start))
	return rec, nil
}

func document(ctx context.Context, f core.Fetcher, url string, log *slog.Logger) (*goquery.Document, error) {
	log.Debug("fetching", "url", url)
	html := ""
	result, err := f.Fetch(ctx, url)
	if err != nil {
		log.Warn("could not fetch page", "url", url, "error", err)
	} else {
		html = result.HTML
	}
	return extract.Parse(html)
}
