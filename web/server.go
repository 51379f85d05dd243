// Package web serves a browsable preview of issues straight from the
// source site: an issue list, issue tables of contents, article pages
// linked in reading order, and an RSS feed per issue.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/assemble"
	"github.com/gaurav-prasanna/lmdpipe/core/extract"
	"github.com/gaurav-prasanna/lmdpipe/core/fetch"
	"github.com/gaurav-prasanna/lmdpipe/core/issue"
	"github.com/gaurav-prasanna/lmdpipe/core/render"
)

const (
	resPrefix         = "/res"
	indexStylesheet   = resPrefix + "/index_styles.css"
	articleStylesheet = resPrefix + "/article_styles.css"
)

// Server holds the preview state. The table of contents most recently
// opened decides the next-article links of article pages, keyed by href.
type Server struct {
	src       fetch.Source
	templates *render.Templates
	locale    language.Tag
	log       *slog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	issues  []core.Record
	date    string
	current core.Record
	next    map[string]string
}

// New creates a Server reading from src.
func New(src fetch.Source, templates *render.Templates, locale language.Tag, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		src:       src,
		templates: templates,
		locale:    locale,
		log:       logger,
		now:       time.Now,
		next:      make(map[string]string),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), LoggerMiddleware(s.log))
	r.GET("/", s.handleIssues)
	r.GET("/ausgabe/:date", s.handleIssue)
	r.GET("/rss/:date", s.handleRSS)
	r.GET("/artikel/:article", s.handleArticle)
	r.StaticFS(resPrefix, http.FS(render.Resources()))
	return r
}

func (s *Server) handleIssues(c *gin.Context) {
	var links []core.Record
	for _, d := range issue.Issues(s.now()) {
		date := issue.PathDate(d)
		links = append(links, core.Record{
			"href": "/ausgabe/" + date,
			"rss":  "/rss/" + date,
			"date": issue.FormatDate(d, issue.LayoutLong, s.locale),
		})
	}

	s.mu.Lock()
	s.issues = links
	s.mu.Unlock()

	s.render(c, render.EntryPageTemplate, core.Record{
		"stylesheet": indexStylesheet,
		"articles":   links,
	})
}

func (s *Server) handleIssue(c *gin.Context) {
	date, ok := s.dateParam(c)
	if !ok {
		return
	}
	idx, err := assemble.Load(c.Request.Context(), s.src.Fetcher, s.src.IndexURL(date), extract.IndexPage, s.log)
	if err != nil {
		s.fail(c, err)
		return
	}

	rec := idx.Record()
	// Article routes live at the site root.
	for _, a := range rec["articles"].([]core.Record) {
		a["href"] = "/" + a["href"].(string)
	}

	hrefs := idx.Hrefs()
	next := make(map[string]string, len(hrefs))
	for i, href := range hrefs {
		next[href] = path.Base(hrefs[(i+1)%len(hrefs)])
	}

	s.mu.Lock()
	s.date, s.current, s.next = date, rec, next
	s.mu.Unlock()

	s.render(c, extract.IndexPage.Template, rec.Merge(core.Record{"stylesheet": indexStylesheet}))
}

func (s *Server) handleArticle(c *gin.Context) {
	article := c.Param("article")
	href := "artikel/" + article
	a, err := assemble.Load(c.Request.Context(), s.src.Fetcher, s.src.ArticleURL(href), extract.ArticlePage, s.log)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.mu.RLock()
	extra := core.Record{
		"stylesheet":         articleStylesheet,
		"stylesheet_content": indexStylesheet,
		"issues":             s.issues,
		"current":            s.current,
		"next":               s.next[href],
		"home":               "/",
	}
	if s.date != "" {
		extra["home"] = "/ausgabe/" + s.date
	}
	s.mu.RUnlock()

	s.render(c, render.ArticleWebTemplate, a.Record().Merge(extra))
}

func (s *Server) handleRSS(c *gin.Context) {
	date, ok := s.dateParam(c)
	if !ok {
		return
	}
	idx, err := assemble.Load(c.Request.Context(), s.src.Fetcher, s.src.IndexURL(date), extract.IndexPage, s.log)
	if err != nil {
		s.fail(c, err)
		return
	}
	body, err := render.RSS(idx, render.Feed{
		Link:    s.src.Root,
		PubDate: issue.FormatDate(s.now().UTC(), issue.LayoutRFC1123, language.English),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (s *Server) dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := issue.ParsePathDate(date); err != nil {
		c.String(http.StatusBadRequest, "invalid issue date %q, want YYYY-MM-DD", date)
		return "", false
	}
	return date, true
}

func (s *Server) render(c *gin.Context, name string, rec core.Record) {
	body, err := s.templates.Render(name, rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// fail maps extraction failures to 502: the source page did not have the
// expected shape. Everything else is a 500.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	var se *core.StructuralError
	if errors.As(err, &se) {
		c.String(http.StatusBadGateway, "%v", err)
		return
	}
	c.String(http.StatusInternalServerError, "internal error")
}
