// Package fetch implements the Fetcher interface.
// Issues are read either from the magazine's web site over HTTP or from
// a local mirror of it on disk.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "lmdpipe/1.0 (https://github.com/gaurav-prasanna/lmdpipe)"
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithClient creates an HTTPFetcher using the given client.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       body,
	}, nil
}

// FileFetcher reads pages from a local mirror below Dir.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a FileFetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

// Fetch reads the file at path relative to the mirror directory.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &core.FetchError{URL: path, Err: err}
	}
	full := filepath.Join(f.Dir, filepath.FromSlash(path))
	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, &core.FetchError{URL: path, Err: err}
	}
	body, err := decode(bytes.NewReader(raw), "")
	if err != nil {
		return nil, &core.FetchError{URL: path, Err: err}
	}
	return &core.FetchResult{
		URL:        path,
		StatusCode: http.StatusOK,
		HTML:       body,
	}, nil
}

// decode reads an HTML document as UTF-8. The encoding comes from the
// content type when given, else from the document's meta tags. Older
// archive pages are served as ISO-8859-1.
func decode(r io.Reader, contentType string) (string, error) {
	dec, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", err
	}
	body, err := io.ReadAll(dec)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
