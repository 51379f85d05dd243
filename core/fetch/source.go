package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

// Default source roots.
const (
	DefaultOnlineRoot = "http://monde-diplomatique.de"
	DefaultLocalRoot  = "monde-diplomatique.de"
)

// Mode selects where issue pages are read from.
type Mode int

const (
	Online Mode = iota
	Local
)

func (m Mode) String() string {
	switch m {
	case Online:
		return "online"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Source pairs a root location with the fetcher able to read below it.
type Source struct {
	Mode    Mode
	Root    string
	Fetcher core.Fetcher
}

// Options configure NewSource.
type Options struct {
	OnlineRoot string
	LocalRoot  string
	// MirrorDir is the directory holding LocalRoot. Empty means the
	// working directory.
	MirrorDir string
}

// NewSource builds the source for mode.
func NewSource(mode Mode, opts Options) Source {
	if mode == Local {
		root := opts.LocalRoot
		if root == "" {
			root = DefaultLocalRoot
		}
		return Source{Mode: Local, Root: root, Fetcher: NewFileFetcher(opts.MirrorDir)}
	}
	root := opts.OnlineRoot
	if root == "" {
		root = DefaultOnlineRoot
	}
	return Source{Mode: Online, Root: strings.TrimSuffix(root, "/"), Fetcher: New()}
}

// IndexURL returns the location of the issue published on date (YYYY-MM-DD).
func (s Source) IndexURL(date string) string {
	return fmt.Sprintf("%s/archiv-text?text=%s", s.Root, url.QueryEscape(date))
}

// ArticleURL returns the location of the article at href.
func (s Source) ArticleURL(href string) string {
	return s.Root + "/" + href
}
