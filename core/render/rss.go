package render

import (
	"encoding/xml"
	"fmt"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	PubDate     string    `xml:"pubDate"`
	Image       *rssImage `xml:"image,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Feed describes the channel an issue is published in.
type Feed struct {
	// Link is the site root article hrefs are resolved against.
	Link    string
	Logo    string
	PubDate string
}

// RSS renders the table of contents of an issue as an RSS 2.0 feed.
func RSS(idx *core.Index, feed Feed) ([]byte, error) {
	ch := rssChannel{
		Title:       idx.Title,
		Link:        feed.Link,
		Description: idx.Date,
		Language:    "de",
		PubDate:     feed.PubDate,
	}
	if ch.Description == "" {
		ch.Description = idx.Title
	}
	if feed.Logo != "" {
		ch.Image = &rssImage{URL: feed.Logo, Title: idx.Title, Link: feed.Link}
	}
	for _, a := range idx.Articles {
		guid := a.GUID
		if guid == "" {
			guid = a.Href
		}
		ch.Items = append(ch.Items, rssItem{
			Title:       a.Title,
			Link:        feed.Link + "/" + a.Href,
			Description: a.Description,
			Author:      a.Author,
			GUID:        rssGUID{Value: guid},
		})
	}

	body, err := xml.MarshalIndent(rss{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling RSS: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
