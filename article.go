package wikisynth

import (
	"context"
	"net/url"
)

// MediaBaseURL is the media repository path that image sources are built
// from. The filename is appended path-escaped.
const MediaBaseURL = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// RawArticle is the unprocessed wikitext of a page as returned by the API.
type RawArticle struct {
	Title    string `json:"title"`
	Wikitext string `json:"wikitext"`
}

// MediaItem is an image referenced from a section, either from a gallery
// block or an inline File/Image link.
type MediaItem struct {
	// Filename is the raw target name without the File:/Image: prefix.
	Filename string `json:"filename"`

	// Caption is the last non-layout option of the link, or empty.
	// It may still contain wiki markup.
	Caption string `json:"caption"`
}

// MediaURL returns the image source URL for a media filename.
func MediaURL(filename string) string {
	return MediaBaseURL + url.PathEscape(filename)
}

// Section is a fully processed article section.
type Section struct {
	Title     string      `json:"section"`
	Paragraph string      `json:"paragraph"`
	Images    []MediaItem `json:"images"`
}

// ParsedArticle is the terminal artifact of the normalization pipeline.
type ParsedArticle struct {
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
	References []string  `json:"references"`

	// RedirectedFrom lists the titles whose redirects were followed to reach
	// Title, in hop order.
	RedirectedFrom []string `json:"redirectedFrom,omitempty"`
}

// ArticleFetcher retrieves raw wikitext for a page title.
type ArticleFetcher interface {
	// Fetch returns the latest revision's main-slot content for the exact
	// title. Returns ENOTFOUND if the page has no revisions.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, title string) (wikitext string, err error)
}

// ArticleParser fetches and normalizes an article, following redirects.
type ArticleParser interface {
	// Parse returns the parsed article for title.
	// Returns ENOTFOUND if the page (or a redirect target) does not exist
	// and ETOOMANYREDIRECTS if the redirect chain is too long.
	Parse(ctx context.Context, title string) (*ParsedArticle, error)
}
