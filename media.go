package wikisynth

import (
	"regexp"
	"strings"
)

var (
	galleryRe      = regexp.MustCompile(`(?is)<gallery[^>]*>(.*?)</gallery>`)
	galleryLineRe  = regexp.MustCompile(`(?i)^(?:File|Image):([^|]+)\|?(.*)$`)
	mediaOpenRe    = regexp.MustCompile(`(?i)\[\[(?:File|Image):`)
	mediaSizeRe    = regexp.MustCompile(`^\d+px$`)
	layoutKeywords = []string{"thumb", "thumbnail", "right", "left", "center", "frameless"}
)

// ExtractMedia removes gallery blocks and inline File/Image links from a
// section and returns the remaining text with gallery items first, followed
// by inline items, each group in document order.
func ExtractMedia(text string) (string, []MediaItem) {
	text, gallery := ExtractGallery(text)
	text, inline := ExtractInlineMedia(text)
	return text, append(gallery, inline...)
}

// ExtractGallery removes <gallery> blocks from text and returns one item per
// File:/Image: line inside them.
func ExtractGallery(text string) (string, []MediaItem) {
	var items []MediaItem

	for _, m := range galleryRe.FindAllStringSubmatch(text, -1) {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fm := galleryLineRe.FindStringSubmatch(line)
			if fm == nil {
				continue
			}
			items = append(items, MediaItem{
				Filename: strings.TrimSpace(fm[1]),
				Caption:  strings.TrimSpace(fm[2]),
			})
		}
	}

	return galleryRe.ReplaceAllString(text, ""), items
}

// ExtractInlineMedia removes [[File:...]] and [[Image:...]] links from text.
// Layout options (thumb, alignment, NNNpx sizes, alt=) are discarded and the
// last remaining option becomes the caption. Links nested inside a caption
// stay part of it.
func ExtractInlineMedia(text string) (string, []MediaItem) {
	var (
		items []MediaItem
		out   strings.Builder
	)

	for {
		loc := mediaOpenRe.FindStringIndex(text)
		if loc == nil {
			break
		}
		end := matchingClose(text, loc[0])
		if end < 0 {
			// Unclosed on this line: keep the opener as text and move on.
			out.WriteString(text[:loc[1]])
			text = text[loc[1]:]
			continue
		}

		out.WriteString(text[:loc[0]])
		items = append(items, parseMediaLink(text[loc[1]:end-2]))
		text = text[end:]
	}
	out.WriteString(text)

	return out.String(), items
}

// matchingClose returns the index just past the "]]" closing the link that
// opens at start, or -1 if it is not closed before the end of the line.
func matchingClose(text string, start int) int {
	depth := 0
	for i := start; i+1 < len(text); i++ {
		switch {
		case text[i] == '\n':
			return -1
		case text[i] == '[' && text[i+1] == '[':
			depth++
			i++
		case text[i] == ']' && text[i+1] == ']':
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// parseMediaLink parses the inside of a media link after the File:/Image:
// prefix.
func parseMediaLink(body string) MediaItem {
	parts := splitTopLevel(body)
	item := MediaItem{Filename: strings.TrimSpace(parts[0])}

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		if opt == "" || isLayoutOption(opt) {
			continue
		}
		item.Caption = opt
	}
	return item
}

func isLayoutOption(opt string) bool {
	lower := strings.ToLower(opt)
	for _, kw := range layoutKeywords {
		if lower == kw {
			return true
		}
	}
	return mediaSizeRe.MatchString(opt) || strings.HasPrefix(opt, "alt=")
}

// splitTopLevel splits s on pipes that are not inside a nested [[...]] link.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '[' && i+1 < len(s) && s[i+1] == '[':
			depth++
			i++
		case s[i] == ']' && i+1 < len(s) && s[i+1] == ']':
			depth = max(0, depth-1)
			i++
		case s[i] == '|' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
