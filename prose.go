package wikisynth

import (
	"regexp"
	"strings"
)

// Line prefixes that mark non-prose lines: lists, tables, template residue,
// headings and unprocessed media links.
var nonProsePrefixes = []string{"*", "|", "{", "=", "[[File:", "[[Image:"}

var (
	boldRe        = regexp.MustCompile(`'''+`)
	pipedLinkRe   = regexp.MustCompile(`\[\[([^|\]]+)\|([^\]]+)\]\]`)
	plainLinkRe   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	bracketRe     = regexp.MustCompile(`[\[\]]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// FirstParagraph returns the first block of consecutive prose lines in text,
// joined with single spaces. Leading blank lines are skipped and non-prose
// lines are ignored without ending the block.
func FirstParagraph(text string) string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		if isNonProse(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}

	return strings.TrimSpace(strings.Join(lines, " "))
}

func isNonProse(line string) bool {
	for _, p := range nonProsePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// CleanMarkup strips bold and italic markers, resolves [[Target|Display]]
// to Display and [[Target]] to Target, drops stray brackets and collapses
// whitespace.
func CleanMarkup(text string) string {
	if text == "" {
		return ""
	}

	text = boldRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "''", "")
	text = pipedLinkRe.ReplaceAllString(text, "$2")
	text = plainLinkRe.ReplaceAllString(text, "$1")
	text = bracketRe.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
