package wikisynth

import (
	"regexp"
	"strings"
)

var (
	selfClosingRefRe = regexp.MustCompile(`(?i)<ref(?:\s[^>]*)?/>`)
	pairedRefRe      = regexp.MustCompile(`(?is)<ref(?:\s[^>]*)?>(.*?)</ref\s*>`)
)

// ExtractReferences removes all <ref> markup from text and returns the
// remaining text with the trimmed contents of paired refs in document order.
// Self-closing refs are removed without contributing a reference.
func ExtractReferences(text string) (string, []string) {
	// Self-closing tags go first so a paired match cannot open on one.
	text = selfClosingRefRe.ReplaceAllString(text, "")

	var refs []string
	text = pairedRefRe.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.TrimSpace(pairedRefRe.FindStringSubmatch(match)[1])
		if content != "" {
			refs = append(refs, content)
		}
		return ""
	})

	return text, refs
}
