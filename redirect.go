package wikisynth

import (
	"regexp"
	"strings"
)

// MaxRedirects is the number of redirect hops a parse may follow.
const MaxRedirects = 5

var redirectRe = regexp.MustCompile(`(?i)^#redirect\s*:?\s*\[\[([^\]]+)\]\]`)

// ParseRedirect reports whether wikitext is a redirect page and returns the
// target title with any #Section anchor removed.
func ParseRedirect(wikitext string) (target string, ok bool) {
	m := redirectRe.FindStringSubmatch(strings.TrimSpace(wikitext))
	if m == nil {
		return "", false
	}

	target, _, _ = strings.Cut(m[1], "#")
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	return target, true
}
