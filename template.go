package wikisynth

import (
	"regexp"
	"strings"
)

// Template call fragments that survive outside brace pairs.
var templateResidueRes = []*regexp.Regexp{
	regexp.MustCompile(`\b[Cc]onvert\|[^ ]+`),
	regexp.MustCompile(`(?i)\befn\b[^ ]*`),
	regexp.MustCompile(`(?i)\bnative lang\|[^ ]+`),
	regexp.MustCompile(`\|\s*[a-zA-Z0-9_-]+\s*=\s*[^| ]+`),
}

// StripTemplates discards every {{...}} region, including nested ones, and
// then removes known template argument residue until none is left.
// Unbalanced closing braces are tolerated: the nesting depth never goes
// below zero.
func StripTemplates(text string) string {
	for {
		out := removeResidue(removeTemplates(text))
		if out == text {
			return out
		}
		text = out
	}
}

// removeResidue runs one pass of the residue patterns. Removing a fragment
// can expose another, so callers repeat it.
func removeResidue(text string) string {
	for _, re := range templateResidueRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// removeTemplates repeats the depth-counted scan until no brace pair is left.
// Discarding an excess "}}" can join two stray braces into a new pair.
func removeTemplates(text string) string {
	for {
		out := scanTemplates(text)
		if !strings.Contains(out, "{{") && !strings.Contains(out, "}}") {
			return out
		}
		text = out
	}
}

func scanTemplates(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	depth := 0
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '{' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && i+1 < len(text) && text[i+1] == '}':
			depth = max(0, depth-1)
			i++
		case depth == 0:
			sb.WriteByte(text[i])
		}
	}

	return sb.String()
}
