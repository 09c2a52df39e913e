package wikisynth

import (
	"fmt"
	"strings"
)

// FormatArticle formats a parsed article as plain text for display or LLM
// context. Sections without a paragraph or images are omitted.
func FormatArticle(article *ParsedArticle) string {
	if article == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# " + article.Title + "\n")

	for _, s := range article.Sections {
		if s.Paragraph == "" && len(s.Images) == 0 {
			continue
		}
		b.WriteString("\n## " + s.Title + "\n")
		if s.Paragraph != "" {
			b.WriteString(s.Paragraph + "\n")
		}
		for _, img := range s.Images {
			caption := CleanMarkup(img.Caption)
			if caption == "" {
				fmt.Fprintf(&b, "[image: %s]\n", img.Filename)
				continue
			}
			fmt.Fprintf(&b, "[image: %s] %s\n", img.Filename, caption)
		}
	}

	if len(article.References) > 0 {
		b.WriteString("\n## References\n")
		for i, ref := range article.References {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ref)
		}
	}

	return b.String()
}
