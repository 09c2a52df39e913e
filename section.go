package wikisynth

import (
	"slices"
	"strings"
)

// LeadSectionTitle is the title given to the text before the first heading.
const LeadSectionTitle = "Lead"

// SkippedSections lists trailing section titles that carry no prose worth
// keeping. Matching is exact.
var SkippedSections = []string{
	"References",
	"External links",
	"See also",
	"Further reading",
	"Notes",
}

// SectionBlock is a section as produced by splitting, before media and
// paragraph extraction.
type SectionBlock struct {
	Title   string
	Content string
}

// SplitSections splits text on ==Heading== lines (levels 2 through 6).
// The text before the first heading becomes the Lead section, so the result
// is never empty. Sections listed in SkippedSections are dropped.
func SplitSections(text string) []SectionBlock {
	var (
		blocks  []SectionBlock
		title   = LeadSectionTitle
		content strings.Builder
	)

	flush := func() {
		blocks = append(blocks, SectionBlock{
			Title:   title,
			Content: strings.TrimSpace(content.String()),
		})
		content.Reset()
	}

	for i, line := range strings.Split(text, "\n") {
		if heading, ok := parseHeading(line); ok {
			flush()
			title = heading
			continue
		}
		if i > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(line)
	}
	flush()

	kept := blocks[:1]
	for _, b := range blocks[1:] {
		if slices.Contains(SkippedSections, b.Title) {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// parseHeading reports whether line is a heading of the form ==Title== with
// the same number (2 to 6) of equal signs on both sides.
func parseHeading(line string) (string, bool) {
	leading := len(line) - len(strings.TrimLeft(line, "="))
	trailing := len(line) - len(strings.TrimRight(line, "="))
	level := min(leading, trailing, 6, len(line)/2)
	if level < 2 {
		return "", false
	}
	return strings.TrimSpace(line[level : len(line)-level]), true
}
