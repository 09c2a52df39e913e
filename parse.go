package wikisynth

// ParseWikitext runs the normalization pipeline over the wikitext of a page
// that is not a redirect: reference extraction, template stripping, section
// splitting and per-section media and paragraph extraction.
func ParseWikitext(title, wikitext string) *ParsedArticle {
	text, refs := ExtractReferences(wikitext)
	text = StripTemplates(text)

	blocks := SplitSections(text)
	sections := make([]Section, 0, len(blocks))
	for _, b := range blocks {
		body, images := ExtractMedia(b.Content)
		sections = append(sections, Section{
			Title:     b.Title,
			Paragraph: CleanMarkup(FirstParagraph(body)),
			Images:    images,
		})
	}

	return &ParsedArticle{
		Title:      title,
		Sections:   sections,
		References: refs,
	}
}
