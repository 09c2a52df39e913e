package wikisynth

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is typically a page produced by a Renderer.
	Convert(html string) (string, error)
}

// Renderer renders a parsed article as an HTML page.
type Renderer interface {
	// Render returns a complete HTML document for the article with the
	// given keyword suggestions listed after the sections.
	Render(article *ParsedArticle, keywords []string) (string, error)
}
