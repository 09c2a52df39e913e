package wikisynth

import "context"

// Asker provides natural language question answering over a parsed article.
type Asker interface {
	// Ask answers a question using the article as the only source.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, article *ParsedArticle, question string) (string, error)
}
