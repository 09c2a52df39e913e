package mock

import (
	"context"

	"github.com/fwojciec/wikisynth"
)

var _ wikisynth.Asker = (*Asker)(nil)

// Asker is a mock implementation of wikisynth.Asker.
type Asker struct {
	AskFn func(ctx context.Context, article *wikisynth.ParsedArticle, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, article *wikisynth.ParsedArticle, question string) (string, error) {
	return a.AskFn(ctx, article, question)
}
