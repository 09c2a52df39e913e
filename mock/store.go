package mock

import (
	"context"

	"github.com/fwojciec/wikisynth"
)

var _ wikisynth.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of wikisynth.ArticleStore.
type ArticleStore struct {
	SaveArticleFn        func(ctx context.Context, article *wikisynth.CachedArticle) error
	FindArticleByTitleFn func(ctx context.Context, title string) (*wikisynth.CachedArticle, error)
	FindArticlesFn       func(ctx context.Context, filter wikisynth.ArticleFilter) ([]*wikisynth.CachedArticle, error)
	DeleteArticleFn      func(ctx context.Context, title string) error
}

func (s *ArticleStore) SaveArticle(ctx context.Context, article *wikisynth.CachedArticle) error {
	return s.SaveArticleFn(ctx, article)
}

func (s *ArticleStore) FindArticleByTitle(ctx context.Context, title string) (*wikisynth.CachedArticle, error) {
	return s.FindArticleByTitleFn(ctx, title)
}

func (s *ArticleStore) FindArticles(ctx context.Context, filter wikisynth.ArticleFilter) ([]*wikisynth.CachedArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleStore) DeleteArticle(ctx context.Context, title string) error {
	return s.DeleteArticleFn(ctx, title)
}
