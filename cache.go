package wikisynth

import (
	"context"
	"time"
)

// CachedArticle is raw wikitext stored by an ArticleStore.
type CachedArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Wikitext    string    `json:"wikitext"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the cached article contains invalid fields.
func (a *CachedArticle) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// ArticleFilter limits the result of FindArticles.
type ArticleFilter struct {
	Limit  int
	Offset int
}

// ArticleStore caches fetched wikitext by exact title.
type ArticleStore interface {
	// SaveArticle inserts the article or replaces the one with the same title.
	SaveArticle(ctx context.Context, article *CachedArticle) error

	// FindArticleByTitle retrieves a cached article.
	// Returns ENOTFOUND if the title is not cached.
	FindArticleByTitle(ctx context.Context, title string) (*CachedArticle, error)

	// FindArticles lists cached articles, most recently fetched first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*CachedArticle, error)

	// DeleteArticle removes a cached article.
	// Returns ENOTFOUND if the title is not cached.
	DeleteArticle(ctx context.Context, title string) error
}
