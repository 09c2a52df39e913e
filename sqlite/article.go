package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikisynth"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikisynth.ArticleStore = (*ArticleStore)(nil)

// ArticleStore implements wikisynth.ArticleStore using SQLite.
type ArticleStore struct {
	db *DB
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db *DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// hashContent returns the hex encoded xxHash of content.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// SaveArticle inserts the article or replaces the cached copy with the same
// title. A replaced row keeps its original ID.
func (s *ArticleStore) SaveArticle(ctx context.Context, article *wikisynth.CachedArticle) error {
	if err := article.Validate(); err != nil {
		return err
	}

	if article.FetchedAt.IsZero() {
		article.FetchedAt = time.Now()
	}
	article.FetchedAt = article.FetchedAt.UTC().Truncate(time.Second)
	article.ContentHash = hashContent(article.Wikitext)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO articles (id, title, wikitext, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			wikitext = excluded.wikitext,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), article.Title, article.Wikitext, article.ContentHash,
		article.FetchedAt.Format(time.RFC3339)).Scan(&article.ID)
}

// FindArticleByTitle retrieves a cached article by exact title.
func (s *ArticleStore) FindArticleByTitle(ctx context.Context, title string) (*wikisynth.CachedArticle, error) {
	article, err := scanArticle(s.db.QueryRowContext(ctx, `
		SELECT id, title, wikitext, content_hash, fetched_at
		FROM articles
		WHERE title = ?
	`, title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikisynth.Errorf(wikisynth.ENOTFOUND, "article %q not cached", title)
	}
	return article, err
}

// FindArticles lists cached articles, most recently fetched first.
func (s *ArticleStore) FindArticles(ctx context.Context, filter wikisynth.ArticleFilter) ([]*wikisynth.CachedArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, wikitext, content_hash, fetched_at FROM articles ORDER BY fetched_at DESC, title ASC")
	if filter.Offset > 0 && filter.Limit <= 0 {
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*wikisynth.CachedArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// DeleteArticle removes a cached article by title.
func (s *ArticleStore) DeleteArticle(ctx context.Context, title string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE title = ?", title)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wikisynth.Errorf(wikisynth.ENOTFOUND, "article %q not cached", title)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*wikisynth.CachedArticle, error) {
	var article wikisynth.CachedArticle
	var fetchedAt string

	if err := row.Scan(&article.ID, &article.Title, &article.Wikitext, &article.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	article.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &article, nil
}
