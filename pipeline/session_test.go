package pipeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/mock"
	"github.com/fwojciec/wikisynth/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Parse(t *testing.T) {
	t.Parallel()

	t.Run("returns result of single parse", func(t *testing.T) {
		t.Parallel()

		s := pipeline.NewSession(&mock.ArticleParser{
			ParseFn: func(_ context.Context, title string) (*wikisynth.ParsedArticle, error) {
				return &wikisynth.ParsedArticle{Title: title}, nil
			},
		})

		article, err := s.Parse(context.Background(), "Paris")

		require.NoError(t, err)
		assert.Equal(t, "Paris", article.Title)
	})

	t.Run("newer parse supersedes one in flight", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		s := pipeline.NewSession(&mock.ArticleParser{
			ParseFn: func(ctx context.Context, title string) (*wikisynth.ParsedArticle, error) {
				if title == "Slow" {
					close(started)
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return &wikisynth.ParsedArticle{Title: title}, nil
			},
		})

		type outcome struct {
			article *wikisynth.ParsedArticle
			err     error
		}
		slow := make(chan outcome, 1)
		go func() {
			a, err := s.Parse(context.Background(), "Slow")
			slow <- outcome{a, err}
		}()
		<-started

		article, err := s.Parse(context.Background(), "Fast")
		require.NoError(t, err)
		assert.Equal(t, "Fast", article.Title)

		got := <-slow
		assert.Nil(t, got.article)
		assert.Equal(t, wikisynth.ECANCELED, wikisynth.ErrorCode(got.err))
	})

	t.Run("superseded result is discarded even when parse completes", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		s := pipeline.NewSession(&mock.ArticleParser{
			ParseFn: func(_ context.Context, title string) (*wikisynth.ParsedArticle, error) {
				if title == "Old" {
					close(started)
					<-release
				}
				return &wikisynth.ParsedArticle{Title: title}, nil
			},
		})

		errCh := make(chan error, 1)
		go func() {
			_, err := s.Parse(context.Background(), "Old")
			errCh <- err
		}()
		<-started

		_, err := s.Parse(context.Background(), "New")
		require.NoError(t, err)
		close(release)

		assert.Equal(t, wikisynth.ECANCELED, wikisynth.ErrorCode(<-errCh))
	})

	t.Run("cancel aborts parse in flight", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		s := pipeline.NewSession(&mock.ArticleParser{
			ParseFn: func(ctx context.Context, _ string) (*wikisynth.ParsedArticle, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			},
		})

		errCh := make(chan error, 1)
		go func() {
			_, err := s.Parse(context.Background(), "Paris")
			errCh <- err
		}()
		<-started
		s.Cancel()

		assert.Equal(t, wikisynth.ECANCELED, wikisynth.ErrorCode(<-errCh))
	})

	t.Run("repeated title survives superseding shared fetch", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		var calls int
		fetcher := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				calls++
				once.Do(func() { close(started) })
				select {
				case <-release:
					return "The cat is a mammal.", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			},
		}, memoryStore(), 0)
		s := pipeline.NewSession(pipeline.NewParser(fetcher))

		type outcome struct {
			article *wikisynth.ParsedArticle
			err     error
		}
		first := make(chan outcome, 1)
		go func() {
			a, err := s.Parse(context.Background(), "Cat")
			first <- outcome{a, err}
		}()
		<-started

		second := make(chan outcome, 1)
		go func() {
			a, err := s.Parse(context.Background(), "Cat")
			second <- outcome{a, err}
		}()

		superseded := <-first
		assert.Equal(t, wikisynth.ECANCELED, wikisynth.ErrorCode(superseded.err))

		time.Sleep(20 * time.Millisecond)
		close(release)

		latest := <-second
		require.NoError(t, latest.err)
		assert.Equal(t, "Cat", latest.article.Title)
		assert.Equal(t, 1, calls)
	})
}
