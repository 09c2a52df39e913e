package pipeline

import (
	"context"

	"github.com/fwojciec/wikisynth"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of titles parsed in parallel by ParseAll.
const DefaultConcurrency = 4

// Result is the outcome of parsing a single title in a batch.
type Result struct {
	Title   string
	Article *wikisynth.ParsedArticle
	Err     error
}

// ProgressEvent reports progress during a batch parse.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ParseAll parses independent titles with at most concurrency parses in
// flight. Results are returned in input order; a failed title does not stop
// the others. Progress events are delivered from a single goroutine.
func ParseAll(ctx context.Context, parser wikisynth.ArticleParser, titles []string, concurrency int, progress ProgressFunc) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type indexed struct {
		pos int
		Result
	}

	total := len(titles)
	resultCh := make(chan indexed, total)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, title := range titles {
			g.Go(func() error {
				article, err := parser.Parse(gctx, title)
				resultCh <- indexed{pos: i, Result: Result{Title: title, Article: article, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	completed := 0
	for r := range resultCh {
		completed++
		results[r.pos] = r.Result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Title:     r.Title,
		}
		if r.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results
}
