package pipeline

import (
	"context"
	"sync"

	"github.com/fwojciec/wikisynth"
)

// Ensure Session implements wikisynth.ArticleParser at compile time.
var _ wikisynth.ArticleParser = (*Session)(nil)

// Session serializes user-driven parses with latest-wins semantics: starting
// a parse cancels the one still in flight, and the superseded call returns
// ECANCELED instead of its result.
type Session struct {
	Parser wikisynth.ArticleParser

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewSession creates a Session delegating to parser.
func NewSession(parser wikisynth.ArticleParser) *Session {
	return &Session{Parser: parser}
}

// Parse starts a new parse of title, superseding any parse in progress.
func (s *Session) Parse(ctx context.Context, title string) (*wikisynth.ParsedArticle, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	article, err := s.Parser.Parse(ctx, title)

	s.mu.Lock()
	current := s.seq == seq
	if current {
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		return nil, wikisynth.Errorf(wikisynth.ECANCELED, "parse of %q superseded", title)
	}
	return article, err
}

// Cancel aborts the parse in progress, if any. The aborted call returns
// ECANCELED.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
