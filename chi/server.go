// Package chi serves parsed articles over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wikisynth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 5 * time.Second

// Server exposes article parsing, rendering and keyword suggestion.
type Server struct {
	router *chi.Mux

	parser    wikisynth.ArticleParser
	renderer  wikisynth.Renderer
	suggester *wikisynth.KeywordSuggester
	gatherer  prometheus.Gatherer
}

// NewServer creates a Server. A nil gatherer leaves /metrics unmounted.
func NewServer(parser wikisynth.ArticleParser, renderer wikisynth.Renderer, suggester *wikisynth.KeywordSuggester, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		parser:    parser,
		renderer:  renderer,
		suggester: suggester,
		gatherer:  gatherer,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/", s.handleIndex)
	s.router.Get("/wiki/{title}", s.handleWiki)
	s.router.Route("/api/articles/{title}", func(r chi.Router) {
		r.Get("/", s.handleArticle)
		r.Get("/keywords", s.handleKeywords)
	})
	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

const indexPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>wikisynth</title></head>
<body><form action="/" method="get"><input type="search" name="title" placeholder="Article title" autofocus><button type="submit">Read</button></form></body></html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if title := strings.TrimSpace(r.URL.Query().Get("title")); title != "" {
		http.Redirect(w, r, "/wiki/"+url.PathEscape(title), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) handleWiki(w http.ResponseWriter, r *http.Request) {
	article, err := s.parse(r)
	if err != nil {
		http.Error(w, wikisynth.ErrorMessage(err), errorStatus(err))
		return
	}

	page, err := s.renderer.Render(article, s.suggester.Suggest(article))
	if err != nil {
		http.Error(w, wikisynth.ErrorMessage(err), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.parse(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

type keywordsResponse struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	suggester := *s.suggester
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			respondError(w, wikisynth.Errorf(wikisynth.EINVALID, "invalid limit %q", v))
			return
		}
		suggester.Limit = limit
	}

	article, err := s.parse(r)
	if err != nil {
		respondError(w, err)
		return
	}

	keywords := suggester.Suggest(article)
	if keywords == nil {
		keywords = []string{}
	}
	respondJSON(w, http.StatusOK, keywordsResponse{Title: article.Title, Keywords: keywords})
}

func (s *Server) parse(r *http.Request) (*wikisynth.ParsedArticle, error) {
	title, err := titleParam(r)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(r.Context(), title)
}

// titleParam returns the decoded title path parameter. chi routes on
// RawPath when the request path has encoded characters such as %2F, and on
// the already decoded Path otherwise.
func titleParam(r *http.Request) (string, error) {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title, nil
	}
	title, err := url.PathUnescape(title)
	if err != nil {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "malformed title")
	}
	return title, nil
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(err error) int {
	switch wikisynth.ErrorCode(err) {
	case wikisynth.ENOTFOUND:
		return http.StatusNotFound
	case wikisynth.EINVALID:
		return http.StatusBadRequest
	case wikisynth.ETOOMANYREDIRECTS:
		return http.StatusLoopDetected
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, errorStatus(err), map[string]string{
		"code":  wikisynth.ErrorCode(err),
		"error": wikisynth.ErrorMessage(err),
	})
}
