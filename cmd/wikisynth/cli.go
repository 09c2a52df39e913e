package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Parser       wikisynth.ArticleParser
	Store        wikisynth.ArticleStore
	Suggester    *wikisynth.KeywordSuggester
	Renderer     wikisynth.Renderer
	Converter    wikisynth.Converter
	Asker        wikisynth.Asker
	TokenCounter wikisynth.TokenCounter
	Gatherer     prometheus.Gatherer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	API          string          `name:"api" env:"WIKISYNTH_API" default:"https://en.wikipedia.org/w/api.php" help:"MediaWiki api.php endpoint"`
	DB           string          `name:"db" env:"WIKISYNTH_DB" default:":memory:" help:"SQLite cache path"`
	UserAgent    string          `env:"WIKISYNTH_USER_AGENT" help:"User-Agent sent to the API"`
	GeminiAPIKey string          `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for ask"`
	Stopwords    string          `type:"path" help:"YAML stoplist extending the built-in stopwords"`
	Rate         float64         `default:"1" help:"API requests per second"`
	Burst        int             `default:"2" help:"API request burst"`
	Timeout      time.Duration   `default:"10s" help:"Per-request timeout"`
	RetryDelays  []time.Duration `default:"1s,2s,4s" help:"Backoff between fetch retries"`
	CacheTTL     time.Duration   `name:"cache-ttl" default:"24h" help:"Maximum age of cached wikitext (0 keeps forever)"`
	MaxRedirects int             `default:"5" help:"Maximum redirects followed"`
	Verbose      bool            `short:"v" help:"Log debug output to stderr"`

	Parse       ParseCmd       `cmd:"" help:"Parse articles and print a summary"`
	Keywords    KeywordsCmd    `cmd:"" help:"Suggest keywords for an article"`
	Render      RenderCmd      `cmd:"" help:"Render an article as HTML or Markdown"`
	Ask         AskCmd         `cmd:"" help:"Ask a question about an article"`
	Serve       ServeCmd       `cmd:"" help:"Serve articles over HTTP"`
	Interactive InteractiveCmd `cmd:"" help:"Browse articles and build an idea graph"`
	Cache       CacheCmd       `cmd:"" help:"Inspect the article cache"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Titles      []string `arg:"" help:"Article titles"`
	JSON        bool     `help:"Print parsed articles as JSON"`
	Refs        bool     `help:"List references"`
	Full        bool     `help:"Print full article text"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent parse limit"`
}

// KeywordsCmd is the "keywords" subcommand.
type KeywordsCmd struct {
	Title string `arg:"" help:"Article title"`
	Limit int    `short:"n" default:"10" help:"Maximum keywords"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Title  string `arg:"" help:"Article title"`
	Format string `short:"f" enum:"html,markdown" default:"markdown" help:"Output format (html, markdown)"`
	Output string `short:"o" type:"path" help:"Write to file instead of stdout"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Title    string `arg:"" help:"Article title"`
	Question string `arg:"" help:"Question to ask about the article"`
	Model    string `help:"Gemini model"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct{}

// CacheCmd groups cache subcommands.
type CacheCmd struct {
	List   CacheListCmd   `cmd:"" default:"1" help:"List cached articles"`
	Delete CacheDeleteCmd `cmd:"" help:"Remove a cached article"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Limit int `short:"n" default:"50" help:"Maximum entries"`
}

// CacheDeleteCmd is the "cache delete" subcommand.
type CacheDeleteCmd struct {
	Title string `arg:"" help:"Article title"`
}
