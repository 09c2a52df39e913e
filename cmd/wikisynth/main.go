package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/gemini"
	"github.com/fwojciec/wikisynth/html"
	"github.com/fwojciec/wikisynth/htmltomarkdown"
	"github.com/fwojciec/wikisynth/mediawiki"
	"github.com/fwojciec/wikisynth/pipeline"
	wprom "github.com/fwojciec/wikisynth/prometheus"
	wslog "github.com/fwojciec/wikisynth/slog"
	"github.com/fwojciec/wikisynth/sqlite"
	"github.com/fwojciec/wikisynth/yaml"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds the interactive command.
	Stdin io.Reader

	// SQLite database backing the article cache.
	DB *sqlite.DB

	// Fetcher replaces the MediaWiki client when set. Used by tests.
	Fetcher wikisynth.ArticleFetcher

	// Asker replaces the Gemini client when set. Used by tests.
	Asker wikisynth.Asker

	// TokenCounter replaces the local tokenizer when set.
	TokenCounter wikisynth.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikisynth"),
		kong.Description("Fetch Wikipedia articles and normalize them into sections, media and references"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikisynth --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WIKISYNTH_DB to use a different cache path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	stopwords := wikisynth.DefaultStopwords()
	if cli.Stopwords != "" {
		sl, err := yaml.LoadStoplist(cli.Stopwords)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", wikisynth.ErrorMessage(err))
			return err
		}
		stopwords = sl.Stopwords(stopwords)
	}

	registry := prometheus.NewRegistry()
	metrics := wprom.NewMetrics(registry)

	store := sqlite.NewArticleStore(m.DB)
	deps.Store = store
	deps.Gatherer = registry
	deps.Suggester = wikisynth.NewKeywordSuggester(stopwords)
	deps.Renderer = html.NewRenderer()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Parser = m.buildParser(cli, store, metrics, deps.Logger)

	if cmd == "ask" {
		asker, err := m.buildAsker(ctx, cli, stderr)
		if err != nil {
			return err
		}
		deps.Asker = wslog.NewLoggingAsker(asker, deps.Logger)

		deps.TokenCounter = m.buildTokenCounter(deps.Logger)
	}

	return kongCtx.Run(deps)
}

// buildParser assembles the fetch chain: cache, then retries, then the
// logged and measured MediaWiki client.
func (m *Main) buildParser(cli *CLI, store wikisynth.ArticleStore, metrics *wprom.Metrics, logger *slog.Logger) wikisynth.ArticleParser {
	var fetcher wikisynth.ArticleFetcher = m.Fetcher
	if fetcher == nil {
		opts := []mediawiki.Option{
			mediawiki.WithEndpoint(cli.API),
			mediawiki.WithTimeout(cli.Timeout),
			mediawiki.WithLimiter(rate.NewLimiter(rate.Limit(cli.Rate), cli.Burst)),
		}
		if cli.UserAgent != "" {
			opts = append(opts, mediawiki.WithUserAgent(cli.UserAgent))
		}
		fetcher = mediawiki.NewFetcher(opts...)
	}

	fetcher = wprom.NewFetcher(fetcher, metrics)
	fetcher = wslog.NewLoggingFetcher(fetcher, logger)
	fetcher = &pipeline.RetryFetcher{Fetcher: fetcher, Delays: cli.RetryDelays, Logger: logger}
	cache := pipeline.NewCachingFetcher(fetcher, store, cli.CacheTTL)
	cache.Logger = logger
	fetcher = cache

	parser := &pipeline.Parser{Fetcher: fetcher, MaxRedirects: cli.MaxRedirects}
	return wslog.NewLoggingParser(wprom.NewParser(parser, metrics), logger)
}

func (m *Main) buildAsker(ctx context.Context, cli *CLI, stderr io.Writer) (wikisynth.Asker, error) {
	if m.Asker != nil {
		return m.Asker, nil
	}

	if cli.GeminiAPIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	asker := gemini.NewAsker(client)
	if cli.Ask.Model != "" {
		asker.Model = cli.Ask.Model
	}
	return asker, nil
}

// buildTokenCounter returns nil when the tokenizer cannot load; the prompt
// size is then not logged.
func (m *Main) buildTokenCounter(logger *slog.Logger) wikisynth.TokenCounter {
	if m.TokenCounter != nil {
		return m.TokenCounter
	}
	tc, err := gemini.NewTokenCounter(tokenizerModel)
	if err != nil {
		logger.Debug("token counter unavailable", "err", err)
		return nil
	}
	return tc
}

// tokenizerModel is used for token counting. The local tokenizer does not
// know every generation model, so it is pinned separately.
const tokenizerModel = "gemini-2.5-flash"
