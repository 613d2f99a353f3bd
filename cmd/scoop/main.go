package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/bayes"
	"github.com/fwojciec/scoop/crawl"
	"github.com/fwojciec/scoop/enrich"
	"github.com/fwojciec/scoop/extract"
	"github.com/fwojciec/scoop/gemini"
	"github.com/fwojciec/scoop/gocache"
	"github.com/fwojciec/scoop/govader"
	"github.com/fwojciec/scoop/gofeed"
	"github.com/fwojciec/scoop/goquery"
	"github.com/fwojciec/scoop/htmltomarkdown"
	scoophttp "github.com/fwojciec/scoop/http"
	"github.com/fwojciec/scoop/language"
	"github.com/fwojciec/scoop/prose"
	"github.com/fwojciec/scoop/readability"
	scoopslog "github.com/fwojciec/scoop/slog"
	"github.com/fwojciec/scoop/trafilatura"
	"github.com/fwojciec/scoop/whatlanggo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields are replaced by the
	// network-backed implementations.
	Fetcher  scoop.Fetcher
	Feeds    scoop.FeedParser
	Searcher scoop.Searcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scoop"),
		kong.Description("Extract clean, enriched articles from news pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scoop --help' to see available commands")
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

	cfg, err := cli.Config.ScoopConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %s", scoop.ErrorMessage(err))
	}

	deps.Logger = newLogger(stderr, cli.LogLevel)
	deps.Output = NewOutput(cli.Format, htmltomarkdown.NewConverter())

	client := &http.Client{Timeout: cli.Config.FetchTimeout}

	var fetcher scoop.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = scoophttp.NewFetcher(scoophttp.WithTimeout(cli.Config.FetchTimeout))
	}
	fetcher = scoopslog.NewLoggingFetcher(fetcher, deps.Logger)
	defer fetcher.Close()

	extractor := newExtractor(cfg, cli.Config, client, deps.Logger)
	deps.Extractor = scoopslog.NewLoggingArticleExtractor(extractor, deps.Logger)

	deps.Crawler = &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   deps.Extractor,
		Cache:       gocache.NewCache(cli.Config.CacheTTL, gocache.DefaultCleanupInterval),
		RateLimiter: crawl.NewDomainLimiter(cli.Config.RPS),
		Feeds:       scoopslog.NewLoggingFeedParser(m.feeds(client), deps.Logger),
		Concurrency: cli.Config.Concurrency,
		Logf: func(format string, args ...any) {
			deps.Logger.Debug(fmt.Sprintf(format, args...))
		},
	}
	if searcher := m.searcher(client, cli.Config.SerpAPIKey); searcher != nil {
		deps.Crawler.Searcher = scoopslog.NewLoggingSearcher(searcher, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) feeds(client *http.Client) scoop.FeedParser {
	if m.Feeds != nil {
		return m.Feeds
	}
	return &FeedRouter{
		Feeds:    gofeed.NewParser(client, scoophttp.DefaultUserAgent),
		Sitemaps: scoophttp.NewSitemapService(client),
	}
}

func (m *Main) searcher(client *http.Client, apiKey string) scoop.Searcher {
	if m.Searcher != nil {
		return m.Searcher
	}
	if apiKey == "" {
		return nil
	}
	return scoophttp.NewSearchService(client, apiKey)
}

// newExtractor wires the content chain, language stage, and enrichment
// pipeline for cfg.
func newExtractor(cfg scoop.Config, flags ConfigFlags, client *http.Client, logger *slog.Logger) *extract.Extractor {
	content := []scoop.ContentExtractor{
		goquery.NewExtractor(goquery.WithDecay(cfg.Decay), goquery.WithMinScore(cfg.MinScore)),
	}
	if cfg.ContentMethod == scoop.ContentAuto {
		content = append(content, trafilatura.NewExtractor(), readability.NewExtractor())
	}

	var translator scoop.Translator
	if cfg.TargetLanguage != "" {
		translator = scoopslog.NewLoggingTranslator(scoophttp.NewTranslator(client, flags.LingvaURL), logger)
	}

	model := &prose.Model{}
	strategies := enrich.Strategies{
		KeywordModel: &prose.Keywords{Model: model},
		Entities:     &prose.Entities{Model: model, MaxPerCategory: cfg.MaxEntitiesPerCategory},
		Scorers: map[string]scoop.SentimentScorer{
			scoop.ScorerVADER: govader.NewScorer(nil),
			scoop.ScorerBayes: bayes.NewScorer(nil),
		},
	}
	if cfg.EnableHeavyMethods {
		var counter scoop.TokenCounter
		if tc, err := gemini.NewTokenCounter(gemini.Model); err != nil {
			logger.Warn("token counter unavailable, sending untrimmed input", "err", err)
		} else {
			counter = tc
		}
		strategies.Abstractive = gemini.NewSummarizer(gemini.NewClient(flags.GeminiAPIKey), counter, 0)
	}

	return &extract.Extractor{
		Content:  content,
		Metadata: goquery.NewMetadataExtractor(),
		Language: language.NewStage(cfg, whatlanggo.NewDetector(), translator),
		Enricher: enrich.NewPipeline(cfg, strategies),
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
