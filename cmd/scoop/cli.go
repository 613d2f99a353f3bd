package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Extractor scoop.ArticleExtractor
	Crawler   *crawl.Crawler
	Output    *Output
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Format   string `short:"o" enum:"json,text,markdown" default:"text" env:"SCOOP_FORMAT" help:"Output format (json, text, markdown)"`
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"SCOOP_LOG_LEVEL" help:"Log level for diagnostics on stderr"`

	Config ConfigFlags `embed:""`

	Extract  ExtractCmd  `cmd:"" help:"Extract articles from URLs"`
	File     FileCmd     `cmd:"" help:"Extract an article from a saved HTML file"`
	Feed     FeedCmd     `cmd:"" help:"Extract articles listed in an RSS/Atom feed or news sitemap"`
	Search   SearchCmd   `cmd:"" help:"Search news and extract the top results"`
	Trending TrendingCmd `cmd:"" help:"Extract currently trending news stories"`
}

// ConfigFlags are the extraction and enrichment settings shared by every
// subcommand.
type ConfigFlags struct {
	Target           string        `name:"target" env:"SCOOP_TARGET_LANGUAGE" help:"Translate articles into this ISO 639-1 language"`
	NoEnrich         bool          `name:"no-enrich" env:"SCOOP_NO_ENRICH" help:"Skip keywords, sentiment, entities and summary"`
	Summary          string        `name:"summary" enum:"auto,extractive,abstractive,naive" default:"auto" env:"SCOOP_SUMMARY_METHOD" help:"Summary method"`
	Heavy            bool          `name:"heavy" env:"SCOOP_HEAVY_METHODS" help:"Enable abstractive summaries with Gemini"`
	ContentMethod    string        `name:"content-method" enum:"scorer,auto" default:"scorer" env:"SCOOP_CONTENT_METHOD" help:"Body extraction: scorer only, or scorer with trafilatura and readability fallbacks"`
	MinConfidence    float64       `name:"min-confidence" default:"0.5" env:"SCOOP_MIN_LANGUAGE_CONFIDENCE" help:"Minimum language detection confidence"`
	MaxKeywords      int           `name:"max-keywords" default:"10" env:"SCOOP_MAX_KEYWORDS" help:"Maximum keywords per article"`
	KeywordMethods   []string      `name:"keyword-methods" default:"hybrid,rake,frequency" env:"SCOOP_KEYWORD_METHODS" help:"Keyword methods in fallback order"`
	SentimentScorers []string      `name:"sentiment-scorers" default:"vader,bayes" env:"SCOOP_SENTIMENT_SCORERS" help:"Sentiment scorers to fuse"`
	StageTimeout     time.Duration `name:"stage-timeout" default:"10s" env:"SCOOP_STAGE_TIMEOUT" help:"Timeout per enrichment attempt"`
	TranslateTimeout time.Duration `name:"translate-timeout" default:"10s" env:"SCOOP_TRANSLATE_TIMEOUT" help:"Translation timeout"`
	FetchTimeout     time.Duration `name:"fetch-timeout" default:"10s" env:"SCOOP_FETCH_TIMEOUT" help:"HTTP timeout per request"`
	Concurrency      int           `short:"c" default:"10" env:"SCOOP_CONCURRENCY" help:"Concurrent extraction limit"`
	RPS              float64       `name:"rps" default:"2" env:"SCOOP_RPS" help:"Requests per second per domain"`
	CacheTTL         time.Duration `name:"cache-ttl" default:"24h" env:"SCOOP_CACHE_TTL" help:"How long extracted articles are reused"`
	LingvaURL        string        `name:"lingva-url" default:"https://lingva.ml" env:"SCOOP_LINGVA_URL" help:"Lingva Translate instance"`
	GeminiAPIKey     string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for abstractive summaries"`
	SerpAPIKey       string        `name:"serpapi-api-key" env:"SERPAPI_API_KEY" help:"SerpAPI key for news search"`
}

// ScoopConfig converts the flags to a validated scoop.Config.
func (f ConfigFlags) ScoopConfig() (scoop.Config, error) {
	cfg := scoop.DefaultConfig()
	cfg.TargetLanguage = strings.ToLower(strings.TrimSpace(f.Target))
	cfg.EnableEnrichment = !f.NoEnrich
	cfg.EnableHeavyMethods = f.Heavy
	cfg.ContentMethod = f.ContentMethod
	cfg.MinLanguageConfidence = f.MinConfidence
	cfg.MaxKeywords = f.MaxKeywords
	cfg.StageTimeout = f.StageTimeout
	cfg.TranslateTimeout = f.TranslateTimeout
	if f.KeywordMethods != nil {
		cfg.KeywordMethods = f.KeywordMethods
	}
	if f.SentimentScorers != nil {
		cfg.SentimentScorers = f.SentimentScorers
	}

	method, err := scoop.ParseSummaryMethod(f.Summary)
	if err != nil {
		return scoop.Config{}, err
	}
	cfg.SummaryMethod = method

	if err := cfg.Validate(); err != nil {
		return scoop.Config{}, err
	}
	return cfg, nil
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs []string `arg:"" name:"url" help:"Article URLs"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	Path string `arg:"" help:"Path to a saved HTML page"`
	URL  string `required:"" help:"URL the page was saved from"`
}

// FeedCmd is the "feed" subcommand.
type FeedCmd struct {
	URL   string `arg:"" help:"Feed, sitemap, or site URL"`
	Limit int    `short:"n" default:"10" help:"Maximum articles to extract (0 for all)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"10" help:"Maximum articles to extract"`
}

// TrendingCmd is the "trending" subcommand.
type TrendingCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum articles to extract"`
}
