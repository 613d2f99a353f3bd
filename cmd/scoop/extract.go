package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	results := deps.Crawler.ExtractAll(deps.Ctx, c.URLs, progressReporter(deps))
	return writeResults(deps, results)
}

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	doc := &scoop.Document{URL: strings.TrimSpace(c.URL), HTML: string(html)}
	article, err := deps.Extractor.ExtractArticle(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	return deps.Output.Write(deps.Stdout, []*scoop.Article{article})
}

// Run executes the feed command.
func (c *FeedCmd) Run(deps *Dependencies) error {
	results, err := deps.Crawler.ExtractFeed(deps.Ctx, c.URL, c.Limit, progressReporter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stderr, "No articles found in feed.")
		return nil
	}
	return writeResults(deps, results)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if err := requireSearcher(deps); err != nil {
		return err
	}
	results, err := deps.Crawler.ExtractSearch(deps.Ctx, c.Query, c.Limit, progressReporter(deps))
	return writeSearchResults(deps, results, err)
}

// Run executes the trending command.
func (c *TrendingCmd) Run(deps *Dependencies) error {
	if err := requireSearcher(deps); err != nil {
		return err
	}
	results, err := deps.Crawler.ExtractTrending(deps.Ctx, c.Limit, progressReporter(deps))
	return writeSearchResults(deps, results, err)
}

func requireSearcher(deps *Dependencies) error {
	if deps.Crawler.Searcher == nil {
		fmt.Fprintln(deps.Stderr, "SERPAPI_API_KEY environment variable not set. Get an API key at https://serpapi.com/manage-api-key")
		return fmt.Errorf("SERPAPI_API_KEY not set")
	}
	return nil
}

func writeSearchResults(deps *Dependencies, results []crawl.Result, err error) error {
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stderr, "No results.")
		return nil
	}
	return writeResults(deps, results)
}

// progressReporter reports skipped URLs on stderr.
func progressReporter(deps *Dependencies) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		if e.Type == crawl.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", crawl.TruncateURL(e.URL, 60), describe(e.Error))
		}
	}
}

// writeResults prints the extracted articles and fails when none could
// be extracted.
func writeResults(deps *Dependencies, results []crawl.Result) error {
	articles := make([]*scoop.Article, 0, len(results))
	for _, r := range results {
		if r.Article != nil {
			articles = append(articles, r.Article)
		}
	}

	ok, failed := crawl.Counts(results)
	if ok == 0 && failed > 0 {
		return fmt.Errorf("no articles extracted (%d failed)", failed)
	}
	if err := deps.Output.Write(deps.Stdout, articles); err != nil {
		return err
	}
	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "Extracted %d articles, %d failed\n", ok, failed)
	}
	return nil
}

// describe returns the message of an application error, or the text of
// any other error.
func describe(err error) string {
	var e *scoop.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
