package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/scoop"
)

// DefaultSearchURL is the SerpAPI search endpoint.
const DefaultSearchURL = "https://serpapi.com/search.json"

// Ensure SearchService implements scoop.Searcher at compile time.
var _ scoop.Searcher = (*SearchService)(nil)

// SearchService finds news articles through the SerpAPI Google News engine.
type SearchService struct {
	client   *http.Client
	endpoint string
	apiKey   string
	country  string
	language string
}

// SearchOption configures a SearchService.
type SearchOption func(*SearchService)

// WithEndpoint overrides the search endpoint.
func WithEndpoint(endpoint string) SearchOption {
	return func(s *SearchService) {
		s.endpoint = endpoint
	}
}

// WithLocale sets the country (gl) and interface language (hl) of results.
func WithLocale(country, language string) SearchOption {
	return func(s *SearchService) {
		s.country = country
		s.language = language
	}
}

// NewSearchService creates a SearchService authenticated with apiKey.
// If client is nil, http.DefaultClient is used.
func NewSearchService(client *http.Client, apiKey string, opts ...SearchOption) *SearchService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SearchService{
		client:   client,
		endpoint: DefaultSearchURL,
		apiKey:   apiKey,
		country:  "us",
		language: "en",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type searchResponse struct {
	Error       string `json:"error"`
	NewsResults []struct {
		Title  string `json:"title"`
		Link   string `json:"link"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
	} `json:"news_results"`
}

// Search returns at most limit news results for query, best first.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*scoop.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, scoop.Errorf(scoop.EINVALID, "search query required")
	}
	return s.query(ctx, query, scoop.CategorySearch, limit)
}

// Trending returns at most limit trending news stories.
func (s *SearchService) Trending(ctx context.Context, limit int) ([]*scoop.SearchResult, error) {
	return s.query(ctx, "trending", scoop.CategoryTrending, limit)
}

func (s *SearchService) query(ctx context.Context, q, category string, limit int) ([]*scoop.SearchResult, error) {
	if s.apiKey == "" {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "search API key not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("engine", "google_news")
	params.Set("q", q)
	params.Set("gl", s.country)
	params.Set("hl", s.language)
	params.Set("num", strconv.Itoa(limit))
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, scoop.Errorf(scoop.EFETCH, "creating search request: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, scoop.Errorf(scoop.EFETCH, "search request: %v", err)
	}
	defer resp.Body.Close()

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, scoop.Errorf(scoop.EFETCH, "decoding search response (HTTP %d): %v", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || body.Error != "" {
		return nil, scoop.Errorf(scoop.EFETCH, "search failed (HTTP %d): %s", resp.StatusCode, body.Error)
	}

	results := []*scoop.SearchResult{}
	for _, r := range body.NewsResults {
		if r.Link == "" {
			continue
		}
		result := &scoop.SearchResult{
			Title:    r.Title,
			URL:      r.Link,
			Source:   r.Source.Name,
			Snippet:  r.Snippet,
			Category: category,
		}
		if t, ok := parseSearchDate(r.Date); ok {
			result.PublishedAt = scoop.Some(t)
		}
		results = append(results, result)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// serpDateLayout is the date format of news_results entries.
const serpDateLayout = "01/02/2006, 03:04 PM, -0700 MST"

func parseSearchDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(serpDateLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
