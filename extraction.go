package scoop

import (
	"strings"
	"time"
)

// ExtractionResult combines the article body with its metadata.
type ExtractionResult struct {
	Body         string              `json:"body"`
	BodyHTML     string              `json:"bodyHtml"`
	Method       string              `json:"method"`
	Title        Optional[string]    `json:"title"`
	Author       Optional[string]    `json:"author"`
	PublishedAt  Optional[time.Time] `json:"publishedAt"`
	CanonicalURL Optional[string]    `json:"canonicalUrl"`
	LeadImage    Optional[string]    `json:"leadImage"`
	Description  Optional[string]    `json:"description"`
	SiteName     Optional[string]    `json:"siteName"`
	Category     Optional[string]    `json:"category"`
	Tags         []string            `json:"tags"`
	Images       []string            `json:"images"`
	Videos       []string            `json:"videos"`
	Links        []string            `json:"links"`
	Paywalled    bool                `json:"paywalled"`
}

// NewExtractionResult merges body content and metadata. When metadata
// names no lead image, the first body image is used. Secondary media
// excludes the lead image and keeps first-occurrence order.
func NewExtractionResult(c *Content, m *Metadata) *ExtractionResult {
	if c == nil {
		c = &Content{}
	}
	if m == nil {
		m = &Metadata{}
	}

	lead := m.LeadImage
	if !lead.IsSome() && len(c.Images) > 0 {
		lead = Some(c.Images[0])
	}
	leadURL, _ := lead.Get()

	return &ExtractionResult{
		Body:         c.Text,
		BodyHTML:     c.HTML,
		Method:       c.Method,
		Title:        m.Title,
		Author:       m.Author,
		PublishedAt:  m.PublishedAt,
		CanonicalURL: m.CanonicalURL,
		LeadImage:    lead,
		Description:  m.Description,
		SiteName:     m.SiteName,
		Category:     m.Category,
		Tags:         uniqueStrings(m.Tags),
		Images:       without(uniqueStrings(c.Images, m.Images), leadURL),
		Videos:       uniqueStrings(c.Videos, m.Videos),
		Links:        uniqueStrings(c.Links),
		Paywalled:    m.Paywalled,
	}
}

// ApplyListing fills title, publication time, category and site name
// from l where the page did not provide them. Values found on the page
// are kept.
func (r *ExtractionResult) ApplyListing(l *Listing) {
	if l == nil {
		return
	}
	if !r.Title.IsSome() && strings.TrimSpace(l.Title) != "" {
		r.Title = Some(strings.TrimSpace(l.Title))
	}
	if !r.PublishedAt.IsSome() && l.PublishedAt.IsSome() {
		r.PublishedAt = l.PublishedAt
	}
	if !r.Category.IsSome() && l.Category != "" {
		r.Category = Some(l.Category)
	}
	if !r.SiteName.IsSome() && strings.TrimSpace(l.Source) != "" {
		r.SiteName = Some(strings.TrimSpace(l.Source))
	}
}

// uniqueStrings concatenates lists, dropping empty and repeated values.
func uniqueStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func without(list []string, drop string) []string {
	if drop == "" {
		return list
	}
	out := list[:0:0]
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
