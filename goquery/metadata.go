package goquery

import (
	"encoding/json"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scoop"
	"github.com/microcosm-cc/bluemonday"
)

// maxTags caps the number of tags kept from a page.
const maxTags = 10

// Ensure MetadataExtractor implements scoop.MetadataExtractor at compile time.
var _ scoop.MetadataExtractor = (*MetadataExtractor)(nil)

var (
	bylinePattern = regexp.MustCompile(`^(?i:by)\s+([\p{Lu}][\p{L}.'’-]+(?:\s+(?:[\p{Lu}][\p{L}.'’-]+|de|van|von|da|del|and))*)`)
	titleSuffix   = regexp.MustCompile(`\s+[|\-–—·:]\s+[^|\-–—·:]+$`)
)

var authorSelectors = []string{
	`[itemprop="author"] [itemprop="name"]`,
	`[itemprop="author"]`,
	`[rel="author"]`,
	`.byline-name`,
	`.author-name`,
	`.byline`,
	`.author`,
	`[class*="byline"]`,
}

var dateSelectors = []string{
	`[itemprop="datePublished"]`,
	`time[datetime]`,
	`.published`,
	`.publish-date`,
	`.article-date`,
	`.post-date`,
	`.timestamp`,
	`.date`,
}

var paywallSelectors = []string{
	`.paywall`,
	`#paywall`,
	`[class*="paywall"]`,
	`[data-paywall]`,
	`.premium-content`,
	`.subscriber-only`,
	`.subscription-required`,
}

var bodySelectors = []string{
	`[itemprop="articleBody"]`,
	`article`,
	`.article-body`,
	`.entry-content`,
	`.post-content`,
	`main`,
}

// MetadataExtractor reads article metadata from embedded JSON-LD, meta
// tags, and markup heuristics, in that order of priority.
type MetadataExtractor struct {
	policy *bluemonday.Policy
}

// NewMetadataExtractor returns a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{policy: bluemonday.StrictPolicy()}
}

// page is the per-document state of one extraction.
type page struct {
	doc    *goquery.Document
	base   *url.URL
	ld     []map[string]any
	meta   map[string][]string
	policy *bluemonday.Policy
}

// ExtractMetadata returns the metadata of doc. It never fails; a document
// that cannot be parsed yields empty metadata.
func (e *MetadataExtractor) ExtractMetadata(doc *scoop.Document) *scoop.Metadata {
	m := &scoop.Metadata{}
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return m
	}

	base, _ := url.Parse(doc.URL)
	p := &page{
		doc:    parsed,
		base:   base,
		ld:     readJSONLD(parsed),
		meta:   readMeta(parsed),
		policy: e.policy,
	}

	m.Title = scoop.OptionalString(p.title())
	m.Author = scoop.OptionalString(p.author())
	m.PublishedAt = p.publishedAt()
	m.CanonicalURL = scoop.OptionalString(p.canonical())
	m.LeadImage = scoop.OptionalString(p.leadImage())
	m.Description = scoop.OptionalString(p.first(p.ldString("description"), p.metaValue("description", "og:description", "twitter:description")))
	m.SiteName = scoop.OptionalString(p.first(p.metaValue("og:site_name"), p.ldPublisher(), p.metaValue("application-name")))
	m.Category = scoop.OptionalString(p.first(p.ldString("articleSection"), p.metaValue("article:section", "category")))
	m.Lang = scoop.OptionalString(p.lang())
	m.Tags = p.tags()
	m.Images = p.metaURLs("og:image", "twitter:image", "twitter:image:src")
	m.Videos = p.metaURLs("og:video", "og:video:url", "og:video:secure_url", "twitter:player")
	m.Paywalled = p.paywalled()
	return m
}

// first returns the first non-empty value after cleaning.
func (p *page) first(values ...string) string {
	for _, v := range values {
		if v = p.clean(v); v != "" {
			return v
		}
	}
	return ""
}

// clean strips markup, unescapes entities, and collapses whitespace.
func (p *page) clean(s string) string {
	if s == "" {
		return ""
	}
	return normalizeSpace(html.UnescapeString(p.policy.Sanitize(html.UnescapeString(s))))
}

func (p *page) title() string {
	return p.first(
		p.ldString("headline", "name"),
		p.metaValue("og:title", "twitter:title"),
		p.doc.Find("h1").First().Text(),
		titleSuffix.ReplaceAllString(normalizeSpace(p.doc.Find("title").First().Text()), ""),
	)
}

func (p *page) author() string {
	if a := normalizeAuthor(p.clean(p.ldAuthor())); a != "" {
		return a
	}
	if a := normalizeAuthor(p.clean(p.metaValue("article:author", "author", "dc.creator", "sailthru.author", "parsely-author"))); a != "" {
		return a
	}
	for _, sel := range authorSelectors {
		var found string
		p.doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = normalizeAuthor(p.clean(s.Text()))
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	var found string
	p.doc.Find("body p, body span, body div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i > 200 {
			return false
		}
		if s.Children().Length() > 0 {
			return true
		}
		if match := bylinePattern.FindStringSubmatch(normalizeSpace(s.Text())); match != nil {
			found = normalizeAuthor(match[1])
		}
		return found == ""
	})
	return found
}

// normalizeAuthor strips a leading "By", collapses whitespace, and rejects
// values that cannot be a name.
func normalizeAuthor(s string) string {
	s = normalizeSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "by ") {
		s = strings.TrimSpace(s[3:])
	}
	s = strings.TrimRight(s, ",;|")
	if s == "" || len([]rune(s)) > 100 || strings.Contains(s, "://") || strings.HasPrefix(s, "@") {
		return ""
	}
	return s
}

func (p *page) publishedAt() scoop.Optional[time.Time] {
	candidates := []string{
		p.ldString("datePublished", "dateCreated", "uploadDate"),
		p.metaValue("article:published_time", "og:published_time", "pubdate", "publishdate", "publish-date", "date", "dc.date", "dc.date.issued", "sailthru.date", "parsely-pub-date"),
	}
	for _, sel := range dateSelectors {
		p.doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			for _, v := range []string{s.AttrOr("datetime", ""), s.AttrOr("content", ""), s.Text()} {
				if v = normalizeSpace(v); v != "" {
					candidates = append(candidates, v)
					return false
				}
			}
			return true
		})
	}
	for _, c := range candidates {
		if t, ok := ParseDate(c); ok {
			return scoop.Some(t)
		}
	}
	if t, ok := FindDate(truncateRunes(normalizeSpace(p.doc.Find("body").Text()), 2000)); ok {
		return scoop.Some(t)
	}
	return scoop.None[time.Time]()
}

func (p *page) canonical() string {
	for _, raw := range []string{
		p.ldCanonical(),
		p.doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		p.metaValue("og:url"),
	} {
		if raw == "" {
			continue
		}
		if resolved := resolveURL(p.base, raw); resolved != "" {
			return resolved
		}
	}
	return ""
}

func (p *page) leadImage() string {
	for _, raw := range []string{p.ldImage(), p.metaValue("og:image", "og:image:url", "og:image:secure_url", "twitter:image", "twitter:image:src")} {
		if raw == "" {
			continue
		}
		if resolved := resolveURL(p.base, raw); resolved != "" {
			return resolved
		}
	}
	for _, sel := range bodySelectors {
		if images := collectImages(p.doc.Find(sel).First(), p.base); len(images) > 0 {
			return images[0]
		}
	}
	return ""
}

func (p *page) lang() string {
	lang := p.doc.Find("html").First().AttrOr("lang", "")
	if lang == "" {
		lang = p.metaValue("content-language", "og:locale", "dc.language")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if len(lang) != 2 {
		return ""
	}
	return lang
}

func (p *page) tags() []string {
	var raw []string
	raw = append(raw, p.meta["article:tag"]...)
	raw = append(raw, p.ldList("keywords")...)
	for _, kw := range p.meta["keywords"] {
		raw = append(raw, strings.Split(kw, ",")...)
	}
	return dedupeFold(raw, p.clean, maxTags)
}

func (p *page) metaURLs(keys ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range keys {
		for _, v := range p.meta[k] {
			if resolved := resolveURL(p.base, v); resolved != "" && !seen[resolved] {
				seen[resolved] = true
				out = append(out, resolved)
			}
		}
	}
	return out
}

func (p *page) paywalled() bool {
	for _, obj := range p.ld {
		switch v := obj["isAccessibleForFree"].(type) {
		case bool:
			if !v {
				return true
			}
		case string:
			if strings.EqualFold(v, "false") {
				return true
			}
		}
	}
	if tier := strings.ToLower(p.metaValue("article:content_tier")); tier != "" && tier != "free" {
		return true
	}
	for _, sel := range paywallSelectors {
		if p.doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

// readMeta indexes meta tag content by lowercased property, name, or
// itemprop, keeping document order for repeated keys.
func readMeta(doc *goquery.Document) map[string][]string {
	meta := make(map[string][]string)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		for _, key := range []string{"property", "name", "itemprop", "http-equiv"} {
			if k := strings.ToLower(strings.TrimSpace(s.AttrOr(key, ""))); k != "" {
				meta[k] = append(meta[k], content)
			}
		}
	})
	return meta
}

// metaValue returns the first content found for any of keys.
func (p *page) metaValue(keys ...string) string {
	for _, k := range keys {
		if v := p.meta[k]; len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// readJSONLD returns every JSON-LD object describing an article, in
// document order.
func readJSONLD(doc *goquery.Document) []map[string]any {
	var objs []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err != nil {
			return
		}
		flattenLD(v, &objs)
	})

	var articles []map[string]any
	for _, obj := range objs {
		if isArticleType(obj["@type"]) {
			articles = append(articles, obj)
		}
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return hasNewsType(articles[i]["@type"]) && !hasNewsType(articles[j]["@type"])
	})
	return articles
}

func flattenLD(v any, out *[]map[string]any) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			flattenLD(item, out)
		}
	case map[string]any:
		*out = append(*out, t)
		if graph, ok := t["@graph"]; ok {
			flattenLD(graph, out)
		}
	}
}

func ldTypes(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func isArticleType(v any) bool {
	for _, t := range ldTypes(v) {
		if strings.HasSuffix(t, "Article") || t == "BlogPosting" || t == "LiveBlogPosting" || t == "Report" {
			return true
		}
	}
	return false
}

func hasNewsType(v any) bool {
	for _, t := range ldTypes(v) {
		if strings.Contains(t, "News") {
			return true
		}
	}
	return false
}

// ldString returns the first string value found under any of keys across
// article objects.
func (p *page) ldString(keys ...string) string {
	for _, obj := range p.ld {
		for _, k := range keys {
			if s := ldText(obj[k]); s != "" {
				return s
			}
		}
	}
	return ""
}

// ldText reads a string, a {name|url|@id} object, or the first element of
// a list.
func ldText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, k := range []string{"name", "url", "@id"} {
			if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	case []any:
		for _, item := range t {
			if s := ldText(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func (p *page) ldAuthor() string {
	for _, obj := range p.ld {
		var names []string
		switch a := obj["author"].(type) {
		case []any:
			for _, item := range a {
				if s := ldText(item); s != "" {
					names = append(names, s)
				}
			}
		default:
			if s := ldText(a); s != "" {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return ""
}

func (p *page) ldImage() string {
	for _, obj := range p.ld {
		if s := ldText(obj["image"]); s != "" {
			return s
		}
		if s := ldText(obj["thumbnailUrl"]); s != "" {
			return s
		}
	}
	return ""
}

func (p *page) ldCanonical() string {
	for _, obj := range p.ld {
		if s, ok := obj["url"].(string); ok && s != "" {
			return s
		}
		if s := ldText(obj["mainEntityOfPage"]); s != "" {
			return s
		}
	}
	return ""
}

func (p *page) ldPublisher() string {
	for _, obj := range p.ld {
		if pub, ok := obj["publisher"].(map[string]any); ok {
			if s, ok := pub["name"].(string); ok {
				return s
			}
		}
	}
	return ""
}

// ldList reads a comma-separated string or a list of strings.
func (p *page) ldList(key string) []string {
	for _, obj := range p.ld {
		switch v := obj[key].(type) {
		case string:
			return strings.Split(v, ",")
		case []any:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

// dedupeFold cleans values and drops case-insensitive repeats, keeping at
// most max.
func dedupeFold(values []string, clean func(string) string, max int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		v = clean(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
