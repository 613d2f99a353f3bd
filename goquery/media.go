package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipImage matches decorative images that never illustrate an article.
var skipImage = regexp.MustCompile(`(?i)(icon|logo|avatar|sprite|spacer|pixel|blank|placeholder|badge|emoji|1x1|tracking)`)

// videoHosts embed article videos in iframes.
var videoHosts = []string{"youtube.com", "youtube-nocookie.com", "youtu.be", "vimeo.com", "dailymotion.com"}

// collectImages returns absolute URLs of content images under sel in
// document order.
func collectImages(sel *goquery.Selection, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" || skipImage.MatchString(src) || isTiny(img) {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	})
	return out
}

// imageSource prefers lazy-loading attributes over src, which often holds
// a placeholder.
func imageSource(img *goquery.Selection) string {
	for _, key := range []string{"data-src", "data-original", "data-lazy-src", "src"} {
		if v := strings.TrimSpace(img.AttrOr(key, "")); v != "" && !strings.HasPrefix(v, "data:") {
			return v
		}
	}
	if srcset := img.AttrOr("srcset", ""); srcset != "" {
		first := strings.TrimSpace(strings.Split(srcset, ",")[0])
		if fields := strings.Fields(first); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

func isTiny(img *goquery.Selection) bool {
	for _, key := range []string{"width", "height"} {
		v := strings.TrimSuffix(img.AttrOr(key, ""), "px")
		if v != "" && len(v) <= 2 {
			return true
		}
	}
	return false
}

// collectVideos returns absolute URLs of embedded videos under sel.
func collectVideos(sel *goquery.Selection, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(src string) {
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	sel.Find("iframe[src], embed[src]").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if isVideoHost(src) {
			add(src)
		}
	})
	sel.Find("video[src], video source[src]").Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("src", ""))
	})
	return out
}

func isVideoHost(src string) bool {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// collectLinks returns absolute http(s) links under sel pointing to a
// host other than base.
func collectLinks(sel *goquery.Selection, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || isSameHost(base, resolved) {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	})
	return out
}

// resolveURL resolves href against base and strips the fragment.
// Returns an empty string for unparseable or non-http(s) results.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isSameHost checks if the resolved URL has the same host as the base
// URL, ignoring a leading "www.".
func isSameHost(base *url.URL, resolved string) bool {
	if base == nil {
		return false
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.") == strings.TrimPrefix(strings.ToLower(base.Host), "www.")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
