package scoop

import (
	"net/url"
	"strings"
)

// blockedHosts lists social platforms whose pages are not news articles.
var blockedHosts = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"tiktok.com",
	"linkedin.com",
}

// ValidateURL returns EINVALID unless raw is an absolute http(s) URL
// pointing at a host that can carry articles.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Errorf(EINVALID, "URL %q has no host", raw)
	}
	for _, blocked := range blockedHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return Errorf(EINVALID, "URL host %q is not a news source", host)
		}
	}
	return nil
}

// NormalizeURL trims whitespace, lowercases the scheme and host, and drops
// the fragment. Unparseable input is returned trimmed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
