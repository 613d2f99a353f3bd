package crawl

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// Counts returns the number of successful and failed results.
func Counts(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		ok++
	}
	return ok, failed
}
