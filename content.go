package scoop

// Content is the article body selected from a document.
type Content struct {
	// Text is the body paragraphs in document order, separated by a
	// blank line.
	Text string `json:"text"`

	Paragraphs []string `json:"paragraphs"`

	// HTML is the sanitized markup of the selected region.
	HTML string `json:"html"`

	// Score is the accumulated score of the selected region. Extractors
	// that do not score report zero.
	Score float64 `json:"score"`

	// Method names the extractor that produced the content.
	Method string `json:"method"`

	Images []string `json:"images"`
	Videos []string `json:"videos"`

	// Links holds absolute URLs in the body pointing to other hosts.
	Links []string `json:"links"`
}

// ContentExtractor locates the article body in a document.
type ContentExtractor interface {
	// ExtractContent returns the article body.
	// Returns ENOCONTENT if no region qualifies as article text.
	ExtractContent(doc *Document) (*Content, error)
}
