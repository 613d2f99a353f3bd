package scoop

import "time"

// Metadata holds structured fields found in a document. Every field is
// independently optional.
type Metadata struct {
	Title        Optional[string]    `json:"title"`
	Author       Optional[string]    `json:"author"`
	PublishedAt  Optional[time.Time] `json:"publishedAt"`
	CanonicalURL Optional[string]    `json:"canonicalUrl"`
	LeadImage    Optional[string]    `json:"leadImage"`
	Description  Optional[string]    `json:"description"`
	SiteName     Optional[string]    `json:"siteName"`
	Category     Optional[string]    `json:"category"`

	// Lang is the language declared by the page markup.
	Lang Optional[string] `json:"lang"`

	Tags   []string `json:"tags"`
	Images []string `json:"images"`
	Videos []string `json:"videos"`

	// Paywalled is set when the page shows signs of restricted access.
	Paywalled bool `json:"paywalled"`
}

// MetadataExtractor reads structured fields from a document.
type MetadataExtractor interface {
	// ExtractMetadata never fails. Fields that cannot be found are
	// left absent.
	ExtractMetadata(doc *Document) *Metadata
}
