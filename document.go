package scoop

// Document is a fetched page: raw markup plus the URL it came from.
// It is immutable once fetched.
type Document struct {
	URL string `json:"url"`

	// HTML is the raw markup, decoded to UTF-8.
	HTML string `json:"html"`

	// Charset is the character encoding declared by the server, if any.
	Charset string `json:"charset"`

	// Listing, if set, is the feed or search entry that led to the page.
	Listing *Listing `json:"listing,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if err := ValidateURL(d.URL); err != nil {
		return err
	}
	return nil
}
