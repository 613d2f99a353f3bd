package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/scoop"
	"google.golang.org/genai"
)

// Client is a lazily created, shared handle to the Gemini API.
type Client struct {
	apiKey string

	once   sync.Once
	client *genai.Client
	err    error
}

// NewClient returns a handle for apiKey. No connection is made until the
// first call to Get.
func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

// Get returns the underlying client, creating it on first use. Returns
// EUNAVAILABLE when no API key is configured.
func (c *Client) Get(ctx context.Context) (*genai.Client, error) {
	if c == nil || c.apiKey == "" {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "gemini API key not configured")
	}
	c.once.Do(func() {
		c.client, c.err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if c.err != nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "creating gemini client: %v", c.err)
	}
	return c.client, nil
}
