package scoop

import "context"

// TokenCounter counts model tokens in text. It is used to keep model
// prompts within budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
