// Package gemini provides Google Gemini backed services: abstractive
// article summaries and local token counting.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/scoop"
	"google.golang.org/genai"
)

// Model is the Gemini model used for summaries.
const Model = "gemini-2.5-flash"

// DefaultMaxInputTokens bounds the article text sent for summarization.
const DefaultMaxInputTokens = 8000

// Ensure Summarizer implements scoop.Strategy at compile time.
var _ scoop.Strategy[string] = (*Summarizer)(nil)

// Summarizer produces abstractive summaries with Google Gemini.
type Summarizer struct {
	client    *Client
	counter   scoop.TokenCounter
	maxTokens int
}

// NewSummarizer creates a new Summarizer. The counter trims long input to
// maxTokens; a nil counter sends the text untrimmed.
func NewSummarizer(client *Client, counter scoop.TokenCounter, maxTokens int) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxInputTokens
	}
	return &Summarizer{client: client, counter: counter, maxTokens: maxTokens}
}

// Name returns "abstractive".
func (s *Summarizer) Name() string { return string(scoop.SummaryAbstractive) }

// Attempt summarizes in.Text in the language of the input.
func (s *Summarizer) Attempt(ctx context.Context, in scoop.StageInput) (string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return "", scoop.Errorf(scoop.ESTAGE, "no text to summarize")
	}
	client, err := s.client.Get(ctx)
	if err != nil {
		return "", err
	}

	text, err := s.fit(ctx, in.Text)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(in.Title, text, in.Language)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", scoop.Errorf(scoop.ESTAGE, "gemini: %v", err)
	}
	if result == nil {
		return "", scoop.Errorf(scoop.ESTAGE, "gemini returned nil result")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", scoop.Errorf(scoop.ESTAGE, "gemini returned an empty summary")
	}
	return summary, nil
}

func (s *Summarizer) fit(ctx context.Context, text string) (string, error) {
	return FitTokens(ctx, s.counter, text, s.maxTokens)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a news editor writing short, neutral summaries of news articles. Summarize only what the article says. Do not add opinions or facts that are not in the article.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the article.
func BuildUserPrompt(title, text, lang string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	if title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	}
	fmt.Fprintf(&sb, "<content>%s</content>\n", text)
	sb.WriteString("</article>\n\n")
	sb.WriteString("Summarize the article in two or three sentences")
	if lang != "" && lang != scoop.UnknownLanguage {
		fmt.Fprintf(&sb, ", written in the language with ISO 639-1 code %q", lang)
	}
	sb.WriteString(".")
	return sb.String()
}
