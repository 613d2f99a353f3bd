package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/scoop"
)

// DefaultLingvaURL is the public Lingva Translate instance.
const DefaultLingvaURL = "https://lingva.ml"

// maxChunkRunes caps the text sent in a single translation request.
const maxChunkRunes = 1000

// Ensure Translator implements scoop.Translator at compile time.
var _ scoop.Translator = (*Translator)(nil)

// Translator translates text using the Lingva Translate API.
type Translator struct {
	client  *http.Client
	baseURL string
}

// NewTranslator creates a Translator for the Lingva instance at baseURL.
// If client is nil, http.DefaultClient is used.
func NewTranslator(client *http.Client, baseURL string) *Translator {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultLingvaURL
	}
	return &Translator{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Translate translates text from one language to another. Long text is
// split at paragraph boundaries and translated chunk by chunk.
func (t *Translator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", scoop.Errorf(scoop.EINVALID, "nothing to translate")
	}
	if from == "" {
		from = "auto"
	}

	var out []string
	for _, chunk := range chunkText(text, maxChunkRunes) {
		translated, err := t.translateChunk(ctx, chunk, from, to)
		if err != nil {
			return "", err
		}
		out = append(out, translated)
	}
	return strings.Join(out, "\n\n"), nil
}

func (t *Translator) translateChunk(ctx context.Context, chunk, from, to string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s/%s/%s", t.baseURL, url.PathEscape(from), url.PathEscape(to), url.PathEscape(chunk))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", scoop.Errorf(scoop.ETRANSLATION, "creating request: %v", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", scoop.Errorf(scoop.ETRANSLATION, "translation request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", scoop.Errorf(scoop.ETRANSLATION, "translation service returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", scoop.Errorf(scoop.ETRANSLATION, "decoding translation: %v", err)
	}
	if body.Translation == "" {
		return "", scoop.Errorf(scoop.ETRANSLATION, "empty translation")
	}
	return body.Translation, nil
}

// chunkText splits text into chunks of at most max runes. Paragraphs are
// kept together when they fit; longer paragraphs are split on word
// boundaries.
func chunkText(text string, max int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	add := func(piece, sep string) {
		n := len([]rune(piece))
		if curLen > 0 && curLen+len(sep)+n > max {
			flush()
		}
		if curLen > 0 {
			cur.WriteString(sep)
			curLen += len(sep)
		}
		cur.WriteString(piece)
		curLen += n
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len([]rune(para)) <= max {
			add(para, "\n\n")
			continue
		}
		flush()
		for _, word := range strings.Fields(para) {
			add(word, " ")
		}
		flush()
	}
	flush()
	return chunks
}
