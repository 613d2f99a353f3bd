package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Council approves budget</title></head>
<body>
<nav><a href="/">Home</a> <a href="/news">News</a></nav>
<article>
<h1>Council approves budget</h1>
<p>The city council voted on Tuesday to approve a new transit budget, ending months of debate over how to fund bus service.</p>
<p>Under the plan, three new bus lines will connect the northern districts to the city centre, with service starting next spring.</p>
<p>Council members said the budget was the largest investment in public transport in more than a decade.</p>
</article>
<footer>Copyright Daily News</footer>
</body>
</html>`

		content, err := trafilatura.NewExtractor().ExtractContent(&scoop.Document{URL: "https://example.com/story", HTML: html})

		require.NoError(t, err)
		assert.Contains(t, content.Text, "approve a new transit budget")
		assert.NotContains(t, content.Text, "Copyright")
		assert.Equal(t, trafilatura.Method, content.Method)
		assert.Equal(t, strings.Join(content.Paragraphs, "\n\n"), content.Text)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractContent(&scoop.Document{URL: "https://example.com/", HTML: ""})

		require.Error(t, err)
		assert.Equal(t, scoop.ENOCONTENT, scoop.ErrorCode(err))
	})

	t.Run("rejects pages without enough text", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractContent(&scoop.Document{URL: "https://example.com/", HTML: "<html><body><p>Hi.</p></body></html>"})

		assert.Equal(t, scoop.ENOCONTENT, scoop.ErrorCode(err))
	})
}
