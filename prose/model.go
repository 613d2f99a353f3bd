// Package prose provides enrichment strategies backed by jdkato/prose:
// named-entity recognition and noun-phrase keyword extraction.
package prose

import (
	"strings"
	"sync"

	"github.com/fwojciec/scoop"
	"github.com/jdkato/prose/v2"
)

// Name identifies prose-backed methods in stage reports.
const Name = "prose"

// Model is a lazily loaded, shared handle to the prose tagging and
// extraction model. The zero value is ready to use.
type Model struct {
	once  sync.Once
	model *prose.Model
	err   error
}

// Load returns the model, loading it on first use.
func (m *Model) Load() (*prose.Model, error) {
	m.once.Do(func() {
		doc, err := prose.NewDocument("Load.", prose.WithSegmentation(false))
		if err != nil {
			m.err = err
			return
		}
		m.model = doc.Model
	})
	return m.model, m.err
}

// document tags text with the shared model.
func (m *Model) document(text string) (*prose.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, scoop.Errorf(scoop.ESTAGE, "no text to analyze")
	}
	model, err := m.Load()
	if err != nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "loading prose model: %v", err)
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(model))
	if err != nil {
		return nil, scoop.Errorf(scoop.ESTAGE, "tagging text: %v", err)
	}
	return doc, nil
}
