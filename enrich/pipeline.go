package enrich

import (
	"context"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/govader"
	"github.com/fwojciec/scoop/nlp"
	"golang.org/x/sync/errgroup"
)

// Ensure Pipeline implements scoop.Enricher at compile time.
var _ scoop.Enricher = (*Pipeline)(nil)

// vader is shared by every pipeline that falls back to the built-in
// scorer.
var vader = &govader.Analyzer{}

// Strategies holds the optional, model-backed strategies injected into a
// pipeline. Nil fields are treated as unavailable.
type Strategies struct {
	// KeywordModel ranks keywords with a language model. Used by the
	// hybrid keyword method.
	KeywordModel scoop.Strategy[[]scoop.Keyword]

	Entities    scoop.Strategy[scoop.Entities]
	Abstractive scoop.Strategy[string]

	// Scorers maps scorer names to sentiment scorers. The VADER scorer is
	// built in.
	Scorers map[string]scoop.SentimentScorer
}

// Pipeline runs the keyword, sentiment, entity and summary stages
// concurrently.
type Pipeline struct {
	enabled     bool
	maxKeywords int

	keywords  Chain[[]scoop.Keyword]
	sentiment Chain[scoop.Sentiment]
	entities  Chain[scoop.Entities]
	summary   Chain[string]
}

// NewPipeline builds the stage chains from configuration.
func NewPipeline(cfg scoop.Config, s Strategies) *Pipeline {
	p := &Pipeline{
		enabled:     cfg.EnableEnrichment,
		maxKeywords: cfg.MaxKeywords,
		keywords:    Chain[[]scoop.Keyword]{Stage: scoop.StageKeywords, Timeout: cfg.StageTimeout},
		sentiment:   Chain[scoop.Sentiment]{Stage: scoop.StageSentiment, Timeout: cfg.StageTimeout},
		entities:    Chain[scoop.Entities]{Stage: scoop.StageEntities, Timeout: cfg.StageTimeout},
		summary:     Chain[string]{Stage: scoop.StageSummary, Timeout: cfg.StageTimeout},
	}

	for _, m := range cfg.KeywordMethods {
		switch m {
		case scoop.KeywordHybrid:
			p.keywords.Strategies = append(p.keywords.Strategies, &Hybrid{Statistical: nlp.RAKE{}, Model: s.KeywordModel})
		case scoop.KeywordRAKE:
			p.keywords.Strategies = append(p.keywords.Strategies, nlp.RAKE{})
		case scoop.KeywordFrequency:
			p.keywords.Strategies = append(p.keywords.Strategies, nlp.Frequency{})
		}
	}

	var scorers []scoop.SentimentScorer
	for _, name := range cfg.SentimentScorers {
		if scorer, ok := s.Scorers[name]; ok && scorer != nil {
			scorers = append(scorers, scorer)
		} else if name == scoop.ScorerVADER {
			scorers = append(scorers, govader.NewScorer(vader))
		}
	}
	if len(scorers) > 0 {
		p.sentiment.Strategies = []scoop.Strategy[scoop.Sentiment]{&Fused{Scorers: scorers, Threshold: cfg.SentimentThreshold}}
	}

	if s.Entities != nil {
		p.entities.Strategies = []scoop.Strategy[scoop.Entities]{s.Entities}
	}

	p.summary.Strategies = SummaryStrategies(cfg.SummaryMethod, cfg.EnableHeavyMethods, s.Abstractive)

	return p
}

// Enrich runs every stage over in. It never fails: a stage that cannot
// produce output leaves its field absent and says why in its report.
func (p *Pipeline) Enrich(ctx context.Context, in scoop.StageInput) scoop.EnrichmentResult {
	if !p.enabled {
		return scoop.EnrichmentResult{Stages: []scoop.StageReport{
			{Stage: scoop.StageKeywords, State: scoop.StateNotAttempted},
			{Stage: scoop.StageSentiment, State: scoop.StateNotAttempted},
			{Stage: scoop.StageEntities, State: scoop.StateNotAttempted},
			{Stage: scoop.StageSummary, State: scoop.StateNotAttempted},
		}}
	}

	var res scoop.EnrichmentResult
	reports := make([]scoop.StageReport, 4)

	var g errgroup.Group
	g.Go(func() error {
		kws, report, ok := p.keywords.Run(ctx, in)
		if ok {
			res.Keywords = scoop.Some(Terms(kws, p.maxKeywords))
		}
		reports[0] = report
		return nil
	})
	g.Go(func() error {
		sent, report, ok := p.sentiment.Run(ctx, in)
		if ok {
			res.Sentiment = scoop.Some(sent)
		}
		reports[1] = report
		return nil
	})
	g.Go(func() error {
		ents, report, ok := p.entities.Run(ctx, in)
		switch {
		case ok:
			res.Entities = scoop.Some(ents)
		case report.State == scoop.StateExhausted:
			res.Entities = scoop.Some(scoop.Entities{})
		}
		reports[2] = report
		return nil
	})
	g.Go(func() error {
		text, report, ok := p.summary.Run(ctx, in)
		if ok {
			res.Summary = scoop.Some(scoop.Summary{Text: text, Method: report.Method})
		}
		reports[3] = report
		return nil
	})
	_ = g.Wait()

	res.Stages = reports
	// The empty entity list of an exhausted chain is a default, not a
	// result, so only succeeded stages count.
	for _, r := range reports {
		if r.State == scoop.StateSucceeded {
			res.NLPProcessed = true
		}
	}
	return res
}
