package goquery

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/scoop"
	"golang.org/x/net/html"
)

// Scorer defaults.
const (
	DefaultMinParagraphLength = 25
	DefaultMaxLinkDensity     = 0.5
	DefaultContainerBonus     = 1.5
	DefaultFlaggedPenalty     = 0.5
	DefaultDecay              = 0.5
	DefaultMinScore           = 3.0
	DefaultMinSiblingShare    = 0.5
)

// paragraphTags always hold a paragraph of text.
var paragraphTags = map[string]bool{
	"p": true, "pre": true, "blockquote": true, "li": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"td": true, "dd": true, "figcaption": true,
}

// wrapperTags hold a paragraph only through their own inline text.
var wrapperTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true,
}

// blockTags end inline text collection.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "ul": true,
}

// ContentBlock is a candidate article region.
type ContentBlock struct {
	Node       *html.Node
	Score      float64
	Paragraphs []string

	order int
}

// Text joins the block's paragraphs with a blank line.
func (b ContentBlock) Text() string {
	return strings.Join(b.Paragraphs, "\n\n")
}

// Scorer selects the article body from a filtered document.
type Scorer struct {
	Vocabulary Vocabulary

	// MinParagraphLength is the minimum rune length of a paragraph.
	MinParagraphLength int

	// MaxLinkDensity is the highest share of link text a paragraph may
	// have.
	MaxLinkDensity float64

	// ContainerBonus multiplies the score of conventional article
	// containers.
	ContainerBonus float64

	// FlaggedPenalty multiplies the score of nodes inside flagged
	// boilerplate.
	FlaggedPenalty float64

	// Decay is the fraction of a child's score accumulated by its parent.
	Decay float64

	// MinSiblingShare is the lowest score, relative to its strongest
	// sibling, at which a child still adds to its parent.
	MinSiblingShare float64

	// MinScore is the lowest accepted score for the winning block.
	MinScore float64
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithDecay sets the score propagation decay.
func WithDecay(d float64) ScorerOption {
	return func(s *Scorer) {
		s.Decay = d
	}
}

// WithMinScore sets the minimum accepted score.
func WithMinScore(m float64) ScorerOption {
	return func(s *Scorer) {
		s.MinScore = m
	}
}

// WithVocabulary replaces the classification vocabulary.
func WithVocabulary(v Vocabulary) ScorerOption {
	return func(s *Scorer) {
		s.Vocabulary = v
	}
}

// NewScorer returns a Scorer with default settings.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		Vocabulary:         DefaultVocabulary(),
		MinParagraphLength: DefaultMinParagraphLength,
		MaxLinkDensity:     DefaultMaxLinkDensity,
		ContainerBonus:     DefaultContainerBonus,
		FlaggedPenalty:     DefaultFlaggedPenalty,
		Decay:              DefaultDecay,
		MinScore:           DefaultMinScore,
		MinSiblingShare:    DefaultMinSiblingShare,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// paragraph is a qualifying text-bearing element.
type paragraph struct {
	node  *html.Node
	text  string
	score float64
}

// scoring holds the per-document state of one Candidates call.
type scoring struct {
	s          *Scorer
	f          *Filtered
	order      map[*html.Node]int
	paragraphs []paragraph
	own        map[*html.Node]float64
	total      map[*html.Node]float64
}

// Candidates returns every block containing a qualifying paragraph,
// best first. Ties prefer more paragraphs, then earlier blocks.
func (s *Scorer) Candidates(f *Filtered) []ContentBlock {
	if len(f.Doc.Nodes) == 0 {
		return nil
	}
	sc := &scoring{
		s:     s,
		f:     f,
		order: make(map[*html.Node]int),
		own:   make(map[*html.Node]float64),
		total: make(map[*html.Node]float64),
	}
	root := f.Doc.Nodes[0]
	sc.collect(root)
	if len(sc.paragraphs) == 0 {
		return nil
	}
	sc.scoreContainers()
	sc.propagate(root)

	var blocks []ContentBlock
	for n, total := range sc.total {
		if n.Type != html.ElementNode || total <= 0 {
			continue
		}
		blocks = append(blocks, ContentBlock{
			Node:       n,
			Score:      total,
			Paragraphs: sc.paragraphsUnder(n),
			order:      sc.order[n],
		})
	}
	sort.Slice(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Paragraphs) != len(b.Paragraphs) {
			return len(a.Paragraphs) > len(b.Paragraphs)
		}
		return a.order < b.order
	})
	return blocks
}

// Best returns the winning block. Returns ENOCONTENT when no block
// reaches the minimum score.
func (s *Scorer) Best(f *Filtered) (ContentBlock, error) {
	blocks := s.Candidates(f)
	if len(blocks) == 0 {
		return ContentBlock{}, scoop.Errorf(scoop.ENOCONTENT, "no paragraph-like content found")
	}
	if best := blocks[0]; best.Score >= s.MinScore {
		return best, nil
	}
	return ContentBlock{}, scoop.Errorf(scoop.ENOCONTENT, "best block scored %.2f, below minimum %.2f", blocks[0].Score, s.MinScore)
}

// collect numbers elements in document order and records qualifying
// paragraphs.
func (sc *scoring) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		sc.order[n] = len(sc.order)
		if paragraphTags[n.Data] || wrapperTags[n.Data] {
			text, linkText := inlineText(n)
			length := utf8.RuneCountInString(text)
			if length >= sc.s.MinParagraphLength &&
				float64(utf8.RuneCountInString(linkText)) <= sc.s.MaxLinkDensity*float64(length) {
				sc.paragraphs = append(sc.paragraphs, paragraph{
					node:  n,
					text:  text,
					score: paragraphScore(text, length),
				})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sc.collect(c)
	}
}

// paragraphScore rewards length and clause count.
func paragraphScore(text string, length int) float64 {
	score := 1 + min(float64(length)/100, 3)
	commas := strings.Count(text, ",") + strings.Count(text, "，")
	return score + float64(min(commas, 3))
}

// scoreContainers computes the own score of every element that directly
// holds a qualifying paragraph.
func (sc *scoring) scoreContainers() {
	sums := make(map[*html.Node]float64)
	var containers []*html.Node
	for _, p := range sc.paragraphs {
		parent := p.node.Parent
		if parent == nil || parent.Type != html.ElementNode {
			parent = p.node
		}
		if _, ok := sums[parent]; !ok {
			containers = append(containers, parent)
		}
		sums[parent] += p.score
	}

	for _, c := range containers {
		score := sums[c] * (0.5 + density(c))
		if sc.isContentContainer(c) {
			score *= sc.s.ContainerBonus
		}
		if sc.f.Flagged(c) {
			score *= sc.s.FlaggedPenalty
		}
		sc.own[c] = score
	}
}

func (sc *scoring) isContentContainer(n *html.Node) bool {
	return isArticleContainer(n) || sc.s.Vocabulary.Classify(attr(n, "class"), attr(n, "id")) == ClassContent
}

// propagate computes accumulated scores bottom-up: an element keeps its
// own score plus Decay times the accumulated score of each qualifying
// child. A child qualifies when it scores at least MinSiblingShare of its
// strongest sibling, so a lone strong block is not outvoted by many weak
// neighbours.
func (sc *scoring) propagate(n *html.Node) float64 {
	var totals []float64
	var strongest float64
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t := sc.propagate(c)
		if t <= 0 {
			continue
		}
		totals = append(totals, t)
		strongest = max(strongest, t)
	}

	var childTotal float64
	for _, t := range totals {
		if t >= sc.s.MinSiblingShare*strongest {
			childTotal += t
		}
	}
	total := sc.own[n] + sc.s.Decay*childTotal
	if total > 0 {
		sc.total[n] = total
	}
	return total
}

// paragraphsUnder returns the text of qualifying paragraphs at or below n
// in document order.
func (sc *scoring) paragraphsUnder(n *html.Node) []string {
	var out []string
	for _, p := range sc.paragraphs {
		if isWithin(p.node, n) {
			out = append(out, p.text)
		}
	}
	return out
}

func isWithin(n, ancestor *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// inlineText returns the normalized text of n excluding nested block
// elements, along with the part of it inside links.
func inlineText(n *html.Node) (text, linkText string) {
	var b, lb strings.Builder
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inLink bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
				if inLink {
					lb.WriteString(c.Data)
				}
			case html.ElementNode:
				if blockTags[c.Data] {
					b.WriteString(" ")
					continue
				}
				if c.Data == "br" {
					b.WriteString(" ")
					continue
				}
				walk(c, inLink || c.Data == "a")
			}
		}
	}
	walk(n, false)
	return normalizeSpace(b.String()), normalizeSpace(lb.String())
}

// density is the ratio of visible text to markup in n, scaled down by the
// share of link text.
func density(n *html.Node) float64 {
	text, links := visibleText(n)
	textLen := utf8.RuneCountInString(text)
	if textLen == 0 {
		return 0
	}
	var w countWriter
	if err := html.Render(&w, n); err != nil || w.n == 0 {
		return 0
	}
	d := min(float64(textLen)/float64(w.n), 1)
	linkDensity := float64(utf8.RuneCountInString(links)) / float64(textLen)
	return d * (1 - min(linkDensity, 1))
}

// visibleText returns all normalized text below n and the part inside
// links.
func visibleText(n *html.Node) (text, linkText string) {
	var b, lb strings.Builder
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inLink bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
				if inLink {
					lb.WriteString(c.Data)
				}
			case html.ElementNode:
				b.WriteString(" ")
				walk(c, inLink || c.Data == "a")
			}
		}
	}
	walk(n, false)
	return normalizeSpace(b.String()), normalizeSpace(lb.String())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// countWriter counts bytes written to it.
type countWriter struct {
	n int
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

var _ io.Writer = (*countWriter)(nil)
