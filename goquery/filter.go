package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// removedTags are dropped from the tree regardless of attributes.
var removedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"canvas":   true,
	"form":     true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"nav":      true,
	"footer":   true,
	"aside":    true,
	"dialog":   true,
	"link":     true,
	"meta":     true,
}

// Filter prunes boilerplate from a document before scoring.
type Filter struct {
	Vocabulary Vocabulary
}

// NewFilter returns a Filter using DefaultVocabulary.
func NewFilter() *Filter {
	return &Filter{Vocabulary: DefaultVocabulary()}
}

// Filtered is a pruned copy of a document. Elements that matched the
// boilerplate vocabulary but wrap article markup are kept and flagged.
type Filtered struct {
	Doc     *goquery.Document
	flagged map[*html.Node]bool
}

// Flagged reports whether n or one of its ancestors was flagged as
// boilerplate-adjacent.
func (f *Filtered) Flagged(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if f.flagged[n] {
			return true
		}
	}
	return false
}

// Apply returns a pruned copy of doc. The original document is not
// modified.
func (f *Filter) Apply(doc *goquery.Document) *Filtered {
	out := &Filtered{flagged: make(map[*html.Node]bool)}
	if len(doc.Nodes) == 0 {
		out.Doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
		return out
	}

	root := doc.Selection.Clone().Nodes[0]
	f.prune(root, out.flagged)
	out.Doc = goquery.NewDocumentFromNode(root)
	return out
}

func (f *Filter) prune(n *html.Node, flagged map[*html.Node]bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)
		case html.ElementNode:
			if f.remove(c, flagged) {
				n.RemoveChild(c)
			} else {
				f.prune(c, flagged)
			}
		}
		c = next
	}
}

// remove decides whether element n is dropped. It flags boilerplate
// elements that wrap article markup instead of dropping them.
func (f *Filter) remove(n *html.Node, flagged map[*html.Node]bool) bool {
	if removedTags[n.Data] || isHidden(n) {
		return true
	}
	if n.Data == "html" || n.Data == "body" {
		return false
	}

	content, boilerplate := f.Vocabulary.signals(attr(n, "class"), attr(n, "id"))
	if !boilerplate {
		return false
	}
	if (isArticleContainer(n) && content) || containsArticle(n) {
		flagged[n] = true
		return false
	}
	return true
}

// isArticleContainer reports whether n is conventional article body markup.
func isArticleContainer(n *html.Node) bool {
	return n.Data == "article" || n.Data == "main" || attr(n, "itemprop") == "articleBody"
}

func containsArticle(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if isArticleContainer(c) || containsArticle(c) {
			return true
		}
	}
	return false
}

func isHidden(n *html.Node) bool {
	if _, ok := attrOK(n, "hidden"); ok {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(attr(n, "style")), " ", "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
