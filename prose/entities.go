package prose

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/jdkato/prose/v2"
)

var _ scoop.Strategy[scoop.Entities] = (*Entities)(nil)

// Entities recognizes people, organizations and places.
type Entities struct {
	Model *Model

	// MaxPerCategory caps the names kept per category.
	MaxPerCategory int
}

// Name returns "prose".
func (e *Entities) Name() string { return Name }

// Attempt recognizes the entities of in.Title and in.Text.
func (e *Entities) Attempt(ctx context.Context, in scoop.StageInput) (scoop.Entities, error) {
	if e.Model == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "prose model not configured")
	}
	doc, err := e.Model.document(joinInput(in))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GroupEntities(doc.Entities(), e.MaxPerCategory), nil
}

// categoryOrder fixes the position of well-known categories.
var categoryOrder = map[string]int{
	scoop.EntityPerson:       0,
	scoop.EntityOrganization: 1,
	scoop.EntityLocation:     2,
}

// Category maps a prose entity label to an entity category.
func Category(label string) string {
	switch strings.ToUpper(label) {
	case "PERSON", "PER":
		return scoop.EntityPerson
	case "ORG", "ORGANIZATION":
		return scoop.EntityOrganization
	case "GPE", "LOC", "LOCATION":
		return scoop.EntityLocation
	}
	return strings.ToLower(label)
}

// GroupEntities groups entity names by category, keeping first-seen order
// and at most max names per category. Person, organization and location
// come first; other categories follow alphabetically.
func GroupEntities(ents []prose.Entity, max int) scoop.Entities {
	groups := map[string]*scoop.EntityGroup{}
	seen := map[string]bool{}
	for _, ent := range ents {
		name := strings.Join(strings.Fields(ent.Text), " ")
		cat := Category(ent.Label)
		if name == "" || cat == "" {
			continue
		}
		key := cat + "\x00" + strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		g, ok := groups[cat]
		if !ok {
			g = &scoop.EntityGroup{Category: cat}
			groups[cat] = g
		}
		if max > 0 && len(g.Names) >= max {
			continue
		}
		g.Names = append(g.Names, name)
	}

	out := make(scoop.Entities, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := categoryOrder[out[i].Category]
		oj, jok := categoryOrder[out[j].Category]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func joinInput(in scoop.StageInput) string {
	if in.Title == "" {
		return in.Text
	}
	if in.Text == "" {
		return in.Title
	}
	return in.Title + ". " + in.Text
}
