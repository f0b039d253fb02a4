package tui

import (
	"strings"

	"github.com/nikbrunner/mev/internal/model"
)

// FacetRow is one selectable option in the facet pane.
type FacetRow struct {
	Facet  model.Facet
	Option model.FacetOption
}

// First reports whether the row opens a new facet group.
func (r FacetRow) First() bool {
	return len(r.Facet.Options) > 0 && r.Facet.Options[0].ID == r.Option.ID
}

// facetRows flattens the catalog into rows in display order.
func facetRows() []FacetRow {
	var rows []FacetRow
	for _, f := range model.Facets() {
		for _, o := range f.Options {
			rows = append(rows, FacetRow{Facet: f, Option: o})
		}
	}
	return rows
}

// describeFacets renders the evaluated facet values of a result, e.g.
// "맛 짭짤해요 · 맵기 매워요", in catalog order.
func describeFacets(item model.MenuItem) string {
	var parts []string
	for _, f := range model.Facets() {
		id, ok := item.Facets[f.Key]
		if !ok {
			continue
		}
		label := id
		if o, ok := f.Option(id); ok {
			label = o.Label
		}
		parts = append(parts, f.Label+" "+label)
	}
	return strings.Join(parts, " · ")
}
