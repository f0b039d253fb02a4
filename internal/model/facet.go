package model

// FacetOption is one selectable value of a facet.
type FacetOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Facet is a named filter dimension with a fixed set of options.
type Facet struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Options []FacetOption `json:"options"`
}

// Option finds the option with the given ID.
func (f Facet) Option(id string) (FacetOption, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return FacetOption{}, false
}

// facets is the evaluation catalog. Keys are the query parameter names,
// option IDs are the values sent to the backend.
var facets = []Facet{
	{
		Key:   "flavor",
		Label: "맛",
		Options: []FacetOption{
			{ID: "1", Label: "달콤해요"},
			{ID: "2", Label: "짭짤해요"},
			{ID: "3", Label: "고소해요"},
			{ID: "4", Label: "새콤해요"},
			{ID: "5", Label: "담백해요"},
		},
	},
	{
		Key:   "spiciness",
		Label: "맵기",
		Options: []FacetOption{
			{ID: "1", Label: "안 매워요"},
			{ID: "2", Label: "살짝 매워요"},
			{ID: "3", Label: "매워요"},
			{ID: "4", Label: "아주 매워요"},
		},
	},
	{
		Key:   "portion",
		Label: "양",
		Options: []FacetOption{
			{ID: "1", Label: "적어요"},
			{ID: "2", Label: "적당해요"},
			{ID: "3", Label: "많아요"},
		},
	},
	{
		Key:   "price",
		Label: "가격",
		Options: []FacetOption{
			{ID: "1", Label: "저렴해요"},
			{ID: "2", Label: "적당해요"},
			{ID: "3", Label: "비싸요"},
		},
	},
}

// Facets returns the evaluation facets in display order.
func Facets() []Facet {
	out := make([]Facet, len(facets))
	copy(out, facets)
	return out
}

// FacetByKey looks up a facet by its query key.
func FacetByKey(key string) (Facet, bool) {
	for _, f := range facets {
		if f.Key == key {
			return f, true
		}
	}
	return Facet{}, false
}
