package search

import "github.com/nikbrunner/mev/internal/query"

// Mode selects which search endpoint serves the current location.
type Mode int

const (
	ModeKeyword Mode = iota // only the keyword is set
	ModeFilter              // at least one facet is set
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFilter {
		return "filter"
	}
	return "keyword"
}

// Location is where the committed filter state lives.
type Location interface {
	Current() query.Query
	Replace(q query.Query)
}

// Synchronizer holds the draft filter selection and keeps it consistent with
// the location. Toggles only touch the draft; Apply and Reset write the
// location.
type Synchronizer struct {
	loc   Location
	draft query.Query
}

// NewSynchronizer creates a Synchronizer with the draft read from loc.
func NewSynchronizer(loc Location) *Synchronizer {
	s := &Synchronizer{loc: loc}
	s.Sync()
	return s
}

// Draft returns a copy of the uncommitted selection.
func (s *Synchronizer) Draft() query.Query {
	return s.draft.Clone()
}

// Toggle flips value for facetKey in the draft.
func (s *Synchronizer) Toggle(facetKey, value string) {
	s.draft.Toggle(facetKey, value)
}

// Selected reports whether value is selected for facetKey in the draft.
func (s *Synchronizer) Selected(facetKey, value string) bool {
	return s.draft.Get(facetKey).Contains(value)
}

// Dirty reports whether the draft differs from the location.
func (s *Synchronizer) Dirty() bool {
	return !s.draft.Equal(s.loc.Current())
}

// Apply commits the draft to the location, replacing the current entry.
func (s *Synchronizer) Apply() {
	s.loc.Replace(s.draft)
}

// Reset replaces the location with the keyword alone and resets the draft.
func (s *Synchronizer) Reset() {
	q := query.ForKeyword(s.loc.Current().Keyword())
	s.loc.Replace(q)
	s.draft = q
}

// Sync discards the draft and re-reads it from the location. Call it after
// every navigation that did not originate from Apply or Reset.
func (s *Synchronizer) Sync() {
	s.draft = s.loc.Current()
}

// IsFilterMode reports whether the location holds more than the keyword.
func (s *Synchronizer) IsFilterMode() bool {
	return s.loc.Current().Len() > 1
}

// Mode returns the search mode of the location.
func (s *Synchronizer) Mode() Mode {
	if s.IsFilterMode() {
		return ModeFilter
	}
	return ModeKeyword
}

// QueryString returns the encoded location query.
func (s *Synchronizer) QueryString() string {
	return s.loc.Current().Encode()
}

// Keyword returns the keyword of the location.
func (s *Synchronizer) Keyword() string {
	return s.loc.Current().Keyword()
}
