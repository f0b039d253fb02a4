package search_test

import (
	"testing"

	"github.com/nikbrunner/mev/internal/nav"
	"github.com/nikbrunner/mev/internal/query"
	"github.com/nikbrunner/mev/internal/search"
	"gotest.tools/v3/assert"
)

func newSync(raw string) (*nav.Router, *search.Synchronizer) {
	r := nav.NewRouter(query.Parse(raw))
	return r, search.NewSynchronizer(r)
}

func TestSynchronizer_DraftFromLocation(t *testing.T) {
	_, s := newSync("keyword=pizza&flavor=sweet")

	d := s.Draft()
	assert.Equal(t, d.Keyword(), "pizza")
	assert.Equal(t, d.Get("flavor").Kind(), query.Single)
	assert.Check(t, s.Selected("flavor", "sweet"))
	assert.Check(t, !s.Dirty())
}

func TestSynchronizer_ToggleDoesNotTouchLocation(t *testing.T) {
	r, s := newSync("keyword=pizza")
	v := r.Version()

	s.Toggle("flavor", "sweet")
	s.Toggle("flavor", "spicy")

	assert.Equal(t, r.Version(), v)
	assert.Equal(t, r.Current().Encode(), "keyword=pizza")
	assert.Check(t, s.Dirty())
	assert.Check(t, !s.IsFilterMode())
	assert.DeepEqual(t, s.Draft().Get("flavor").Values(), []string{"sweet", "spicy"})
}

func TestSynchronizer_ApplyReplaces(t *testing.T) {
	r, s := newSync("keyword=pizza")

	s.Toggle("flavor", "1")
	s.Apply()

	assert.Equal(t, r.Len(), 1, "apply must not add a history entry")
	assert.Equal(t, r.Current().Encode(), "flavor=1&keyword=pizza")
	assert.Check(t, s.IsFilterMode())
	assert.Equal(t, s.Mode(), search.ModeFilter)
	assert.Check(t, !s.Dirty())
}

func TestSynchronizer_Reset(t *testing.T) {
	r, s := newSync("keyword=pizza&flavor=1&flavor=2&price=3")
	assert.Check(t, s.IsFilterMode())

	s.Toggle("portion", "1")
	s.Reset()

	assert.Equal(t, r.Len(), 1)
	assert.DeepEqual(t, r.Current().Keys(), []string{"keyword"})
	assert.Equal(t, r.Current().Keyword(), "pizza")
	assert.DeepEqual(t, s.Draft().Keys(), []string{"keyword"})
	assert.Equal(t, s.Mode(), search.ModeKeyword)
}

func TestSynchronizer_SyncDiscardsDraft(t *testing.T) {
	r, s := newSync("keyword=pizza")
	r.Push(query.Parse("keyword=ramen&spiciness=4"))
	s.Sync()

	s.Toggle("flavor", "1")
	assert.Check(t, s.Dirty())

	// browser-style back navigation
	assert.Check(t, r.Back())
	s.Sync()

	assert.Check(t, !s.Dirty())
	assert.DeepEqual(t, s.Draft().Keys(), []string{"keyword"})
	assert.Equal(t, s.Keyword(), "pizza")
}

func TestSynchronizer_IsFilterModeCountsKeys(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"keyword=pizza", false},
		{"", false},
		{"keyword=pizza&flavor=1", true},
		{"keyword=pizza&flavor=1&flavor=2", true},
		{"flavor=1", false},
		{"flavor=1&price=2", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, s := newSync(tt.raw)
			assert.Equal(t, s.IsFilterMode(), tt.want)
		})
	}
}

func TestSynchronizer_QueryString(t *testing.T) {
	_, s := newSync("price=2&keyword=pizza")
	assert.Equal(t, s.QueryString(), "keyword=pizza&price=2")
}
