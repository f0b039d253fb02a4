package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/search"
	"gotest.tools/v3/assert"
)

func items(ids ...string) []model.MenuItem {
	out := make([]model.MenuItem, len(ids))
	for i, id := range ids {
		out[i] = model.MenuItem{ID: id, MenuID: "m" + id}
	}
	return out
}

func lastPage(ids ...string) []model.MenuItem {
	out := items(ids...)
	out[len(out)-1].Last = true
	return out
}

func TestFeed_Pagination(t *testing.T) {
	f := search.NewFeed(search.ModeKeyword, "keyword=pizza")

	req, ok := f.Start()
	assert.Assert(t, ok)
	assert.Equal(t, req.Cursor, search.FirstCursor)
	assert.Check(t, f.Loading())

	_, ok = f.Start()
	assert.Check(t, !ok, "first page must not be requested twice")

	assert.Check(t, f.Resolve(search.Page{Request: req, Items: items("1", "2", "3")}))
	assert.Check(t, f.Loaded())
	assert.Check(t, !f.Loading())

	next, ok := f.LastVisible()
	assert.Assert(t, ok)
	assert.Equal(t, next.Cursor, "3")
	assert.Equal(t, next.Query, "keyword=pizza")

	// still pending: repeated visibility does not duplicate the request
	_, ok = f.LastVisible()
	assert.Check(t, !ok)

	assert.Check(t, f.Resolve(search.Page{Request: next, Items: lastPage("4", "5")}))
	assert.Equal(t, f.Len(), 5)
	assert.Check(t, f.Done())

	_, ok = f.LastVisible()
	assert.Check(t, !ok, "no request after last")
}

func TestFeed_EmptyFirstPage(t *testing.T) {
	f := search.NewFeed(search.ModeFilter, "flavor=1&keyword=x")
	req, _ := f.Start()
	f.Resolve(search.Page{Request: req})

	assert.Check(t, f.Loaded())
	assert.Check(t, !f.Done())
	_, ok := f.LastVisible()
	assert.Check(t, !ok)
}

func TestFeed_EmptyFollowUpPageDoesNotLoop(t *testing.T) {
	f := search.NewFeed(search.ModeKeyword, "keyword=pizza")
	req, _ := f.Start()
	f.Resolve(search.Page{Request: req, Items: items("1")})

	next, ok := f.LastVisible()
	assert.Assert(t, ok)
	f.Resolve(search.Page{Request: next})

	_, ok = f.LastVisible()
	assert.Check(t, !ok)
}

func TestFeed_DropsStalePages(t *testing.T) {
	f := search.NewFeed(search.ModeFilter, "flavor=1&keyword=pizza")
	req, _ := f.Start()

	stale := search.Page{
		Request: search.Request{Mode: search.ModeKeyword, Query: "keyword=pizza", Cursor: search.FirstCursor},
		Items:   items("9"),
	}
	assert.Check(t, !f.Resolve(stale))

	unrequested := search.Page{Request: search.Request{Mode: req.Mode, Query: req.Query, Cursor: "42"}}
	assert.Check(t, !f.Resolve(unrequested))

	assert.Equal(t, f.Len(), 0)
	assert.Check(t, f.Loading())
}

func TestFeed_ErrorAllowsLaterRequest(t *testing.T) {
	f := search.NewFeed(search.ModeKeyword, "keyword=pizza")
	req, _ := f.Start()
	f.Resolve(search.Page{Request: req, Items: items("1")})

	next, _ := f.LastVisible()
	boom := errors.New("boom")
	assert.Check(t, f.Resolve(search.Page{Request: next, Err: boom}))
	assert.Check(t, errors.Is(f.Err(), boom))

	again, ok := f.LastVisible()
	assert.Assert(t, ok)
	assert.Equal(t, again.Cursor, "1")
}

type fakeFetcher struct {
	keywordCalls []string
	filterCalls  []string
}

func (f *fakeFetcher) SearchByKeyword(_ context.Context, qs, cursor string) ([]model.MenuItem, error) {
	f.keywordCalls = append(f.keywordCalls, qs+"#"+cursor)
	return items("1"), nil
}

func (f *fakeFetcher) SearchByFilter(_ context.Context, qs, cursor string) ([]model.MenuItem, error) {
	f.filterCalls = append(f.filterCalls, qs+"#"+cursor)
	return lastPage("2"), nil
}

func TestRun_SelectsEndpointByMode(t *testing.T) {
	ff := &fakeFetcher{}

	p := search.Run(context.Background(), ff, search.Request{Mode: search.ModeKeyword, Query: "keyword=a", Cursor: "0"})
	assert.NilError(t, p.Err)
	assert.Equal(t, p.Items[0].ID, "1")

	p = search.Run(context.Background(), ff, search.Request{Mode: search.ModeFilter, Query: "flavor=1&keyword=a", Cursor: "7"})
	assert.Check(t, p.Items[0].Last)

	assert.DeepEqual(t, ff.keywordCalls, []string{"keyword=a#0"})
	assert.DeepEqual(t, ff.filterCalls, []string{"flavor=1&keyword=a#7"})
}
