package search

import (
	"context"

	"github.com/nikbrunner/mev/internal/model"
)

// FirstCursor requests the first page.
const FirstCursor = "0"

// Fetcher loads one page of results for an encoded query and cursor.
type Fetcher interface {
	SearchByKeyword(ctx context.Context, qs, cursor string) ([]model.MenuItem, error)
	SearchByFilter(ctx context.Context, qs, cursor string) ([]model.MenuItem, error)
}

// Request identifies one page load.
type Request struct {
	Mode   Mode
	Query  string
	Cursor string
}

// Page is the outcome of a Request.
type Page struct {
	Request
	Items []model.MenuItem
	Err   error
}

// Run performs req against f using the endpoint of req.Mode.
func Run(ctx context.Context, f Fetcher, req Request) Page {
	var (
		items []model.MenuItem
		err   error
	)
	if req.Mode == ModeFilter {
		items, err = f.SearchByFilter(ctx, req.Query, req.Cursor)
	} else {
		items, err = f.SearchByKeyword(ctx, req.Query, req.Cursor)
	}
	return Page{Request: req, Items: items, Err: err}
}

// Feed accumulates the pages of one query. It decides when another page is
// due and with which cursor; loading is left to the caller.
type Feed struct {
	mode    Mode
	query   string
	items   []model.MenuItem
	pending map[string]bool
	loaded  map[string]bool
	err     error
}

// NewFeed creates an empty feed for an encoded query.
func NewFeed(mode Mode, qs string) *Feed {
	return &Feed{
		mode:    mode,
		query:   qs,
		pending: make(map[string]bool),
		loaded:  make(map[string]bool),
	}
}

// Mode returns the endpoint the feed reads from.
func (f *Feed) Mode() Mode {
	return f.mode
}

// Query returns the encoded query the feed belongs to.
func (f *Feed) Query() string {
	return f.query
}

// Items returns the accumulated results.
func (f *Feed) Items() []model.MenuItem {
	return f.items
}

// Len returns the number of accumulated results.
func (f *Feed) Len() int {
	return len(f.items)
}

// Err returns the error of the most recent failed page.
func (f *Feed) Err() error {
	return f.err
}

// Loading reports whether any page request is outstanding.
func (f *Feed) Loading() bool {
	return len(f.pending) > 0
}

// Loaded reports whether the first page has arrived.
func (f *Feed) Loaded() bool {
	return f.loaded[FirstCursor]
}

// Done reports whether the backend has marked the end of the results.
func (f *Feed) Done() bool {
	n := len(f.items)
	return n > 0 && f.items[n-1].Last
}

// Start returns the request for the first page, once.
func (f *Feed) Start() (Request, bool) {
	return f.request(FirstCursor)
}

// LastVisible is called when the last rendered item comes into view. It
// returns the next page request, or false when the feed is finished, empty,
// or that page is already requested.
func (f *Feed) LastVisible() (Request, bool) {
	n := len(f.items)
	if n == 0 {
		return Request{}, false
	}
	last := f.items[n-1]
	if last.Last {
		return Request{}, false
	}
	return f.request(last.ID)
}

func (f *Feed) request(cursor string) (Request, bool) {
	if f.pending[cursor] || f.loaded[cursor] {
		return Request{}, false
	}
	f.pending[cursor] = true
	return Request{Mode: f.mode, Query: f.query, Cursor: cursor}, true
}

// Resolve merges a page into the feed. It returns false and changes nothing
// when the page belongs to another query or was never requested.
func (f *Feed) Resolve(p Page) bool {
	if p.Mode != f.mode || p.Query != f.query || !f.pending[p.Cursor] {
		return false
	}
	delete(f.pending, p.Cursor)

	if p.Err != nil {
		f.err = p.Err
		return true
	}

	f.err = nil
	f.loaded[p.Cursor] = true
	f.items = append(f.items, p.Items...)
	return true
}
