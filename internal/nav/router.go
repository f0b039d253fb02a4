package nav

import "github.com/nikbrunner/mev/internal/query"

// Router keeps the location history of the search view. Each entry is the
// query of one location; the current entry is what the results are keyed by.
type Router struct {
	entries []query.Query
	index   int
	version uint64
}

// NewRouter creates a Router whose only entry is initial.
func NewRouter(initial query.Query) *Router {
	return &Router{
		entries: []query.Query{initial.Clone()},
	}
}

// Current returns a copy of the current location query.
func (r *Router) Current() query.Query {
	return r.entries[r.index].Clone()
}

// Version changes on every navigation, including replaces.
func (r *Router) Version() uint64 {
	return r.version
}

// Len returns the number of history entries.
func (r *Router) Len() int {
	return len(r.entries)
}

// Index returns the position of the current entry.
func (r *Router) Index() int {
	return r.index
}

// Push adds a new entry after the current one, dropping any forward history.
func (r *Router) Push(q query.Query) {
	r.entries = append(r.entries[:r.index+1], q.Clone())
	r.index = len(r.entries) - 1
	r.version++
}

// Replace overwrites the current entry without adding history.
func (r *Router) Replace(q query.Query) {
	r.entries[r.index] = q.Clone()
	r.version++
}

// CanBack reports whether Back would move.
func (r *Router) CanBack() bool {
	return r.index > 0
}

// CanForward reports whether Forward would move.
func (r *Router) CanForward() bool {
	return r.index < len(r.entries)-1
}

// Back moves to the previous entry. Returns false at the first entry.
func (r *Router) Back() bool {
	if !r.CanBack() {
		return false
	}
	r.index--
	r.version++
	return true
}

// Forward moves to the next entry. Returns false at the last entry.
func (r *Router) Forward() bool {
	if !r.CanForward() {
		return false
	}
	r.index++
	r.version++
	return true
}
