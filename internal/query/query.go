package query

import (
	"net/url"
	"sort"
	"strings"
)

// KeywordKey is the parameter carrying the free-text search keyword.
const KeywordKey = "keyword"

// Query is an ordered mapping from parameter name to Value.
// The zero value is an empty query ready to use.
type Query struct {
	keys   []string
	values map[string]Value
}

// New returns an empty Query.
func New() Query {
	return Query{}
}

// ForKeyword returns a query holding only the keyword parameter.
func ForKeyword(keyword string) Query {
	var q Query
	q.Set(KeywordKey, SingleValue(keyword))
	return q
}

// Parse reads a raw query string such as "?keyword=pizza&flavor=1&flavor=2".
// Keys seen once parse as Single; repeated keys become Multiple in
// first-seen order. Undecodable pairs are kept verbatim.
func Parse(raw string) Query {
	var q Query
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return q
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key := unescape(k)
		if key == "" {
			continue
		}
		val := unescape(v)

		existing, ok := q.Lookup(key)
		switch {
		case !ok:
			q.Set(key, SingleValue(val))
		case existing.Contains(val):
			// ordered set: duplicates collapse
		default:
			q.Set(key, existing.with(val))
		}
	}
	return q
}

func unescape(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// Encode serializes the query with keys in ascending order.
// A Multiple with one element encodes exactly like a Single.
func (q Query) Encode() string {
	keys := q.Keys()
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range q.values[k].values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (q Query) String() string {
	return q.Encode()
}

// Len returns the number of keys.
func (q Query) Len() int {
	return len(q.keys)
}

// Keys returns the keys in insertion order.
func (q Query) Keys() []string {
	out := make([]string, len(q.keys))
	copy(out, q.keys)
	return out
}

// Lookup returns the value stored under key.
func (q Query) Lookup(key string) (Value, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Get returns the value stored under key, or Empty.
func (q Query) Get(key string) Value {
	return q.values[key]
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

// Keyword returns the keyword parameter.
func (q Query) Keyword() string {
	return q.Get(KeywordKey).Scalar()
}

// Set stores v under key. An empty v deletes the key, so a present key
// always holds at least one value.
func (q *Query) Set(key string, v Value) {
	if v.IsEmpty() {
		q.Delete(key)
		return
	}
	if q.values == nil {
		q.values = make(map[string]Value)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = v
}

// Delete removes key.
func (q *Query) Delete(key string) {
	if _, ok := q.values[key]; !ok {
		return
	}
	delete(q.values, key)
	for i, k := range q.keys {
		if k == key {
			q.keys = append(q.keys[:i:i], q.keys[i+1:]...)
			break
		}
	}
}

// Clone returns an independent copy.
func (q Query) Clone() Query {
	var out Query
	for _, k := range q.keys {
		v := q.values[k]
		out.Set(k, Value{kind: v.kind, values: v.Values()})
	}
	return out
}

// Equal reports whether both queries hold the same keys and values,
// regardless of key order.
func (q Query) Equal(o Query) bool {
	if q.Len() != o.Len() {
		return false
	}
	for k, v := range q.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Toggle flips value for key following the draft rules:
//   - absent: becomes a one-element set
//   - set: value is removed if present (the key goes when the set empties),
//     appended otherwise
//   - single: removed if equal, otherwise promoted to {single, value}
func (q *Query) Toggle(key, value string) {
	cur, ok := q.Lookup(key)
	if !ok {
		q.Set(key, MultiValue(value))
		return
	}

	switch cur.Kind() {
	case Multiple:
		if cur.Contains(value) {
			q.Set(key, cur.without(value))
		} else {
			q.Set(key, cur.with(value))
		}
	case Single:
		if cur.Scalar() == value {
			q.Delete(key)
		} else {
			q.Set(key, MultiValue(cur.Scalar(), value))
		}
	default:
		q.Set(key, MultiValue(value))
	}
}
