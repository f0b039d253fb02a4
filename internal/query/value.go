package query

// Kind distinguishes the shapes a query parameter can take.
type Kind int

const (
	Empty    Kind = iota // key absent or without values
	Single               // exactly one value, serialized without repetition
	Multiple             // ordered set of values
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	default:
		return "empty"
	}
}

// Value is the value of one query parameter.
//
// A parameter that appears once in a query string parses as Single, even when
// it was produced from a one-element set. Toggling logic has to treat both
// shapes, so the shape is kept explicit instead of being inferred.
type Value struct {
	kind   Kind
	values []string
}

// SingleValue returns a Single value.
func SingleValue(v string) Value {
	return Value{kind: Single, values: []string{v}}
}

// MultiValue returns a Multiple value holding vs in order, duplicates dropped.
// With no values it returns the Empty value.
func MultiValue(vs ...string) Value {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if !containsString(out, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return Value{}
	}
	return Value{kind: Multiple, values: out}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the value holds nothing.
func (v Value) IsEmpty() bool {
	return v.kind == Empty || len(v.values) == 0
}

// Scalar returns the value of a Single, or the first element of a Multiple.
func (v Value) Scalar() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Values returns a copy of all values in order.
func (v Value) Values() []string {
	if len(v.values) == 0 {
		return nil
	}
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// Len returns the number of values.
func (v Value) Len() int {
	return len(v.values)
}

// Contains reports whether s is one of the values.
func (v Value) Contains(s string) bool {
	return containsString(v.values, s)
}

// Equal reports whether both values have the same shape and elements.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || len(v.values) != len(o.values) {
		return false
	}
	for i := range v.values {
		if v.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// with returns a Multiple value with s appended.
func (v Value) with(s string) Value {
	return MultiValue(append(v.Values(), s)...)
}

// without returns a Multiple value with s removed. It is Empty when nothing
// remains.
func (v Value) without(s string) Value {
	rest := make([]string, 0, len(v.values))
	for _, x := range v.values {
		if x != s {
			rest = append(rest, x)
		}
	}
	return MultiValue(rest...)
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
