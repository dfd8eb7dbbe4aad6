package layout

// Selector matches a single rule field against a slot index. A selector
// is a wildcard, a single index, or a set of indices.
type selectorKind uint8

const (
	selAny selectorKind = iota
	selExact
	selOneOf
)

// Selector is the tagged-variant form of one exception-rule field.
// The zero value is the wildcard.
type Selector struct {
	kind  selectorKind
	exact int
	set   map[int]struct{}
}

// Any returns a wildcard selector that matches every index.
func Any() Selector {
	return Selector{kind: selAny}
}

// Exact returns a selector matching a single index.
func Exact(i int) Selector {
	return Selector{kind: selExact, exact: i}
}

// OneOf returns a selector matching any of the given indices.
// An empty list behaves like the wildcard, mirroring how an absent
// configuration field is interpreted.
func OneOf(indices ...int) Selector {
	if len(indices) == 0 {
		return Any()
	}
	set := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		set[i] = struct{}{}
	}
	return Selector{kind: selOneOf, set: set}
}

// Matches reports whether the selector accepts the given index.
func (s Selector) Matches(v int) bool {
	switch s.kind {
	case selAny:
		return true
	case selExact:
		return v == s.exact
	case selOneOf:
		_, ok := s.set[v]
		return ok
	}
	return false
}

// IsAny reports whether the selector is the wildcard.
func (s Selector) IsAny() bool {
	return s.kind == selAny
}

// Values returns the indices the selector matches, in unspecified order.
// Nil for the wildcard.
func (s Selector) Values() []int {
	switch s.kind {
	case selExact:
		return []int{s.exact}
	case selOneOf:
		vals := make([]int, 0, len(s.set))
		for v := range s.set {
			vals = append(vals, v)
		}
		return vals
	}
	return nil
}
