package catalog

import "sort"

// Names is a set of fully qualified class names.
type Names map[string]struct{}

// NewNames returns a set holding names.
func NewNames(names ...string) Names {
	n := make(Names, len(names))
	n.Add(names...)
	return n
}

// Add inserts names; duplicates are ignored.
func (n Names) Add(names ...string) {
	for _, name := range names {
		n[name] = struct{}{}
	}
}

// Has reports membership.
func (n Names) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Len returns the number of names.
func (n Names) Len() int {
	return len(n)
}

// Union returns a new set with the names of both sets.
func (n Names) Union(other Names) Names {
	out := make(Names, len(n)+len(other))
	for name := range n {
		out[name] = struct{}{}
	}
	for name := range other {
		out[name] = struct{}{}
	}
	return out
}

// Sorted returns the names in lexical order.
func (n Names) Sorted() []string {
	out := make([]string, 0, len(n))
	for name := range n {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
