// Package setutil provides a small set type for user ID collections.
package setutil

import "sort"

// StringSet is an unordered set of strings.
type StringSet struct {
	items map[string]struct{}
}

// NewStringSet creates a set holding the given values.
func NewStringSet(values ...string) *StringSet {
	s := &StringSet{items: make(map[string]struct{}, len(values))}
	s.AddAll(values)
	return s
}

// Add adds a value; empty strings are ignored.
func (s *StringSet) Add(v string) {
	if v == "" {
		return
	}
	s.items[v] = struct{}{}
}

// AddAll adds every value.
func (s *StringSet) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Remove deletes a value if present.
func (s *StringSet) Remove(v string) {
	delete(s.items, v)
}

// Contains reports whether v is in the set.
func (s *StringSet) Contains(v string) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of values.
func (s *StringSet) Len() int {
	return len(s.items)
}

// Sorted returns the values in ascending order.
func (s *StringSet) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
