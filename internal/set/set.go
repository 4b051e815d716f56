// Package set provides the small generic set type Action uses for its
// connected node names and a joining candidate uses for the elders it owes
// a proof resend.
package set

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
)

const minSetSize = 16

// Set is a set of comparable elements, backed by a map.
type Set[T comparable] map[T]struct{}

// Of returns a Set initialized with elts.
func Of[T comparable](elts ...T) Set[T] {
	s := New[T](len(elts))
	s.Add(elts...)
	return s
}

// New returns an empty set with initial capacity size.
func New[T comparable](size int) Set[T] {
	if size < 0 {
		return Set[T]{}
	}
	return make(map[T]struct{}, size)
}

func (s *Set[T]) resize(size int) {
	if *s == nil {
		if minSetSize > size {
			size = minSetSize
		}
		*s = make(map[T]struct{}, size)
	}
}

// Add inserts elts into the set; duplicates are no-ops.
func (s *Set[T]) Add(elts ...T) {
	s.resize(2 * len(elts))
	for _, elt := range elts {
		(*s)[elt] = struct{}{}
	}
}

// Remove deletes elts from the set.
func (s *Set[T]) Remove(elts ...T) {
	for _, elt := range elts {
		delete(*s, elt)
	}
}

// Contains reports whether elt is a member.
func (s Set[T]) Contains(elt T) bool {
	_, ok := s[elt]
	return ok
}

// Len returns the number of elements.
func (s Set[T]) Len() int { return len(s) }

// List returns the set's elements in unspecified order.
func (s Set[T]) List() []T { return maps.Keys(s) }

// Equals reports whether s and other hold the same elements.
func (s Set[T]) Equals(other Set[T]) bool { return maps.Equal(s, other) }

func (s Set[T]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for elt := range s {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%v", elt)
	}
	sb.WriteString("}")
	return sb.String()
}
