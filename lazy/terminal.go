package lazy

import (
	"iter"

	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/slices"
)

// The operations in this file are eager: they traverse the sequence when called.
// Calling them on an infinite sequence will not return, unless they are able to
// stop early.

// ForEach calls f for every element of s.
func (s Seq[T]) ForEach(f func(T)) {
	it := s.Iterator()
	defer it.Stop()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		f(v)
	}
}

// Some returns true if p is true for at least one element of s. It stops pulling
// elements as soon as p is true.
func (s Seq[T]) Some(p func(T) bool) bool {
	_, found := s.Find(p)
	return found
}

// Every returns true if p is true for all the elements of s. It stops pulling
// elements as soon as p is false.
func (s Seq[T]) Every(p func(T) bool) bool {
	_, found := s.Find(func(v T) bool { return !p(v) })
	return !found
}

// Find returns the first element of s for which p is true. It stops pulling
// elements as soon as p is true.
func (s Seq[T]) Find(p func(T) bool) (T, bool) {
	it := s.Iterator()
	defer it.Stop()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		if p(v) {
			return v, true
		}
	}
	return exhausted[T]()
}

// Count returns the number of elements of s.
func (s Seq[T]) Count() int {
	n := 0
	s.ForEach(func(T) { n++ })
	return n
}

// Reduce folds the elements of s into an accumulator, starting with init.
func Reduce[T, A any](s Seq[T], f func(A, T) A, init A) A {
	acc := init
	s.ForEach(func(v T) { acc = f(acc, v) })
	return acc
}

// Slice collects the elements of s into a new slice.
func (s Seq[T]) Slice() []T {
	var values []T
	s.ForEach(func(v T) { values = append(values, v) })
	return values
}

// Materialize pulls all the elements of s and returns a sequence over the fixed
// copy. Traversals of the result never call the transformations upstream of s again.
func (s Seq[T]) Materialize() Seq[T] {
	values := s.Slice()
	tracer().Debugf("materialized sequence of %d elements", len(values))
	return FromSlice(values)
}

// All returns a Go iterator over s, to be used with range:
//
//	for v := range seq.All() { … }
//
// Breaking out of the loop stops the traversal.
func (s Seq[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.Iterator()
		defer it.Stop()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Sorted pulls all the elements of s and returns a materialized sequence of them,
// stably sorted with comparator cmp (see package github.com/emirpasic/gods/utils for
// predefined comparators, e.g. utils.IntComparator).
func (s Seq[T]) Sorted(cmp utils.Comparator) Seq[T] {
	return SortedFunc(s, func(a, b T) int { return cmp(a, b) })
}

// SortedFunc pulls all the elements of s and returns a materialized sequence of
// them, stably sorted by cmp. cmp(a, b) returns a negative number if a < b, a
// positive number if a > b and 0 if a and b are equivalent.
func SortedFunc[T any](s Seq[T], cmp func(a, b T) int) Seq[T] {
	values := s.Slice()
	slices.SortStableFunc(values, cmp)
	return FromSlice(values)
}
