package lazy

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Map creates a sequence of f applied to every element of s.
func Map[T, U any](s Seq[T], f func(T) U) Seq[U] {
	return Seq[U]{start: func() Iterator[U] {
		up := s.Iterator()
		return &funcIterator[U]{
			next: func() (U, bool) {
				v, ok := up.Next()
				if !ok {
					return exhausted[U]()
				}
				return f(v), true
			},
			stop: up.Stop,
		}
	}}
}

// Filter creates a sequence of the elements of s for which p is true.
func (s Seq[T]) Filter(p func(T) bool) Seq[T] {
	return Seq[T]{start: func() Iterator[T] {
		up := s.Iterator()
		return &funcIterator[T]{
			next: func() (T, bool) {
				for v, ok := up.Next(); ok; v, ok = up.Next() {
					if p(v) {
						return v, true
					}
				}
				return exhausted[T]()
			},
			stop: up.Stop,
		}
	}}
}

// FlatMap maps every element of s to a sequence and concatenates the results.
// Each inner sequence is exhausted before the next element of s is pulled.
func FlatMap[T, U any](s Seq[T], f func(T) Seq[U]) Seq[U] {
	return Seq[U]{start: func() Iterator[U] {
		outer := s.Iterator()
		var inner Iterator[U]
		return &funcIterator[U]{
			next: func() (U, bool) {
				for {
					if inner != nil {
						if v, ok := inner.Next(); ok {
							return v, true
						}
						inner = nil
					}
					x, ok := outer.Next()
					if !ok {
						return exhausted[U]()
					}
					inner = f(x).Iterator()
				}
			},
			stop: func() {
				if inner != nil {
					inner.Stop()
				}
				outer.Stop()
			},
		}
	}}
}

// Take creates a sequence of at most the first n elements of s. s is stopped as
// soon as n elements have been pulled. For n ≤ 0, s is never started.
func (s Seq[T]) Take(n int) Seq[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return Seq[T]{start: func() Iterator[T] {
		up := s.Iterator()
		taken := 0
		return &funcIterator[T]{
			next: func() (T, bool) {
				if taken >= n {
					return exhausted[T]()
				}
				v, ok := up.Next()
				if !ok {
					taken = n
					return v, false
				}
				if taken++; taken == n {
					up.Stop()
				}
				return v, true
			},
			stop: up.Stop,
		}
	}}
}

// Skip creates a sequence of the elements of s without the first n ones. The
// skipped elements are pulled from s (and dropped) when the first element is
// requested.
func (s Seq[T]) Skip(n int) Seq[T] {
	return Seq[T]{start: func() Iterator[T] {
		up := s.Iterator()
		skipped := n <= 0
		return &funcIterator[T]{
			next: func() (T, bool) {
				if !skipped {
					skipped = true
					for i := 0; i < n; i++ {
						if _, ok := up.Next(); !ok {
							return exhausted[T]()
						}
					}
				}
				return up.Next()
			},
			stop: up.Stop,
		}
	}}
}

// Distinct creates a sequence of the elements of s, dropping repeated elements.
func Distinct[T comparable](s Seq[T]) Seq[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy creates a sequence of the elements of s, dropping every element with a
// key which has been seen before. Keys are remembered per traversal.
func DistinctBy[T any, K comparable](s Seq[T], key func(T) K) Seq[T] {
	return Seq[T]{start: func() Iterator[T] {
		seen := make(map[K]struct{})
		return s.Filter(func(v T) bool {
			k := key(v)
			if _, dup := seen[k]; dup {
				return false
			}
			seen[k] = struct{}{}
			return true
		}).Iterator()
	}}
}

// DistinctHashed drops repeated elements of s, comparing elements by a structural
// hash. It is intended for element types which are not comparable, e.g. structs
// containing slices or maps.
func DistinctHashed[T any](s Seq[T]) Seq[T] {
	return DistinctBy(s, structuralKey[T])
}

func structuralKey[T any](v T) string {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		tracer().Debugf("cannot hash %T, falling back to printed form: %v", v, err)
		return fmt.Sprintf("%#v", v)
	}
	return h
}

// Concat creates a sequence of the elements of s followed by the elements of each
// of others, in order.
func (s Seq[T]) Concat(others ...Seq[T]) Seq[T] {
	sources := append([]Seq[T]{s}, others...)
	return Seq[T]{start: func() Iterator[T] {
		k := 0
		var current Iterator[T]
		return &funcIterator[T]{
			next: func() (T, bool) {
				for k < len(sources) {
					if current == nil {
						current = sources[k].Iterator()
					}
					if v, ok := current.Next(); ok {
						return v, true
					}
					current = nil
					k++
				}
				return exhausted[T]()
			},
			stop: func() {
				if current != nil {
					current.Stop()
				}
				k = len(sources)
			},
		}
	}}
}

// Entry is an element of a sequence together with its 0-based position.
type Entry[T any] struct {
	Index int
	Value T
}

// Entries creates a sequence of (index, value) pairs for the elements of s.
func Entries[T any](s Seq[T]) Seq[Entry[T]] {
	return Seq[Entry[T]]{start: func() Iterator[Entry[T]] {
		up := s.Iterator()
		i := 0
		return &funcIterator[Entry[T]]{
			next: func() (Entry[T], bool) {
				v, ok := up.Next()
				if !ok {
					return exhausted[Entry[T]]()
				}
				i++
				return Entry[T]{Index: i - 1, Value: v}, true
			},
			stop: up.Stop,
		}
	}}
}
