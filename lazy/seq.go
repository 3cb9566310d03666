package lazy

import (
	"iter"
	"math"

	"github.com/npillmayer/refsets"
	"golang.org/x/exp/constraints"
)

// Iterator is a single traversal of a sequence. Next returns the next element and
// true, or the zero value and false if the traversal is exhausted. Stop abandons the
// traversal and releases any resources held by it; it may be called more than once.
type Iterator[T any] interface {
	Next() (T, bool)
	Stop()
}

// Seq is a restartable lazy sequence. The zero value is an empty sequence.
type Seq[T any] struct {
	start func() Iterator[T]
}

// Iterator starts a new traversal.
func (s Seq[T]) Iterator() Iterator[T] {
	if s.start == nil {
		return &funcIterator[T]{next: exhausted[T]}
	}
	return s.start()
}

// funcIterator is an iterator made of closures. Most combinators use it.
type funcIterator[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *funcIterator[T]) Next() (T, bool) {
	return it.next()
}

func (it *funcIterator[T]) Stop() {
	if it.stop != nil {
		it.stop()
	}
}

func exhausted[T any]() (T, bool) {
	var zero T
	return zero, false
}

// --- Sources ---------------------------------------------------------------

// Empty returns a sequence without elements.
func Empty[T any]() Seq[T] {
	return Seq[T]{}
}

// FromIterator creates a sequence from a function which starts traversals.
// Every call of start must return a fresh, independent iterator.
func FromIterator[T any](start func() Iterator[T]) Seq[T] {
	if start == nil {
		return Empty[T]()
	}
	return Seq[T]{start: start}
}

// From wraps a Go iterator, which may be finite or infinite. Traversals of the
// resulting sequence will call seq anew.
func From[T any](seq iter.Seq[T]) Seq[T] {
	if seq == nil {
		return Empty[T]()
	}
	return Seq[T]{start: func() Iterator[T] {
		next, stop := iter.Pull(seq)
		return &funcIterator[T]{next: next, stop: stop}
	}}
}

// FromSlice creates a sequence over the elements of values. The slice is not
// copied.
func FromSlice[T any](values []T) Seq[T] {
	return Seq[T]{start: func() Iterator[T] {
		i := 0
		return &funcIterator[T]{next: func() (T, bool) {
			if i >= len(values) {
				return exhausted[T]()
			}
			i++
			return values[i-1], true
		}}
	}}
}

// FromLength creates the sequence 0, 1, …, n-1.
func FromLength(n int) Seq[int] {
	return counter(n)
}

// Infinite creates the sequence of natural numbers 0, 1, 2, … which never ends.
func Infinite() Seq[int] {
	return counter(-1)
}

// counter counts from 0 to n-1, or forever for n < 0.
func counter(n int) Seq[int] {
	return Seq[int]{start: func() Iterator[int] {
		i := 0
		return &funcIterator[int]{next: func() (int, bool) {
			if n >= 0 && i >= n {
				return 0, false
			}
			i++
			return i - 1, true
		}}
	}}
}

// Number is the type constraint for ranges.
type Number interface {
	constraints.Signed | constraints.Float
}

// FromRange creates the sequence start, start+step, start+2·step, … up to end.
// The step is optional and defaults to 1 if end ≥ start, to -1 otherwise.
//
// The sequence has floor(|end-start| / |step|) + 1 elements, i.e. end is included
// if it lies exactly on a step boundary, and is never overshot:
//
//	FromRange(1, 10, 2)     // 1 3 5 7 9
//	FromRange(1, 11, 2)     // 1 3 5 7 9 11
//	FromRange(5, 5)         // 5
//
// For floating point ranges, end counts as lying on a step boundary if it misses
// one by a rounding error only. In this case the last element is exactly end:
//
//	FromRange(0, 0.3, 0.1)  // 0 0.1 0.2 0.3
//
// FromRange returns an error of category refsets.InvalidArgument if step is 0, if
// the sign of step does not match the direction from start to end, if more than one
// step is given, or if a parameter is not a finite number.
func FromRange[N Number](start, end N, step ...N) (Seq[N], error) {
	if len(step) > 1 {
		return Seq[N]{}, rangeError("at most one step may be given, have %d", len(step))
	}
	var st N = 1
	if end < start {
		st = -1
	}
	if len(step) == 1 {
		st = step[0]
	}
	for _, x := range []N{start, end, st} {
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return Seq[N]{}, rangeError("range parameters must be finite, have %v", x)
		}
	}
	if st == 0 {
		return Seq[N]{}, rangeError("step must not be 0")
	}
	if end > start && st < 0 || end < start && st > 0 {
		return Seq[N]{}, rangeError("step %v leads away from %v to %v", st, start, end)
	}
	q := (float64(end) - float64(start)) / float64(st)
	if N(1)/2 != 0 { // floating point: tolerate rounding of the quotient
		q += 1e-9 * math.Max(1, math.Abs(q))
	}
	count := int64(math.Floor(q)) + 1
	return Seq[N]{start: func() Iterator[N] {
		var i int64
		return &funcIterator[N]{next: func() (N, bool) {
			if i >= count {
				return exhausted[N]()
			}
			v := start + N(i)*st
			if st > 0 && v > end || st < 0 && v < end {
				v = end
			}
			i++
			return v, true
		}}
	}}, nil
}

func rangeError(format string, args ...interface{}) error {
	err := refsets.Errorf(refsets.InvalidArgument, format, args...)
	tracer().Errorf("cannot create range: %v", err)
	return err
}
