package sets

import (
	"iter"

	"github.com/npillmayer/refsets"
	"github.com/npillmayer/refsets/holes"
	"github.com/npillmayer/refsets/lazy"
)

// collection is the common part of all collections in this package. Its
// methods are promoted to the collection types.
type collection[T comparable] struct {
	arr *holes.Array[T]
}

// newCollection creates a collection with the values of seq, which may be nil.
func newCollection[T comparable](seq iter.Seq[T], opts []holes.Option) (collection[T], error) {
	arr, err := holes.From(seq, opts...)
	if err != nil {
		return collection[T]{}, err
	}
	return collection[T]{arr: arr}, nil
}

// Has returns true if v is contained at least once.
func (c collection[T]) Has(v T) bool {
	return c.arr.Has(v)
}

// Count returns the number of occurrences of v.
func (c collection[T]) Count(v T) int {
	return c.arr.Count(v)
}

// Len returns the number of values, counting repeated values.
func (c collection[T]) Len() int {
	return c.arr.Len()
}

// Remove removes all occurrences of v and returns true if v was contained.
func (c collection[T]) Remove(v T) bool {
	return c.arr.Remove(v)
}

// RemoveN removes up to count occurrences of v, the most recently added ones
// first. Counting occurrences is not supported by collections which deduplicate
// values; for these, RemoveN returns an error of category refsets.NotSupported.
func (c collection[T]) RemoveN(v T, count int) (bool, error) {
	if c.arr.Deduplicates() {
		return false, refsets.Errorf(refsets.NotSupported,
			"collection deduplicates values, cannot remove %d occurrences of %v", count, v)
	}
	return c.arr.RemoveN(v, count), nil
}

// Values returns an iterator over the values, to be used with range.
func (c collection[T]) Values() iter.Seq[T] {
	return c.arr.Values()
}

// Seq returns a lazy sequence which reads the collection whenever it is
// traversed. Traversals observe modifications made before they start.
func (c collection[T]) Seq() lazy.Seq[T] {
	return lazy.FromIterator(func() lazy.Iterator[T] {
		return c.arr.Cursor()
	})
}

// Snapshot returns a lazy sequence over a copy of the current values.
func (c collection[T]) Snapshot() lazy.Seq[T] {
	return lazy.FromSlice(c.arr.Snapshot())
}

// Compact reclaims all holes, regardless of the compaction mode.
func (c collection[T]) Compact() {
	c.arr.Compact()
}

// Clear removes all values.
func (c collection[T]) Clear() {
	c.arr.Clear()
}

// Stats describes the internal state of a collection.
type Stats struct {
	Len       int        // number of values
	Holes     int        // number of holes not yet reclaimed
	Slots     int        // length of the backing array
	Threshold int        // hole threshold
	Mode      holes.Mode // compaction mode
	Dedup     bool       // does the collection deduplicate values?
}

// Stats returns a description of the collection's internal state.
func (c collection[T]) Stats() Stats {
	return Stats{
		Len:       c.arr.Len(),
		Holes:     c.arr.Dirty(),
		Slots:     c.arr.Cap(),
		Threshold: c.arr.Threshold(),
		Mode:      c.arr.Mode(),
		Dedup:     c.arr.Deduplicates(),
	}
}

// String prints the backing array, with holes printed as '_'.
func (c collection[T]) String() string {
	return c.arr.String()
}
