package holes

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// AllOccurrences may be given as a count to remove every occurrence of a value.
const AllOccurrences = -1

// ValueIndex maps values to the positions they occupy in the backing array of an
// Array. The index is the authority on membership: an Array appends a value only if
// its index reports it as newly recorded.
//
// There are two variants, chosen at construction time of an Array: a single-occupancy
// index (values are deduplicated) and a multi-occupancy index (values may be added
// repeatedly and are tracked by count).
//
// Floating point NaN values are treated as equal to each other, i.e. all NaNs are
// occurrences of a single value.
type ValueIndex[T comparable] interface {
	// Add records v at position pos. It returns true if v has been newly recorded,
	// false if v is already present and the caller must not append it.
	Add(v T, pos int) bool
	// Remove deletes up to count occurrences of v, most recently added first, and
	// returns their positions. A count < 0 removes all occurrences.
	Remove(v T, count int) []int
	// RemoveAt deletes the occurrence of v at position pos, if recorded.
	RemoveAt(v T, pos int) bool
	// Has returns true if at least one occurrence of v is recorded.
	Has(v T) bool
	// Count returns the number of recorded occurrences of v.
	Count(v T) int
	// Len returns the number of distinct values recorded.
	Len() int
	// Range calls f for every recorded (value, position) pair until f returns false.
	Range(f func(v T, pos int) bool)
	// Reindex replaces the index by one for a dense array without holes: the value
	// at dense[i] is recorded at position i.
	Reindex(dense []T)
	// Clear empties the index.
	Clear()
}

// NewValueIndex creates a single-occupancy index if dedup is true, a multi-occupancy
// index otherwise.
func NewValueIndex[T comparable](dedup bool) ValueIndex[T] {
	if dedup {
		return newSingleIndex[T]()
	}
	return newMultiIndex[T]()
}

// --- Keyed table -----------------------------------------------------------

// table maps values to entries. Go maps never find a NaN key, so NaN values are
// kept in a separate entry.
type table[T comparable, E any] struct {
	m      map[T]E
	nan    E
	nanKey T // the NaN value as first recorded
	hasNaN bool
}

func newTable[T comparable, E any]() table[T, E] {
	return table[T, E]{m: make(map[T]E)}
}

func (t *table[T, E]) get(v T) (E, bool) {
	if isNaN(v) {
		return t.nan, t.hasNaN
	}
	e, ok := t.m[v]
	return e, ok
}

func (t *table[T, E]) put(v T, e E) {
	if isNaN(v) {
		if !t.hasNaN {
			t.nanKey, t.hasNaN = v, true
		}
		t.nan = e
		return
	}
	t.m[v] = e
}

func (t *table[T, E]) del(v T) {
	if isNaN(v) {
		var zero E
		t.nan, t.hasNaN = zero, false
		return
	}
	delete(t.m, v)
}

func (t *table[T, E]) size() int {
	if t.hasNaN {
		return len(t.m) + 1
	}
	return len(t.m)
}

func (t *table[T, E]) each(f func(v T, e E) bool) {
	if t.hasNaN && !f(t.nanKey, t.nan) {
		return
	}
	for v, e := range t.m {
		if !f(v, e) {
			return
		}
	}
}

// isNaN is true for floating point NaNs (real or complex), the only values of a
// basic type which are not equal to themselves.
func isNaN[T comparable](v T) bool {
	if v == v {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// sameValue compares like the value index does.
func sameValue[T comparable](v, w T) bool {
	return v == w || isNaN(v) && isNaN(w)
}

// --- Single occupancy ------------------------------------------------------

// singleIndex records one position per value, the position of its first addition.
type singleIndex[T comparable] struct {
	pos table[T, int]
}

var _ ValueIndex[int] = (*singleIndex[int])(nil)

func newSingleIndex[T comparable]() *singleIndex[T] {
	return &singleIndex[T]{pos: newTable[T, int]()}
}

func (ix *singleIndex[T]) Add(v T, pos int) bool {
	if _, ok := ix.pos.get(v); ok {
		return false
	}
	ix.pos.put(v, pos)
	return true
}

func (ix *singleIndex[T]) Remove(v T, count int) []int {
	p, ok := ix.pos.get(v)
	if !ok || count == 0 {
		return nil
	}
	ix.pos.del(v)
	return []int{p}
}

func (ix *singleIndex[T]) RemoveAt(v T, pos int) bool {
	if p, ok := ix.pos.get(v); ok && p == pos {
		ix.pos.del(v)
		return true
	}
	return false
}

func (ix *singleIndex[T]) Has(v T) bool {
	_, ok := ix.pos.get(v)
	return ok
}

func (ix *singleIndex[T]) Count(v T) int {
	if ix.Has(v) {
		return 1
	}
	return 0
}

func (ix *singleIndex[T]) Len() int {
	return ix.pos.size()
}

func (ix *singleIndex[T]) Range(f func(v T, pos int) bool) {
	ix.pos.each(f)
}

func (ix *singleIndex[T]) Reindex(dense []T) {
	ix.pos = newTable[T, int]()
	for i, v := range dense {
		ix.Add(v, i)
	}
}

func (ix *singleIndex[T]) Clear() {
	ix.pos = newTable[T, int]()
}

// --- Multi occupancy -------------------------------------------------------

// multiIndex records every occurrence of a value. Position lists are in ascending
// order, as positions are handed out in append order and compaction keeps the
// relative order of values.
type multiIndex[T comparable] struct {
	pos table[T, []int]
}

var _ ValueIndex[int] = (*multiIndex[int])(nil)

func newMultiIndex[T comparable]() *multiIndex[T] {
	return &multiIndex[T]{pos: newTable[T, []int]()}
}

func (ix *multiIndex[T]) Add(v T, pos int) bool {
	list, _ := ix.pos.get(v)
	ix.pos.put(v, append(list, pos))
	return true
}

func (ix *multiIndex[T]) Remove(v T, count int) []int {
	list, _ := ix.pos.get(v)
	if len(list) == 0 {
		ix.pos.del(v)
		return nil
	}
	if count < 0 || count > len(list) {
		count = len(list)
	}
	removed := make([]int, 0, count)
	for i := 0; i < count; i++ { // pop from the end
		removed = append(removed, list[len(list)-1-i])
	}
	ix.shrink(v, list[:len(list)-count])
	return removed
}

func (ix *multiIndex[T]) RemoveAt(v T, pos int) bool {
	list, _ := ix.pos.get(v)
	i, found := slices.BinarySearch(list, pos)
	if !found {
		return false
	}
	ix.shrink(v, slices.Delete(list, i, i+1))
	return true
}

// shrink stores a shortened position list, dropping the entry once it is empty.
func (ix *multiIndex[T]) shrink(v T, list []int) {
	if len(list) == 0 {
		ix.pos.del(v)
		return
	}
	ix.pos.put(v, list)
}

func (ix *multiIndex[T]) Has(v T) bool {
	return ix.Count(v) > 0
}

func (ix *multiIndex[T]) Count(v T) int {
	list, _ := ix.pos.get(v)
	return len(list)
}

func (ix *multiIndex[T]) Len() int {
	return ix.pos.size()
}

func (ix *multiIndex[T]) Range(f func(v T, pos int) bool) {
	ix.pos.each(func(v T, list []int) bool {
		for _, p := range list {
			if !f(v, p) {
				return false
			}
		}
		return true
	})
}

func (ix *multiIndex[T]) Reindex(dense []T) {
	ix.pos = newTable[T, []int]()
	for i, v := range dense {
		ix.Add(v, i)
	}
}

func (ix *multiIndex[T]) Clear() {
	ix.pos = newTable[T, []int]()
}
