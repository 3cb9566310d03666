package holes

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/refsets"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/exp/slices"
)

// Array is an ordered collection of values in a dense backing array which
// tolerates holes. Values are kept in insertion order. Removing a value punches a
// hole into the backing array; holes are reclaimed by compaction, as directed by
// the array's compaction mode.
//
// Positions of values in the backing array are not stable across compactions.
// Create arrays with New or From.
type Array[T comparable] struct {
	slots     []Slot[T]
	index     ValueIndex[T]
	dirty     int  // number of holes in slots
	head      int  // slots[:head] are holes
	tail      int  // slots[tail:] are holes
	threshold int  // minimum number of holes for automatic compaction
	mode      Mode // compaction policy
	dedup     bool
	gen       int // incremented whenever slots is replaced
	readers   int // cursors reading the current slots
}

// New creates an empty array. Invalid options are reported as errors of
// category refsets.InvalidArgument.
func New[T comparable](opts ...Option) (*Array[T], error) {
	conf := defaultConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	if err := conf.validate(); err != nil {
		tracer().Errorf("cannot create array: %v", err)
		return nil, err
	}
	return &Array[T]{
		index:     NewValueIndex[T](conf.Dedup),
		threshold: conf.holeThreshold(),
		mode:      conf.Mode,
		dedup:     conf.Dedup,
	}, nil
}

// From creates an array and adds all values of seq, one at a time. If the array
// deduplicates, repeated values of seq will be added once only.
func From[T comparable](seq iter.Seq[T], opts ...Option) (*Array[T], error) {
	a, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	if seq != nil {
		for v := range seq {
			a.Add(v)
		}
	}
	return a, nil
}

// Mode returns the compaction mode of the array.
func (a *Array[T]) Mode() Mode {
	return a.mode
}

// Threshold returns the number of holes at which automatic compaction may happen.
func (a *Array[T]) Threshold() int {
	return a.threshold
}

// Deduplicates returns true if the array uses a single-occupancy index.
func (a *Array[T]) Deduplicates() bool {
	return a.dedup
}

// Len returns the number of live values.
func (a *Array[T]) Len() int {
	return len(a.slots) - a.dirty
}

// Dirty returns the number of holes created since the last compaction.
func (a *Array[T]) Dirty() int {
	return a.dirty
}

// Cap returns the length of the backing array, holes included.
func (a *Array[T]) Cap() int {
	return len(a.slots)
}

// Has returns true if v is contained in the array.
func (a *Array[T]) Has(v T) bool {
	return a.index.Has(v)
}

// Count returns the number of occurrences of v, which is at most 1 for
// deduplicating arrays.
func (a *Array[T]) Count(v T) int {
	return a.index.Count(v)
}

// Add appends v. It returns false if the array deduplicates and v is already
// present; the array is unchanged in this case.
func (a *Array[T]) Add(v T) bool {
	if !a.index.Add(v, len(a.slots)) {
		return false
	}
	a.slots = append(a.slots, Value(v))
	a.tail = len(a.slots)
	return true
}

// Remove removes all occurrences of v. It returns true if at least one
// occurrence has been removed.
func (a *Array[T]) Remove(v T) bool {
	return a.RemoveN(v, AllOccurrences)
}

// RemoveN removes up to count occurrences of v, most recently added first.
// A count < 0 removes all of them. It returns true if at least one occurrence
// has been removed. Removing may trigger a compaction.
func (a *Array[T]) RemoveN(v T, count int) bool {
	positions := a.index.Remove(v, count)
	for _, p := range positions {
		a.punch(p)
	}
	if len(positions) == 0 {
		return false
	}
	a.afterRemoval()
	return true
}

// Front returns the first live value, if any.
func (a *Array[T]) Front() (T, bool) {
	if p := a.front(); p >= 0 {
		return a.slots[p].value, true
	}
	var zero T
	return zero, false
}

// Back returns the last live value, if any.
func (a *Array[T]) Back() (T, bool) {
	if p := a.back(); p >= 0 {
		return a.slots[p].value, true
	}
	var zero T
	return zero, false
}

// Shift removes and returns the first live value. For arrays with repeated
// values this is the oldest occurrence.
func (a *Array[T]) Shift() (T, bool) {
	p := a.front()
	if p < 0 {
		var zero T
		return zero, false
	}
	return a.removeAt(p), true
}

// Pop removes and returns the last live value. For arrays with repeated
// values this is the newest occurrence.
func (a *Array[T]) Pop() (T, bool) {
	p := a.back()
	if p < 0 {
		var zero T
		return zero, false
	}
	return a.removeAt(p), true
}

// Compact rebuilds the backing array without holes and re-derives the value
// index. Compact is a no-op for an array without holes.
func (a *Array[T]) Compact() {
	if a.dirty == 0 {
		return
	}
	before := len(a.slots)
	dense := make([]T, 0, before-a.dirty)
	for _, s := range a.slots {
		if v, ok := s.Get(); ok {
			dense = append(dense, v)
		}
	}
	slots := make([]Slot[T], len(dense))
	for i, v := range dense {
		slots[i] = Value(v)
	}
	a.index.Reindex(dense)
	a.replaceSlots(slots)
	a.dirty = 0
	a.head, a.tail = 0, len(slots)
	tracer().Debugf("compacted array (%s): %d → %d slots", a.mode, before, len(slots))
	if gconf.GetBool(VerifyCompactionKey) {
		if err := a.Verify(); err != nil {
			tracer().Errorf("array corrupt after compaction: %v", err)
			panic(err)
		}
	}
}

// Clear removes all values.
func (a *Array[T]) Clear() {
	a.replaceSlots(nil)
	a.index.Clear()
	a.dirty, a.head, a.tail = 0, 0, 0
	tracer().Debugf("cleared array")
}

// Snapshot returns a copy of the live values at the time of the call.
// The copy is not affected by subsequent modifications of the array.
func (a *Array[T]) Snapshot() []T {
	values := make([]T, 0, a.Len())
	for _, s := range a.slots {
		if v, ok := s.Get(); ok {
			values = append(values, v)
		}
	}
	return values
}

// Values returns an iterator over the live values, in order. See Cursor for
// details about compaction during iteration.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		c := a.Cursor()
		for v, ok := c.Next(); ok; v, ok = c.Next() {
			if !yield(v) {
				c.Stop()
				return
			}
		}
	}
}

// String is a debugging helper, printing holes as '_'.
func (a *Array[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, s := range a.slots {
		if i > 0 {
			b.WriteString(" ")
		}
		if v, ok := s.Get(); ok {
			fmt.Fprintf(&b, "%v", v)
		} else {
			b.WriteString("_")
		}
	}
	b.WriteString("]")
	return b.String()
}

// --- Internals -------------------------------------------------------------

func (a *Array[T]) overThreshold() bool {
	return a.dirty >= a.threshold
}

func (a *Array[T]) afterRemoval() {
	if a.mode == Guaranteed || a.mode == Auto && a.overThreshold() {
		a.Compact()
	}
}

func (a *Array[T]) beforeIteration() {
	if (a.mode == Eager || a.mode == Auto) && a.overThreshold() {
		a.Compact()
	}
}

func (a *Array[T]) afterIteration() {
	if (a.mode == Lazy || a.mode == Auto) && a.overThreshold() {
		a.Compact()
	}
}

// punch turns slot p into a hole. Slots still read by a cursor are copied first.
func (a *Array[T]) punch(p int) {
	if a.readers > 0 {
		tracer().Debugf("copying %d slots shared with %d cursor(s)", len(a.slots), a.readers)
		a.replaceSlots(slices.Clone(a.slots))
	}
	a.slots[p] = Hole[T]()
	a.dirty++
}

func (a *Array[T]) replaceSlots(slots []Slot[T]) {
	a.slots = slots
	a.gen++
	a.readers = 0
}

// removeAt removes the live value at position p.
func (a *Array[T]) removeAt(p int) T {
	v := a.slots[p].value
	if !a.index.RemoveAt(v, p) {
		panic(refsets.Internal("value %v at position %d is not indexed", v, p))
	}
	a.punch(p)
	a.afterRemoval()
	return v
}

// front finds the position of the first live value, or -1.
func (a *Array[T]) front() int {
	for ; a.head < a.tail; a.head++ {
		if !a.slots[a.head].IsHole() {
			return a.head
		}
	}
	return -1
}

// back finds the position of the last live value, or -1.
func (a *Array[T]) back() int {
	for ; a.tail > a.head; a.tail-- {
		if !a.slots[a.tail-1].IsHole() {
			return a.tail - 1
		}
	}
	return -1
}

// --- Cursor ----------------------------------------------------------------

// Cursor is a single pull-based traversal over the live values of an Array.
//
// Creating a cursor may compact the array first (modes Eager and Auto). The cursor
// then visits the values which are live at its creation, regardless of later
// modifications of the array: removed values are still visited, values added
// later are not. The backing array is copied only if it is modified while a
// cursor is reading it. When the cursor is exhausted, the array may compact
// (modes Lazy and Auto). A cursor which is stopped before exhaustion never compacts.
type Cursor[T comparable] struct {
	arr   *Array[T]
	slots []Slot[T]
	gen   int
	pos   int
	done  bool
}

// Cursor starts a new traversal.
func (a *Array[T]) Cursor() *Cursor[T] {
	a.beforeIteration()
	a.readers++
	return &Cursor[T]{arr: a, slots: a.slots, gen: a.gen}
}

// Next returns the next live value and true, or false if the traversal is exhausted.
func (c *Cursor[T]) Next() (T, bool) {
	for !c.done && c.pos < len(c.slots) {
		s := c.slots[c.pos]
		c.pos++
		if v, ok := s.Get(); ok {
			return v, true
		}
	}
	if !c.done {
		c.release()
		c.arr.afterIteration()
	}
	var zero T
	return zero, false
}

// Stop abandons the traversal.
func (c *Cursor[T]) Stop() {
	if !c.done {
		c.release()
	}
}

func (c *Cursor[T]) release() {
	c.done = true
	c.slots = nil
	if c.gen == c.arr.gen && c.arr.readers > 0 {
		c.arr.readers--
	}
}
