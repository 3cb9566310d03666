package sets

import (
	"iter"

	"github.com/npillmayer/refsets/holes"
)

// OrderedSet is a collection which keeps its values in insertion order.
// By default values are deduplicated; with option holes.Deduplicate(false) it
// is a multiset.
type OrderedSet[T comparable] struct {
	collection[T]
}

// NewOrderedSet creates an empty ordered set. It returns an error of category
// refsets.InvalidArgument for invalid options.
func NewOrderedSet[T comparable](opts ...holes.Option) (*OrderedSet[T], error) {
	c, err := newCollection[T](nil, opts)
	if err != nil {
		return nil, err
	}
	return &OrderedSet[T]{collection: c}, nil
}

// OrderedSetFrom creates an ordered set from the values of seq.
func OrderedSetFrom[T comparable](seq iter.Seq[T], opts ...holes.Option) (*OrderedSet[T], error) {
	c, err := newCollection(seq, opts)
	if err != nil {
		return nil, err
	}
	return &OrderedSet[T]{collection: c}, nil
}

// Add appends values and returns the number of values actually added.
// Values already contained in a deduplicating set are skipped.
func (s *OrderedSet[T]) Add(values ...T) int {
	n := 0
	for _, v := range values {
		if s.arr.Add(v) {
			n++
		}
	}
	return n
}

// --- Queues ----------------------------------------------------------------

// QueueSet is a FIFO collection: values are taken from the front.
type QueueSet[T comparable] struct {
	collection[T]
}

// NewQueueSet creates an empty queue.
func NewQueueSet[T comparable](opts ...holes.Option) (*QueueSet[T], error) {
	c, err := newCollection[T](nil, opts)
	if err != nil {
		return nil, err
	}
	return &QueueSet[T]{collection: c}, nil
}

// QueueSetFrom creates a queue from the values of seq, the first value of seq
// being the first to dequeue.
func QueueSetFrom[T comparable](seq iter.Seq[T], opts ...holes.Option) (*QueueSet[T], error) {
	c, err := newCollection(seq, opts)
	if err != nil {
		return nil, err
	}
	return &QueueSet[T]{collection: c}, nil
}

// Enqueue appends v at the back. It returns false if the queue deduplicates
// values and v is already enqueued.
func (q *QueueSet[T]) Enqueue(v T) bool {
	return q.arr.Add(v)
}

// Dequeue removes and returns the value at the front, i.e. the oldest one.
func (q *QueueSet[T]) Dequeue() (T, bool) {
	return q.arr.Shift()
}

// Peek returns the value at the front without removing it.
func (q *QueueSet[T]) Peek() (T, bool) {
	return q.arr.Front()
}

// --- Stacks ----------------------------------------------------------------

// StackSet is a LIFO collection: values are taken from the back.
type StackSet[T comparable] struct {
	collection[T]
}

// NewStackSet creates an empty stack.
func NewStackSet[T comparable](opts ...holes.Option) (*StackSet[T], error) {
	c, err := newCollection[T](nil, opts)
	if err != nil {
		return nil, err
	}
	return &StackSet[T]{collection: c}, nil
}

// StackSetFrom creates a stack from the values of seq, the last value of seq
// being on top.
func StackSetFrom[T comparable](seq iter.Seq[T], opts ...holes.Option) (*StackSet[T], error) {
	c, err := newCollection(seq, opts)
	if err != nil {
		return nil, err
	}
	return &StackSet[T]{collection: c}, nil
}

// Push puts v on top. It returns false if the stack deduplicates values and v
// is already contained.
func (st *StackSet[T]) Push(v T) bool {
	return st.arr.Add(v)
}

// Pop removes and returns the value on top, i.e. the newest one.
func (st *StackSet[T]) Pop() (T, bool) {
	v, ok := st.arr.Pop()
	if ok {
		tracer().Debugf("popped %v, %d values remaining", v, st.arr.Len())
	}
	return v, ok
}

// Peek returns the value on top without removing it.
func (st *StackSet[T]) Peek() (T, bool) {
	return st.arr.Back()
}
