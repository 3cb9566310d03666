package ring

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/refsets"
)

// Width is the number of bytes per slot.
const Width = 3

// MaxValue is the largest value a ring is able to store.
const MaxValue = 1<<(8*Width) - 1

// Ring is a growable FIFO ring buffer of 24-bit unsigned integers.
// The zero value is an empty ring with capacity 0.
type Ring struct {
	data []byte // packed slots, little endian
	head int    // slot of the first value
	len  int    // number of values
}

// New creates an empty ring with room for slots values.
func New(slots int) *Ring {
	if slots < 0 {
		slots = 0
	}
	return &Ring{data: make([]byte, slots*Width)}
}

// Len returns the number of values in r.
func (r *Ring) Len() int {
	return r.len
}

// Cap returns the number of values r is able to hold without growing.
func (r *Ring) Cap() int {
	return len(r.data) / Width
}

// Push appends v at the back. It returns an error of category
// refsets.InvalidArgument if v does not fit into 24 bits.
func (r *Ring) Push(v uint32) error {
	if v > MaxValue {
		return refsets.Errorf(refsets.InvalidArgument, "value %d exceeds ring maximum %d", v, MaxValue)
	}
	if r.len == r.Cap() {
		r.resize(max(r.Cap(), 1) * 2)
	}
	put(r.data, (r.head+r.len)%r.Cap(), v)
	r.len++
	return nil
}

// Pop removes and returns the value at the front, i.e. the oldest one.
func (r *Ring) Pop() (uint32, bool) {
	if r.len == 0 {
		return 0, false
	}
	v := r.load(r.head)
	r.head = (r.head + 1) % r.Cap()
	r.len--
	return v, true
}

// Get returns the i-th value, counted from the front. It returns an error of
// category refsets.InvalidArgument if i is out of range.
func (r *Ring) Get(i int) (uint32, error) {
	if i < 0 || i >= r.len {
		return 0, refsets.Errorf(refsets.InvalidArgument, "ring index %d out of range [0…%d)", i, r.len)
	}
	return r.at(i), nil
}

// Values returns a copy of the values of r, front first.
func (r *Ring) Values() []uint32 {
	values := make([]uint32, r.len)
	for i := range values {
		values[i] = r.at(i)
	}
	return values
}

// All returns an iterator over the values of r, front first, to be used with
// range. r must not be modified during iteration.
func (r *Ring) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := 0; i < r.len; i++ {
			if !yield(r.at(i)) {
				return
			}
		}
	}
}

// Compact shrinks the capacity of r to its length.
func (r *Ring) Compact() {
	r.resize(r.len)
}

func (r *Ring) String() string {
	var b strings.Builder
	b.WriteString("ring[")
	for i := 0; i < r.len; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", r.at(i))
	}
	fmt.Fprintf(&b, "](%d/%d)", r.len, r.Cap())
	return b.String()
}

// --- Internals -------------------------------------------------------------

// resize copies the values into a new buffer of the given number of slots,
// starting at slot 0.
func (r *Ring) resize(slots int) {
	tracer().Debugf("resizing ring from %d to %d slots", r.Cap(), slots)
	data := make([]byte, slots*Width)
	for i := 0; i < r.len; i++ {
		put(data, i, r.at(i))
	}
	r.data, r.head = data, 0
}

// at returns the i-th value from the front.
func (r *Ring) at(i int) uint32 {
	return r.load((r.head + i) % r.Cap())
}

func (r *Ring) load(slot int) uint32 {
	off := slot * Width
	return uint32(r.data[off]) | uint32(r.data[off+1])<<8 | uint32(r.data[off+2])<<16
}

func put(data []byte, slot int, v uint32) {
	off := slot * Width
	data[off] = byte(v)
	data[off+1] = byte(v >> 8)
	data[off+2] = byte(v >> 16)
}
