package holes

// Slot is a position in the backing array of an Array. It holds either a live
// value or a hole. Holes are told apart by a tag, never by comparing values, so no
// user value (zero values and NaN included) can be mistaken for a hole.
type Slot[T any] struct {
	value T
	live  bool
}

// Value creates a live slot.
func Value[T any](v T) Slot[T] {
	return Slot[T]{value: v, live: true}
}

// Hole creates an empty slot.
func Hole[T any]() Slot[T] {
	return Slot[T]{}
}

// IsHole is a predicate.
func (s Slot[T]) IsHole() bool {
	return !s.live
}

// Get returns the slot's value and true, or the zero value and false for a hole.
func (s Slot[T]) Get() (T, bool) {
	return s.value, s.live
}
