package holes

import (
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/refsets"
)

// Verify checks the invariants of an array:
//
//   - the dirty count equals the number of holes
//   - there are no live values in front of the head hint or behind the tail hint
//   - every position recorded in the value index holds exactly that value
//   - every live value is recorded in the value index
//
// All violations found are reported as one aggregate error, each of them being an
// error of category refsets.InternalError. Verify returns nil for a healthy array.
func (a *Array[T]) Verify() error {
	var result *multierror.Error
	holes := 0
	for _, s := range a.slots {
		if s.IsHole() {
			holes++
		}
	}
	if holes != a.dirty {
		result = multierror.Append(result,
			refsets.Internal("dirty count is %d, but array has %d holes", a.dirty, holes))
	}
	for i := 0; i < a.head && i < len(a.slots); i++ {
		if !a.slots[i].IsHole() {
			result = multierror.Append(result,
				refsets.Internal("live value at position %d in front of head %d", i, a.head))
			break
		}
	}
	for i := a.tail; i < len(a.slots); i++ {
		if !a.slots[i].IsHole() {
			result = multierror.Append(result,
				refsets.Internal("live value at position %d behind tail %d", i, a.tail))
			break
		}
	}
	indexed := 0
	a.index.Range(func(v T, p int) bool {
		indexed++
		if p < 0 || p >= len(a.slots) {
			result = multierror.Append(result,
				refsets.Internal("index records %v at position %d, which is out of range", v, p))
		} else if w, ok := a.slots[p].Get(); !ok {
			result = multierror.Append(result,
				refsets.Internal("index records %v at position %d, which is a hole", v, p))
		} else if !sameValue(w, v) {
			result = multierror.Append(result,
				refsets.Internal("index records %v at position %d, which holds %v", v, p, w))
		}
		return true
	})
	if live := len(a.slots) - holes; indexed != live {
		result = multierror.Append(result,
			refsets.Internal("index records %d occurrences, but array has %d live values", indexed, live))
	}
	if err := result.ErrorOrNil(); err != nil {
		tracer().Errorf("array invariants violated: %v", err)
		return err
	}
	return nil
}
