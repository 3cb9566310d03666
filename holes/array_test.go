package holes

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/npillmayer/refsets"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInts(t *testing.T, n int, opts ...Option) *Array[int] {
	a, err := New[int](opts...)
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		a.Add(i)
	}
	return a
}

func TestOrderPreservation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, slices.Collect(a.Values()))
	assert.Equal(t, 10, a.Len())
}

func TestAddDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a, _ := New[string]()
	if !a.Add("x") {
		t.Errorf("expected 'x' to be added")
	}
	if a.Add("x") {
		t.Errorf("expected second 'x' to be rejected")
	}
	if a.Len() != 1 || a.Cap() != 1 {
		t.Errorf("expected exactly one slot, have len=%d, cap=%d", a.Len(), a.Cap())
	}
	if !a.Has("x") {
		t.Errorf("'x' should be contained")
	}
}

func TestMultiOccupancyCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a, _ := New[string](Deduplicate(false), Compaction(Manual))
	a.Add("v")
	a.Add("w")
	a.Add("v")
	a.Add("v")
	if !a.RemoveN("v", 2) {
		t.Fatalf("expected occurrences of 'v' to be removed")
	}
	if a.Count("v") != 1 {
		t.Errorf("expected 1 occurrence of 'v' to remain, have %d", a.Count("v"))
	}
	if a.String() != "[v w _ _]" {
		t.Errorf("expected most recent occurrences to be removed, array is %s", a)
	}
	assert.Equal(t, []string{"v", "w"}, a.Snapshot())
}

func TestHoleAccounting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 10, Compaction(Manual))
	for _, v := range []int{2, 4, 6} {
		a.Remove(v)
	}
	if a.Dirty() != 3 {
		t.Errorf("expected 3 holes, have %d", a.Dirty())
	}
	if a.Remove(4) {
		t.Errorf("removing an absent value should return false")
	}
	if a.Dirty() != 3 || a.Cap() != 10 || a.Len() != 7 {
		t.Errorf("unexpected state: dirty=%d, cap=%d, len=%d", a.Dirty(), a.Cap(), a.Len())
	}
	require.NoError(t, a.Verify())
	a.Compact()
	if a.Dirty() != 0 || a.Cap() != a.Len() {
		t.Errorf("expected no holes after compaction, have dirty=%d, cap=%d", a.Dirty(), a.Cap())
	}
	require.NoError(t, a.Verify())
	assert.Equal(t, []int{1, 3, 5, 7, 8, 9, 10}, a.Snapshot())
}

func TestGuaranteedCompaction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 5, Compaction(Guaranteed), HoleThreshold(2))
	a.Remove(1)
	if a.Dirty() != 0 || a.Cap() != 4 {
		t.Errorf("expected compaction after first removal, have dirty=%d, cap=%d", a.Dirty(), a.Cap())
	}
	require.NoError(t, a.Verify())
}

func TestLazyCompaction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 5, Compaction(Lazy), HoleThreshold(2))
	a.Remove(1)
	a.Remove(2)
	a.Remove(3)
	if a.Dirty() != 3 {
		t.Fatalf("lazy array must not compact on removal, dirty=%d", a.Dirty())
	}
	c := a.Cursor()
	if v, ok := c.Next(); !ok || v != 4 {
		t.Errorf("expected first value to be 4, is %d", v)
	}
	c.Stop()
	if a.Dirty() != 3 {
		t.Errorf("abandoned iteration must not compact, dirty=%d", a.Dirty())
	}
	var values []int
	for v := range a.Values() {
		if a.Dirty() != 3 {
			t.Errorf("lazy array must not compact during iteration")
		}
		values = append(values, v)
	}
	assert.Equal(t, []int{4, 5}, values)
	if a.Dirty() != 0 || a.Cap() != 2 {
		t.Errorf("expected compaction after full iteration, have dirty=%d, cap=%d", a.Dirty(), a.Cap())
	}
}

func TestManualNeverCompacts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 8, Compaction(Manual), HoleThreshold(2))
	for v := 1; v <= 4; v++ {
		a.Remove(v)
	}
	_ = slices.Collect(a.Values())
	_ = slices.Collect(a.Values())
	if a.Dirty() != 4 {
		t.Errorf("manual array must never compact by itself, dirty=%d", a.Dirty())
	}
}

func TestAutoCompaction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 10, HoleThreshold(3))
	if a.Mode() != Auto {
		t.Errorf("expected default mode to be Auto, is %s", a.Mode())
	}
	a.Remove(1)
	a.Remove(2)
	_ = slices.Collect(a.Values())
	if a.Dirty() != 2 {
		t.Errorf("expected no compaction below threshold, dirty=%d", a.Dirty())
	}
	a.Remove(3)
	if a.Dirty() != 0 || a.Cap() != 7 {
		t.Errorf("expected compaction at threshold, dirty=%d, cap=%d", a.Dirty(), a.Cap())
	}
}

func TestEagerCompaction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 5, Compaction(Eager), HoleThreshold(2))
	a.Remove(1)
	if a.Cursor(); a.Dirty() != 1 {
		t.Errorf("expected no compaction below threshold, dirty=%d", a.Dirty())
	}
	a.Remove(2)
	a.Remove(3)
	if a.Dirty() != 3 {
		t.Fatalf("eager array must not compact on removal, dirty=%d", a.Dirty())
	}
	c := a.Cursor()
	if a.Dirty() != 0 {
		t.Errorf("expected compaction before first element, dirty=%d", a.Dirty())
	}
	v, _ := c.Next()
	assert.Equal(t, 4, v)
}

func TestOptionValidation(t *testing.T) {
	a, err := New[int](ThresholdBytes(20))
	require.NoError(t, err)
	assert.Equal(t, 3, a.Threshold())
	a, err = New[int](HoleThreshold(10), ThresholdBytes(1))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Threshold())
	assert.Equal(t, DefaultHoleThreshold, newInts(t, 0).Threshold())
	for _, opt := range []Option{HoleThreshold(0), ThresholdBytes(0), ThresholdBytes(-8),
		ThresholdBytes(math.NaN()), ThresholdBytes(math.Inf(1)), Compaction(Mode(42))} {
		_, err := New[int](opt)
		if !errors.Is(err, refsets.ErrInvalidArgument) {
			t.Errorf("expected invalid argument error, have %v", err)
		}
	}
}

func TestLargeThresholdBytes(t *testing.T) {
	a, err := New[int](ThresholdBytes(1e300))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, a.Threshold())
	a.Add(1)
	a.Remove(1)
	if a.Dirty() != 1 {
		t.Errorf("expected a huge budget never to compact automatically, dirty=%d", a.Dirty())
	}
	a, err = New[int](ThresholdBytes(BytesPerHole * 1e6))
	require.NoError(t, err)
	assert.Equal(t, 1000000, a.Threshold())
}

func TestModeFromString(t *testing.T) {
	m, err := ModeFromString("Lazy")
	if err != nil || m != Lazy {
		t.Errorf("expected Lazy, have %s (%v)", m, err)
	}
	if _, err = ModeFromString("sometimes"); refsets.CodeOf(err) != refsets.InvalidArgument {
		t.Errorf("expected invalid argument error, have %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 3, Compaction(Guaranteed))
	snap := a.Snapshot()
	a.Remove(2)
	a.Add(4)
	assert.Equal(t, []int{1, 2, 3}, snap)
	assert.Equal(t, []int{1, 3, 4}, a.Snapshot())
}

func TestZeroValuesAreNotHoles(t *testing.T) {
	a, _ := New[int](Compaction(Manual))
	a.Add(0)
	a.Add(1)
	a.Remove(1)
	assert.Equal(t, []int{0}, slices.Collect(a.Values()))
	var p *int
	b, _ := New[*int]()
	b.Add(p)
	if !b.Has(nil) || b.Len() != 1 {
		t.Errorf("expected nil pointer to be a regular value")
	}
}

func TestShiftAndPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a, _ := New[string](Deduplicate(false), Compaction(Manual))
	for _, v := range []string{"a", "b", "a", "c"} {
		a.Add(v)
	}
	if v, ok := a.Shift(); !ok || v != "a" {
		t.Errorf("expected to shift 'a', have %q", v)
	}
	assert.Equal(t, []string{"b", "a", "c"}, a.Snapshot())
	if v, ok := a.Pop(); !ok || v != "c" {
		t.Errorf("expected to pop 'c', have %q", v)
	}
	if v, _ := a.Front(); v != "b" {
		t.Errorf("expected front to be 'b', is %q", v)
	}
	if v, _ := a.Back(); v != "a" {
		t.Errorf("expected back to be 'a', is %q", v)
	}
	require.NoError(t, a.Verify())
	a.Pop()
	a.Shift()
	if _, ok := a.Pop(); ok {
		t.Errorf("expected array to be empty")
	}
	if _, ok := a.Shift(); ok {
		t.Errorf("expected array to be empty")
	}
	require.NoError(t, a.Verify())
	a.Add("d")
	if v, _ := a.Front(); v != "d" {
		t.Errorf("expected front to be 'd', is %q", v)
	}
}

func TestClear(t *testing.T) {
	a := newInts(t, 100, Compaction(Manual))
	a.Remove(50)
	a.Clear()
	if a.Len() != 0 || a.Dirty() != 0 || a.Has(1) {
		t.Errorf("expected empty array after clear")
	}
	a.Add(1)
	assert.Equal(t, []int{1}, a.Snapshot())
	require.NoError(t, a.Verify())
}

func TestCursorSeesValuesAtCreation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 5, Compaction(Manual))
	c := a.Cursor()
	first, _ := c.Next()
	a.Remove(3)
	a.Compact()
	a.Remove(4)
	a.Add(6)
	rest := []int{first}
	for v, ok := c.Next(); ok; v, ok = c.Next() {
		rest = append(rest, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rest)
	assert.Equal(t, []int{1, 2, 5, 6}, slices.Collect(a.Values()))
	// removal without compaction, after the backing array has grown
	b := newInts(t, 3, Compaction(Manual))
	c = b.Cursor()
	for i := 10; i < 100; i++ {
		b.Add(i)
	}
	b.Remove(2)
	var values []int
	for v, ok := c.Next(); ok; v, ok = c.Next() {
		values = append(values, v)
	}
	assert.Equal(t, []int{1, 2, 3}, values)
	require.NoError(t, b.Verify())
}

func TestCursorCopiesOnlyWhenShared(t *testing.T) {
	a := newInts(t, 4, Compaction(Manual))
	for range a.Values() {
	}
	gen := a.gen
	a.Remove(1)
	if a.gen != gen {
		t.Errorf("slots must not be copied after the traversal has finished")
	}
	c := a.Cursor()
	c.Stop()
	a.Remove(2)
	if a.gen != gen {
		t.Errorf("slots must not be copied after the traversal has been stopped")
	}
	c = a.Cursor()
	a.Remove(3)
	if a.gen == gen {
		t.Errorf("slots must be copied while a cursor is reading them")
	}
	v, _ := c.Next()
	assert.Equal(t, 3, v)
	assert.Equal(t, []int{4}, a.Snapshot())
}

func TestNaNIsAValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	nan := math.NaN()
	a, _ := New[float64](Compaction(Manual))
	a.Add(nan)
	if a.Add(math.NaN()) {
		t.Errorf("expected second NaN to be rejected as a duplicate")
	}
	a.Add(1)
	if a.Len() != 2 || !a.Has(nan) || a.Count(nan) != 1 {
		t.Errorf("expected one NaN, have len=%d, count=%d", a.Len(), a.Count(nan))
	}
	require.NoError(t, a.Verify())
	a.Compact()
	require.NoError(t, a.Verify())
	if !a.Remove(nan) || a.Has(nan) || a.Len() != 1 {
		t.Errorf("expected NaN to be removed, len=%d", a.Len())
	}
	require.NoError(t, a.Verify())
	m, _ := New[float64](Deduplicate(false), Compaction(Manual))
	for i := 0; i < 3; i++ {
		m.Add(nan)
	}
	m.Add(2)
	assert.Equal(t, 3, m.Count(nan))
	m.RemoveN(nan, 2)
	assert.Equal(t, 1, m.Count(nan))
	require.NoError(t, m.Verify())
	m.Compact()
	require.NoError(t, m.Verify())
	if v, _ := m.Shift(); !math.IsNaN(v) {
		t.Errorf("expected to shift the remaining NaN, have %v", v)
	}
	assert.Equal(t, 0, m.Count(nan))
}

// forgetfulIndex loses the last value when re-indexing.
type forgetfulIndex[T comparable] struct {
	ValueIndex[T]
}

func (ix forgetfulIndex[T]) Reindex(dense []T) {
	ix.ValueIndex.Reindex(dense[:len(dense)-1])
}

func TestVerifyAfterCompaction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	conf := testadapter.New()
	conf.Set(VerifyCompactionKey, "true")
	gconf.Initialize(conf)
	defer gconf.Initialize(testadapter.New())
	//
	a := newInts(t, 5, Compaction(Manual))
	a.Remove(2)
	a.Compact() // healthy, must not panic
	assert.Equal(t, []int{1, 3, 4, 5}, a.Snapshot())
	a.index = forgetfulIndex[int]{a.index}
	a.Remove(3)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected corrupt compaction to panic")
		}
		err, _ := r.(error)
		var e *refsets.Error
		if !errors.As(err, &e) || e.Code != refsets.InternalError {
			t.Errorf("expected panic with internal error, have %v", r)
		}
	}()
	a.Compact()
}

func TestFrom(t *testing.T) {
	a, err := From(slices.Values([]string{"a", "b", "a", "c"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, a.Snapshot())
	a, err = From(slices.Values([]string{"a", "b", "a"}), Deduplicate(false))
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	_, err = From[string](nil, HoleThreshold(-1))
	require.Error(t, err)
}

func TestVerifyDetectsCorruption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.holes")
	defer teardown()
	//
	a := newInts(t, 4, Compaction(Manual))
	a.dirty = 2
	a.slots[1] = Value(42)
	err := a.Verify()
	require.Error(t, err)
	if !errors.Is(err, refsets.ErrInternal) {
		t.Errorf("expected internal error, have %v", err)
	}
}
