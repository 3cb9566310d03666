package lazy

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/refsets"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.lazy")
	defer teardown()
	//
	cases := []struct {
		start, end int
		step       []int
		expected   []int
	}{
		{1, 10, []int{2}, []int{1, 3, 5, 7, 9}},
		{1, 11, []int{2}, []int{1, 3, 5, 7, 9, 11}},
		{1, 5, nil, []int{1, 2, 3, 4, 5}},
		{5, 1, nil, []int{5, 4, 3, 2, 1}},
		{10, 1, []int{-3}, []int{10, 7, 4, 1}},
		{10, 2, []int{-3}, []int{10, 7, 4}},
		{3, 3, nil, []int{3}},
		{3, 3, []int{-2}, []int{3}},
	}
	for i, c := range cases {
		seq, err := FromRange(c.start, c.end, c.step...)
		require.NoError(t, err, "case #%d", i)
		assert.Equal(t, c.expected, seq.Slice(), "case #%d", i)
	}
}

func TestRangeValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "refsets.lazy")
	defer teardown()
	//
	if _, err := FromRange(1, 5, 0); !errors.Is(err, refsets.ErrInvalidArgument) {
		t.Errorf("expected step 0 to be rejected, have %v", err)
	}
	if _, err := FromRange(5, 1, 1); !errors.Is(err, refsets.ErrInvalidArgument) {
		t.Errorf("expected step leading away from end to be rejected, have %v", err)
	}
	if _, err := FromRange(1, 5, 1, 2); !errors.Is(err, refsets.ErrInvalidArgument) {
		t.Errorf("expected two steps to be rejected, have %v", err)
	}
}

func TestFloatRange(t *testing.T) {
	seq, err := FromRange(0.0, 1.0, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, seq.Slice())
	seq, err = FromRange(0.0, 1.0, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 4, seq.Count())
	seq, err = FromRange(0.0, 0.3, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.1, 0.2, 0.3}, seq.Slice())
	seq, err = FromRange(0.3, 0.0, -0.1)
	require.NoError(t, err)
	down := seq.Slice()
	require.Len(t, down, 4)
	assert.Equal(t, 0.3, down[0])
	assert.Equal(t, 0.0, down[3])
}

func TestSmallIntRangeDoesNotOverflow(t *testing.T) {
	seq, err := FromRange[int8](-100, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, []int8{-100, -50, 0, 50, 100}, seq.Slice())
}

func TestFromLengthAndInfinite(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, FromLength(4).Slice())
	assert.Empty(t, FromLength(0).Slice())
	assert.Empty(t, FromLength(-3).Slice())
	assert.Equal(t, []int{0, 1, 2}, Infinite().Take(3).Slice())
	assert.Equal(t, []int{1000, 1001}, Infinite().Skip(1000).Take(2).Slice())
}

func TestEmptyAndZeroSeq(t *testing.T) {
	var zero Seq[string]
	assert.Equal(t, 0, zero.Count())
	assert.Equal(t, 0, Empty[int]().Count())
	assert.Equal(t, 0, FromIterator[int](nil).Count())
	assert.Equal(t, 0, From[int](nil).Count())
}

func TestFromGoIterator(t *testing.T) {
	seq := From(slices.Values([]string{"a", "b", "c"}))
	assert.Equal(t, []string{"a", "b", "c"}, seq.Slice())
	assert.Equal(t, []string{"a", "b", "c"}, seq.Slice(), "traversals must be restartable")
	it := seq.Iterator()
	v, _ := it.Next()
	assert.Equal(t, "a", v)
	it.Stop()
	it.Stop()
	if _, ok := it.Next(); ok {
		t.Errorf("expected stopped iterator to be exhausted")
	}
}

func TestIndependentTraversals(t *testing.T) {
	seq := FromSlice([]int{1, 2, 3})
	it1, it2 := seq.Iterator(), seq.Iterator()
	a, _ := it1.Next()
	a, _ = it1.Next()
	b, _ := it2.Next()
	if a != 2 || b != 1 {
		t.Errorf("traversals interfere: it1 at %d, it2 at %d", a, b)
	}
}
