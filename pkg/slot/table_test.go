package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertSequential(t *testing.T) {
	tbl := New[string](0)
	for i, v := range []string{"a", "b", "c"} {
		require.Equal(t, i, tbl.Insert(v))
	}
	assert.Equal(t, 3, tbl.Bound())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 0, tbl.Holes())
}

func TestRemoveAndReuse(t *testing.T) {
	var tbl Table[int]
	for i := 0; i < 5; i++ {
		tbl.Insert(i * 10)
	}

	v, ok := tbl.Remove(2)
	require.True(t, ok)
	assert.Equal(t, 20, v)
	assert.Equal(t, 5, tbl.Bound())
	assert.Equal(t, 4, tbl.Len())
	assert.False(t, tbl.Contains(2))

	assert.Equal(t, 2, tbl.Insert(99))
	got, ok := tbl.Get(2)
	require.True(t, ok)
	assert.Equal(t, 99, got)
	assert.Equal(t, 5, tbl.Bound())
}

func TestReuseLowestFirst(t *testing.T) {
	var tbl Table[int]
	for i := 0; i < 6; i++ {
		tbl.Insert(i)
	}
	tbl.Remove(4)
	tbl.Remove(1)
	tbl.Remove(3)

	assert.Equal(t, 1, tbl.Insert(0))
	assert.Equal(t, 3, tbl.Insert(0))
	assert.Equal(t, 4, tbl.Insert(0))
	assert.Equal(t, 6, tbl.Insert(0))
}

func TestRemoveAbsent(t *testing.T) {
	var tbl Table[int]
	tbl.Insert(1)

	_, ok := tbl.Remove(5)
	assert.False(t, ok)
	_, ok = tbl.Remove(-1)
	assert.False(t, ok)

	tbl.Remove(0)
	_, ok = tbl.Remove(0)
	assert.False(t, ok, "double remove")
	assert.Equal(t, 0, tbl.Len())
}

func TestGetSetPtr(t *testing.T) {
	var tbl Table[[]int]
	h := tbl.Insert([]int{1})

	require.True(t, tbl.Set(h, []int{2}))
	p := tbl.Ptr(h)
	require.NotNil(t, p)
	*p = append(*p, 3)

	got, _ := tbl.Get(h)
	assert.Equal(t, []int{2, 3}, got)

	assert.False(t, tbl.Set(7, nil))
	assert.Nil(t, tbl.Ptr(7))
}

func TestAllAndIndices(t *testing.T) {
	var tbl Table[string]
	tbl.Insert("a")
	tbl.Insert("b")
	tbl.Insert("c")
	tbl.Remove(1)

	var keys []int
	var vals []string
	for k, v := range tbl.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{0, 2}, keys)
	assert.Equal(t, []string{"a", "c"}, vals)
	assert.Equal(t, []int{0, 2}, tbl.Indices())
	assert.Equal(t, 2, tbl.Last())
}

func TestClear(t *testing.T) {
	var tbl Table[int]
	tbl.Insert(1)
	tbl.Insert(2)
	tbl.Remove(0)
	tbl.Clear()

	assert.Equal(t, 0, tbl.Bound())
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, -1, tbl.Last())
	assert.Equal(t, 0, tbl.Insert(5))
}

func TestTrimTo(t *testing.T) {
	var tbl Table[int]
	for i := 0; i < 5; i++ {
		tbl.Insert(i)
	}
	tbl.Remove(1)
	tbl.Remove(3)
	tbl.Remove(4)

	tbl.TrimTo(3)
	assert.Equal(t, 3, tbl.Bound())
	assert.Equal(t, 1, tbl.Insert(0), "hole below bound survives")
	assert.Equal(t, 3, tbl.Insert(0), "trimmed holes are gone")

	tbl.TrimTo(0)
	assert.Equal(t, 4, tbl.Bound(), "live slots are never trimmed")
}

func TestClone(t *testing.T) {
	var tbl Table[int]
	tbl.Insert(1)
	tbl.Insert(2)
	tbl.Remove(0)

	c := tbl.Clone()
	c.Insert(7)
	c.Set(1, 20)

	assert.False(t, tbl.Contains(0))
	v, _ := tbl.Get(1)
	assert.Equal(t, 2, v)
	assert.Equal(t, tbl.Bound(), c.Bound())
	assert.Equal(t, 2, c.Len())
}
