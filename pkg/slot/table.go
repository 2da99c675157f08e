package slot

import (
	"container/heap"
	"iter"
)

type entry[T any] struct {
	val  T
	live bool
}

// Table is an arena of values addressed by stable integer handles.
//
// The zero value is an empty table ready to use.
type Table[T any] struct {
	slots []entry[T]
	free  freeList
	count int
}

// New creates an empty table with room for capacity values.
func New[T any](capacity int) *Table[T] {
	return &Table[T]{slots: make([]entry[T], 0, max(capacity, 0))}
}

// Insert stores v and returns its handle. The lowest free handle is reused
// if one exists; otherwise the table grows by one slot.
func (t *Table[T]) Insert(v T) int {
	t.count++
	if t.free.Len() > 0 {
		i := heap.Pop(&t.free).(int)
		t.slots[i] = entry[T]{val: v, live: true}
		return i
	}
	t.slots = append(t.slots, entry[T]{val: v, live: true})
	return len(t.slots) - 1
}

// Remove frees the slot at i and returns the value it held.
// It reports false, and does nothing, if i is not live.
func (t *Table[T]) Remove(i int) (T, bool) {
	var zero T
	if !t.Contains(i) {
		return zero, false
	}
	v := t.slots[i].val
	t.slots[i] = entry[T]{}
	heap.Push(&t.free, i)
	t.count--
	return v, true
}

// Contains reports whether i is a live handle.
func (t *Table[T]) Contains(i int) bool {
	return i >= 0 && i < len(t.slots) && t.slots[i].live
}

// Get returns the value at i and whether i is live.
func (t *Table[T]) Get(i int) (T, bool) {
	if !t.Contains(i) {
		var zero T
		return zero, false
	}
	return t.slots[i].val, true
}

// Ptr returns a pointer to the value at i, or nil if i is not live.
// The pointer is invalidated by the next Insert.
func (t *Table[T]) Ptr(i int) *T {
	if !t.Contains(i) {
		return nil
	}
	return &t.slots[i].val
}

// Set replaces the value at a live handle. It reports false if i is not live.
func (t *Table[T]) Set(i int, v T) bool {
	if !t.Contains(i) {
		return false
	}
	t.slots[i].val = v
	return true
}

// Bound returns one past the highest handle ever issued.
func (t *Table[T]) Bound() int { return len(t.slots) }

// Len returns the number of live values.
func (t *Table[T]) Len() int { return t.count }

// Holes returns the number of freed slots below Bound.
func (t *Table[T]) Holes() int { return len(t.slots) - t.count }

// All iterates live handles and values in ascending handle order.
func (t *Table[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range t.slots {
			if !t.slots[i].live {
				continue
			}
			if !yield(i, t.slots[i].val) {
				return
			}
		}
	}
}

// Indices returns all live handles in ascending order.
func (t *Table[T]) Indices() []int {
	out := make([]int, 0, t.count)
	for i := range t.slots {
		if t.slots[i].live {
			out = append(out, i)
		}
	}
	return out
}

// Last returns the highest live handle, or -1 for an empty table.
func (t *Table[T]) Last() int {
	for i := len(t.slots) - 1; i >= 0; i-- {
		if t.slots[i].live {
			return i
		}
	}
	return -1
}

// Clear drops every slot and resets Bound to zero.
func (t *Table[T]) Clear() {
	clear(t.slots)
	t.slots = t.slots[:0]
	t.free = t.free[:0]
	t.count = 0
}

// TrimTo drops trailing free slots until Bound is at most bound.
// Live slots are never dropped, so Bound may remain above bound.
func (t *Table[T]) TrimTo(bound int) {
	n := len(t.slots)
	for n > bound && n > 0 && !t.slots[n-1].live {
		n--
	}
	if n == len(t.slots) {
		return
	}
	clear(t.slots[n:])
	t.slots = t.slots[:n]
	kept := t.free[:0]
	for _, i := range t.free {
		if i < n {
			kept = append(kept, i)
		}
	}
	t.free = kept
	heap.Init(&t.free)
}

// Clone returns a copy of the table with identical handles and holes.
// Values are copied by assignment.
func (t *Table[T]) Clone() *Table[T] {
	out := &Table[T]{
		slots: make([]entry[T], len(t.slots), cap(t.slots)),
		free:  make(freeList, len(t.free)),
		count: t.count,
	}
	copy(out.slots, t.slots)
	copy(out.free, t.free)
	return out
}

// freeList is a min-heap of free handles.
type freeList []int

func (f freeList) Len() int           { return len(f) }
func (f freeList) Less(i, j int) bool { return f[i] < f[j] }
func (f freeList) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *freeList) Push(x any)        { *f = append(*f, x.(int)) }
func (f *freeList) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}
