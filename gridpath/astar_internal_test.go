package gridpath

import (
	"container/heap"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLattice_MoveOrder(t *testing.T) {
	diagonal := 1.5
	dc := diagonal * math.Sqrt2
	want := []move{
		{cell{4, 0}, 2},    // +x
		{cell{-4, 0}, 2},   // −x
		{cell{0, 4}, 2},    // +y
		{cell{0, -4}, 2},   // −y
		{cell{3, 3}, dc},   // (+,+)
		{cell{-3, -3}, dc}, // (−,−)
		{cell{3, -3}, dc},  // (+,−)
		{cell{-3, 3}, dc},  // (−,+)
	}
	assert.Equal(t, want, lattice(2, diagonal))
}

func TestOpenHeap_TiesPopInDiscoveryOrder(t *testing.T) {
	h := &openHeap{}
	for _, seq := range []int{3, 0, 2, 1} {
		heap.Push(h, &state{f: 5, seq: seq, slot: -1})
	}
	heap.Push(h, &state{f: 4, seq: 9, slot: -1})

	var got []int
	for h.Len() > 0 {
		got = append(got, heap.Pop(h).(*state).seq)
	}
	assert.Equal(t, []int{9, 0, 1, 2, 3}, got)
}

func TestOpenHeap_ImprovedStateKeepsSeq(t *testing.T) {
	h := &openHeap{}
	early := &state{f: 6, seq: 0, slot: -1}
	late := &state{f: 7, seq: 1, slot: -1}
	heap.Push(h, early)
	heap.Push(h, late)

	// late improves to tie with early; early was discovered first.
	late.f = 6
	heap.Fix(h, late.slot)

	assert.Same(t, early, heap.Pop(h))
	assert.Same(t, late, heap.Pop(h))
	assert.Equal(t, -1, late.slot)
}
