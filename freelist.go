package dartrie

import "github.com/bits-and-blooms/bitset"

// freeList is the doubly linked list of unused cells threaded through
// cellArray's own base/check words: an empty cell's base holds
// "next free index + 1" (0 meaning none) and its check holds a
// tagEmpty-tagged "prev free index + 1". No separate allocation is
// needed for the list, and it vanishes naturally as cells are claimed.
//
// occupied mirrors the same information as a bitset so the node
// builder can O(1)-test whether a candidate base's required child
// cells are simultaneously free without chasing pointers, the same
// popcount-friendly membership test github.com/bits-and-blooms/bitset
// is used for elsewhere in this corpus (gaissmai/bart's node child and
// prefix trees).
type freeList struct {
	arr      *cellArray
	occupied *bitset.BitSet
	head     int32 // 1-based index of first free cell, 0 if none
	tail     int32 // 1-based index of last free cell, 0 if none
}

// newFreeList builds a free list over arr, with cell 0 pre-reserved
// for the root and therefore never part of the chain.
func newFreeList(arr *cellArray) *freeList {
	fl := &freeList{arr: arr, occupied: bitset.New(uint(arr.len()))}
	fl.occupied.Set(0)
	for i := 1; i < arr.len(); i++ {
		fl.linkTail(int32(i))
	}
	return fl
}

// extend grows the backing array to at least n cells and threads the
// newly added cells onto the tail of the free list.
func (fl *freeList) extend(n int) {
	old := fl.arr.len()
	if n <= old {
		return
	}
	fl.arr.grow(n)
	for i := old; i < n; i++ {
		fl.linkTail(int32(i))
	}
}

func (fl *freeList) linkTail(i int32) {
	fl.arr.base[i] = 0
	fl.arr.check[i] = packCheck(tagEmpty, fl.tail)
	if fl.tail != 0 {
		fl.arr.base[fl.tail-1] = i + 1
	} else {
		fl.head = i + 1
	}
	fl.tail = i + 1
}

// pop removes cell i from the free list and marks it occupied. i must
// currently be free.
func (fl *freeList) pop(i int32) {
	prev := unpackIdx(fl.arr.check[i])
	next := fl.arr.base[i]
	if prev != 0 {
		fl.arr.base[prev-1] = next
	} else {
		fl.head = next
	}
	if next != 0 {
		fl.arr.check[next-1] = packCheck(tagEmpty, prev)
	} else {
		fl.tail = prev
	}
	fl.occupied.Set(uint(i))
}

// isFree reports whether cell i is currently unoccupied. i must be
// within the array's current bounds.
func (fl *freeList) isFree(i int32) bool {
	return !fl.occupied.Test(uint(i))
}
