package dartrie

import (
	"fmt"
	"sort"
)

// record is one key reduced to its code-unit sequence plus its value,
// ready for the node builder. Records are kept sorted by code sequence
// (not necessarily by the original key text, since code assignment
// order need not track rune order — see buildCore).
type record struct {
	codes []Code
	value uint32
}

// rangeNode is a node awaiting placement: the span [left,right) of
// records sharing a common prefix up to depth, reached via code.
type rangeNode struct {
	code  Code
	depth int
	left  int
	right int
}

// builder runs the recursive double-array node placement algorithm
// (spec §4.C) over a sorted record set, threading claimed cells out of
// a freeList and, when tailThreshold > 0, collapsing single-key
// subtrees into an out-of-line tailStore entry (spec §4.F).
type builder struct {
	arr           *cellArray
	fl            *freeList
	recs          []record
	tailThreshold int
	tail          *tailStore
	size          int32 // highest claimed index + 1
	stats         buildStats
}

func newBuilder(recs []record, tailThreshold int) *builder {
	initial := len(recs)*2 + 16
	arr := newCellArray(initial)
	b := &builder{
		arr:           arr,
		fl:            newFreeList(arr),
		recs:          recs,
		tailThreshold: tailThreshold,
		size:          1,
	}
	if tailThreshold > 0 {
		b.tail = &tailStore{}
	}
	return b
}

// build runs the full placement, recursing from the root over every
// record, and then truncates the array after the highest claimed cell.
func (b *builder) build() error {
	root := rangeNode{code: sentinelCode, depth: 0, left: 0, right: len(b.recs)}
	children, err := b.fetch(root)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return ErrEmptyKey
	}
	if err := b.insert(0, children); err != nil {
		return err
	}
	b.arr.truncate(int(b.size))
	return nil
}

// fetch partitions parent's record range by the code unit at its
// depth: one partition per distinct code, with the sentinel (code 0)
// partition, if any, ordered first since it is always the smallest
// code. Records must already be sorted by code sequence; fetch also
// re-validates that ordering and rejects drift.
func (b *builder) fetch(parent rangeNode) ([]rangeNode, error) {
	var prev Code
	havePrev := false
	children := make([]rangeNode, 0, 4)
	for i := parent.left; i < parent.right; i++ {
		codes := b.recs[i].codes
		if len(codes) < parent.depth {
			continue
		}
		cur := sentinelCode
		if len(codes) != parent.depth {
			cur = codes[parent.depth]
		}
		if havePrev && cur < prev {
			return nil, fmt.Errorf("%w: at depth %d", ErrUnsortedInput, parent.depth)
		}
		if havePrev && cur == prev {
			continue
		}
		if len(children) > 0 {
			children[len(children)-1].right = i
		}
		children = append(children, rangeNode{code: cur, depth: parent.depth + 1, left: i})
		prev, havePrev = cur, true
	}
	if len(children) > 0 {
		children[len(children)-1].right = parent.right
	}
	return children, nil
}

// insert claims a base for children (all siblings reached from
// parentIdx), writes parentIdx's base, reserves every sibling cell, and
// only then recurses into every non-terminal child.
func (b *builder) insert(parentIdx int32, children []rangeNode) error {
	base, err := b.findBase(children)
	if err != nil {
		return err
	}
	b.arr.base[parentIdx] = base
	if top := base + int32(children[len(children)-1].code) + 1; top > b.size {
		b.size = top
	}
	for _, c := range children {
		b.fl.pop(base + int32(c.code))
	}

	for _, c := range children {
		idx := base + int32(c.code)

		switch {
		case c.code == sentinelCode:
			if int64(b.recs[c.left].value) > maxValue {
				return ErrValueOutOfRange
			}
			b.arr.base[idx] = int32(b.recs[c.left].value)
			b.arr.check[idx] = packCheck(tagLeaf, parentIdx)
			b.stats.leaves++
			b.stats.occupied++

		case b.tailThreshold > 0 && c.right-c.left == 1 && len(b.recs[c.left].codes)-c.depth >= b.tailThreshold:
			rec := b.recs[c.left]
			off := b.tail.append(rec.codes[c.depth:], rec.value)
			b.arr.base[idx] = int32(off)
			b.arr.check[idx] = packCheck(tagLink, parentIdx)
			b.stats.links++
			b.stats.occupied++

		default:
			b.arr.check[idx] = packCheck(tagInternal, parentIdx)
			b.stats.occupied++
			grandchildren, err := b.fetch(c)
			if err != nil {
				return err
			}
			if err := b.insert(idx, grandchildren); err != nil {
				return err
			}
		}
	}
	return nil
}

// findBase searches the free list for the first base such that every
// child in children lands on a simultaneously free cell, in free-list
// order (deterministic, and cache-friendly on the low end of the
// array). It grows the array as needed when no candidate fits yet.
func (b *builder) findBase(children []rangeNode) (int32, error) {
	first := children[0].code
	last := children[len(children)-1].code

	for {
		cand := b.fl.head
		for cand != 0 {
			f := cand - 1
			base := f - int32(first)
			if base < 0 {
				cand = b.arr.base[f]
				continue
			}
			need := int(base) + int(last) + 1
			if need > maxCellIndex+1 {
				return 0, ErrScaleExceeded
			}
			if need > b.arr.len() {
				b.fl.extend(need)
			}
			ok := true
			for _, c := range children {
				if !b.fl.isFree(base + int32(c.code)) {
					ok = false
					break
				}
			}
			if ok {
				return base, nil
			}
			cand = b.arr.base[f]
		}
		// Free list exhausted without a fit: grow and retry.
		grown := b.arr.len() + b.arr.len()/2 + 16
		if grown > maxCellIndex+1 {
			grown = maxCellIndex + 1
		}
		if grown <= b.arr.len() {
			return 0, ErrScaleExceeded
		}
		b.fl.extend(grown)
	}
}

// buildCore validates, sorts, and builds a double array (and, when
// cfg.tailThreshold > 0, a tail store) from a key/value set.
func buildCore(keys []string, values []uint32, cfg buildConfig) (*cellArray, *CharMapper, *tailStore, Statistics, error) {
	if len(keys) == 0 {
		return nil, nil, nil, Statistics{}, ErrEmptyKey
	}
	for i, k := range keys {
		if k == "" {
			return nil, nil, nil, Statistics{}, ErrEmptyKey
		}
		if i > 0 && !(keys[i-1] < k) {
			return nil, nil, nil, Statistics{}, ErrUnsortedInput
		}
	}

	mapper := buildCharMapper(keys, cfg.codeOrder)
	recs := make([]record, len(keys))
	for i, k := range keys {
		codes, _ := mapper.encode(k) // every rune was observed while building mapper
		recs[i] = record{codes: codes, value: values[i]}
	}
	sortRecords(recs)

	b := newBuilder(recs, cfg.tailThreshold)
	if err := b.build(); err != nil {
		return nil, nil, nil, Statistics{}, err
	}

	tailBytes := 0
	if b.tail != nil {
		tailBytes = b.tail.bytes()
	}
	return b.arr, mapper, b.tail, b.stats.finish(b.arr.len(), tailBytes), nil
}

// sortRecords orders records by code sequence, lexicographically, with
// a record whose codes are a strict prefix of another sorting first
// (the implicit end-of-key sentinel is smaller than any real code).
// This need not agree with the original keys' text order once code
// assignment departs from rune order (e.g. CodeOrderFrequency), so the
// node builder always re-derives its own working order here rather
// than trusting the caller-supplied sort.
func sortRecords(recs []record) {
	sort.SliceStable(recs, func(i, j int) bool { return lessCodes(recs[i].codes, recs[j].codes) })
}

func lessCodes(a, b []Code) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
