package dartrie

import (
	"iter"
	"unicode/utf8"
)

// Trie is the reduced double-array variant: every node lives in the
// (base, check) array, with no out-of-line tail store. It favors
// query speed over size when keys don't share long divergent tails.
//
// A built Trie is immutable and safe for concurrent read-only use.
type Trie struct {
	mapper *CharMapper
	arr    *cellArray
	keys   int
	stats  Statistics
}

// FromKeys builds a Trie from a sorted, unique key set, with values
// equal to each key's position (0, 1, 2, ...).
func FromKeys(keys []string, opts ...BuildOption) (*Trie, error) {
	values := make([]uint32, len(keys))
	for i := range values {
		values[i] = uint32(i)
	}
	return FromRecords(keys, values, opts...)
}

// FromRecords builds a Trie from a sorted, unique key set with
// explicit values.
func FromRecords(keys []string, values []uint32, opts ...BuildOption) (*Trie, error) {
	if len(keys) != len(values) {
		return nil, ErrValueCountMismatch
	}
	cfg := newBuildConfig(opts)
	cfg.tailThreshold = 0 // the reduced variant never collapses
	arr, mapper, _, stats, err := buildCore(keys, values, cfg)
	if err != nil {
		return nil, err
	}
	return &Trie{mapper: mapper, arr: arr, keys: len(keys), stats: stats}, nil
}

// Len reports the number of keys the trie was built from.
func (t *Trie) Len() int { return t.keys }

// Stats reports build-time counters for tuning.
func (t *Trie) Stats() Statistics { return t.stats }

// HeapBytes estimates the trie's resident memory: two int32 words per
// cell.
func (t *Trie) HeapBytes() int { return t.arr.len() * 8 }

// ExactMatch looks up key and reports its value, or false if key is
// not in the dictionary.
func (t *Trie) ExactMatch(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	cur := int32(0)
	for _, r := range key {
		code, ok := t.mapper.Code(r)
		if !ok {
			return 0, false
		}
		nxt := t.arr.base[cur] + int32(code)
		if !t.landsOn(nxt, cur, tagInternal) {
			return 0, false
		}
		cur = nxt
	}
	leaf := t.arr.base[cur] + int32(sentinelCode)
	if !t.landsOn(leaf, cur, tagLeaf) {
		return 0, false
	}
	return uint32(t.arr.base[leaf]), true
}

// CommonPrefixSearch enumerates, in strictly increasing End order,
// every dictionary key that is a prefix of text[start:]. The sequence
// is lazy and single-pass: to search from a different offset, call
// CommonPrefixSearch again.
func (t *Trie) CommonPrefixSearch(text string, start int) iter.Seq[Hit] {
	return func(yield func(Hit) bool) {
		cur := int32(0)
		pos := start
		for pos < len(text) {
			r, size := utf8.DecodeRuneInString(text[pos:])
			if r == utf8.RuneError && size <= 1 {
				return
			}
			code, ok := t.mapper.Code(r)
			if !ok {
				return
			}
			nxt := t.arr.base[cur] + int32(code)
			if !t.landsOn(nxt, cur, tagInternal) {
				return
			}
			cur = nxt
			pos += size

			leaf := t.arr.base[cur] + int32(sentinelCode)
			if t.landsOn(leaf, cur, tagLeaf) {
				if !yield(Hit{End: pos, Value: uint32(t.arr.base[leaf])}) {
					return
				}
			}
		}
	}
}

// CommonPrefixSearchSlice is a convenience wrapper for callers that
// want every hit materialized rather than iterated lazily.
func (t *Trie) CommonPrefixSearchSlice(text string, start int) []Hit {
	var hits []Hit
	for h := range t.CommonPrefixSearch(text, start) {
		hits = append(hits, h)
	}
	return hits
}

// landsOn reports whether cell idx exists, belongs to parent, and
// carries want.
func (t *Trie) landsOn(idx, parent int32, want tag) bool {
	if idx < 0 || int(idx) >= t.arr.len() {
		return false
	}
	return t.arr.parentAt(idx) == parent && t.arr.tagAt(idx) == want
}
