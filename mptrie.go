package dartrie

import (
	"iter"
	"unicode/utf8"
)

// MinimalPrefixTrie is the minimal-prefix double-array variant: once a
// subtree collapses to a single remaining key with a long enough
// suffix, that suffix moves out of the array into a side tail store
// (see tailStore), trading a little query speed for a smaller array
// when many keys share short prefixes but diverge into long tails.
//
// MinimalPrefixTrie shares Trie's query contract but is not a subclass
// of it: the two variants are independent concrete types, not related
// by runtime polymorphism.
//
// A built MinimalPrefixTrie is immutable and safe for concurrent
// read-only use.
type MinimalPrefixTrie struct {
	mapper *CharMapper
	arr    *cellArray
	tail   *tailStore
	keys   int
	stats  Statistics
}

// FromKeysMinimalPrefix builds a MinimalPrefixTrie from a sorted,
// unique key set, with values equal to each key's position.
func FromKeysMinimalPrefix(keys []string, opts ...BuildOption) (*MinimalPrefixTrie, error) {
	values := make([]uint32, len(keys))
	for i := range values {
		values[i] = uint32(i)
	}
	return FromRecordsMinimalPrefix(keys, values, opts...)
}

// FromRecordsMinimalPrefix builds a MinimalPrefixTrie from a sorted,
// unique key set with explicit values.
func FromRecordsMinimalPrefix(keys []string, values []uint32, opts ...BuildOption) (*MinimalPrefixTrie, error) {
	if len(keys) != len(values) {
		return nil, ErrValueCountMismatch
	}
	cfg := newBuildConfig(opts)
	if cfg.tailThreshold <= 0 {
		cfg.tailThreshold = defaultTailThreshold
	}
	arr, mapper, tail, stats, err := buildCore(keys, values, cfg)
	if err != nil {
		return nil, err
	}
	return &MinimalPrefixTrie{mapper: mapper, arr: arr, tail: tail, keys: len(keys), stats: stats}, nil
}

// Len reports the number of keys the trie was built from.
func (t *MinimalPrefixTrie) Len() int { return t.keys }

// Stats reports build-time counters for tuning.
func (t *MinimalPrefixTrie) Stats() Statistics { return t.stats }

// HeapBytes estimates the trie's resident memory: two int32 words per
// cell plus the tail store.
func (t *MinimalPrefixTrie) HeapBytes() int { return t.arr.len()*8 + t.tail.bytes() }

// ExactMatch looks up key and reports its value, or false if key is
// not in the dictionary.
func (t *MinimalPrefixTrie) ExactMatch(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	cur := int32(0)
	runes := []rune(key)
	for i, r := range runes {
		code, ok := t.mapper.Code(r)
		if !ok {
			return 0, false
		}
		nxt := t.arr.base[cur] + int32(code)
		if !t.landsOn(nxt, cur) {
			return 0, false
		}
		switch t.arr.tagAt(nxt) {
		case tagInternal:
			cur = nxt
		case tagLink:
			remaining := make([]Code, 0, len(runes)-i-1)
			for _, rr := range runes[i+1:] {
				c, ok := t.mapper.Code(rr)
				if !ok {
					return 0, false
				}
				remaining = append(remaining, c)
			}
			return t.tail.matchExact(int(t.arr.base[nxt]), remaining)
		default:
			return 0, false
		}
	}
	leaf := t.arr.base[cur] + int32(sentinelCode)
	if !t.landsOn(leaf, cur) || t.arr.tagAt(leaf) != tagLeaf {
		return 0, false
	}
	return uint32(t.arr.base[leaf]), true
}

// CommonPrefixSearch enumerates, in strictly increasing End order,
// every dictionary key that is a prefix of text[start:]. A key whose
// tail was collapsed into the side store contributes at most one
// emission, once its full suffix matches a prefix of the remaining
// text. The sequence is lazy and single-pass.
func (t *MinimalPrefixTrie) CommonPrefixSearch(text string, start int) iter.Seq[Hit] {
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
			if !t.landsOn(nxt, cur) {
				return
			}
			switch t.arr.tagAt(nxt) {
			case tagInternal:
				cur = nxt
				pos += size
				leaf := t.arr.base[cur] + int32(sentinelCode)
				if t.landsOn(leaf, cur) && t.arr.tagAt(leaf) == tagLeaf {
					if !yield(Hit{End: pos, Value: uint32(t.arr.base[leaf])}) {
						return
					}
				}
			case tagLink:
				pos += size
				if hit, ok := t.matchTail(int(t.arr.base[nxt]), text, pos); ok {
					yield(hit)
				}
				return
			default:
				return
			}
		}
	}
}

// matchTail walks a tail entry code-by-code against text starting at
// pos, stopping at the entry's sentinel.
func (t *MinimalPrefixTrie) matchTail(off int, text string, pos int) (Hit, bool) {
	i := 0
	for {
		w := t.tail.buf[off+i]
		if w == uint32(sentinelCode) {
			return Hit{End: pos, Value: t.tail.buf[off+i+1]}, true
		}
		if pos >= len(text) {
			return Hit{}, false
		}
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r == utf8.RuneError && size <= 1 {
			return Hit{}, false
		}
		code, ok := t.mapper.Code(r)
		if !ok || uint32(code) != w {
			return Hit{}, false
		}
		pos += size
		i++
	}
}

// CommonPrefixSearchSlice is a convenience wrapper for callers that
// want every hit materialized rather than iterated lazily.
func (t *MinimalPrefixTrie) CommonPrefixSearchSlice(text string, start int) []Hit {
	var hits []Hit
	for h := range t.CommonPrefixSearch(text, start) {
		hits = append(hits, h)
	}
	return hits
}

func (t *MinimalPrefixTrie) landsOn(idx, parent int32) bool {
	if idx < 0 || int(idx) >= t.arr.len() {
		return false
	}
	return t.arr.parentAt(idx) == parent
}
