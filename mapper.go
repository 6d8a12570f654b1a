package dartrie

import "sort"

// Code is a compact per-character code unit assigned to every distinct
// rune observed in a build's key set. Code 0 is reserved as the
// end-of-key sentinel and is never assigned to a real rune.
type Code uint32

const sentinelCode Code = 0

// CodeOrder selects how CharMapper assigns codes 1..K to the distinct
// runes of a key set.
type CodeOrder int

const (
	// CodeOrderFrequency assigns small codes to the most frequent
	// runes first, packing hot edges near small base values for
	// better cache locality. This is the package default.
	CodeOrderFrequency CodeOrder = iota

	// CodeOrderLexical assigns codes in ascending rune order,
	// independent of how often each rune occurs.
	CodeOrderLexical
)

// CharMapper is the bidirectional mapping between scalar input
// characters and the compact code units the double array is built and
// queried over.
type CharMapper struct {
	toCode map[rune]Code
	toRune []rune // toRune[0] is unused filler; real codes start at 1
}

func newCharMapper(runes []rune) *CharMapper {
	m := &CharMapper{
		toCode: make(map[rune]Code, len(runes)),
		toRune: make([]rune, 1, len(runes)+1),
	}
	for i, r := range runes {
		code := Code(i + 1)
		m.toCode[r] = code
		m.toRune = append(m.toRune, r)
	}
	return m
}

// buildCharMapper scans every key and assigns a code to each distinct
// rune according to order.
func buildCharMapper(keys []string, order CodeOrder) *CharMapper {
	freq := make(map[rune]int)
	for _, k := range keys {
		for _, r := range k {
			freq[r]++
		}
	}
	runes := make([]rune, 0, len(freq))
	for r := range freq {
		runes = append(runes, r)
	}
	switch order {
	case CodeOrderLexical:
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	default: // CodeOrderFrequency
		sort.Slice(runes, func(i, j int) bool {
			if freq[runes[i]] != freq[runes[j]] {
				return freq[runes[i]] > freq[runes[j]]
			}
			return runes[i] < runes[j] // deterministic tie-break
		})
	}
	return newCharMapper(runes)
}

// Code returns the code unit assigned to r, or false if r was never
// observed in the key set this mapper was built from.
func (m *CharMapper) Code(r rune) (Code, bool) {
	c, ok := m.toCode[r]
	return c, ok
}

// Rune returns the character assigned to code c, or false for the
// sentinel code or an out-of-range code.
func (m *CharMapper) Rune(c Code) (rune, bool) {
	if c == sentinelCode || int(c) >= len(m.toRune) {
		return 0, false
	}
	return m.toRune[c], true
}

// Len reports the number of distinct non-sentinel codes this mapper
// assigns.
func (m *CharMapper) Len() int {
	return len(m.toRune) - 1
}

// encode maps every rune of s to its code, in order. It reports false
// at the first unmapped rune.
func (m *CharMapper) encode(s string) ([]Code, bool) {
	codes := make([]Code, 0, len(s))
	for _, r := range s {
		c, ok := m.toCode[r]
		if !ok {
			return nil, false
		}
		codes = append(codes, c)
	}
	return codes, true
}
