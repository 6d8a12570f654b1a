package dartrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dartrie/dartrie"
)

func TestTrie_ExactMatch_Scenario1(t *testing.T) {
	trie, err := dartrie.FromRecords([]string{"a", "ab", "abc"}, []uint32{10, 20, 30})
	require.NoError(t, err)

	v, ok := trie.ExactMatch("ab")
	require.True(t, ok)
	assert.Equal(t, uint32(20), v)

	_, ok = trie.ExactMatch("abcd")
	assert.False(t, ok)
}

func TestTrie_CommonPrefixSearch_Scenario1(t *testing.T) {
	trie, err := dartrie.FromRecords([]string{"a", "ab", "abc"}, []uint32{10, 20, 30})
	require.NoError(t, err)

	var hits []dartrie.Hit
	for h := range trie.CommonPrefixSearch("abcd", 0) {
		hits = append(hits, h)
	}
	require.Equal(t, []dartrie.Hit{{End: 1, Value: 10}, {End: 2, Value: 20}, {End: 3, Value: 30}}, hits)
}

func TestTrie_CJK_Scenario2(t *testing.T) {
	keys := []string{"京都", "東京", "東京都"}
	trie, err := dartrie.FromRecords(keys, []uint32{3, 1, 2})
	require.NoError(t, err)

	v, ok := trie.ExactMatch("東京都")
	require.True(t, ok)
	assert.Equal(t, uint32(2), v)

	var hits []dartrie.Hit
	for h := range trie.CommonPrefixSearch("東京都", 0) {
		hits = append(hits, h)
	}
	require.Equal(t, []dartrie.Hit{
		{End: len("東京"), Value: 1},
		{End: len("東京都"), Value: 2},
	}, hits)
}

func TestTrie_PrefixNotSeparateKey_Scenario3(t *testing.T) {
	trie, err := dartrie.FromRecords([]string{"apple", "apricot"}, []uint32{1, 2})
	require.NoError(t, err)

	_, ok := trie.ExactMatch("app")
	assert.False(t, ok)

	v, ok := trie.ExactMatch("apricot")
	require.True(t, ok)
	assert.Equal(t, uint32(2), v)
}

func TestTrie_SingleKey_Scenario4(t *testing.T) {
	trie, err := dartrie.FromRecords([]string{"a"}, []uint32{0})
	require.NoError(t, err)

	_, ok := trie.ExactMatch("b")
	assert.False(t, ok)

	hits := trie.CommonPrefixSearchSlice("a", 0)
	assert.Equal(t, []dartrie.Hit{{End: 1, Value: 0}}, hits)

	assert.Empty(t, trie.CommonPrefixSearchSlice("", 0))
}

func TestTrie_UnsortedInput_Scenario5(t *testing.T) {
	_, err := dartrie.FromKeys([]string{"b", "a"})
	assert.ErrorIs(t, err, dartrie.ErrUnsortedInput)
}

func TestTrie_DuplicateKeyRejected(t *testing.T) {
	_, err := dartrie.FromKeys([]string{"a", "a", "b"})
	assert.ErrorIs(t, err, dartrie.ErrUnsortedInput)
}

func TestTrie_EmptyKeyRejected(t *testing.T) {
	_, err := dartrie.FromKeys([]string{""})
	assert.ErrorIs(t, err, dartrie.ErrEmptyKey)
}

func TestTrie_NoKeysRejected(t *testing.T) {
	_, err := dartrie.FromKeys(nil)
	assert.ErrorIs(t, err, dartrie.ErrEmptyKey)
}

func TestTrie_FromKeys_ValuesAreInsertionPosition(t *testing.T) {
	sorted := []string{"alpha", "beta", "delta", "gamma"}

	trie, err := dartrie.FromKeys(sorted)
	require.NoError(t, err)
	for i, k := range sorted {
		v, ok := trie.ExactMatch(k)
		require.True(t, ok)
		assert.Equal(t, uint32(i), v)
	}
}

func TestTrie_ExactMatchAllKeysAndRejectsAbsent(t *testing.T) {
	keys := []string{"ant", "anthem", "anthill", "bee", "beetle", "cat"}
	values := make([]uint32, len(keys))
	for i := range values {
		values[i] = uint32(i * 7)
	}
	trie, err := dartrie.FromRecords(keys, values)
	require.NoError(t, err)

	for i, k := range keys {
		v, ok := trie.ExactMatch(k)
		require.True(t, ok, "key %q should be found", k)
		assert.Equal(t, values[i], v)
	}

	for _, absent := range []string{"an", "anthe", "be", "caterpillar", "dog"} {
		_, ok := trie.ExactMatch(absent)
		assert.False(t, ok, "key %q should be absent", absent)
	}
}

func TestTrie_CommonPrefixSearch_OrderingProperty(t *testing.T) {
	keys := []string{"a", "ab", "abc", "abcd"}
	trie, err := dartrie.FromKeys(keys)
	require.NoError(t, err)

	hits := trie.CommonPrefixSearchSlice("abcde", 0)
	require.Len(t, hits, 4)
	for i := 1; i < len(hits); i++ {
		assert.Less(t, hits[i-1].End, hits[i].End)
	}
}

func TestTrie_UnknownCharacterStopsSearch(t *testing.T) {
	trie, err := dartrie.FromKeys([]string{"ab", "abc"})
	require.NoError(t, err)

	hits := trie.CommonPrefixSearchSlice("ab€c", 0)
	assert.Equal(t, []dartrie.Hit{{End: 2, Value: 0}}, hits)
}

func TestTrie_HeapBytesAndStatsAreNonZero(t *testing.T) {
	keys := []string{"a", "ab", "abc", "b", "bc"}
	trie, err := dartrie.FromKeys(keys)
	require.NoError(t, err)

	assert.Positive(t, trie.HeapBytes())
	stats := trie.Stats()
	assert.Positive(t, stats.Cells)
	assert.Equal(t, len(keys), stats.Leaves) // every key ends at exactly one leaf
	assert.Zero(t, stats.Links)              // the reduced variant never collapses
	assert.InDelta(t, float64(stats.Occupied)/float64(stats.Cells), stats.LoadFactor, 1e-9)
}
