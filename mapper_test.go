package dartrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dartrie/dartrie"
)

func TestTrie_UnknownRuneNeverMatches(t *testing.T) {
	trie, err := dartrie.FromKeys([]string{"cat", "dog"})
	require.NoError(t, err)

	_, ok := trie.ExactMatch("fish")
	assert.False(t, ok)
}

func TestTrie_CodeOrderLexicalStillAgreesOnQueries(t *testing.T) {
	keys := []string{"aa", "ab", "ba", "bb", "zz"}
	values := []uint32{1, 2, 3, 4, 5}

	freqTrie, err := dartrie.FromRecords(keys, values)
	require.NoError(t, err)
	lexTrie, err := dartrie.FromRecords(keys, values, dartrie.WithCodeOrder(dartrie.CodeOrderLexical))
	require.NoError(t, err)

	for i, k := range keys {
		fv, fok := freqTrie.ExactMatch(k)
		lv, lok := lexTrie.ExactMatch(k)
		require.True(t, fok)
		require.True(t, lok)
		assert.Equal(t, values[i], fv)
		assert.Equal(t, values[i], lv)
	}
}
