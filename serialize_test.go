package dartrie_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dartrie/dartrie"
)

func TestTrie_Serialization_RoundTrips(t *testing.T) {
	keys := []string{"alpha", "alphabet", "beta", "gamma", "東京", "東京都"}
	values := []uint32{10, 20, 30, 40, 50, 60}

	trie, err := dartrie.FromRecords(keys, values)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, trie.Save(&buf))

	loaded, err := dartrie.LoadTrie(&buf)
	require.NoError(t, err)

	for i, k := range keys {
		v, ok := loaded.ExactMatch(k)
		require.True(t, ok)
		assert.Equal(t, values[i], v)
	}

	for _, absent := range []string{"al", "alph", "be", "delta"} {
		_, ok := loaded.ExactMatch(absent)
		assert.False(t, ok)
	}

	hits := loaded.CommonPrefixSearchSlice("alphabetized", 0)
	assert.Equal(t, trie.CommonPrefixSearchSlice("alphabetized", 0), hits)
}

func TestTrie_Load_RejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 32))
	_, err := dartrie.LoadTrie(&buf)
	assert.ErrorIs(t, err, dartrie.ErrMalformed)
}

func TestTrie_Load_RejectsTruncatedHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 2, 3})
	_, err := dartrie.LoadTrie(&buf)
	assert.ErrorIs(t, err, dartrie.ErrMalformed)
}

func TestTrie_Load_RejectsWrongVariant(t *testing.T) {
	mp, err := dartrie.FromKeysMinimalPrefix([]string{"a", "ab"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, mp.Save(&buf))

	_, err = dartrie.LoadTrie(&buf) // reduced loader on an mp-variant stream
	assert.ErrorIs(t, err, dartrie.ErrMalformed)
}
