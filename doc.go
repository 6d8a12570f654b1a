// Package dartrie implements a character-wise double-array trie for
// static string-to-integer dictionaries, tuned for multibyte text such
// as CJK. It provides two concrete, independent trie types that share
// the same query surface:
//
//   - Trie, the reduced double-array, optimized for query speed.
//   - MinimalPrefixTrie, which stores long single-key tails out of line
//     in a side buffer to save space when keys share short prefixes
//     but diverge into long suffixes.
//
// Both are built once from a sorted, unique key set and are immutable
// and safely shared across concurrent readers afterward. There is no
// mutation API and no wildcard or fuzzy matching; see the package-level
// tests for the exact query contracts.
package dartrie
