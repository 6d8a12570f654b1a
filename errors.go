package dartrie

import "errors"

// Build and serialization error kinds. Query functions never return an
// error: unknown characters, unmatched edges, and absent keys all
// collapse to a "not found" zero value, per the package's immutable,
// read-only query contract.
var (
	// ErrUnsortedInput is returned when build input keys are not in
	// strictly increasing order (this also catches duplicates).
	ErrUnsortedInput = errors.New("dartrie: keys not sorted in strictly increasing order")

	// ErrEmptyKey is returned when a key is the empty string, or when
	// no keys at all were supplied to a builder.
	ErrEmptyKey = errors.New("dartrie: empty key")

	// ErrValueOutOfRange is returned when a value exceeds the reserved
	// value width of a cell (see maxValue).
	ErrValueOutOfRange = errors.New("dartrie: value exceeds reserved width")

	// ErrScaleExceeded is returned when the double array would need
	// more cells than the index width can address.
	ErrScaleExceeded = errors.New("dartrie: array exceeds maximum addressable size")

	// ErrMalformed is returned when a serialized trie fails its header
	// or bounds checks on load.
	ErrMalformed = errors.New("dartrie: malformed serialized trie")

	// ErrValueCountMismatch is returned by FromRecords when the number
	// of values doesn't match the number of keys.
	ErrValueCountMismatch = errors.New("dartrie: value count does not match key count")
)
