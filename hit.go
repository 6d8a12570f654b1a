package dartrie

// Hit is one match from a common-prefix search: a dictionary key that
// is a prefix of the searched text, together with its value. End is
// the byte offset, in the text's native encoding, immediately after
// the matched key.
type Hit struct {
	End   int
	Value uint32
}
