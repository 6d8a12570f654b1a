package dartrie

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// On-disk layout, little-endian throughout:
//
//	magic       uint32  "DART"
//	version     uint16
//	variant     uint8   variantReduced | variantMinimalPrefix
//	_pad        uint8
//	numCells    uint32
//	numCodes    uint32  distinct non-sentinel codes in the mapper
//	numKeys     uint32
//	tailWords   uint32  0 for the reduced variant
//	... numCodes runes, uint32 each, in code order (code i+1)
//	... numCells base words,  int32 each
//	... numCells check words, int32 each
//	... tailWords uint32 words, present only for the minimal-prefix variant
const (
	magicNumber   = uint32(0x44415254) // "DART"
	formatVersion = uint16(1)

	variantReduced       = uint8(0)
	variantMinimalPrefix = uint8(1)

	headerSize = 4 + 2 + 1 + 1 + 4 + 4 + 4 + 4
)

type header struct {
	variant   uint8
	numCells  uint32
	numCodes  uint32
	numKeys   uint32
	tailWords uint32
}

func writeHeader(w io.Writer, h header) error {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], magicNumber)
	binary.LittleEndian.PutUint16(buf[4:6], formatVersion)
	buf[6] = h.variant
	binary.LittleEndian.PutUint32(buf[8:12], h.numCells)
	binary.LittleEndian.PutUint32(buf[12:16], h.numCodes)
	binary.LittleEndian.PutUint32(buf[16:20], h.numKeys)
	binary.LittleEndian.PutUint32(buf[20:24], h.tailWords)
	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader, wantVariant uint8) (header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magicNumber {
		return header{}, fmt.Errorf("%w: bad magic", ErrMalformed)
	}
	if binary.LittleEndian.Uint16(buf[4:6]) != formatVersion {
		return header{}, fmt.Errorf("%w: unsupported format version", ErrMalformed)
	}
	h := header{
		variant:   buf[6],
		numCells:  binary.LittleEndian.Uint32(buf[8:12]),
		numCodes:  binary.LittleEndian.Uint32(buf[12:16]),
		numKeys:   binary.LittleEndian.Uint32(buf[16:20]),
		tailWords: binary.LittleEndian.Uint32(buf[20:24]),
	}
	if h.variant != wantVariant {
		return header{}, fmt.Errorf("%w: variant mismatch", ErrMalformed)
	}
	return h, nil
}

func writeMapper(w io.Writer, m *CharMapper) error {
	buf := make([]byte, 4)
	for _, r := range m.toRune[1:] {
		binary.LittleEndian.PutUint32(buf, uint32(r))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func readMapper(r io.Reader, numCodes uint32) (*CharMapper, error) {
	runes := make([]rune, numCodes)
	buf := make([]byte, 4)
	for i := range runes {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		runes[i] = rune(binary.LittleEndian.Uint32(buf))
	}
	return newCharMapper(runes), nil
}

func writeCells(w io.Writer, arr *cellArray) error {
	buf := make([]byte, 4)
	for _, v := range arr.base {
		binary.LittleEndian.PutUint32(buf, uint32(v))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	for _, v := range arr.check {
		binary.LittleEndian.PutUint32(buf, uint32(v))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func readCells(r io.Reader, numCells uint32) (*cellArray, error) {
	arr := newCellArray(int(numCells))
	buf := make([]byte, 4)
	for i := range arr.base {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		arr.base[i] = int32(binary.LittleEndian.Uint32(buf))
	}
	for i := range arr.check {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		arr.check[i] = int32(binary.LittleEndian.Uint32(buf))
	}
	return arr, nil
}

func writeTail(w io.Writer, t *tailStore) error {
	buf := make([]byte, 4)
	for _, v := range t.buf {
		binary.LittleEndian.PutUint32(buf, v)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func readTail(r io.Reader, words uint32) (*tailStore, error) {
	t := &tailStore{buf: make([]uint32, words)}
	buf := make([]byte, 4)
	for i := range t.buf {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		t.buf[i] = binary.LittleEndian.Uint32(buf)
	}
	return t, nil
}

// Save serializes t to w in dartrie's compact binary format.
func (t *Trie) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	h := header{
		variant:  variantReduced,
		numCells: uint32(t.arr.len()),
		numCodes: uint32(t.mapper.Len()),
		numKeys:  uint32(t.keys),
	}
	if err := writeHeader(bw, h); err != nil {
		return err
	}
	if err := writeMapper(bw, t.mapper); err != nil {
		return err
	}
	if err := writeCells(bw, t.arr); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadTrie deserializes a Trie previously written by Save. The result
// answers every query identically to the trie it was saved from.
func LoadTrie(r io.Reader) (*Trie, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br, variantReduced)
	if err != nil {
		return nil, err
	}
	mapper, err := readMapper(br, h.numCodes)
	if err != nil {
		return nil, err
	}
	arr, err := readCells(br, h.numCells)
	if err != nil {
		return nil, err
	}
	stats := recomputeStats(arr, 0)
	return &Trie{mapper: mapper, arr: arr, keys: int(h.numKeys), stats: stats}, nil
}

// Save serializes t to w in dartrie's compact binary format.
func (t *MinimalPrefixTrie) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	h := header{
		variant:   variantMinimalPrefix,
		numCells:  uint32(t.arr.len()),
		numCodes:  uint32(t.mapper.Len()),
		numKeys:   uint32(t.keys),
		tailWords: uint32(len(t.tail.buf)),
	}
	if err := writeHeader(bw, h); err != nil {
		return err
	}
	if err := writeMapper(bw, t.mapper); err != nil {
		return err
	}
	if err := writeCells(bw, t.arr); err != nil {
		return err
	}
	if err := writeTail(bw, t.tail); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadMinimalPrefixTrie deserializes a MinimalPrefixTrie previously
// written by Save. The result answers every query identically to the
// trie it was saved from.
func LoadMinimalPrefixTrie(r io.Reader) (*MinimalPrefixTrie, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br, variantMinimalPrefix)
	if err != nil {
		return nil, err
	}
	mapper, err := readMapper(br, h.numCodes)
	if err != nil {
		return nil, err
	}
	arr, err := readCells(br, h.numCells)
	if err != nil {
		return nil, err
	}
	tail, err := readTail(br, h.tailWords)
	if err != nil {
		return nil, err
	}
	stats := recomputeStats(arr, len(tail.buf)*4)
	return &MinimalPrefixTrie{mapper: mapper, arr: arr, tail: tail, keys: int(h.numKeys), stats: stats}, nil
}

// recomputeStats reconstructs Statistics from a loaded array, since
// the build-time counters themselves aren't part of the wire format.
func recomputeStats(arr *cellArray, tailBytes int) Statistics {
	var bs buildStats
	for i := int32(0); i < int32(arr.len()); i++ {
		switch arr.tagAt(i) {
		case tagLeaf:
			bs.leaves++
			bs.occupied++
		case tagLink:
			bs.links++
			bs.occupied++
		case tagInternal:
			bs.occupied++
		}
	}
	return bs.finish(arr.len(), tailBytes)
}
