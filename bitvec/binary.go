package bitvec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"

	gojson "github.com/goccy/go-json"
)

// headerSize is the size of the encoded length prefix.
const headerSize = 8

// readChunkWords bounds each allocation while decoding from a stream, so a
// corrupt length prefix cannot reserve memory the stream does not back.
const readChunkWords = 4096

// Words returns a copy of the backing words. Together with Len it is the
// complete state of v.
func (v *BitVector) Words() []uint64 {
	return slices.Clone(v.words)
}

// FromWords rebuilds a vector from its length and words. The word count must
// be ceil(length/64); padding bits past length are cleared. words is copied.
func FromWords(length uint64, words []uint64) (*BitVector, error) {
	if length > math.MaxUint64-wordMask {
		return nil, fmt.Errorf("%w: length %d too large", ErrCorrupt, length)
	}
	if want := wordsFor(length); len(words) != want {
		return nil, &ErrWordCount{Length: length, Expected: want, Actual: len(words)}
	}
	v := &BitVector{
		words:  slices.Clone(words),
		length: length,
	}
	if v.words == nil {
		v.words = []uint64{}
	}
	v.maskTail()
	return v, nil
}

// EncodedSize returns the size in bytes of the binary encoding of v.
func (v *BitVector) EncodedSize() int {
	return headerSize + 8*len(v.words)
}

// AppendBinary appends the little-endian encoding [length][words...] to dst.
func (v *BitVector) AppendBinary(dst []byte) ([]byte, error) {
	dst = slices.Grow(dst, v.EncodedSize())
	dst = binary.LittleEndian.AppendUint64(dst, v.length)
	for _, w := range v.words {
		dst = binary.LittleEndian.AppendUint64(dst, w)
	}
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v *BitVector) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(nil)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *BitVector) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrCorrupt, len(data), headerSize)
	}
	length := binary.LittleEndian.Uint64(data)
	payload := data[headerSize:]
	if len(payload)%8 != 0 {
		return fmt.Errorf("%w: trailing %d bytes", ErrCorrupt, len(payload)%8)
	}

	words := make([]uint64, len(payload)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(payload[8*i:])
	}

	decoded, err := FromWords(length, words)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}

// WriteTo writes the binary encoding of v to w.
func (v *BitVector) WriteTo(w io.Writer) (int64, error) {
	buf, _ := v.AppendBinary(nil)
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom replaces v with a vector decoded from r.
func (v *BitVector) ReadFrom(r io.Reader) (int64, error) {
	var hdr [headerSize]byte
	n, err := io.ReadFull(r, hdr[:])
	read := int64(n)
	if err != nil {
		return read, err
	}

	length := binary.LittleEndian.Uint64(hdr[:])
	if length > math.MaxUint64-wordMask {
		return read, fmt.Errorf("%w: length %d too large", ErrCorrupt, length)
	}
	remaining := wordsFor(length)

	words := make([]uint64, 0, min(remaining, readChunkWords))
	buf := make([]byte, 8*min(remaining, readChunkWords))
	for remaining > 0 {
		chunk := min(remaining, readChunkWords)
		n, err := io.ReadFull(r, buf[:8*chunk])
		read += int64(n)
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return read, err
		}
		for i := 0; i < chunk; i++ {
			words = append(words, binary.LittleEndian.Uint64(buf[8*i:]))
		}
		remaining -= chunk
	}

	decoded, err := FromWords(length, words)
	if err != nil {
		return read, err
	}
	*v = *decoded
	return read, nil
}

type jsonVector struct {
	Length uint64   `json:"length"`
	Words  []uint64 `json:"words"`
}

// MarshalJSON encodes v as {"length":n,"words":[...]}.
func (v *BitVector) MarshalJSON() ([]byte, error) {
	words := v.words
	if words == nil {
		words = []uint64{}
	}
	return gojson.Marshal(jsonVector{Length: v.length, Words: words})
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (v *BitVector) UnmarshalJSON(data []byte) error {
	var jv jsonVector
	if err := gojson.Unmarshal(data, &jv); err != nil {
		return err
	}
	decoded, err := FromWords(jv.Length, jv.Words)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}
