package bitvec

import (
	"iter"
	"math/bits"
)

// Cursor enumerates the set bits of a BitVector in ascending order.
//
// A Cursor reads the vector live and is forward-only: once Next reports
// exhaustion it stays exhausted. Mutating the vector while a Cursor is in use
// yields an unspecified enumeration.
type Cursor struct {
	v      *BitVector
	word   int  // index of the word being scanned
	offset uint // next bit position to examine inside that word
}

// Cursor returns a new Cursor positioned before the first bit of v.
func (v *BitVector) Cursor() *Cursor {
	return &Cursor{v: v}
}

// Next returns the next set index, or ok == false once the support is exhausted.
func (c *Cursor) Next() (index uint64, ok bool) {
	words := c.v.words
	for c.word < len(words) {
		w := words[c.word] >> c.offset
		if w == 0 {
			c.word++
			c.offset = 0
			continue
		}

		bit := c.offset + uint(bits.TrailingZeros64(w))
		index = uint64(c.word)<<wordShift | uint64(bit)
		if index >= c.v.length {
			break
		}

		c.offset = bit + 1
		if c.offset == WordBits {
			c.word++
			c.offset = 0
		}
		return index, true
	}

	c.word = len(words)
	c.offset = 0
	return 0, false
}

// Support returns an iterator over the set indices of v in ascending order.
func (v *BitVector) Support() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		c := v.Cursor()
		for {
			i, ok := c.Next()
			if !ok || !yield(i) {
				return
			}
		}
	}
}

// Indices appends the set indices of v to dst and returns the extended slice.
func (v *BitVector) Indices(dst []uint64) []uint64 {
	for i := range v.Support() {
		dst = append(dst, i)
	}
	return dst
}
