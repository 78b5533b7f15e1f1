package bitvec

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/hupe1980/bitlattice/internal/simd"
)

const (
	// WordBits is the number of bits per storage word.
	WordBits = 64

	wordShift = 6
	wordMask  = WordBits - 1
)

// BitVector is a dense bit vector of fixed logical length.
//
// The zero value is an empty vector of length 0. Copying a BitVector value
// shares its storage; use Clone for an independent copy.
type BitVector struct {
	// words holds ceil(length/64) words; padding bits in the last word are zero.
	words []uint64

	// length is the number of logical bits.
	length uint64
}

// New creates a BitVector of length bits, all zero.
func New(length uint64) *BitVector {
	return &BitVector{
		words:  make([]uint64, wordsFor(length)),
		length: length,
	}
}

// wordsFor returns ceil(length/64).
func wordsFor(length uint64) int {
	return int((length + wordMask) >> wordShift)
}

// tailMask returns the mask of valid bits in the last word.
func tailMask(length uint64) uint64 {
	if r := length & wordMask; r != 0 {
		return (uint64(1) << r) - 1
	}
	return ^uint64(0)
}

// maskTail zeroes the padding bits past length in the last word.
func (v *BitVector) maskTail() {
	if n := len(v.words); n > 0 {
		v.words[n-1] &= tailMask(v.length)
	}
}

// Clone returns an independent copy of v.
func (v *BitVector) Clone() *BitVector {
	return &BitVector{
		words:  slices.Clone(v.words),
		length: v.length,
	}
}

// Len returns the number of logical bits.
func (v *BitVector) Len() uint64 {
	return v.length
}

// Dims returns n when Len() == 2^n, or -1 when the length is not a power of two.
func (v *BitVector) Dims() int {
	if v.length == 0 || v.length&(v.length-1) != 0 {
		return -1
	}
	return bits.TrailingZeros64(v.length)
}

// Set sets bit i. It panics if i >= Len().
func (v *BitVector) Set(i uint64) {
	if i >= v.length {
		panicIndex(i, v.length)
	}
	v.words[i>>wordShift] |= uint64(1) << (i & wordMask)
}

// Unset clears bit i. It panics if i >= Len().
func (v *BitVector) Unset(i uint64) {
	if i >= v.length {
		panicIndex(i, v.length)
	}
	v.words[i>>wordShift] &^= uint64(1) << (i & wordMask)
}

// Test reports whether bit i is set. It panics if i >= Len().
func (v *BitVector) Test(i uint64) bool {
	if i >= v.length {
		panicIndex(i, v.length)
	}
	return v.words[i>>wordShift]&(uint64(1)<<(i&wordMask)) != 0
}

// Fill sets every bit.
func (v *BitVector) Fill() {
	for i := range v.words {
		v.words[i] = ^uint64(0)
	}
	v.maskTail()
}

// Clear clears every bit.
func (v *BitVector) Clear() {
	clear(v.words)
}

// Flip complements every bit.
func (v *BitVector) Flip() {
	simd.NotWords(v.words)
	v.maskTail()
}

// All reports whether every bit is set. An empty vector reports true.
func (v *BitVector) All() bool {
	n := len(v.words)
	if n == 0 {
		return true
	}
	for _, w := range v.words[:n-1] {
		if w != ^uint64(0) {
			return false
		}
	}
	return v.words[n-1] == tailMask(v.length)
}

// Any reports whether some bit is set.
func (v *BitVector) Any() bool {
	return simd.AnyWords(v.words)
}

// None reports whether no bit is set.
func (v *BitVector) None() bool {
	return !v.Any()
}

// Count returns the number of set bits.
func (v *BitVector) Count() uint64 {
	return uint64(simd.PopcountWords(v.words))
}

// And intersects v with other in place. It panics if the lengths differ.
func (v *BitVector) And(other *BitVector) {
	v.requireSameLength(other)
	simd.AndWords(v.words, other.words)
}

// AndNot removes the bits of other from v in place. It panics if the lengths differ.
func (v *BitVector) AndNot(other *BitVector) {
	v.requireSameLength(other)
	simd.AndNotWords(v.words, other.words)
}

// Or unions other into v in place. It panics if the lengths differ.
func (v *BitVector) Or(other *BitVector) {
	v.requireSameLength(other)
	simd.OrWords(v.words, other.words)
}

// Xor replaces v with the symmetric difference of v and other. It panics if
// the lengths differ.
func (v *BitVector) Xor(other *BitVector) {
	v.requireSameLength(other)
	simd.XorWords(v.words, other.words)
}

func (v *BitVector) requireSameLength(other *BitVector) {
	if v.length != other.length {
		panicLength(v.length, other.length)
	}
}

// Equal reports whether v and other have the same length and bits.
func (v *BitVector) Equal(other *BitVector) bool {
	return v.length == other.length && slices.Equal(v.words, other.words)
}

// Format renders the bits from the highest index down to 0 using zero and one.
func (v *BitVector) Format(zero, one rune) string {
	var sb strings.Builder
	sb.Grow(int(v.length))
	for i := v.length; i > 0; i-- {
		if v.words[(i-1)>>wordShift]&(uint64(1)<<((i-1)&wordMask)) != 0 {
			sb.WriteRune(one)
		} else {
			sb.WriteRune(zero)
		}
	}
	return sb.String()
}

// String renders v most-significant bit first with '0' and '1'.
func (v *BitVector) String() string {
	return v.Format('0', '1')
}

// Join appends the bits of other after the last bit of v. other may be v.
func (v *BitVector) Join(other *BitVector) {
	if other == v {
		other = v.Clone()
	}
	total := v.length + other.length
	shift := v.length & wordMask

	if shift == 0 {
		v.words = append(v.words, other.words...)
		v.length = total
		return
	}

	// Each appended word straddles the tail: its low 64-shift bits fill the
	// current last word, the remaining bits start the next one.
	v.words = slices.Grow(v.words, len(other.words))
	for _, w := range other.words {
		v.words[len(v.words)-1] |= w << shift
		v.words = append(v.words, w>>(WordBits-shift))
	}

	// The final split may open a word that only holds other's zero padding.
	v.words = v.words[:wordsFor(total)]
	v.length = total
}
