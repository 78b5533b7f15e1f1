package bitvec

import (
	"fmt"
	"math/bits"
)

// AllDims selects every axis of a transform.
const AllDims = ^uint64(0)

// Op identifies a pairwise transform rule.
type Op uint8

const (
	// OpSwap exchanges f(x0) and f(x1).
	OpSwap Op = iota
	// OpXorUp sets f(x1) ^= f(x0).
	OpXorUp
	// OpXorDown sets f(x0) ^= f(x1).
	OpXorDown
	// OpOrUp sets f(x1) |= f(x0).
	OpOrUp
	// OpOrDown sets f(x0) |= f(x1).
	OpOrDown
	// OpLessUp clears f(x1) wherever f(x0) is set.
	OpLessUp
	// OpMoreDown clears f(x0) wherever f(x1) is set.
	OpMoreDown
)

// String returns the name of the rule.
func (op Op) String() string {
	switch op {
	case OpSwap:
		return "swap"
	case OpXorUp:
		return "xor_up"
	case OpXorDown:
		return "xor_down"
	case OpOrUp:
		return "or_up"
	case OpOrDown:
		return "or_down"
	case OpLessUp:
		return "less_up"
	case OpMoreDown:
		return "more_down"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Ops lists every transform rule.
var Ops = []Op{OpSwap, OpXorUp, OpXorDown, OpOrUp, OpOrDown, OpLessUp, OpMoreDown}

// rule is a pairwise combining rule. lane applies it to every (x0, x1) pair
// inside w, where m selects the x0 bits and s is the distance to their
// partners; pair applies it to a lower word and its upper partner.
type rule interface {
	lane(w, m uint64, s uint) uint64
	pair(lo, hi *uint64)
}

type (
	swapRule     struct{}
	xorUpRule    struct{}
	xorDownRule  struct{}
	orUpRule     struct{}
	orDownRule   struct{}
	lessUpRule   struct{}
	moreDownRule struct{}
)

func (swapRule) lane(w, m uint64, s uint) uint64 { return (w>>s)&m | (w&m)<<s }
func (swapRule) pair(lo, hi *uint64)             { *lo, *hi = *hi, *lo }

func (xorUpRule) lane(w, m uint64, s uint) uint64 { return w ^ (w&m)<<s }
func (xorUpRule) pair(lo, hi *uint64)             { *hi ^= *lo }

func (xorDownRule) lane(w, m uint64, s uint) uint64 { return w ^ (w>>s)&m }
func (xorDownRule) pair(lo, hi *uint64)             { *lo ^= *hi }

func (orUpRule) lane(w, m uint64, s uint) uint64 { return w | (w&m)<<s }
func (orUpRule) pair(lo, hi *uint64)             { *hi |= *lo }

func (orDownRule) lane(w, m uint64, s uint) uint64 { return w | (w>>s)&m }
func (orDownRule) pair(lo, hi *uint64)             { *lo |= *hi }

func (lessUpRule) lane(w, m uint64, s uint) uint64 { return w &^ ((w & m) << s) }
func (lessUpRule) pair(lo, hi *uint64)             { *hi &^= *lo }

func (moreDownRule) lane(w, m uint64, s uint) uint64 { return w &^ ((w >> s) & m) }
func (moreDownRule) pair(lo, hi *uint64)             { *lo &^= *hi }

// laneMasks[d] selects the lower element of every pair along axis d < 6:
// alternating runs of 2^d zero and one bits, starting with ones.
var laneMasks = [wordShift]uint64{
	0x5555555555555555,
	0x3333333333333333,
	0x0f0f0f0f0f0f0f0f,
	0x00ff00ff00ff00ff,
	0x0000ffff0000ffff,
	0x00000000ffffffff,
}

// Transform applies op along every axis whose bit is set in mask. Axes at or
// beyond Dims() are ignored. It panics if Len() is not a power of two.
func (v *BitVector) Transform(op Op, mask uint64) {
	switch op {
	case OpSwap:
		transform[swapRule](v, mask)
	case OpXorUp:
		transform[xorUpRule](v, mask)
	case OpXorDown:
		transform[xorDownRule](v, mask)
	case OpOrUp:
		transform[orUpRule](v, mask)
	case OpOrDown:
		transform[orDownRule](v, mask)
	case OpLessUp:
		transform[lessUpRule](v, mask)
	case OpMoreDown:
		transform[moreDownRule](v, mask)
	default:
		panic(fmt.Sprintf("bitvec: unknown transform %v", op))
	}
}

// Swap exchanges every pair along the selected axes.
func (v *BitVector) Swap(mask uint64) { transform[swapRule](v, mask) }

// XorUp xors each lower element into its upper partner along the selected axes.
func (v *BitVector) XorUp(mask uint64) { transform[xorUpRule](v, mask) }

// XorDown xors each upper element into its lower partner along the selected axes.
func (v *BitVector) XorDown(mask uint64) { transform[xorDownRule](v, mask) }

// OrUp ors each lower element into its upper partner along the selected axes.
func (v *BitVector) OrUp(mask uint64) { transform[orUpRule](v, mask) }

// OrDown ors each upper element into its lower partner along the selected axes.
func (v *BitVector) OrDown(mask uint64) { transform[orDownRule](v, mask) }

// LessUp clears each upper element whose lower partner is set.
func (v *BitVector) LessUp(mask uint64) { transform[lessUpRule](v, mask) }

// MoreDown clears each lower element whose upper partner is set.
func (v *BitVector) MoreDown(mask uint64) { transform[moreDownRule](v, mask) }

func transform[R rule](v *BitVector, mask uint64) {
	n := v.Dims()
	if n < 0 {
		panic(fmt.Errorf("%w: %d", ErrNotPowerOfTwo, v.length))
	}
	mask &= (uint64(1) << n) - 1
	if mask == 0 {
		return
	}
	transformLanes[R](v.words, mask&(1<<wordShift-1))
	transformWords[R](v.words, mask>>wordShift)
}

// transformLanes handles axes 0-5, whose pairs live inside a single word.
func transformLanes[R rule](words []uint64, mask uint64) {
	var r R
	for mask != 0 {
		d := bits.TrailingZeros64(mask)
		mask &= mask - 1

		m, s := laneMasks[d], uint(1)<<d
		for i, w := range words {
			words[i] = r.lane(w, m, s)
		}
	}
}

// transformWords handles axes 6 and up, whose pairs are whole words: bit d of
// mask selects the axis pairing word k with word k+2^d inside blocks of 2^(d+1)
// words.
func transformWords[R rule](words []uint64, mask uint64) {
	var r R
	for mask != 0 {
		d := bits.TrailingZeros64(mask)
		mask &= mask - 1

		half := 1 << d
		for j := 0; j+2*half <= len(words); j += 2 * half {
			lo := words[j : j+half]
			hi := words[j+half : j+2*half]
			for k := range lo {
				r.pair(&lo[k], &hi[k])
			}
		}
	}
}
