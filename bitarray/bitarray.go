package bitarray

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"slices"
	"strings"

	"github.com/hupe1980/bitlattice/bitvec"
)

// ErrInvalidShape is returned by New for an empty shape, a zero-sized axis or
// a shape whose size overflows uint64.
var ErrInvalidShape = errors.New("bitarray: invalid shape")

// ErrRank is the panic cause for a position with the wrong number of coordinates.
var ErrRank = errors.New("bitarray: rank mismatch")

// Array is a row-major multi-dimensional bit array.
type Array struct {
	bits    *bitvec.BitVector
	shape   []uint64
	strides []uint64
}

// New creates an all-zero array with the given shape.
func New(shape ...uint64) (*Array, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidShape)
	}

	strides := make([]uint64, len(shape))
	size := uint64(1)
	for j := len(shape) - 1; j >= 0; j-- {
		if shape[j] == 0 {
			return nil, fmt.Errorf("%w: axis %d is empty", ErrInvalidShape, j)
		}
		strides[j] = size
		hi, lo := bits.Mul64(size, shape[j])
		if hi != 0 {
			return nil, fmt.Errorf("%w: %v overflows", ErrInvalidShape, shape)
		}
		size = lo
	}

	return &Array{
		bits:    bitvec.New(size),
		shape:   slices.Clone(shape),
		strides: strides,
	}, nil
}

// Shape returns a copy of the axis sizes.
func (a *Array) Shape() []uint64 {
	return slices.Clone(a.shape)
}

// Len returns the total number of bits.
func (a *Array) Len() uint64 {
	return a.bits.Len()
}

// Bits returns the backing vector. Mutations through it are visible in a.
func (a *Array) Bits() *bitvec.BitVector {
	return a.bits
}

// Index maps a position to its flat index. It panics if the rank is wrong or
// a coordinate is out of range.
func (a *Array) Index(pos ...uint64) uint64 {
	if len(pos) != len(a.shape) {
		panic(fmt.Errorf("%w: got %d coordinates for rank %d", ErrRank, len(pos), len(a.shape)))
	}
	var i uint64
	for j, p := range pos {
		if p >= a.shape[j] {
			panic(fmt.Errorf("%w: coordinate %d on axis %d not in [0, %d)", bitvec.ErrIndexOutOfRange, p, j, a.shape[j]))
		}
		i += p * a.strides[j]
	}
	return i
}

// Position maps a flat index back to its coordinates.
func (a *Array) Position(i uint64) []uint64 {
	return a.appendPosition(make([]uint64, 0, len(a.shape)), i)
}

func (a *Array) appendPosition(dst []uint64, i uint64) []uint64 {
	if i >= a.Len() {
		panic(fmt.Errorf("%w: %d not in [0, %d)", bitvec.ErrIndexOutOfRange, i, a.Len()))
	}
	for _, stride := range a.strides {
		dst = append(dst, i/stride)
		i %= stride
	}
	return dst
}

// Set sets the bit at pos.
func (a *Array) Set(pos ...uint64) { a.bits.Set(a.Index(pos...)) }

// Unset clears the bit at pos.
func (a *Array) Unset(pos ...uint64) { a.bits.Unset(a.Index(pos...)) }

// Test reports whether the bit at pos is set.
func (a *Array) Test(pos ...uint64) bool { return a.bits.Test(a.Index(pos...)) }

// Count returns the number of set bits.
func (a *Array) Count() uint64 { return a.bits.Count() }

// Cursor enumerates the positions of the set bits in row-major order.
type Cursor struct {
	a    *Array
	flat *bitvec.Cursor
}

// Cursor returns a new Cursor positioned before the first bit of a.
func (a *Array) Cursor() *Cursor {
	return &Cursor{a: a, flat: a.bits.Cursor()}
}

// Next returns the next set position, or ok == false once exhausted.
func (c *Cursor) Next() (pos []uint64, ok bool) {
	i, ok := c.flat.Next()
	if !ok {
		return nil, false
	}
	return c.a.Position(i), true
}

// Support returns an iterator over the positions of the set bits.
func (a *Array) Support() iter.Seq[[]uint64] {
	return func(yield func([]uint64) bool) {
		for i := range a.bits.Support() {
			if !yield(a.Position(i)) {
				return
			}
		}
	}
}

// flatMask maps a mask over the dimensions of one axis onto the dimensions
// of the backing vector. It panics unless every axis is a power of two.
func (a *Array) flatMask(axis int, mask uint64) uint64 {
	for j, s := range a.shape {
		if s&(s-1) != 0 {
			panic(fmt.Errorf("%w: axis %d has size %d", bitvec.ErrNotPowerOfTwo, j, s))
		}
	}
	if axis < 0 || axis >= len(a.shape) {
		panic(fmt.Errorf("%w: axis %d for rank %d", ErrRank, axis, len(a.shape)))
	}
	return (mask & (a.shape[axis] - 1)) * a.strides[axis]
}

// Transform applies op along the dimensions of axis selected by mask.
func (a *Array) Transform(op bitvec.Op, axis int, mask uint64) {
	a.bits.Transform(op, a.flatMask(axis, mask))
}

// Swap exchanges pairs along the selected dimensions of axis.
func (a *Array) Swap(axis int, mask uint64) { a.Transform(bitvec.OpSwap, axis, mask) }

// XorUp applies bitvec.OpXorUp along the selected dimensions of axis.
func (a *Array) XorUp(axis int, mask uint64) { a.Transform(bitvec.OpXorUp, axis, mask) }

// XorDown applies bitvec.OpXorDown along the selected dimensions of axis.
func (a *Array) XorDown(axis int, mask uint64) { a.Transform(bitvec.OpXorDown, axis, mask) }

// OrUp applies bitvec.OpOrUp along the selected dimensions of axis.
func (a *Array) OrUp(axis int, mask uint64) { a.Transform(bitvec.OpOrUp, axis, mask) }

// OrDown applies bitvec.OpOrDown along the selected dimensions of axis.
func (a *Array) OrDown(axis int, mask uint64) { a.Transform(bitvec.OpOrDown, axis, mask) }

// LessUp applies bitvec.OpLessUp along the selected dimensions of axis.
func (a *Array) LessUp(axis int, mask uint64) { a.Transform(bitvec.OpLessUp, axis, mask) }

// MoreDown applies bitvec.OpMoreDown along the selected dimensions of axis.
func (a *Array) MoreDown(axis int, mask uint64) { a.Transform(bitvec.OpMoreDown, axis, mask) }

// String renders a 2-D array as one line per row, column 0 first. Other
// ranks use the flat rendering of the backing vector.
func (a *Array) String() string {
	if len(a.shape) != 2 {
		return a.bits.String()
	}

	rows, cols := a.shape[0], a.shape[1]
	var sb strings.Builder
	sb.Grow(int(rows * (cols + 1)))
	for r := range rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range cols {
			if a.bits.Test(r*cols + c) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}
