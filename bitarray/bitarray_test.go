package bitarray

import (
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/bitlattice/bitvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, shape ...uint64) *Array {
	t.Helper()
	a, err := New(shape...)
	require.NoError(t, err)
	return a
}

func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestNew(t *testing.T) {
	a := mustNew(t, 2, 3, 4)
	assert.Equal(t, uint64(24), a.Len())
	assert.Equal(t, []uint64{2, 3, 4}, a.Shape())
	assert.Equal(t, []uint64{12, 4, 1}, a.strides)

	shape := a.Shape()
	shape[0] = 100
	assert.Equal(t, []uint64{2, 3, 4}, a.Shape(), "Shape must return a copy")
}

func TestNewInvalidShape(t *testing.T) {
	for _, shape := range [][]uint64{
		nil,
		{0},
		{4, 0, 2},
		{1 << 32, 1 << 32},
	} {
		_, err := New(shape...)
		assert.ErrorIs(t, err, ErrInvalidShape, "shape %v", shape)
	}
}

func TestIndexPosition(t *testing.T) {
	a := mustNew(t, 2, 3, 4)

	assert.Equal(t, uint64(0), a.Index(0, 0, 0))
	assert.Equal(t, uint64(1), a.Index(0, 0, 1))
	assert.Equal(t, uint64(4), a.Index(0, 1, 0))
	assert.Equal(t, uint64(12), a.Index(1, 0, 0))
	assert.Equal(t, uint64(23), a.Index(1, 2, 3))

	for i := range a.Len() {
		assert.Equal(t, i, a.Index(a.Position(i)...))
	}
}

func TestIndexPanics(t *testing.T) {
	a := mustNew(t, 2, 3)

	assert.ErrorIs(t, panicErr(func() { a.Index(1) }), ErrRank)
	assert.ErrorIs(t, panicErr(func() { a.Index(0, 0, 0) }), ErrRank)
	assert.ErrorIs(t, panicErr(func() { a.Index(2, 0) }), bitvec.ErrIndexOutOfRange)
	assert.ErrorIs(t, panicErr(func() { a.Set(0, 3) }), bitvec.ErrIndexOutOfRange)
	assert.ErrorIs(t, panicErr(func() { a.Position(6) }), bitvec.ErrIndexOutOfRange)
}

func TestSetUnsetTest(t *testing.T) {
	a := mustNew(t, 3, 5)

	a.Set(2, 4)
	a.Set(1, 0)
	assert.True(t, a.Test(2, 4))
	assert.True(t, a.Test(1, 0))
	assert.False(t, a.Test(0, 4))
	assert.True(t, a.Bits().Test(14))
	assert.Equal(t, uint64(2), a.Count())

	a.Unset(2, 4)
	assert.False(t, a.Test(2, 4))
	assert.Equal(t, uint64(1), a.Count())
}

func TestCursor(t *testing.T) {
	a := mustNew(t, 2, 2, 2)
	a.Set(1, 0, 1)
	a.Set(0, 1, 0)

	c := a.Cursor()
	pos, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, []uint64{0, 1, 0}, pos)
	pos, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, []uint64{1, 0, 1}, pos)
	_, ok = c.Next()
	assert.False(t, ok)

	assert.Equal(t, [][]uint64{{0, 1, 0}, {1, 0, 1}}, slices.Collect(a.Support()))
}

func TestTransformAlongAxis(t *testing.T) {
	a := mustNew(t, 4, 8)
	a.Set(0, 0)

	a.OrUp(1, bitvec.AllDims)
	assert.Equal(t, "11111111\n00000000\n00000000\n00000000", a.String())

	a.OrUp(0, 1)
	assert.Equal(t, "11111111\n11111111\n00000000\n00000000", a.String())

	a.Swap(0, 2)
	assert.Equal(t, "00000000\n00000000\n11111111\n11111111", a.String())
}

func TestTransformMatchesPerAxisLoop(t *testing.T) {
	shape := []uint64{4, 2, 8}
	for axis := range shape {
		for _, op := range bitvec.Ops {
			t.Run(fmt.Sprintf("%s/axis%d", op, axis), func(t *testing.T) {
				a := mustNew(t, shape...)
				for i := range a.Len() {
					if (i*2654435761)%7 < 3 {
						a.Bits().Set(i)
					}
				}
				before := a.Bits().Clone()

				a.Transform(op, axis, 1)

				// axis dimension 0 pairs coordinate c with c|1 on that axis
				for i := range a.Len() {
					pos := a.Position(i)
					if pos[axis]&1 != 0 {
						continue
					}
					hiPos := slices.Clone(pos)
					hiPos[axis] |= 1
					j := a.Index(hiPos...)

					lo, hi := pairRule(op, before.Test(i), before.Test(j))
					require.Equal(t, lo, a.Bits().Test(i), "lower %v", pos)
					require.Equal(t, hi, a.Bits().Test(j), "upper %v", hiPos)
				}
			})
		}
	}
}

func pairRule(op bitvec.Op, lo, hi bool) (bool, bool) {
	switch op {
	case bitvec.OpSwap:
		return hi, lo
	case bitvec.OpXorUp:
		return lo, hi != lo
	case bitvec.OpXorDown:
		return lo != hi, hi
	case bitvec.OpOrUp:
		return lo, hi || lo
	case bitvec.OpOrDown:
		return lo || hi, hi
	case bitvec.OpLessUp:
		return lo, hi && !lo
	default:
		return lo && !hi, hi
	}
}

func TestNamedTransforms(t *testing.T) {
	named := map[bitvec.Op]func(*Array, int, uint64){
		bitvec.OpSwap:     (*Array).Swap,
		bitvec.OpXorUp:    (*Array).XorUp,
		bitvec.OpXorDown:  (*Array).XorDown,
		bitvec.OpOrUp:     (*Array).OrUp,
		bitvec.OpOrDown:   (*Array).OrDown,
		bitvec.OpLessUp:   (*Array).LessUp,
		bitvec.OpMoreDown: (*Array).MoreDown,
	}

	for op, fn := range named {
		a := mustNew(t, 4, 4)
		b := mustNew(t, 4, 4)
		for _, p := range [][]uint64{{0, 1}, {1, 3}, {2, 2}, {3, 0}} {
			a.Set(p...)
			b.Set(p...)
		}
		fn(a, 1, 3)
		b.Transform(op, 1, 3)
		assert.True(t, a.Bits().Equal(b.Bits()), "%s", op)
	}
}

func TestTransformPanics(t *testing.T) {
	a := mustNew(t, 3, 4)
	assert.ErrorIs(t, panicErr(func() { a.Swap(1, 1) }), bitvec.ErrNotPowerOfTwo)

	b := mustNew(t, 2, 4)
	assert.ErrorIs(t, panicErr(func() { b.Swap(2, 1) }), ErrRank)
	assert.ErrorIs(t, panicErr(func() { b.Swap(-1, 1) }), ErrRank)
}

func TestStringFlat(t *testing.T) {
	a := mustNew(t, 2, 2, 2)
	a.Set(0, 0, 1)
	assert.Equal(t, "00000010", a.String())
}
