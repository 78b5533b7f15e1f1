package bitvec_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/bitlattice/bitvec"
	"github.com/hupe1980/bitlattice/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *bitvec.Cursor) []uint64 {
	var out []uint64
	for {
		i, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, i)
	}
}

func TestCursor(t *testing.T) {
	v := testutil.FromString("00101101")
	assert.Equal(t, []uint64{0, 2, 3, 5}, drain(v.Cursor()))
}

func TestCursorAcrossWords(t *testing.T) {
	pattern := []uint64{0, 2, 3, 5}

	for _, offset := range []uint64{0, 1, 58, 59, 60, 63, 64, 120, 1000} {
		t.Run(fmt.Sprint(offset), func(t *testing.T) {
			v := bitvec.New(offset + 8 + 70)
			var want []uint64
			for _, p := range pattern {
				v.Set(offset + p)
				want = append(want, offset+p)
			}
			assert.Equal(t, want, drain(v.Cursor()))
		})
	}
}

func TestCursorExhaustion(t *testing.T) {
	v := bitvec.New(130)
	v.Set(63)
	v.Set(129)

	c := v.Cursor()
	i, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, uint64(63), i)
	i, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, uint64(129), i)

	for range 3 {
		_, ok = c.Next()
		assert.False(t, ok)
	}

	// new bits do not revive an exhausted cursor
	v.Set(0)
	_, ok = c.Next()
	assert.False(t, ok)
}

func TestCursorEmpty(t *testing.T) {
	for _, length := range testutil.BoundaryLengths {
		_, ok := bitvec.New(length).Cursor().Next()
		assert.False(t, ok, "length %d", length)
	}

	var zero bitvec.BitVector
	_, ok := zero.Cursor().Next()
	assert.False(t, ok)
}

func TestCursorMatchesTest(t *testing.T) {
	rng := testutil.NewRNG(20)

	for _, length := range []uint64{1, 63, 64, 65, 128, 129, 1000} {
		for _, density := range []float64{0.01, 0.5, 1} {
			v := rng.Vector(length, density)

			var want []uint64
			for i := uint64(0); i < length; i++ {
				if v.Test(i) {
					want = append(want, i)
				}
			}
			require.Equal(t, want, drain(v.Cursor()), "length %d density %v", length, density)
		}
	}
}

func TestSupport(t *testing.T) {
	v := testutil.FromString("1000000011")
	assert.Equal(t, []uint64{0, 1, 9}, slices.Collect(v.Support()))

	var first []uint64
	for i := range v.Support() {
		first = append(first, i)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []uint64{0, 1}, first)
}

func TestIndices(t *testing.T) {
	v := testutil.FromString("0110")
	assert.Equal(t, []uint64{7, 1, 2}, v.Indices([]uint64{7}))
	assert.Empty(t, bitvec.New(10).Indices(nil))
}
