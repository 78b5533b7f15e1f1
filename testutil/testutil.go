package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/bitlattice/bitvec"
)

// BoundaryLengths are bit lengths around word boundaries.
var BoundaryLengths = []uint64{0, 1, 63, 64, 65, 127, 128, 129}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Vector returns a vector of the given length where each bit is set with
// probability density.
func (r *RNG) Vector(length uint64, density float64) *bitvec.BitVector {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := bitvec.New(length)
	for i := uint64(0); i < length; i++ {
		if r.rand.Float64() < density {
			v.Set(i)
		}
	}
	return v
}

// Vectors returns num random vectors of the same length.
func (r *RNG) Vectors(num int, length uint64, density float64) []*bitvec.BitVector {
	out := make([]*bitvec.BitVector, num)
	for i := range num {
		out[i] = r.Vector(length, density)
	}
	return out
}

// FromString builds a vector from a most-significant-bit-first string of
// '0' and '1', the format produced by BitVector.String.
func FromString(s string) *bitvec.BitVector {
	n := uint64(len(s))
	v := bitvec.New(n)
	for i := range n {
		switch s[n-1-i] {
		case '1':
			v.Set(i)
		case '0':
		default:
			panic("testutil: invalid bit character " + string(s[n-1-i]))
		}
	}
	return v
}

// Reference is a one-bool-per-index model of a bit vector.
type Reference []bool

// FromVector copies the bits of v into a Reference.
func FromVector(v *bitvec.BitVector) Reference {
	ref := make(Reference, v.Len())
	for i := range ref {
		ref[i] = v.Test(uint64(i))
	}
	return ref
}

// Matches reports whether v holds exactly the bits of ref.
func (ref Reference) Matches(v *bitvec.BitVector) bool {
	if uint64(len(ref)) != v.Len() {
		return false
	}
	for i, b := range ref {
		if v.Test(uint64(i)) != b {
			return false
		}
	}
	return true
}

// Count returns the number of true entries.
func (ref Reference) Count() uint64 {
	var n uint64
	for _, b := range ref {
		if b {
			n++
		}
	}
	return n
}

// Transform applies op pair by pair along every axis selected by mask. The
// length must be a power of two.
func (ref Reference) Transform(op bitvec.Op, mask uint64) {
	n := len(ref)
	for d := 0; 1<<d < n; d++ {
		if mask&(1<<d) == 0 {
			continue
		}
		for x := 0; x < n; x++ {
			if x&(1<<d) != 0 {
				continue
			}
			y := x | 1<<d
			ref[x], ref[y] = applyRule(op, ref[x], ref[y])
		}
	}
}

func applyRule(op bitvec.Op, lo, hi bool) (bool, bool) {
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
	case bitvec.OpMoreDown:
		return lo && !hi, hi
	default:
		panic("testutil: unknown op " + op.String())
	}
}
