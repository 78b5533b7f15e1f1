// Package bitvec provides a dense, fixed-capacity bit vector with set algebra
// and a family of in-place lattice transforms.
//
// # Layout
//
// A BitVector of length n stores its bits in ceil(n/64) little-endian words:
// bit b lives in word b>>6 under mask 1<<(b&63). Bits past the logical length
// in the last word (padding) are always zero, so whole-word scans such as
// Count, Any and the transforms never see stale data.
//
// # Copying
//
// Vectors are handled through *BitVector and every operation mutates its
// receiver in place. Assigning a pointer or copying a BitVector value aliases
// the same words. Clone is the copy operation: it returns a vector of the same
// length with its own storage, and later writes to either vector are not seen
// by the other. A vector joined
// with itself is cloned first.
//
// # Transforms
//
// A vector of length 2^n is treated as a Boolean function over the
// n-dimensional hypercube. For an axis d, every index x with bit d clear is
// paired with x|1<<d and one of seven rules is applied to the pair:
//
//	Swap      exchange f(x0) and f(x1)
//	XorUp     f(x1) ^= f(x0)
//	XorDown   f(x0) ^= f(x1)
//	OrUp      f(x1) |= f(x0)
//	OrDown    f(x0) |= f(x1)
//	LessUp    f(x1) &^= f(x0)
//	MoreDown  f(x0) &^= f(x1)
//
// Axes 0-5 are handled inside each word with SWAR masks; axes 6 and above
// pair whole words in a butterfly pattern. Running OrUp over every axis yields
// the subset-sum (zeta) transform, XorUp over every axis the Möbius transform
// over GF(2).
//
//	v := bitvec.New(8)
//	v.Set(0)
//	v.OrUp(bitvec.AllDims) // every index is a superset of 0
//	fmt.Println(v)         // 11111111
//
// # Errors
//
// Precondition violations (index out of range, mismatched lengths, transforms
// on a length that is not a power of two) are programming errors and panic
// with an error wrapping ErrIndexOutOfRange, ErrLengthMismatch or
// ErrNotPowerOfTwo. Decoding functions return errors instead.
//
// A BitVector is not safe for concurrent use.
package bitvec
