// Package simd provides the word-array kernels behind bitvec's bulk
// operations (AND, ANDNOT, OR, XOR, NOT, POPCOUNT).
//
// CPU features are detected with golang.org/x/sys/cpu. On CPUs with wide
// vector units the kernels switch to 4-way unrolled loops that the compiler
// schedules across independent registers; otherwise plain range loops are
// used. Set BITLATTICE_SIMD=generic to force the scalar kernels.
package simd
