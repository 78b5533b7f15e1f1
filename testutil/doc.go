// Package testutil provides testing utilities for bitlattice.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for random bit vectors and a naive per-index
// reference model that the word-parallel code in bitvec is checked against.
//
// # Random Vectors
//
//	rng := testutil.NewRNG(seed)
//	v := rng.Vector(1024, 0.3) // ~30% of bits set
//
// # Reference Model
//
//	ref := testutil.FromVector(v)
//	ref.Transform(bitvec.OpOrUp, mask)
//	v.OrUp(mask)
//	ok := ref.Matches(v)
package testutil
