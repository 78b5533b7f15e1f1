// Package bitarray provides a shaped, multi-dimensional view over a
// bitvec.BitVector.
//
// An Array with shape (s0, s1, ..., sk) stores s0*s1*...*sk bits in row-major
// order: position (p0, ..., pk) maps to the flat index Σ pj*stride[j], where
// stride[j] is the product of the axes after j.
//
// When every axis is a power of two the flat index is a bit string made of
// one field per axis, so a per-axis transform is a flat transform restricted
// to that field:
//
//	a, _ := bitarray.New(4, 8)
//	a.Set(0, 0)
//	a.OrUp(1, bitvec.AllDims) // flood row 0 along axis 1
//	fmt.Println(a)
//	// 11111111
//	// 00000000
//	// 00000000
//	// 00000000
package bitarray
