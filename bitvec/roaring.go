package bitvec

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ToRoaring returns a compressed roaring bitmap holding the support of v.
func (v *BitVector) ToRoaring() *roaring64.Bitmap {
	rb := roaring64.New()
	for i := range v.Support() {
		rb.Add(i)
	}
	rb.RunOptimize()
	return rb
}

// FromRoaring builds a vector of the given length from the members of rb.
// Every member must be smaller than length.
func FromRoaring(length uint64, rb *roaring64.Bitmap) (*BitVector, error) {
	if !rb.IsEmpty() {
		if maxVal := rb.Maximum(); maxVal >= length {
			return nil, fmt.Errorf("%w: member %d not in [0, %d)", ErrIndexOutOfRange, maxVal, length)
		}
	}
	v := New(length)
	it := rb.Iterator()
	for it.HasNext() {
		i := it.Next()
		v.words[i>>wordShift] |= uint64(1) << (i & wordMask)
	}
	return v, nil
}
