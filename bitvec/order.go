package bitvec

// Ordering is the result of comparing two vectors as sets under inclusion.
// It is a partial order: two vectors may be Incomparable.
type Ordering int8

const (
	// Equal means both vectors hold the same bits.
	Equal Ordering = iota
	// Less means the receiver is a strict subset of the argument.
	Less
	// Greater means the receiver is a strict superset of the argument.
	Greater
	// Incomparable means each vector holds a bit the other lacks.
	Incomparable
)

// String returns the name of the ordering.
func (o Ordering) String() string {
	switch o {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Incomparable:
		return "incomparable"
	default:
		return "unknown"
	}
}

// Compare orders v against other by set inclusion. It panics if the lengths differ.
func (v *BitVector) Compare(other *BitVector) Ordering {
	v.requireSameLength(other)

	var greater, less bool
	for i, a := range v.words {
		b := other.words[i]
		if a == b {
			continue
		}
		if a&^b != 0 {
			greater = true
		}
		if b&^a != 0 {
			less = true
		}
		if greater && less {
			return Incomparable
		}
	}

	switch {
	case greater:
		return Greater
	case less:
		return Less
	default:
		return Equal
	}
}

// IsSubsetOf reports whether every bit set in v is also set in other. It
// panics if the lengths differ.
func (v *BitVector) IsSubsetOf(other *BitVector) bool {
	o := v.Compare(other)
	return o == Equal || o == Less
}
