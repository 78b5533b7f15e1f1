package bitvec

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is the panic cause for an index >= Len().
	ErrIndexOutOfRange = errors.New("bitvec: index out of range")

	// ErrLengthMismatch is the panic cause for binary operations on vectors of different length.
	ErrLengthMismatch = errors.New("bitvec: length mismatch")

	// ErrNotPowerOfTwo is the panic cause for transforms on a length that is not a power of two.
	ErrNotPowerOfTwo = errors.New("bitvec: length is not a power of two")

	// ErrCorrupt is returned when an encoded vector cannot be decoded.
	ErrCorrupt = errors.New("bitvec: corrupt encoding")
)

// ErrWordCount indicates that a word slice does not match the declared bit length.
type ErrWordCount struct {
	Length   uint64
	Expected int
	Actual   int
}

func (e *ErrWordCount) Error() string {
	return fmt.Sprintf("bitvec: %d bits need %d words, got %d", e.Length, e.Expected, e.Actual)
}

// Unwrap makes ErrWordCount match ErrCorrupt.
func (e *ErrWordCount) Unwrap() error { return ErrCorrupt }

func panicIndex(i, length uint64) {
	panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, length))
}

func panicLength(a, b uint64) {
	panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a, b))
}
