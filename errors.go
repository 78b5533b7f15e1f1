package bitlattice

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bitlattice/bitvec"
	"github.com/hupe1980/bitlattice/blobstore"
	"github.com/hupe1980/bitlattice/internal/compress"
)

var (
	// ErrNotFound is returned when no vector is stored under a name.
	ErrNotFound = blobstore.ErrNotFound

	// ErrClosed is returned by every Store method after Close.
	ErrClosed = errors.New("bitlattice: store is closed")

	// ErrInvalidName is returned for an empty or non-canonical vector name.
	ErrInvalidName = errors.New("bitlattice: invalid name")

	// ErrCorrupt is returned when a stored frame or its payload cannot be decoded.
	ErrCorrupt = errors.New("bitlattice: corrupt vector")
)

// ErrChecksumMismatch indicates that a stored payload failed CRC32C verification.
// It matches ErrCorrupt.
type ErrChecksumMismatch struct {
	Name     string
	Expected uint32
	Actual   uint32
	cause    error
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("bitlattice: checksum mismatch for %q: expected %08x, got %08x", e.Name, e.Expected, e.Actual)
}

func (e *ErrChecksumMismatch) Unwrap() []error { return []error{ErrCorrupt, e.cause} }

// translateError maps internal errors onto the package's exported errors.
func translateError(name string, err error) error {
	if err == nil {
		return nil
	}

	var cm *compress.ErrChecksumMismatch
	if errors.As(err, &cm) {
		return &ErrChecksumMismatch{Name: name, Expected: cm.Expected, Actual: cm.Actual, cause: err}
	}
	if errors.Is(err, compress.ErrCorrupt) || errors.Is(err, bitvec.ErrCorrupt) {
		return fmt.Errorf("%w: %q: %w", ErrCorrupt, name, err)
	}
	return fmt.Errorf("%q: %w", name, err)
}
