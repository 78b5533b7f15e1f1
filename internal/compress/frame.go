package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hupe1980/bitlattice/internal/hash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used for a frame payload.
type Type uint8

const (
	// TypeNone stores the payload as is.
	TypeNone Type = 0
	// TypeLZ4 uses LZ4 block compression (fast).
	TypeLZ4 Type = 1
	// TypeZstd uses Zstandard (better ratio, good for cold data).
	TypeZstd Type = 2
)

// String returns the name of the algorithm.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeLZ4:
		return "lz4"
	case TypeZstd:
		return "zstd"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// ParseType resolves an algorithm by name.
func ParseType(name string) (Type, error) {
	switch name {
	case "none", "":
		return TypeNone, nil
	case "lz4":
		return TypeLZ4, nil
	case "zstd":
		return TypeZstd, nil
	default:
		return TypeNone, fmt.Errorf("compress: unknown type %q", name)
	}
}

// Magic identifies a frame.
var Magic = [4]byte{'B', 'L', 'V', '1'}

// HeaderSize is the size of the frame header.
const HeaderSize = 13

var (
	// ErrCorrupt is returned when a frame cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt frame")

	// ErrTooLarge is returned when a payload does not fit the 32-bit length field.
	ErrTooLarge = errors.New("compress: payload too large")
)

// ErrChecksumMismatch indicates a frame whose payload does not match its checksum.
type ErrChecksumMismatch struct {
	Expected uint32
	Actual   uint32
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("compress: checksum mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

// Unwrap makes ErrChecksumMismatch match ErrCorrupt.
func (e *ErrChecksumMismatch) Unwrap() error { return ErrCorrupt }

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(math.MaxUint32))
	return dec
}

// Encode frames payload, compressing it with t when that saves at least 10%.
// The returned Type is the algorithm actually used.
func Encode(payload []byte, t Type) ([]byte, Type, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, TypeNone, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(payload))
	}

	var body []byte
	switch t {
	case TypeNone:
	case TypeLZ4:
		body = compressLZ4(payload)
	case TypeZstd:
		enc := getZstdEncoder()
		body = enc.EncodeAll(payload, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, TypeNone, fmt.Errorf("compress: unknown type %d", t)
	}

	if len(body) == 0 || float64(len(body)) > float64(len(payload))*0.9 {
		body, t = payload, TypeNone
	}

	frame := make([]byte, HeaderSize, HeaderSize+len(body))
	copy(frame, Magic[:])
	frame[4] = byte(t)
	binary.LittleEndian.PutUint32(frame[5:], hash.CRC32C(payload))
	binary.LittleEndian.PutUint32(frame[9:], uint32(len(payload)))
	return append(frame, body...), t, nil
}

// compressLZ4 returns nil when the input is incompressible.
func compressLZ4(data []byte) []byte {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil || n == 0 {
		return nil
	}
	return dst[:n]
}

// Upper bounds on how far one body byte can expand. An LZ4 block gains at
// most 255 bytes per input byte; a zstd block yields at most 128 KiB and
// takes at least 4 bytes.
const (
	maxLZ4Ratio  = 255
	maxZstdRatio = 1 << 15
)

// maxRawSize returns the largest payload a body of n bytes can decode to.
func maxRawSize(t Type, n int) uint64 {
	switch t {
	case TypeLZ4:
		return uint64(n)*maxLZ4Ratio + 16
	case TypeZstd:
		return uint64(n) * maxZstdRatio
	default:
		return uint64(n)
	}
}

// Header is the decoded frame header.
type Header struct {
	Type     Type
	Checksum uint32
	RawSize  uint32
}

// ParseHeader decodes and validates the header at the start of frame.
func ParseHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", ErrCorrupt, len(frame), HeaderSize)
	}
	if [4]byte(frame[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, frame[:4])
	}
	h := Header{
		Type:     Type(frame[4]),
		Checksum: binary.LittleEndian.Uint32(frame[5:]),
		RawSize:  binary.LittleEndian.Uint32(frame[9:]),
	}
	if h.Type > TypeZstd {
		return Header{}, fmt.Errorf("%w: unknown type %d", ErrCorrupt, h.Type)
	}
	return h, nil
}

// Decode validates frame and returns its uncompressed payload.
func Decode(frame []byte) ([]byte, Header, error) {
	h, err := ParseHeader(frame)
	if err != nil {
		return nil, h, err
	}
	body := frame[HeaderSize:]
	if uint64(h.RawSize) > maxRawSize(h.Type, len(body)) {
		return nil, h, fmt.Errorf("%w: %s body of %d bytes cannot hold %d bytes", ErrCorrupt, h.Type, len(body), h.RawSize)
	}

	var payload []byte
	switch h.Type {
	case TypeNone:
		if len(body) != int(h.RawSize) {
			return nil, h, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorrupt, len(body), h.RawSize)
		}
		payload = body
	case TypeLZ4:
		payload = make([]byte, h.RawSize)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, h, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != int(h.RawSize) {
			return nil, h, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
	case TypeZstd:
		dec := getZstdDecoder()
		payload, err = dec.DecodeAll(body, make([]byte, 0, h.RawSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, h, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(payload) != int(h.RawSize) {
			return nil, h, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
	}

	if sum := hash.CRC32C(payload); sum != h.Checksum {
		return nil, h, &ErrChecksumMismatch{Expected: h.Checksum, Actual: sum}
	}
	return payload, h, nil
}
