package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	data := bytes.Repeat([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0, 0, 0, 0, 0, 0, 0}, 512)

	for _, typ := range []Type{TypeNone, TypeLZ4, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			frame, used, err := Encode(data, typ)
			require.NoError(t, err)
			assert.Equal(t, typ, used)
			assert.Equal(t, Magic[:], frame[:4])

			if typ != TypeNone {
				assert.Less(t, len(frame), len(data)/2, "repeated data should compress well")
			}

			got, h, err := Decode(frame)
			require.NoError(t, err)
			assert.Equal(t, data, got)
			assert.Equal(t, used, h.Type)
			assert.Equal(t, uint32(len(data)), h.RawSize)
		})
	}
}

func TestEncodeIncompressible(t *testing.T) {
	data := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(data)

	for _, typ := range []Type{TypeLZ4, TypeZstd} {
		frame, used, err := Encode(data, typ)
		require.NoError(t, err)
		assert.Equal(t, TypeNone, used, "%s should fall back to none", typ)
		assert.Len(t, frame, HeaderSize+len(data))

		got, _, err := Decode(frame)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	frame, used, err := Encode(nil, TypeZstd)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, used)
	assert.Len(t, frame, HeaderSize)

	got, _, err := Decode(frame)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeUnknownType(t *testing.T) {
	_, _, err := Encode([]byte("x"), Type(9))
	assert.Error(t, err)
}

func TestDecodeCorrupt(t *testing.T) {
	data := bytes.Repeat([]byte("bitlattice "), 100)
	frame, _, err := Encode(data, TypeLZ4)
	require.NoError(t, err)

	badMagic := bytes.Clone(frame)
	badMagic[0] = 'X'

	badType := bytes.Clone(frame)
	badType[4] = 7

	truncated := frame[:len(frame)-3]

	for name, f := range map[string][]byte{
		"short":     frame[:5],
		"magic":     badMagic,
		"type":      badType,
		"truncated": truncated,
	} {
		_, _, err := Decode(f)
		assert.ErrorIs(t, err, ErrCorrupt, name)
	}
}

func TestDecodeInflatedRawSize(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 1024)

	for _, typ := range []Type{TypeNone, TypeLZ4, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			frame, _, err := Encode(data, typ)
			require.NoError(t, err)

			binary.LittleEndian.PutUint32(frame[9:], 1<<30)
			_, _, err = Decode(frame)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	// Four body bytes claiming a gigabyte are rejected before decoding.
	frame := append(bytes.Clone(Magic[:]), byte(TypeLZ4), 0, 0, 0, 0, 0, 0, 0, 0x40, 0xf0, 0, 0, 0)
	_, _, err := Decode(frame)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "cannot hold")
}

func TestMaxRawSize(t *testing.T) {
	assert.Equal(t, uint64(10), maxRawSize(TypeNone, 10))
	assert.Equal(t, uint64(10*255+16), maxRawSize(TypeLZ4, 10))
	assert.Equal(t, uint64(10<<15), maxRawSize(TypeZstd, 10))
}

func TestDecodeChecksumMismatch(t *testing.T) {
	frame, _, err := Encode([]byte("0123456789abcdef"), TypeNone)
	require.NoError(t, err)
	frame[HeaderSize] ^= 1

	_, _, err = Decode(frame)
	var cm *ErrChecksumMismatch
	require.True(t, errors.As(err, &cm))
	assert.NotEqual(t, cm.Expected, cm.Actual)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeLZ4, TypeZstd} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("snappy")
	assert.Error(t, err)
	assert.Equal(t, "type(9)", Type(9).String())
}
