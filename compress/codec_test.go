package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/format"
)

// chunkLikePayload builds input resembling an encoded chunk: long runs of
// repeated block data with some variation, which every scheme should shrink.
func chunkLikePayload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		switch {
		case i%4096 < 3000:
			data[i] = 0x00 // air
		case i%4096 < 3900:
			data[i] = byte(i / 4096) // block palette runs
		default:
			data[i] = byte(i * 31)
		}
	}

	return data
}

func TestBuiltinRoundTrip(t *testing.T) {
	payload := chunkLikePayload(64 * 1024)

	schemes := []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionNone,
		format.CompressionLZ4,
	}
	for _, scheme := range schemes {
		t.Run(scheme.String(), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			if scheme != format.CompressionNone {
				require.Less(t, len(compressed), len(payload), "repetitive payload should shrink")
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))
		})
	}
}

func TestLZ4IncompressibleInput(t *testing.T) {
	// Pseudo-random bytes that LZ4 cannot shrink; CompressBlock reports
	// these as incompressible, and the literal-only fallback must still
	// round-trip them.
	payload := make([]byte, 8192)
	state := uint32(0x12345678)
	for i := range payload {
		state = state*1664525 + 1013904223
		payload[i] = byte(state >> 24)
	}

	codec := NewLZ4Compressor()
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(payload, restored))
}

func TestNoOpPassthrough(t *testing.T) {
	codec := NewNoOpCompressor()
	in := []byte{1, 2, 3}

	out, err := codec.Compress(in)
	require.NoError(t, err)
	require.Equal(t, in, out)

	out, err = codec.Decompress(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestEmptyInput(t *testing.T) {
	for _, scheme := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionNone,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(scheme)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err, scheme.String())

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, scheme.String())
		require.Empty(t, restored, scheme.String())
	}
}

func TestGetCodecUnknownScheme(t *testing.T) {
	_, err := GetCodec(format.CompressionType(99))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = CreateCodec(format.CompressionType(99), "chunk")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "chunk")
}

func TestDecompressCorruptStream(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22}

	for _, scheme := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZlib,
	} {
		codec, err := GetCodec(scheme)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.ErrorIs(t, err, errs.ErrCorruptStream, scheme.String())
	}
}

func TestDecompressTruncatedStream(t *testing.T) {
	codec := NewZlibCompressor()
	compressed, err := codec.Compress(chunkLikePayload(32 * 1024))
	require.NoError(t, err)

	_, err = codec.Decompress(compressed[:len(compressed)/2])
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}

func TestRegisterCustomScheme(t *testing.T) {
	zstd := NewZstdCompressor()
	require.NoError(t, Register(format.CompressionCustom, zstd))
	// Re-registering the identical codec is idempotent.
	require.NoError(t, Register(format.CompressionCustom, zstd))

	codec, err := GetCodec(format.CompressionCustom)
	require.NoError(t, err)

	payload := chunkLikePayload(32 * 1024)
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(payload, restored))
}

func TestRegisterRejectsBuiltin(t *testing.T) {
	err := Register(format.CompressionZlib, NewZstdCompressor())
	require.Error(t, err)
}

func TestRegisterRejectsNil(t *testing.T) {
	err := Register(format.CompressionType(100), nil)
	require.Error(t, err)
}

func TestZstdCorruptStream(t *testing.T) {
	codec := NewZstdCompressor()
	_, err := codec.Decompress([]byte{0x01, 0x02, 0x03, 0x04})
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}
