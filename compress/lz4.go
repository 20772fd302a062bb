package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/voxelforge/nbtkit/errs"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor implements compression scheme 4 (format.CompressionLZ4),
// the fast alternative to Zlib for chunk payloads. Payloads are stored as a
// single LZ4 block without a frame header, so decompression sizes the output
// buffer adaptively.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data into one LZ4 block, using a pooled
// lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// CompressBlock signals incompressible input with n == 0. Emit a
		// literal-only block so the payload still survives the round trip.
		return literalBlock(dst[:0], data), nil
	}

	return dst[:n], nil
}

// literalBlock encodes data as a single literal-only LZ4 sequence, the
// fallback for input that does not compress.
func literalBlock(dst, data []byte) []byte {
	if n := len(data); n < 15 {
		dst = append(dst, byte(n)<<4)
	} else {
		dst = append(dst, 0xF0)
		for rem := n - 15; ; rem -= 255 {
			if rem < 255 {
				dst = append(dst, byte(rem))
				break
			}
			dst = append(dst, 255)
		}
	}

	return append(dst, data...)
}

// Decompress decompresses one LZ4 block.
//
// The block format does not record the decompressed size, so this method
// uses an adaptive buffer strategy:
//  1. Start with a buffer 4x the compressed size (common expansion ratio)
//  2. On ErrInvalidSourceShortBuffer, double the buffer size
//  3. Fail once the buffer would exceed the safety limit, which indicates
//     corrupt input rather than a legitimate chunk
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024 // 128MB safety limit

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("%w: %s", errs.ErrCorruptStream, err)
		}

		return buf[:n], nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrCorruptStream, lz4.ErrInvalidSourceShortBuffer)
}
