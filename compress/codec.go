package compress

import (
	"fmt"
	"sync"

	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/format"
)

// Compressor compresses one chunk payload.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller (the
//     NoOp codec, which returns its input unchanged, is the one exception)
//   - The input slice is not modified
//   - Internal buffers may be reused across calls
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one chunk payload.
//
// The input must have been produced by the matching Compressor. Structural
// errors in the stream fail with an error wrapping errs.ErrCorruptStream.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// customCodecs holds codecs registered for non-builtin scheme bytes.
var (
	customMu     sync.RWMutex
	customCodecs = map[format.CompressionType]Codec{}
)

// Register claims a non-builtin scheme byte for an externally supplied
// codec. Registering a builtin scheme, or registering the same scheme twice
// with a different codec, is an error. Payloads written under a registered
// scheme are only readable by processes that perform the same registration.
func Register(scheme format.CompressionType, codec Codec) error {
	if codec == nil {
		return fmt.Errorf("nil codec for scheme %s", scheme)
	}
	if _, ok := builtinCodecs[scheme]; ok {
		return fmt.Errorf("scheme %s (%d) is builtin and cannot be replaced", scheme, uint8(scheme))
	}

	customMu.Lock()
	defer customMu.Unlock()
	if existing, ok := customCodecs[scheme]; ok && existing != codec {
		return fmt.Errorf("scheme %d already registered", uint8(scheme))
	}
	customCodecs[scheme] = codec

	return nil
}

// GetCodec retrieves the Codec for the given scheme byte, consulting the
// builtin set first and then the registered custom codecs.
func GetCodec(scheme format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[scheme]; ok {
		return codec, nil
	}

	customMu.RLock()
	codec, ok := customCodecs[scheme]
	customMu.RUnlock()
	if ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: scheme %d", errs.ErrUnsupportedCompression, uint8(scheme))
}

// CreateCodec is a factory function that resolves a Codec for the given
// scheme, annotating failures with the target usage for error messages.
func CreateCodec(scheme format.CompressionType, target string) (Codec, error) {
	codec, err := GetCodec(scheme)
	if err != nil {
		return nil, fmt.Errorf("invalid %s compression: %w", target, err)
	}

	return codec, nil
}
