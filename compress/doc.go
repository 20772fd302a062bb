// Package compress provides the compression codecs used for chunk payloads
// inside region files and standalone NBT files.
//
// Each chunk payload is stored behind a one-byte compression scheme
// identifier (format.CompressionType). This package is a stateless dispatch
// layer from that byte to a concrete codec:
//
//   - Gzip (scheme 1): gzip stream, used by legacy chunk data and
//     standalone files such as level.dat
//   - Zlib (scheme 2): zlib-wrapped deflate, the region file default
//   - None (scheme 3): uncompressed passthrough
//   - LZ4 (scheme 4): raw LZ4 block, the fast alternative
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Custom schemes
//
// Scheme bytes outside the builtin set can be claimed by external codecs via
// Register. A Zstd codec ships with the package for that purpose:
//
//	compress.Register(format.CompressionCustom, compress.NewZstdCompressor())
//
// Files written with a registered scheme are only readable by processes that
// register the same codec; vanilla tooling will reject them.
//
// # Error handling
//
// An unrecognized scheme byte fails with errs.ErrUnsupportedCompression. A
// structural error reported by the underlying decompressor is wrapped in
// errs.ErrCorruptStream, preserving the cause for errors.Is/As.
//
// # Thread safety
//
// All codecs are stateless values safe for concurrent use; internal
// encoder/decoder instances are pooled per call.
package compress
