// Package errs defines the sentinel errors shared across nbtkit packages.
//
// Callers match against these with errors.Is; individual failure sites wrap
// them with fmt.Errorf("%w: ...") to add context without breaking matching.
package errs

import "errors"

// Tag model and binary codec errors.
var (
	// ErrMalformedData indicates structurally invalid NBT bytes: truncated
	// input, an unknown tag type byte, a negative or overlong length prefix,
	// or an invalid modified UTF-8 string.
	ErrMalformedData = errors.New("malformed NBT data")

	// ErrDepthExceeded indicates the decoder's recursion guard tripped on
	// input nested deeper than the configured maximum.
	ErrDepthExceeded = errors.New("NBT nesting depth exceeded")

	// ErrTypeMismatch indicates a tag of one variant was used where another
	// variant was required, e.g. a typed compound accessor on a different
	// variant, or inserting a mismatched element into a list.
	ErrTypeMismatch = errors.New("tag type mismatch")

	// ErrTagNotFound indicates a compound accessor was called for a key
	// that is not present.
	ErrTagNotFound = errors.New("tag not found")

	// ErrStringTooLong indicates a string whose modified UTF-8 encoding
	// exceeds the 65535-byte wire limit.
	ErrStringTooLong = errors.New("string exceeds encodable length")
)

// Compression adapter errors.
var (
	// ErrUnsupportedCompression indicates an unrecognized compression
	// scheme byte with no builtin or registered codec.
	ErrUnsupportedCompression = errors.New("unsupported compression scheme")

	// ErrCorruptStream indicates the underlying decompressor reported a
	// structural error in the compressed payload.
	ErrCorruptStream = errors.New("corrupt compressed stream")
)

// Region file engine errors.
var (
	// ErrInvalidHeader indicates the region file header tables failed a
	// structural check: a live entry pointing into the header area, or two
	// live sector runs overlapping.
	ErrInvalidHeader = errors.New("invalid region file header")

	// ErrCorruptSector indicates a chunk frame inconsistent with its
	// allocated sector run, or one that reads past the end of the file.
	ErrCorruptSector = errors.New("corrupt region sector")

	// ErrChunkTooLarge indicates a chunk payload that would occupy more
	// sectors than a 1-byte sector count can describe.
	ErrChunkTooLarge = errors.New("chunk exceeds maximum sector count")

	// ErrOutOfRange indicates chunk coordinates outside the 32x32 grid.
	ErrOutOfRange = errors.New("chunk coordinates out of range")
)
