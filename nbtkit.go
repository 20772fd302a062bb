// Package nbtkit reads, mutates, and writes the on-disk data formats of
// block-based voxel worlds: the NBT binary tag serialization format and the
// region-file container that packs compressed chunks into sector-addressed
// files.
//
// # Core Features
//
//   - Full NBT tag model (scalars, arrays, strings, lists, compounds) with
//     insertion-ordered compounds and enforced list homogeneity
//   - Exact round-trip binary codec: big-endian, modified UTF-8 strings,
//     depth-guarded recursive decoding
//   - Pluggable per-chunk compression (Gzip, Zlib, None, LZ4, plus a custom
//     scheme byte for externally registered codecs such as Zstd)
//   - Region file engine: 32×32 chunk grid, 4096-byte sector allocation
//     with in-place reuse, deferred header flushing, per-chunk scan errors
//
// # Basic Usage
//
// Reading and rewriting one chunk of a region file:
//
//	import "github.com/voxelforge/nbtkit"
//
//	r, _ := nbtkit.OpenRegion("r.0.0.mca")
//	defer r.Close()
//
//	root, _ := r.ReadChunk(5, 12)
//	if !root.IsZero() {
//	    root.Compound.Set("InhabitedTime", nbt.Long(0))
//	    _ = r.WriteChunk(5, 12, root)
//	    _ = r.Flush()
//	}
//
// Working with standalone NBT files such as level.dat:
//
//	root, _ := nbtkit.ReadFile("level.dat")
//	data, _ := root.Compound.GetCompound("Data")
//	name, _ := data.GetString("LevelName")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the nbt,
// compress, and region packages, simplifying the most common use cases. For
// fine-grained control, use those packages directly.
package nbtkit

import (
	"fmt"
	"os"

	"github.com/voxelforge/nbtkit/compress"
	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/format"
	"github.com/voxelforge/nbtkit/nbt"
	"github.com/voxelforge/nbtkit/region"
)

// Decode reads one named root compound from the start of data, returning the
// tree and the number of bytes consumed. See nbt.Decode.
func Decode(data []byte, opts ...nbt.DecodeOption) (nbt.NamedTag, int, error) {
	return nbt.Decode(data, opts...)
}

// Encode serializes a named root compound to its binary wire form. See
// nbt.Encode.
func Encode(root nbt.NamedTag) ([]byte, error) {
	return nbt.Encode(root)
}

// OpenRegion opens or creates the region file at path. See region.Open.
func OpenRegion(path string, opts ...region.Option) (*region.File, error) {
	return region.Open(path, opts...)
}

// ReadFile reads a standalone NBT file such as level.dat or a player data
// file. The compression wrapper is sniffed from the leading bytes: gzip
// (the common case), zlib, or none.
func ReadFile(path string, opts ...nbt.DecodeOption) (nbt.NamedTag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nbt.NamedTag{}, err
	}

	if scheme, wrapped := sniffCompression(data); wrapped {
		codec, err := compress.CreateCodec(scheme, "nbt file")
		if err != nil {
			return nbt.NamedTag{}, err
		}
		if data, err = codec.Decompress(data); err != nil {
			return nbt.NamedTag{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	root, _, err := nbt.Decode(data, opts...)
	if err != nil {
		return nbt.NamedTag{}, fmt.Errorf("%s: %w", path, err)
	}

	return root, nil
}

// WriteFile writes root to path as a gzip-compressed standalone NBT file,
// the wrapper every stock world reader expects for level.dat.
func WriteFile(path string, root nbt.NamedTag) error {
	data, err := nbt.Encode(root)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(format.CompressionGzip, "nbt file")
	if err != nil {
		return err
	}
	wrapped, err := codec.Compress(data)
	if err != nil {
		return err
	}

	return os.WriteFile(path, wrapped, 0o644)
}

// sniffCompression classifies a standalone file's wrapper from its magic
// bytes. A bare compound starts with tag byte 0x0A, which collides with
// neither the gzip magic (1F 8B) nor a zlib header (78 xx).
func sniffCompression(data []byte) (format.CompressionType, bool) {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return format.CompressionGzip, true
	}
	if len(data) >= 1 && data[0] == 0x78 {
		return format.CompressionZlib, true
	}

	return format.CompressionNone, false
}

// Sentinel errors re-exported for callers that only import the root package.
var (
	ErrMalformedData = errs.ErrMalformedData
	ErrDepthExceeded = errs.ErrDepthExceeded
	ErrTypeMismatch  = errs.ErrTypeMismatch
	ErrCorruptSector = errs.ErrCorruptSector
	ErrInvalidHeader = errs.ErrInvalidHeader
)
