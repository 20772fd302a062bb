// Package nbt implements the in-memory tag model and the binary codec for
// the NBT serialization format.
//
// NBT is a self-describing tree of named, typed tags. The model is a closed
// variant set: six fixed-width numeric scalars, three numeric arrays, a
// modified-UTF-8 string, a homogeneous List, and an insertion-ordered
// Compound. Every variant implements the Tag interface.
//
// # Ownership
//
// A tag tree is a strict single-owner structure: a Compound or List
// exclusively owns its children, and no tag may appear in two trees at once.
// Moving a subtree between trees must go through Copy; the codec never hands
// out aliased references.
//
// # Building trees
//
//	root := nbt.NewCompound()
//	root.Set("version", nbt.Int(19133))
//	root.Set("name", nbt.String("overworld"))
//
//	pos := nbt.NewList(nbt.TagDouble)
//	_ = pos.Append(nbt.Double(0.5), nbt.Double(64), nbt.Double(0.5))
//	root.Set("Pos", pos)
//
// # Binary codec
//
//	data, err := nbt.Encode(nbt.NamedTag{Name: "", Compound: root})
//	decoded, n, err := nbt.Decode(data)
//
// Decode and Encode are exact inverses: decoding bytes and re-encoding the
// result reproduces the input bit for bit, and vice versa. All multi-byte
// values are big-endian; strings use a 16-bit length prefix and modified
// UTF-8 (see internal/mutf8). Root-level data is exactly one named Compound.
//
// Decoding untrusted input is guarded by a recursion depth limit
// (DefaultMaxDepth, configurable via WithMaxDepth) so that maliciously
// nested data fails with errs.ErrDepthExceeded instead of exhausting the
// stack. All structural failures surface as errors wrapping
// errs.ErrMalformedData; nothing is silently repaired.
package nbt
