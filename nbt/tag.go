package nbt

import "slices"

// TagType identifies an NBT variant. The numeric values are the type bytes
// of the wire format and must never be renumbered.
type TagType byte

const (
	TagEnd       TagType = 0  // compound terminator, also the element type of an empty list
	TagByte      TagType = 1  // signed 8-bit integer
	TagShort     TagType = 2  // signed 16-bit integer
	TagInt       TagType = 3  // signed 32-bit integer
	TagLong      TagType = 4  // signed 64-bit integer
	TagFloat     TagType = 5  // IEEE-754 32-bit float
	TagDouble    TagType = 6  // IEEE-754 64-bit float
	TagByteArray TagType = 7  // length-prefixed byte sequence
	TagString    TagType = 8  // length-prefixed modified UTF-8 text
	TagList      TagType = 9  // homogeneous ordered sequence
	TagCompound  TagType = 10 // ordered name-to-tag mapping
	TagIntArray  TagType = 11 // length-prefixed int32 sequence
	TagLongArray TagType = 12 // length-prefixed int64 sequence
)

func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}

// valid reports whether t is a defined tag type byte.
func (t TagType) valid() bool {
	return t <= TagLongArray
}

// Tag is the closed interface over all NBT variants. The implementing types
// are exactly the scalar, array, String, List and Compound types of this
// package; End has no value representation.
type Tag interface {
	// Type returns the variant's wire type byte.
	Type() TagType

	// Copy returns a deep copy sharing no mutable state with the receiver.
	// Scalars and strings return themselves; arrays, lists and compounds
	// clone recursively. Use Copy to move a subtree into another tree.
	Copy() Tag
}

type (
	// Byte is a signed 8-bit scalar tag.
	Byte int8
	// Short is a signed 16-bit scalar tag.
	Short int16
	// Int is a signed 32-bit scalar tag.
	Int int32
	// Long is a signed 64-bit scalar tag.
	Long int64
	// Float is a 32-bit floating point scalar tag.
	Float float32
	// Double is a 64-bit floating point scalar tag.
	Double float64
	// String is a modified-UTF-8 text tag. Its encoded form is limited to
	// 65535 bytes; Encode rejects longer values.
	String string

	// ByteArray is a length-prefixed byte sequence tag.
	ByteArray []byte
	// IntArray is a length-prefixed int32 sequence tag.
	IntArray []int32
	// LongArray is a length-prefixed int64 sequence tag.
	LongArray []int64
)

func (Byte) Type() TagType   { return TagByte }
func (Short) Type() TagType  { return TagShort }
func (Int) Type() TagType    { return TagInt }
func (Long) Type() TagType   { return TagLong }
func (Float) Type() TagType  { return TagFloat }
func (Double) Type() TagType { return TagDouble }
func (String) Type() TagType { return TagString }

func (ByteArray) Type() TagType { return TagByteArray }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

func (v Byte) Copy() Tag   { return v }
func (v Short) Copy() Tag  { return v }
func (v Int) Copy() Tag    { return v }
func (v Long) Copy() Tag   { return v }
func (v Float) Copy() Tag  { return v }
func (v Double) Copy() Tag { return v }
func (v String) Copy() Tag { return v }

func (v ByteArray) Copy() Tag { return ByteArray(slices.Clone(v)) }
func (v IntArray) Copy() Tag  { return IntArray(slices.Clone(v)) }
func (v LongArray) Copy() Tag { return LongArray(slices.Clone(v)) }
