package nbt

import (
	"errors"
	"fmt"
	"math"

	"github.com/voxelforge/nbtkit/endian"
	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/internal/mutf8"
)

// Encode serializes a named root compound to its binary wire form. Encode
// and Decode are exact inverses for any tree within the depth guard.
func Encode(root NamedTag) ([]byte, error) {
	return AppendEncode(nil, root)
}

// AppendEncode appends the binary wire form of root to dst and returns the
// extended slice, avoiding an allocation when the caller reuses buffers.
func AppendEncode(dst []byte, root NamedTag) ([]byte, error) {
	if root.Compound == nil {
		return dst, errors.New("nbt: nil root compound")
	}

	e := encoder{engine: endian.GetBigEndianEngine()}

	dst = append(dst, byte(TagCompound))
	dst, err := e.appendString(dst, root.Name)
	if err != nil {
		return dst, err
	}

	return e.appendCompound(dst, root.Compound)
}

type encoder struct {
	engine endian.EndianEngine
}

func (e encoder) appendString(dst []byte, s string) ([]byte, error) {
	n := mutf8.EncodedLen(s)
	if n > math.MaxUint16 {
		return dst, fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, n)
	}
	dst = e.engine.AppendUint16(dst, uint16(n))

	return mutf8.Append(dst, s), nil
}

func (e encoder) appendPayload(dst []byte, tag Tag) ([]byte, error) {
	switch v := tag.(type) {
	case Byte:
		return append(dst, byte(v)), nil
	case Short:
		return e.engine.AppendUint16(dst, uint16(v)), nil
	case Int:
		return e.engine.AppendUint32(dst, uint32(v)), nil
	case Long:
		return e.engine.AppendUint64(dst, uint64(v)), nil
	case Float:
		return e.engine.AppendUint32(dst, math.Float32bits(float32(v))), nil
	case Double:
		return e.engine.AppendUint64(dst, math.Float64bits(float64(v))), nil
	case ByteArray:
		dst = e.engine.AppendUint32(dst, uint32(len(v)))
		return append(dst, v...), nil
	case String:
		return e.appendString(dst, string(v))
	case *List:
		return e.appendList(dst, v)
	case *Compound:
		return e.appendCompound(dst, v)
	case IntArray:
		dst = e.engine.AppendUint32(dst, uint32(len(v)))
		for _, n := range v {
			dst = e.engine.AppendUint32(dst, uint32(n))
		}
		return dst, nil
	case LongArray:
		dst = e.engine.AppendUint32(dst, uint32(len(v)))
		for _, n := range v {
			dst = e.engine.AppendUint64(dst, uint64(n))
		}
		return dst, nil
	default:
		return dst, fmt.Errorf("nbt: unencodable tag %T", tag)
	}
}

func (e encoder) appendList(dst []byte, l *List) ([]byte, error) {
	// An empty list keeps its declared element type, which is TagEnd
	// unless the caller fixed it explicitly; both are legal wire forms.
	dst = append(dst, byte(l.elem))
	dst = e.engine.AppendUint32(dst, uint32(len(l.items)))

	var err error
	for _, item := range l.items {
		if dst, err = e.appendPayload(dst, item); err != nil {
			return dst, err
		}
	}

	return dst, nil
}

func (e encoder) appendCompound(dst []byte, c *Compound) ([]byte, error) {
	var err error
	for _, name := range c.keys {
		tag := c.vals[name]
		dst = append(dst, byte(tag.Type()))
		if dst, err = e.appendString(dst, name); err != nil {
			return dst, err
		}
		if dst, err = e.appendPayload(dst, tag); err != nil {
			return dst, err
		}
	}

	return append(dst, byte(TagEnd)), nil
}
