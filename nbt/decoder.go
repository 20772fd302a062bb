package nbt

import (
	"fmt"
	"math"

	"github.com/voxelforge/nbtkit/endian"
	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/internal/mutf8"
	"github.com/voxelforge/nbtkit/internal/options"
)

// DefaultMaxDepth is the default recursion limit for Decode. Legitimate
// world data nests a few dozen levels at most; the guard exists so that
// adversarial input fails with ErrDepthExceeded instead of exhausting the
// stack.
const DefaultMaxDepth = 512

// NamedTag couples a root compound with its name. Root-level binary NBT is
// exactly one named compound; the name is frequently empty.
type NamedTag struct {
	Name     string
	Compound *Compound
}

// IsZero reports whether the NamedTag is the zero value, used by the region
// engine to signal an absent chunk.
func (n NamedTag) IsZero() bool {
	return n.Compound == nil && n.Name == ""
}

type decodeConfig struct {
	maxDepth int
}

// DecodeOption configures Decode.
type DecodeOption = options.Option[*decodeConfig]

// WithMaxDepth overrides the recursion limit for a Decode call.
func WithMaxDepth(n int) DecodeOption {
	return options.New(func(c *decodeConfig) error {
		if n <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		c.maxDepth = n

		return nil
	})
}

// Decode reads one named root compound from the start of data, returning
// the tree and the number of bytes consumed. Trailing bytes beyond the root
// tag are ignored and excluded from the count.
//
// Structurally invalid input (truncation, unknown type bytes, negative
// lengths, invalid modified UTF-8, duplicate compound keys, a non-compound
// root) fails with an error wrapping errs.ErrMalformedData. Input nested
// deeper than the configured limit fails with errs.ErrDepthExceeded.
func Decode(data []byte, opts ...DecodeOption) (NamedTag, int, error) {
	cfg := &decodeConfig{maxDepth: DefaultMaxDepth}
	if err := options.Apply(cfg, opts...); err != nil {
		return NamedTag{}, 0, err
	}

	d := &decoder{
		data:     data,
		engine:   endian.GetBigEndianEngine(),
		maxDepth: cfg.maxDepth,
	}

	typ, err := d.readType()
	if err != nil {
		return NamedTag{}, 0, err
	}
	if typ != TagCompound {
		return NamedTag{}, 0, d.failf("root tag is %s, must be a compound", typ)
	}

	name, err := d.readString()
	if err != nil {
		return NamedTag{}, 0, err
	}

	root, err := d.readCompound(1)
	if err != nil {
		return NamedTag{}, 0, err
	}

	return NamedTag{Name: name, Compound: root}, d.pos, nil
}

// decoder walks a byte slice by recursive descent. It is purely functional
// over the input; no state survives a Decode call.
type decoder struct {
	data     []byte
	pos      int
	engine   endian.EndianEngine
	maxDepth int
}

func (d *decoder) failf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", errs.ErrMalformedData, msg, d.pos)
}

// take consumes n bytes, failing on truncated input.
func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || n > len(d.data)-d.pos {
		return nil, d.failf("need %d bytes, %d remain", n, len(d.data)-d.pos)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n

	return b, nil
}

func (d *decoder) readType() (TagType, error) {
	b, err := d.take(1)
	if err != nil {
		return TagEnd, err
	}
	typ := TagType(b[0])
	if !typ.valid() {
		d.pos--
		return TagEnd, d.failf("unknown tag type byte 0x%02X", b[0])
	}

	return typ, nil
}

// readLength reads a signed 32-bit array or list length prefix. A negative
// value is malformed input, not a crash.
func (d *decoder) readLength() (int, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	n := int32(d.engine.Uint32(b))
	if n < 0 {
		return 0, d.failf("negative length %d", n)
	}

	return int(n), nil
}

func (d *decoder) readString() (string, error) {
	b, err := d.take(2)
	if err != nil {
		return "", err
	}
	raw, err := d.take(int(d.engine.Uint16(b)))
	if err != nil {
		return "", err
	}
	s, err := mutf8.Decode(raw)
	if err != nil {
		return "", d.failf("invalid string: %s", err)
	}

	return s, nil
}

// readPayload decodes the type-specific payload of typ. depth counts
// container nesting levels and is checked on entry to List and Compound
// payloads.
func (d *decoder) readPayload(typ TagType, depth int) (Tag, error) {
	switch typ {
	case TagByte:
		b, err := d.take(1)
		if err != nil {
			return nil, err
		}
		return Byte(b[0]), nil
	case TagShort:
		b, err := d.take(2)
		if err != nil {
			return nil, err
		}
		return Short(d.engine.Uint16(b)), nil
	case TagInt:
		b, err := d.take(4)
		if err != nil {
			return nil, err
		}
		return Int(d.engine.Uint32(b)), nil
	case TagLong:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return Long(d.engine.Uint64(b)), nil
	case TagFloat:
		b, err := d.take(4)
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(d.engine.Uint32(b))), nil
	case TagDouble:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(d.engine.Uint64(b))), nil
	case TagByteArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		b, err := d.take(n)
		if err != nil {
			return nil, err
		}
		out := make(ByteArray, n)
		copy(out, b)

		return out, nil
	case TagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagList:
		return d.readList(depth)
	case TagCompound:
		return d.readCompound(depth)
	case TagIntArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		b, err := d.take(n * 4)
		if err != nil {
			return nil, err
		}
		out := make(IntArray, n)
		for i := range out {
			out[i] = int32(d.engine.Uint32(b[i*4:]))
		}

		return out, nil
	case TagLongArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		b, err := d.take(n * 8)
		if err != nil {
			return nil, err
		}
		out := make(LongArray, n)
		for i := range out {
			out[i] = int64(d.engine.Uint64(b[i*8:]))
		}

		return out, nil
	default:
		// TagEnd has no payload and never reaches here; readType already
		// rejected undefined bytes.
		return nil, d.failf("tag type %s has no payload", typ)
	}
}

func (d *decoder) readList(depth int) (*List, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", errs.ErrDepthExceeded, d.maxDepth)
	}

	elem, err := d.readType()
	if err != nil {
		return nil, err
	}
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, d.failf("list of End with %d elements", n)
	}
	// Every payload is at least one byte, so a length prefix larger than
	// the remaining input cannot be satisfied.
	if n > len(d.data)-d.pos {
		return nil, d.failf("list length %d exceeds remaining input", n)
	}

	l := &List{elem: elem, items: make([]Tag, 0, n)}
	for range n {
		item, err := d.readPayload(elem, depth+1)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, item)
	}

	return l, nil
}

func (d *decoder) readCompound(depth int) (*Compound, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", errs.ErrDepthExceeded, d.maxDepth)
	}

	c := NewCompound()
	for {
		typ, err := d.readType()
		if err != nil {
			return nil, err
		}
		if typ == TagEnd {
			return c, nil
		}

		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		if c.Has(name) {
			return nil, d.failf("duplicate compound key %q", name)
		}

		tag, err := d.readPayload(typ, depth+1)
		if err != nil {
			return nil, err
		}
		c.Set(name, tag)
	}
}
