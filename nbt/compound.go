package nbt

import (
	"fmt"
	"iter"
	"slices"

	"github.com/voxelforge/nbtkit/errs"
)

// Compound is an insertion-ordered mapping from names to tags. Keys are
// unique within one compound; re-setting an existing key replaces the value
// while keeping the key at its original position.
//
// A Compound exclusively owns its children. Inserting a tag that is already
// part of another tree aliases mutable state between the two trees; use
// Copy on the tag first.
type Compound struct {
	keys []string
	vals map[string]Tag
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{vals: make(map[string]Tag)}
}

func (c *Compound) Type() TagType { return TagCompound }

// Copy returns a deep copy of the compound, preserving insertion order.
func (c *Compound) Copy() Tag {
	out := &Compound{
		keys: slices.Clone(c.keys),
		vals: make(map[string]Tag, len(c.vals)),
	}
	for name, tag := range c.vals {
		out.vals[name] = tag.Copy()
	}

	return out
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	return len(c.keys)
}

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	tag, ok := c.vals[name]
	return tag, ok
}

// Has reports whether name is present.
func (c *Compound) Has(name string) bool {
	_, ok := c.vals[name]
	return ok
}

// Set stores tag under name. An existing entry is replaced in place,
// retaining its original insertion position. The compound takes ownership
// of tag.
func (c *Compound) Set(name string, tag Tag) {
	if tag == nil {
		panic("nbt: Set with nil tag")
	}
	if _, ok := c.vals[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.vals[name] = tag
}

// Remove deletes the entry for name, reporting whether it existed.
func (c *Compound) Remove(name string) bool {
	if _, ok := c.vals[name]; !ok {
		return false
	}
	delete(c.vals, name)
	i := slices.Index(c.keys, name)
	c.keys = slices.Delete(c.keys, i, i+1)

	return true
}

// Keys returns the entry names in insertion order. The slice is a copy.
func (c *Compound) Keys() []string {
	return slices.Clone(c.keys)
}

// All iterates entries in insertion order. The compound must not be
// mutated during iteration.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, name := range c.keys {
			if !yield(name, c.vals[name]) {
				return
			}
		}
	}
}

// lookup fetches the entry for name as concrete type T, failing with
// ErrTagNotFound for a missing key and ErrTypeMismatch for a different
// variant.
func lookup[T Tag](c *Compound, name string) (T, error) {
	var zero T
	tag, ok := c.vals[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q", errs.ErrTagNotFound, name)
	}
	v, ok := tag.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %s, want %s", errs.ErrTypeMismatch, name, tag.Type(), zero.Type())
	}

	return v, nil
}

// GetByte returns the Byte entry for name.
func (c *Compound) GetByte(name string) (int8, error) {
	v, err := lookup[Byte](c, name)
	return int8(v), err
}

// GetShort returns the Short entry for name.
func (c *Compound) GetShort(name string) (int16, error) {
	v, err := lookup[Short](c, name)
	return int16(v), err
}

// GetInt returns the Int entry for name.
func (c *Compound) GetInt(name string) (int32, error) {
	v, err := lookup[Int](c, name)
	return int32(v), err
}

// GetLong returns the Long entry for name.
func (c *Compound) GetLong(name string) (int64, error) {
	v, err := lookup[Long](c, name)
	return int64(v), err
}

// GetFloat returns the Float entry for name.
func (c *Compound) GetFloat(name string) (float32, error) {
	v, err := lookup[Float](c, name)
	return float32(v), err
}

// GetDouble returns the Double entry for name.
func (c *Compound) GetDouble(name string) (float64, error) {
	v, err := lookup[Double](c, name)
	return float64(v), err
}

// GetString returns the String entry for name.
func (c *Compound) GetString(name string) (string, error) {
	v, err := lookup[String](c, name)
	return string(v), err
}

// GetByteArray returns the ByteArray entry for name. The returned slice is
// the compound's own storage, not a copy.
func (c *Compound) GetByteArray(name string) ([]byte, error) {
	v, err := lookup[ByteArray](c, name)
	return []byte(v), err
}

// GetIntArray returns the IntArray entry for name. The returned slice is
// the compound's own storage, not a copy.
func (c *Compound) GetIntArray(name string) ([]int32, error) {
	v, err := lookup[IntArray](c, name)
	return []int32(v), err
}

// GetLongArray returns the LongArray entry for name. The returned slice is
// the compound's own storage, not a copy.
func (c *Compound) GetLongArray(name string) ([]int64, error) {
	v, err := lookup[LongArray](c, name)
	return []int64(v), err
}

// GetList returns the List entry for name.
func (c *Compound) GetList(name string) (*List, error) {
	return lookup[*List](c, name)
}

// GetCompound returns the Compound entry for name.
func (c *Compound) GetCompound(name string) (*Compound, error) {
	return lookup[*Compound](c, name)
}
