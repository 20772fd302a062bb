package nbt

import (
	"fmt"
	"iter"

	"github.com/voxelforge/nbtkit/errs"
)

// List is a homogeneous ordered sequence of tags. Every element shares one
// declared element type; mixing variants is illegal and fails with
// ErrTypeMismatch. An empty list declares TagEnd until its first insertion
// fixes the element type.
//
// A List exclusively owns its elements; use Copy on a tag before inserting
// it into a second tree.
type List struct {
	elem  TagType
	items []Tag
}

// NewList creates an empty list with the given declared element type.
// Pass TagEnd to let the first Append fix the type. Panics on an undefined
// type byte.
func NewList(elem TagType) *List {
	if !elem.valid() {
		panic(fmt.Sprintf("nbt: invalid list element type %d", elem))
	}

	return &List{elem: elem}
}

// ListOf builds a list from tags, adopting the type of the first element.
func ListOf(tags ...Tag) (*List, error) {
	l := NewList(TagEnd)
	if err := l.Append(tags...); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *List) Type() TagType { return TagList }

// ElementType returns the declared element type; TagEnd for a list that has
// never held an element.
func (l *List) ElementType() TagType {
	return l.elem
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the element at index i. Like a slice access, it panics when i
// is out of range.
func (l *List) At(i int) Tag {
	return l.items[i]
}

// Copy returns a deep copy of the list.
func (l *List) Copy() Tag {
	out := &List{elem: l.elem, items: make([]Tag, len(l.items))}
	for i, item := range l.items {
		out.items[i] = item.Copy()
	}

	return out
}

// Append adds tags to the end of the list. If any tag's variant disagrees
// with the declared element type the list is left unmodified and
// ErrTypeMismatch is returned. Appending to an empty TagEnd-typed list
// adopts the first tag's type.
func (l *List) Append(tags ...Tag) error {
	if len(tags) == 0 {
		return nil
	}

	elem := l.elem
	if elem == TagEnd {
		elem = tags[0].Type()
	}
	for _, tag := range tags {
		if tag == nil {
			panic("nbt: Append with nil tag")
		}
		if tag.Type() != elem {
			return fmt.Errorf("%w: cannot insert %s into list of %s", errs.ErrTypeMismatch, tag.Type(), elem)
		}
	}

	l.elem = elem
	l.items = append(l.items, tags...)

	return nil
}

// Set replaces the element at index i, enforcing the declared element type.
// Panics when i is out of range.
func (l *List) Set(i int, tag Tag) error {
	if tag == nil {
		panic("nbt: Set with nil tag")
	}
	if tag.Type() != l.elem {
		return fmt.Errorf("%w: cannot insert %s into list of %s", errs.ErrTypeMismatch, tag.Type(), l.elem)
	}
	l.items[i] = tag

	return nil
}

// Remove deletes and returns the element at index i, shifting later
// elements down. Panics when i is out of range. The declared element type
// is retained even when the last element is removed.
func (l *List) Remove(i int) Tag {
	tag := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)

	return tag
}

// All iterates elements in order. The list must not be mutated during
// iteration.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
