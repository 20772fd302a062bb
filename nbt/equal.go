package nbt

import "slices"

// Equal reports deep structural equality of two tags.
//
// Scalars compare by value; floats follow Go's == semantics, so NaN never
// equals NaN. Arrays and lists compare element-wise in order. Compounds
// compare as maps: the same key set with Equal values, ignoring insertion
// order. Two empty lists are equal regardless of declared element type,
// matching the wire form's use of End for empty lists.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case Byte, Short, Int, Long, Float, Double, String:
		return a == b
	case ByteArray:
		return slices.Equal(av, b.(ByteArray))
	case IntArray:
		return slices.Equal(av, b.(IntArray))
	case LongArray:
		return slices.Equal(av, b.(LongArray))
	case *List:
		bv := b.(*List)
		if len(av.items) != len(bv.items) {
			return false
		}
		if len(av.items) == 0 {
			return true
		}
		if av.elem != bv.elem {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}

		return true
	case *Compound:
		bv := b.(*Compound)
		if len(av.vals) != len(bv.vals) {
			return false
		}
		for name, atag := range av.vals {
			btag, ok := bv.vals[name]
			if !ok || !Equal(atag, btag) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
