package nbt

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a 64-bit xxHash fingerprint of a tag tree, for cheap change
// detection: editors can fingerprint a chunk at load time and skip the
// write-back when the hash is unchanged.
//
// The fingerprint covers variant types and values. Compound entries are
// mixed in insertion order, so two compounds holding the same entries in a
// different order hash differently even though Equal treats them as equal.
// The fingerprint is not a wire checksum and carries no collision-resistance
// guarantees beyond xxHash64's.
func Hash(tag Tag) uint64 {
	d := xxhash.New()
	hashTag(d, tag)

	return d.Sum64()
}

func hashTag(d *xxhash.Digest, tag Tag) {
	var scratch [8]byte
	writeU64 := func(v uint64) {
		for i := range scratch {
			scratch[i] = byte(v >> (56 - 8*i))
		}
		_, _ = d.Write(scratch[:])
	}

	_, _ = d.Write([]byte{byte(tag.Type())})

	switch v := tag.(type) {
	case Byte:
		_, _ = d.Write([]byte{byte(v)})
	case Short:
		writeU64(uint64(uint16(v)))
	case Int:
		writeU64(uint64(uint32(v)))
	case Long:
		writeU64(uint64(v))
	case Float:
		writeU64(uint64(math.Float32bits(float32(v))))
	case Double:
		writeU64(math.Float64bits(float64(v)))
	case String:
		writeU64(uint64(len(v)))
		_, _ = d.WriteString(string(v))
	case ByteArray:
		writeU64(uint64(len(v)))
		_, _ = d.Write(v)
	case IntArray:
		writeU64(uint64(len(v)))
		for _, n := range v {
			writeU64(uint64(uint32(n)))
		}
	case LongArray:
		writeU64(uint64(len(v)))
		for _, n := range v {
			writeU64(uint64(n))
		}
	case *List:
		_, _ = d.Write([]byte{byte(v.elem)})
		writeU64(uint64(len(v.items)))
		for _, item := range v.items {
			hashTag(d, item)
		}
	case *Compound:
		writeU64(uint64(len(v.keys)))
		for _, name := range v.keys {
			writeU64(uint64(len(name)))
			_, _ = d.WriteString(name)
			hashTag(d, v.vals[name])
		}
	}
}
