// Package mutf8 implements the modified UTF-8 string encoding used by the
// NBT wire format.
//
// Modified UTF-8 differs from standard UTF-8 in two ways:
//
//   - U+0000 is encoded as the two-byte overlong sequence C0 80, so encoded
//     strings never contain a raw NUL byte.
//   - Supplementary code points (above U+FFFF) are encoded as an explicit
//     UTF-16 surrogate pair, each half as a regular 3-byte sequence, instead
//     of a 4-byte UTF-8 sequence.
//
// Both deviations are required by the wire format; they are not bugs to be
// "fixed" toward standard UTF-8.
package mutf8

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalid indicates input that is not well-formed modified UTF-8: a raw
// NUL byte, a truncated or overlong multi-byte sequence, a 4-byte UTF-8
// sequence, or an unpaired surrogate half.
var ErrInvalid = errors.New("invalid modified UTF-8")

const (
	surrSelf = 0x10000 // first supplementary code point
	surr1    = 0xD800  // first high surrogate
	surr2    = 0xDC00  // first low surrogate
	surr3    = 0xE000  // first code point past the surrogate block
)

// EncodedLen returns the number of bytes Encode will produce for s.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r < surrSelf:
			n += 3
		default:
			n += 6 // surrogate pair, 3 bytes each half
		}
	}

	return n
}

// Append appends the modified UTF-8 encoding of s to dst and returns the
// extended slice.
func Append(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < surrSelf:
			dst = append(dst, 0xE0|byte(r>>12), 0x80|byte(r>>6&0x3F), 0x80|byte(r&0x3F))
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = append(dst, 0xE0|byte(hi>>12), 0x80|byte(hi>>6&0x3F), 0x80|byte(hi&0x3F))
			dst = append(dst, 0xE0|byte(lo>>12), 0x80|byte(lo>>6&0x3F), 0x80|byte(lo&0x3F))
		}
	}

	return dst
}

// Encode returns the modified UTF-8 encoding of s.
func Encode(s string) []byte {
	return Append(make([]byte, 0, EncodedLen(s)), s)
}

// Decode converts modified UTF-8 bytes to a Go string, or fails with
// ErrInvalid on malformed input.
func Decode(data []byte) (string, error) {
	buf := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == 0x00:
			// NUL must use the two-byte form.
			return "", ErrInvalid
		case c < 0x80:
			buf = append(buf, c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(data) || data[i+1]&0xC0 != 0x80 {
				return "", ErrInvalid
			}
			r := rune(c&0x1F)<<6 | rune(data[i+1]&0x3F)
			// C0 80 is the only permitted overlong sequence.
			if r < 0x80 && r != 0 {
				return "", ErrInvalid
			}
			buf = utf8.AppendRune(buf, r)
			i += 2
		case c&0xF0 == 0xE0:
			r, err := decode3(data, i)
			if err != nil {
				return "", err
			}
			i += 3
			switch {
			case r < 0x800:
				return "", ErrInvalid // overlong 3-byte form
			case surr1 <= r && r < surr2:
				// High surrogate: the low half must follow immediately.
				lo, err := decode3(data, i)
				if err != nil || lo < surr2 || lo >= surr3 {
					return "", ErrInvalid
				}
				buf = utf8.AppendRune(buf, utf16.DecodeRune(r, lo))
				i += 3
			case surr2 <= r && r < surr3:
				return "", ErrInvalid // unpaired low surrogate
			default:
				buf = utf8.AppendRune(buf, r)
			}
		default:
			// 4-byte UTF-8 and stray continuation bytes are illegal here.
			return "", ErrInvalid
		}
	}

	return string(buf), nil
}

// Valid reports whether data is well-formed modified UTF-8.
func Valid(data []byte) bool {
	_, err := Decode(data)
	return err == nil
}

func decode3(data []byte, i int) (rune, error) {
	if i+2 >= len(data) || data[i]&0xF0 != 0xE0 || data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
		return 0, ErrInvalid
	}

	return rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F), nil
}
