package mutf8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeASCII(t *testing.T) {
	require.Equal(t, []byte("version"), Encode("version"))
	require.Equal(t, len("version"), EncodedLen("version"))
}

func TestEncodeNul(t *testing.T) {
	got := Encode("a\x00b")
	require.Equal(t, []byte{'a', 0xC0, 0x80, 'b'}, got)
	require.Equal(t, 4, EncodedLen("a\x00b"))
}

func TestEncodeTwoAndThreeByte(t *testing.T) {
	// U+00E9 (é) takes two bytes, U+4E16 (世) takes three.
	require.Equal(t, []byte{0xC3, 0xA9}, Encode("é"))
	require.Equal(t, []byte{0xE4, 0xB8, 0x96}, Encode("世"))
}

func TestEncodeSupplementaryUsesSurrogatePair(t *testing.T) {
	// U+1F600 must become a 6-byte surrogate pair (D83D DE00), never the
	// 4-byte UTF-8 form F0 9F 98 80.
	got := Encode("\U0001F600")
	require.Equal(t, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, got)
	require.Equal(t, 6, EncodedLen("\U0001F600"))
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"with\x00nul",
		"café",
		"世界",
		"mixed \U0001F600 and é and \x00",
		"\U0010FFFF",
	}
	for _, in := range inputs {
		enc := Encode(in)
		require.Equal(t, len(enc), EncodedLen(in))
		dec, err := Decode(enc)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, in, dec)
	}
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string][]byte{
		"raw NUL":                 {0x00},
		"truncated 2-byte":        {0xC3},
		"truncated 3-byte":        {0xE4, 0xB8},
		"bad continuation":        {0xC3, 0xFF},
		"overlong 2-byte":         {0xC1, 0xBF},
		"overlong 3-byte":         {0xE0, 0x81, 0xBF},
		"four byte utf8":          {0xF0, 0x9F, 0x98, 0x80},
		"stray continuation":      {0x80},
		"unpaired high surrogate": {0xED, 0xA0, 0xBD},
		"unpaired low surrogate":  {0xED, 0xB8, 0x80},
		"high then non-surrogate": {0xED, 0xA0, 0xBD, 0xE4, 0xB8, 0x96},
	}
	for name, data := range cases {
		_, err := Decode(data)
		require.ErrorIs(t, err, ErrInvalid, name)
		require.False(t, Valid(data), name)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid(Encode("ok \U0001F600")))
	require.True(t, Valid(nil))
}
