package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0000", "0000", true},
		{"1a2b", "1A2B", true},
		{"FFFF", "FFFF", true},
		{"aBcD", "ABCD", true},
		{"123", "", false},
		{"12345", "", false},
		{"12G4", "", false},
		{"", "", false},
		{" 123", "", false},
		{"0x12", "", false},
	}
	for _, tc := range tests {
		w, err := ParseWord(tc.in)
		if !tc.ok {
			assert.Truef(t, errors.Is(err, ErrValidation), "%q: expected validation error, got %v", tc.in, err)
			continue
		}
		require.NoErrorf(t, err, "%q", tc.in)
		assert.Equal(t, tc.want, w.String())
	}
}

func TestParseByte(t *testing.T) {
	b, err := ParseByte("ff")
	require.NoError(t, err)
	assert.Equal(t, "FF", b.String())

	for _, bad := range []string{"F", "FFF", "G0", ""} {
		_, err := ParseByte(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestWordBytes(t *testing.T) {
	w := Word(0x1A2B)
	assert.Equal(t, Byte(0x2B), w.Low())
	assert.Equal(t, Byte(0x1A), w.High())

	b := WordToBytes(w)
	assert.Equal(t, [2]Byte{0x2B, 0x1A}, b)
	assert.Equal(t, w, BytesToWord(b[0], b[1]))
}

func TestCanonical(t *testing.T) {
	s, err := Canonical("beef")
	require.NoError(t, err)
	assert.Equal(t, "BEEF", s)
	assert.True(t, IsHexWord("0a0a"))
	assert.False(t, IsHexWord("0a0"))
}

func TestKind(t *testing.T) {
	_, err := ParseWord("xyz")
	assert.Equal(t, "ValidationError", Kind(err))
	assert.True(t, IsRejection(err))
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "", Kind(errors.New("other")))
	assert.False(t, IsRejection(errors.New("other")))
}
