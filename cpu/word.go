package cpu

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Word is a 16-bit value. Its text form is always 4 uppercase hex digits.
type Word uint16

// Byte is the content of a single memory cell. Its text form is 2 uppercase hex digits.
type Byte uint8

// String returns the canonical 4-digit form, e.g. "1A2B".
func (w Word) String() string {
	return fmt.Sprintf("%04X", uint16(w))
}

// Low returns the low-order byte.
func (w Word) Low() Byte {
	return Byte(w & 0xFF)
}

// High returns the high-order byte.
func (w Word) High() Byte {
	return Byte(w >> 8)
}

// String returns the canonical 2-digit form, e.g. "FF".
func (b Byte) String() string {
	return fmt.Sprintf("%02X", uint8(b))
}

// ParseWord validates s as exactly 4 hex digits (either case) and returns its value.
func ParseWord(s string) (Word, error) {
	v, err := parseHex(s, 4)
	if err != nil {
		return 0, err
	}
	return Word(v), nil
}

// ParseByte validates s as exactly 2 hex digits (either case) and returns its value.
func ParseByte(s string) (Byte, error) {
	v, err := parseHex(s, 2)
	if err != nil {
		return 0, err
	}
	return Byte(v), nil
}

// IsHexWord reports whether s is a well-formed 4-digit hex value.
func IsHexWord(s string) bool {
	_, err := ParseWord(s)
	return err == nil
}

// Canonical returns the uppercase form of a valid hex word.
func Canonical(s string) (string, error) {
	w, err := ParseWord(s)
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

func parseHex(s string, digits int) (uint64, error) {
	if len(s) != digits {
		return 0, errors.Wrapf(ErrValidation, "%q is not a %d-digit hex value", s, digits)
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return 0, errors.Wrapf(ErrValidation, "%q is not a %d-digit hex value", s, digits)
		}
	}
	// Cannot fail after the digit check.
	v, _ := strconv.ParseUint(s, 16, digits*4)
	return v, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
