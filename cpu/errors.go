package cpu

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Rejection kinds. Every command that refuses to run returns one of these,
// wrapped with context. State is never modified when a rejection is returned.
var (
	// ErrValidation is returned when a value is not a well-formed hex word or byte.
	ErrValidation = errors.New("validation error")
	// ErrAddressing is returned when the displacement or register selection for an
	// addressing mode is missing or malformed.
	ErrAddressing = errors.New("addressing error")
	// ErrMemoryRead is returned when a memory read hits a word still at the reset sentinel.
	ErrMemoryRead = errors.New("memory read error")
	// ErrEmptyStack is returned by POP when there is nothing to pop.
	ErrEmptyStack = errors.New("empty stack")
	// ErrIndex is a programming error: a memory address outside the 64K space.
	ErrIndex = errors.New("index error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrValidation, "ValidationError"},
	{ErrAddressing, "AddressingError"},
	{ErrMemoryRead, "MemoryReadError"},
	{ErrEmptyStack, "EmptyStackError"},
	{ErrIndex, "IndexError"},
}

// Kind returns the rejection kind name of err ("ValidationError", ...), or an
// empty string for nil and unclassified errors.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if stderrors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// IsRejection reports whether err is one of the engine's typed rejections.
func IsRejection(err error) bool {
	return Kind(err) != ""
}
