package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reset restores one container to its initial state. Register banks log one
// "MOV r, 0000" RESET entry per register; memory and the stack log a single
// entry each.
func (c *CPU) Reset(t Target) ([]Entry, error) {
	switch t {
	case ResetRegisters:
		return c.resetBank(c.regs), nil
	case ResetAddress:
		return c.resetBank(c.addr), nil
	case ResetMemory:
		c.mem.Reset()
		return []Entry{c.log.add(Entry{
			Op:       OpRESET,
			Kind:     KindReset,
			Register: t.String(),
		})}, nil
	case ResetStack:
		c.stack.Reset()
		return []Entry{c.log.add(Entry{
			Op:       OpRESET,
			Kind:     KindReset,
			Register: t.String(),
			Value:    fmt.Sprintf("%04X", c.stack.Pointer()),
		})}, nil
	}
	return nil, errors.Wrapf(ErrValidation, "unknown reset target %d", t)
}

func (c *CPU) resetBank(b *Bank) []Entry {
	b.Reset()
	entries := make([]Entry, 0, 4)
	for _, r := range b.Kind().Registers() {
		entries = append(entries, c.log.add(Entry{
			Op:       OpMOV,
			Kind:     KindReset,
			Register: r.String(),
			Value:    Word(0).String(),
		}))
	}
	return entries
}

// ResetAll resets both banks, memory and the stack, in that order.
func (c *CPU) ResetAll() []Entry {
	var entries []Entry
	for _, t := range []Target{ResetRegisters, ResetAddress, ResetMemory, ResetStack} {
		e, _ := c.Reset(t)
		entries = append(entries, e...)
	}
	return entries
}
