package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mov copies src into dst (MOV dst, src). Both must be general-purpose
// registers; dst == src is a valid MOV and is logged like any other.
func (c *CPU) Mov(dst, src Reg) (Entry, error) {
	if err := c.general(dst); err != nil {
		return Entry{}, errors.Wrap(err, "MOV destination")
	}
	if err := c.general(src); err != nil {
		return Entry{}, errors.Wrap(err, "MOV source")
	}

	value := c.regs.Get(src)
	c.regs.Move(src, dst)

	return c.log.add(Entry{
		Op:             OpMOV,
		Kind:           KindMov,
		Register:       dst.String(),
		SecondRegister: src.String(),
		Value:          value.String(),
	}), nil
}

// MovMemory moves a word between a register and memory in the given direction.
func (c *CPU) MovMemory(r Reg, dir Direction, op MemOperand) (Entry, error) {
	switch dir {
	case ToMemory:
		return c.MovToMemory(r, op)
	case FromMemory:
		return c.MovFromMemory(r, op)
	}
	return Entry{}, errors.Wrapf(ErrValidation, "unknown direction %d", dir)
}

// MovToMemory stores src at the operand's effective address (MOV [ea], src).
// The word goes low byte first into two consecutive cells.
func (c *CPU) MovToMemory(src Reg, op MemOperand) (Entry, error) {
	if err := c.general(src); err != nil {
		return Entry{}, errors.Wrap(err, "MOV source")
	}
	ea, err := c.resolve(op)
	if err != nil {
		return Entry{}, errors.Wrap(err, "MOV to memory")
	}

	value := c.regs.Get(src)
	c.mem.WriteWord(ea.Address, value, &Provenance{
		AddressCalculation: ea.Describe(),
		ValueSource:        fmt.Sprintf("value from register %s: %s", src, value),
	})

	return c.log.add(Entry{
		Op:       OpMOV,
		Kind:     KindMovToMemory,
		Register: src.String(),
		Pointer:  ea.Composition,
		Value:    value.String(),
	}), nil
}

// MovFromMemory loads the word at the operand's effective address into dst
// (MOV dst, [ea]). A word whose cells are both still 00 counts as never
// written and the read is rejected with ErrMemoryRead.
func (c *CPU) MovFromMemory(dst Reg, op MemOperand) (Entry, error) {
	if err := c.general(dst); err != nil {
		return Entry{}, errors.Wrap(err, "MOV destination")
	}
	ea, err := c.resolve(op)
	if err != nil {
		return Entry{}, errors.Wrap(err, "MOV from memory")
	}
	value, err := c.readWord(ea)
	if err != nil {
		return Entry{}, err
	}

	c.regs.Set(dst, value)

	return c.log.add(Entry{
		Op:       OpMOV,
		Kind:     KindMovFromMemory,
		Register: dst.String(),
		Pointer:  ea.Composition,
		Value:    value.String(),
	}), nil
}

// readWord applies the "00 means no value" policy.
func (c *CPU) readWord(ea EffectiveAddress) (Word, error) {
	w := c.mem.ReadWord(ea.Address)
	if w == 0 {
		return 0, errors.Wrapf(ErrMemoryRead, "no value at address %04X", ea.Address)
	}
	return w, nil
}
