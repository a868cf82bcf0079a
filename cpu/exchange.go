package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Xchg swaps two general-purpose registers (XCHG first, second).
func (c *CPU) Xchg(first, second Reg) (Entry, error) {
	if err := c.general(first); err != nil {
		return Entry{}, errors.Wrap(err, "XCHG")
	}
	if err := c.general(second); err != nil {
		return Entry{}, errors.Wrap(err, "XCHG")
	}

	a, b := c.regs.Get(first), c.regs.Get(second)
	c.regs.Exchange(first, second)

	return c.log.add(Entry{
		Op:             OpXCHG,
		Kind:           KindXchg,
		Register:       first.String(),
		SecondRegister: second.String(),
		Value:          a.String() + "<->" + b.String(),
	}), nil
}

// XchgMemory swaps r with the word at the operand's effective address. The
// same "00 means no value" rule as MovFromMemory applies.
func (c *CPU) XchgMemory(r Reg, op MemOperand) (Entry, error) {
	if err := c.general(r); err != nil {
		return Entry{}, errors.Wrap(err, "XCHG")
	}
	ea, err := c.resolve(op)
	if err != nil {
		return Entry{}, errors.Wrap(err, "XCHG with memory")
	}
	memValue, err := c.readWord(ea)
	if err != nil {
		return Entry{}, err
	}

	regValue := c.regs.Get(r)
	swap := regValue.String() + "<->" + memValue.String()
	c.mem.WriteWord(ea.Address, regValue, &Provenance{
		AddressCalculation: ea.Describe(),
		ValueSource:        fmt.Sprintf("exchanged with register %s: %s", r, swap),
	})
	c.regs.Set(r, memValue)

	return c.log.add(Entry{
		Op:       OpXCHG,
		Kind:     KindXchgMemory,
		Register: r.String(),
		Pointer:  ea.Composition,
		Value:    swap,
	}), nil
}
