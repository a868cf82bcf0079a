package cpu

import "github.com/pkg/errors"

// Push puts the value of a general-purpose register on the stack (PUSH r).
// The stack pointer is not wrapped or limited.
func (c *CPU) Push(r Reg) (Entry, error) {
	if err := c.general(r); err != nil {
		return Entry{}, errors.Wrap(err, "PUSH")
	}

	value := c.regs.Get(r)
	c.stack.Push(value)

	return c.log.add(Entry{
		Op:       OpPUSH,
		Kind:     KindStack,
		Register: r.String(),
		Value:    value.String(),
	}), nil
}

// Pop takes the top of the stack into a general-purpose register (POP r). On an
// empty stack nothing happens, nothing is logged and ErrEmptyStack is returned.
func (c *CPU) Pop(r Reg) (Entry, error) {
	if err := c.general(r); err != nil {
		return Entry{}, errors.Wrap(err, "POP")
	}
	value, ok := c.stack.Pop()
	if !ok {
		return Entry{}, errors.Wrapf(ErrEmptyStack, "POP %s", r)
	}

	c.regs.Set(r, value)

	return c.log.add(Entry{
		Op:       OpPOP,
		Kind:     KindStack,
		Register: r.String(),
		Value:    value.String(),
	}), nil
}
