package vm

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

// Addressing selects a memory operand: a mode ("indexing", "base" or
// "index-base"), a register selection ("SI", "BP", "SI_BX", ...) and an
// optional literal displacement. An empty Disp uses the DISP register.
type Addressing struct {
	Mode      string
	Selection string
	Disp      string
}

// operand decodes an Addressing into an engine memory operand.
func (a Addressing) operand() (cpu.MemOperand, error) {
	mode, err := cpu.ParseMode(a.Mode)
	if err != nil {
		return cpu.MemOperand{}, err
	}
	sel, err := cpu.ParseSelector(mode, a.Selection)
	if err != nil {
		return cpu.MemOperand{}, err
	}
	return cpu.MemOperand{Mode: mode, Selector: sel, Disp: strings.TrimSpace(a.Disp)}, nil
}

// Assign stores a manually entered value in any register (MOV reg, value).
func (v *VM) Assign(reg, value string) error {
	_, err := v.apply("assign", func(c *cpu.CPU) ([]cpu.Entry, error) {
		r, err := cpu.ParseReg(reg)
		if err != nil {
			return nil, err
		}
		return one(c.Assign(r, strings.TrimSpace(value), cpu.OriginManual))
	})
	return err
}

// AssignMany stores several manually entered values at once, keyed by
// register name. Empty values are skipped; one bad value, or a register named
// twice in different case, rejects them all.
func (v *VM) AssignMany(values map[string]string) error {
	_, err := v.apply("assign", func(c *cpu.CPU) ([]cpu.Entry, error) {
		regs := make(map[cpu.Reg]string, len(values))
		for name, value := range values {
			r, err := cpu.ParseReg(name)
			if err != nil {
				return nil, err
			}
			if _, dup := regs[r]; dup {
				return nil, errors.Wrapf(cpu.ErrValidation, "register %s given twice", r)
			}
			regs[r] = strings.TrimSpace(value)
		}
		return c.AssignMany(regs, cpu.OriginManual)
	})
	return err
}

// Randomize fills a bank ("regs" or "addr") with random values.
func (v *VM) Randomize(bank string) error {
	_, err := v.apply("random", func(c *cpu.CPU) ([]cpu.Entry, error) {
		return v.randomize(c, bank)
	})
	return err
}

func (v *VM) randomize(c *cpu.CPU, bank string) ([]cpu.Entry, error) {
	b, err := cpu.ParseBank(bank)
	if err != nil {
		return nil, err
	}
	return c.AssignRandom(b, c.GenerateRandom(b, v.rng)), nil
}

// Mov copies one general-purpose register into another (MOV dst, src).
func (v *VM) Mov(dst, src string) error {
	_, err := v.apply("mov", func(c *cpu.CPU) ([]cpu.Entry, error) {
		d, s, err := parsePair(dst, src)
		if err != nil {
			return nil, err
		}
		return one(c.Mov(d, s))
	})
	return err
}

// MovMemory moves a word between a register and memory. Direction is
// "toMemory" or "fromMemory".
func (v *VM) MovMemory(reg, direction string, addr Addressing) error {
	_, err := v.apply("mov", func(c *cpu.CPU) ([]cpu.Entry, error) {
		r, err := cpu.ParseGeneralReg(reg)
		if err != nil {
			return nil, err
		}
		dir, err := cpu.ParseDirection(direction)
		if err != nil {
			return nil, err
		}
		op, err := addr.operand()
		if err != nil {
			return nil, err
		}
		return one(c.MovMemory(r, dir, op))
	})
	return err
}

// Xchg swaps two general-purpose registers.
func (v *VM) Xchg(first, second string) error {
	_, err := v.apply("xchg", func(c *cpu.CPU) ([]cpu.Entry, error) {
		a, b, err := parsePair(first, second)
		if err != nil {
			return nil, err
		}
		return one(c.Xchg(a, b))
	})
	return err
}

// XchgMemory swaps a general-purpose register with a word in memory.
func (v *VM) XchgMemory(reg string, addr Addressing) error {
	_, err := v.apply("xchg", func(c *cpu.CPU) ([]cpu.Entry, error) {
		r, err := cpu.ParseGeneralReg(reg)
		if err != nil {
			return nil, err
		}
		op, err := addr.operand()
		if err != nil {
			return nil, err
		}
		return one(c.XchgMemory(r, op))
	})
	return err
}

// Push pushes a general-purpose register.
func (v *VM) Push(reg string) error {
	_, err := v.apply("push", func(c *cpu.CPU) ([]cpu.Entry, error) {
		r, err := cpu.ParseGeneralReg(reg)
		if err != nil {
			return nil, err
		}
		return one(c.Push(r))
	})
	return err
}

// Pop pops into a general-purpose register. An empty stack is reported with
// an error wrapping cpu.ErrEmptyStack.
func (v *VM) Pop(reg string) error {
	_, err := v.apply("pop", func(c *cpu.CPU) ([]cpu.Entry, error) {
		r, err := cpu.ParseGeneralReg(reg)
		if err != nil {
			return nil, err
		}
		return one(c.Pop(r))
	})
	return err
}

// Reset restores "regs", "addr", "mem", "stack" or "all" to its initial state.
func (v *VM) Reset(target string) error {
	_, err := v.apply("reset", func(c *cpu.CPU) ([]cpu.Entry, error) {
		return reset(c, target)
	})
	return err
}

func reset(c *cpu.CPU, target string) ([]cpu.Entry, error) {
	if strings.EqualFold(strings.TrimSpace(target), "all") {
		return c.ResetAll(), nil
	}
	t, err := cpu.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	return c.Reset(t)
}

// ClearLog empties the operation log.
func (v *VM) ClearLog() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cpu.ClearLog()
	v.log.Debug("log cleared")
}

// EffectiveAddress previews the address an operand resolves to right now.
func (v *VM) EffectiveAddress(addr Addressing) (cpu.EffectiveAddress, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	op, err := addr.operand()
	if err != nil {
		return cpu.EffectiveAddress{}, err
	}
	return v.cpu.EffectiveAddress(op)
}

func parsePair(a, b string) (cpu.Reg, cpu.Reg, error) {
	first, err := cpu.ParseGeneralReg(a)
	if err != nil {
		return 0, 0, errors.Wrap(err, "first operand")
	}
	second, err := cpu.ParseGeneralReg(b)
	if err != nil {
		return 0, 0, errors.Wrap(err, "second operand")
	}
	return first, second, nil
}
