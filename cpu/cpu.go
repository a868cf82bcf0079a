package cpu

import (
	"time"

	"github.com/pkg/errors"
)

// CPU owns the whole simulated state: both register banks, memory, the stack
// and the operation log. Commands either apply completely and return the log
// entries they added, or return a rejection and leave everything untouched.
//
// A CPU is not safe for concurrent use; see the vm package for a serialized
// session.
type CPU struct {
	regs  *Bank
	addr  *Bank
	mem   *Memory
	stack *Stack
	log   *Log

	policy StackPolicy
	clock  func() time.Time
	newID  func() string
}

// Option configures a CPU.
type Option func(*CPU) error

// WithStackPolicy sets the stack pointer convention. The default is StackGrowsDown.
func WithStackPolicy(p StackPolicy) Option {
	return func(c *CPU) error {
		if p != StackGrowsDown && p != StackGrowsUp {
			return errors.Errorf("invalid stack policy %d", p)
		}
		c.policy = p
		return nil
	}
}

// WithClock sets the time source for log timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *CPU) error { c.clock = clock; return nil }
}

// WithIDGenerator sets the function generating log entry ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *CPU) error { c.newID = fn; return nil }
}

// New creates a CPU with all registers at 0000, memory cleared, an empty stack
// and an empty log.
func New(opts ...Option) (*CPU, error) {
	c := &CPU{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.regs = NewBank(General)
	c.addr = NewBank(Address)
	c.mem = NewMemory()
	c.stack = NewStack(c.policy)
	c.log = NewLog(c.clock, c.newID)
	return c, nil
}

// State is a point-in-time copy of everything a CPU holds.
type State struct {
	Registers        [4]Word // AX, BX, CX, DX
	AddressRegisters [4]Word // SI, DI, BP, DISP
	Memory           []Cell  // non-default cells, most recent write first
	Stack            []Word  // most recently pushed first
	StackPointer     int
	Log              []Entry // most recent first
}

// Snapshot returns a copy of the current state. It shares no storage with the CPU.
func (c *CPU) Snapshot() State {
	return State{
		Registers:        c.regs.Values(),
		AddressRegisters: c.addr.Values(),
		Memory:           c.mem.View(),
		Stack:            c.stack.Values(),
		StackPointer:     c.stack.Pointer(),
		Log:              c.log.Entries(),
	}
}

// Register returns the value of any of the eight registers.
func (c *CPU) Register(r Reg) Word {
	return c.bank(r).Get(r)
}

// Registers returns AX, BX, CX and DX.
func (c *CPU) Registers() [4]Word {
	return c.regs.Values()
}

// AddressRegisters returns SI, DI, BP and DISP.
func (c *CPU) AddressRegisters() [4]Word {
	return c.addr.Values()
}

// MemoryView returns the cells that differ from 00, most recent write first.
func (c *CPU) MemoryView() []Cell {
	return c.mem.View()
}

// ReadMemory returns a single cell.
func (c *CPU) ReadMemory(addr int) (Byte, error) {
	return c.mem.Read(addr)
}

// StackValues returns the stacked words, most recently pushed first.
func (c *CPU) StackValues() []Word {
	return c.stack.Values()
}

// StackPointer returns the stack pointer.
func (c *CPU) StackPointer() int {
	return c.stack.Pointer()
}

// StackPolicy returns the stack pointer convention in use.
func (c *CPU) StackPolicy() StackPolicy {
	return c.policy
}

// Log returns the operation log, most recent first.
func (c *CPU) Log() []Entry {
	return c.log.Entries()
}

// History returns the operation log, oldest first.
func (c *CPU) History() []Entry {
	return c.log.Chronological()
}

// ClearLog empties the operation log. It is not itself logged.
func (c *CPU) ClearLog() {
	c.log.Clear()
}

func (c *CPU) bank(r Reg) *Bank {
	if r.Bank() == Address {
		return c.addr
	}
	return c.regs
}

func (c *CPU) general(r Reg) error {
	if !r.Valid() || r.Bank() != General {
		return errors.Wrapf(ErrValidation, "%s is not a general-purpose register", r)
	}
	return nil
}

// resolve computes the effective address of a memory operand from the
// current register contents.
func (c *CPU) resolve(op MemOperand) (EffectiveAddress, error) {
	disp := op.Disp
	if disp == "" {
		disp = c.addr.Get(DISP).String()
	}
	return Resolve(op.Mode, op.Selector, AddressInputs{
		SI:   c.addr.Get(SI),
		DI:   c.addr.Get(DI),
		BP:   c.addr.Get(BP),
		BX:   c.regs.Get(BX),
		Disp: disp,
	})
}

// EffectiveAddress resolves a memory operand without touching memory.
func (c *CPU) EffectiveAddress(op MemOperand) (EffectiveAddress, error) {
	return c.resolve(op)
}
