package vm

import (
	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/assembler"
	"github.com/Urethramancer/mov86/cpu"
	"github.com/Urethramancer/mov86/disassembler"
)

// Execute runs one assembled instruction and returns the log entries it added.
func (v *VM) Execute(in assembler.Instruction) ([]cpu.Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.execute(in)
}

func (v *VM) execute(in assembler.Instruction) ([]cpu.Entry, error) {
	return v.applyLocked(in.String(), func(c *cpu.CPU) ([]cpu.Entry, error) {
		ops := in.Operands
		switch in.Form {
		case assembler.FormMovReg:
			return one(c.Mov(ops[0].Reg, ops[1].Reg))
		case assembler.FormAssign:
			return one(c.Assign(ops[0].Reg, ops[1].Value.String(), cpu.OriginManual))
		case assembler.FormMovToMemory:
			return one(c.MovToMemory(in.Register(), in.Memory()))
		case assembler.FormMovFromMemory:
			return one(c.MovFromMemory(in.Register(), in.Memory()))
		case assembler.FormXchgReg:
			return one(c.Xchg(ops[0].Reg, ops[1].Reg))
		case assembler.FormXchgMemory:
			return one(c.XchgMemory(in.Register(), in.Memory()))
		case assembler.FormPush:
			return one(c.Push(in.Register()))
		case assembler.FormPop:
			return one(c.Pop(in.Register()))
		case assembler.FormReset:
			return reset(c, in.Target())
		case assembler.FormRandom:
			return v.randomize(c, in.Target())
		case assembler.FormClear:
			c.ClearLog()
			return nil, nil
		}
		return nil, errors.Wrapf(assembler.ErrSyntax, "unassembled instruction %q", in)
	})
}

// Run assembles a program and executes it line by line. It stops at the
// first rejection; instructions before it stay applied.
func (v *VM) Run(src string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	prog, err := v.asm.Assemble(src)
	if err != nil {
		return err
	}
	for _, in := range prog {
		if _, err := v.execute(in); err != nil {
			return errors.Wrapf(err, "line %d: %s", in.Line, in)
		}
	}
	return nil
}

// RunLine assembles and executes a single line, as typed at a prompt.
// Symbols defined by earlier lines remain visible.
func (v *VM) RunLine(line string) ([]cpu.Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	in, ok, err := v.asm.AssembleLine(line)
	if err != nil || !ok {
		return nil, err
	}
	return v.execute(in)
}

// History returns the operation log as display lines, most recent first.
func (v *VM) History() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return disassembler.FormatHistory(v.cpu.Log())
}

// Program returns the operation log, oldest first, as program text.
func (v *VM) Program() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return disassembler.Disassemble(v.cpu.History())
}

// Replay runs the session's program on a new VM built with the same logger and
// engine options. Unless the log was cleared, the new VM ends up in the same
// state. It draws from its own random source.
func (v *VM) Replay() (*VM, error) {
	src, err := v.Program()
	if err != nil {
		return nil, err
	}
	r, err := New(WithLogger(v.log), WithCPUOptions(v.cpuOpts...))
	if err != nil {
		return nil, err
	}
	if err := r.Run(src); err != nil {
		return nil, errors.Wrap(err, "replay")
	}
	return r, nil
}
