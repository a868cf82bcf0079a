package vm

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/Urethramancer/mov86/cpu"
)

// Snapshot returns a copy of the whole session state.
func (v *VM) Snapshot() cpu.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cpu.Snapshot()
}

// Registers returns AX-DX by name.
func (v *VM) Registers() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return bankMap(cpu.General, v.cpu.Registers())
}

// AddressRegisters returns SI, DI, BP and DISP by name.
func (v *VM) AddressRegisters() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return bankMap(cpu.Address, v.cpu.AddressRegisters())
}

func bankMap(kind cpu.BankKind, vals [4]cpu.Word) map[string]string {
	m := make(map[string]string, 4)
	for i, r := range kind.Registers() {
		m[r.String()] = vals[i].String()
	}
	return m
}

// Register returns one register's value as 4 hex digits.
func (v *VM) Register(name string) (string, error) {
	r, err := cpu.ParseReg(name)
	if err != nil {
		return "", err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cpu.Register(r).String(), nil
}

// Memory returns the cells that differ from 00, most recent write first.
func (v *VM) Memory() []cpu.Cell {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cpu.MemoryView()
}

// Stack returns the stacked words, most recently pushed first, and the pointer.
func (v *VM) Stack() ([]string, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	words := v.cpu.StackValues()
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out, v.cpu.StackPointer()
}

// Log returns the raw operation log, most recent first.
func (v *VM) Log() []cpu.Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cpu.Log()
}

// DumpRegisters writes both banks, the stack pointer and the memory view in
// a compact text form.
func (v *VM) DumpRegisters(w io.Writer) {
	s := v.Snapshot()
	for i, r := range cpu.General.Registers() {
		fmt.Fprintf(w, "%-4s %s  ", r, s.Registers[i])
	}
	fmt.Fprintln(w)
	for i, r := range cpu.Address.Registers() {
		fmt.Fprintf(w, "%-4s %s  ", r, s.AddressRegisters[i])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "SP   %04X  depth %d\n", s.StackPointer, len(s.Stack))
	for _, c := range s.Memory {
		fmt.Fprintf(w, "[%04X] %s\n", c.Address, c.Value)
	}
}

// Debug pretty-prints the full state, log included.
func (v *VM) Debug(w io.Writer, color bool) {
	s := v.Snapshot()
	p := pp.New()
	p.SetOutput(w)
	p.SetColoringEnabled(color)
	p.Println(s)
}
