package cpu

import (
	"github.com/pkg/errors"
)

// MemorySize is the number of addressable byte cells.
const MemorySize = 0x10000

// Provenance describes how a memory cell got its value.
type Provenance struct {
	// AddressCalculation, e.g. "0015 (computed as SI+0005)".
	AddressCalculation string
	// ValueSource, e.g. "value from register AX: 1A2B".
	ValueSource string
}

// Cell is one entry of the non-default memory view.
type Cell struct {
	Address    uint16
	Value      Byte
	Provenance *Provenance
}

// Memory is a flat 64K byte array plus a view listing the cells that differ
// from 00, most recent write first. The view is patched on every write and is
// only ever changed by Memory itself.
type Memory struct {
	cells [MemorySize]Byte
	view  []Cell
}

// NewMemory creates a memory with every cell at 00.
func NewMemory() *Memory {
	return &Memory{}
}

func checkAddress(addr int) error {
	if addr < 0 || addr >= MemorySize {
		return errors.Wrapf(ErrIndex, "address %d outside 0000-FFFF", addr)
	}
	return nil
}

// Read returns the cell at addr.
func (m *Memory) Read(addr int) (Byte, error) {
	if err := checkAddress(addr); err != nil {
		return 0, err
	}
	return m.cells[addr], nil
}

// Write validates value as a 2-digit hex byte and stores it at addr.
func (m *Memory) Write(addr int, value string, prov *Provenance) error {
	if err := checkAddress(addr); err != nil {
		return err
	}
	b, err := ParseByte(value)
	if err != nil {
		return errors.Wrapf(err, "memory %04X", addr)
	}
	m.store(uint16(addr), b, prov)
	return nil
}

// StoreByte stores an already validated byte at addr.
func (m *Memory) StoreByte(addr uint16, b Byte, prov *Provenance) {
	m.store(addr, b, prov)
}

func (m *Memory) store(addr uint16, b Byte, prov *Provenance) {
	m.cells[addr] = b
	for i := range m.view {
		if m.view[i].Address == addr {
			m.view = append(m.view[:i], m.view[i+1:]...)
			break
		}
	}
	if b == 0 {
		return
	}
	var p *Provenance
	if prov != nil {
		cp := *prov
		p = &cp
	}
	m.view = append([]Cell{{Address: addr, Value: b, Provenance: p}}, m.view...)
}

// ReadWord returns the little-endian word stored at addr and addr+1 (wrapping).
func (m *Memory) ReadWord(addr uint16) Word {
	return BytesToWord(m.cells[addr], m.cells[nextAddress(addr)])
}

// WriteWord stores w at addr (low byte) and addr+1 (high byte, wrapping). The
// high byte is written last so it leads the view.
func (m *Memory) WriteWord(addr uint16, w Word, prov *Provenance) {
	b := WordToBytes(w)
	m.store(addr, b[0], prov)
	m.store(nextAddress(addr), b[1], prov)
}

// View returns a copy of the non-default cells, most recent write first.
func (m *Memory) View() []Cell {
	out := make([]Cell, len(m.view))
	for i, c := range m.view {
		out[i] = c
		if c.Provenance != nil {
			p := *c.Provenance
			out[i].Provenance = &p
		}
	}
	return out
}

// Reset clears every cell to 00 and empties the view.
func (m *Memory) Reset() {
	m.cells = [MemorySize]Byte{}
	m.view = nil
}

// Equal reports whether two memories hold the same cell values.
func (m *Memory) Equal(o *Memory) bool {
	return m.cells == o.cells
}
