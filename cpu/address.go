package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// MemOperand describes a memory operand: the addressing mode, the registers
// taking part and an optional literal displacement. An empty Disp means the
// DISP register is used.
type MemOperand struct {
	Mode     Mode
	Selector Selector
	Disp     string
}

// String returns the operand as written in an instruction, e.g. "[SI+DISP]".
func (op MemOperand) String() string {
	disp := "DISP"
	if op.Disp != "" {
		disp = op.Disp
	}
	if s := op.Selector.String(); s != "" {
		return "[" + s + "+" + disp + "]"
	}
	return "[" + disp + "]"
}

// AddressInputs are the register values an effective address may draw on.
// BX comes from the general bank, the rest from the address bank.
type AddressInputs struct {
	SI, DI, BP, BX Word
	Disp           string
}

// EffectiveAddress is a resolved 16-bit address with a readable composition,
// e.g. Address 0x0015 and Composition "SI+0005".
type EffectiveAddress struct {
	Address     uint16
	Composition string
}

// Describe returns the provenance text for the address,
// e.g. "0015 (computed as SI+0005)".
func (ea EffectiveAddress) Describe() string {
	return fmt.Sprintf("%04X (computed as %s)", ea.Address, ea.Composition)
}

// Resolve computes the effective address for a mode and register selection.
// The sum is taken modulo 65536. It fails only with ErrAddressing, when the
// selection does not fit the mode or the displacement is not a hex word.
func Resolve(mode Mode, sel Selector, in AddressInputs) (EffectiveAddress, error) {
	disp, err := ParseWord(in.Disp)
	if err != nil {
		return EffectiveAddress{}, errors.Wrapf(ErrAddressing, "displacement %q is not a 4-digit hex value", in.Disp)
	}
	if mode == 0 {
		return EffectiveAddress{}, errors.Wrap(ErrAddressing, "no addressing mode selected")
	}
	if sel.Mode() != mode {
		return EffectiveAddress{}, errors.Wrapf(ErrAddressing, "selection %q does not fit %s addressing", sel, mode)
	}

	var sum uint32
	switch mode {
	case ModeIndexing:
		sum = uint32(in.index(sel.Index))
	case ModeBase:
		sum = uint32(in.base(sel.Base))
	case ModeIndexBase:
		sum = uint32(in.index(sel.Index)) + uint32(in.base(sel.Base))
	default:
		return EffectiveAddress{}, errors.Wrapf(ErrAddressing, "unknown addressing mode %d", mode)
	}
	sum += uint32(disp)

	return EffectiveAddress{
		Address:     uint16(sum & 0xFFFF),
		Composition: sel.String() + "+" + disp.String(),
	}, nil
}

func (in AddressInputs) index(r Reg) Word {
	if r == DI {
		return in.DI
	}
	return in.SI
}

func (in AddressInputs) base(r Reg) Word {
	if r == BP {
		return in.BP
	}
	return in.BX
}
