package cpu

import (
	"strings"

	"github.com/pkg/errors"
)

var regNames = [...]string{
	AX:   "AX",
	BX:   "BX",
	CX:   "CX",
	DX:   "DX",
	SI:   "SI",
	DI:   "DI",
	BP:   "BP",
	DISP: "DISP",
}

// String returns the register name, e.g. "AX".
func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return "?"
}

// Bank returns the bank the register belongs to.
func (r Reg) Bank() BankKind {
	if r >= SI {
		return Address
	}
	return General
}

// Valid reports whether r is one of the eight known registers.
func (r Reg) Valid() bool {
	return r <= DISP
}

// ParseReg decodes a register name, ignoring case and surrounding space.
func ParseReg(s string) (Reg, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for r, n := range regNames {
		if n == name {
			return Reg(r), nil
		}
	}
	return 0, errors.Wrapf(ErrValidation, "unknown register %q", s)
}

// ParseGeneralReg decodes a register name that must belong to the AX-DX bank.
func ParseGeneralReg(s string) (Reg, error) {
	r, err := ParseReg(s)
	if err != nil {
		return 0, err
	}
	if r.Bank() != General {
		return 0, errors.Wrapf(ErrValidation, "%s is not a general-purpose register", r)
	}
	return r, nil
}

// Registers returns the four registers of the bank, in bank order.
func (k BankKind) Registers() [4]Reg {
	if k == Address {
		return [4]Reg{SI, DI, BP, DISP}
	}
	return [4]Reg{AX, BX, CX, DX}
}

func (k BankKind) String() string {
	if k == Address {
		return "ADDR"
	}
	return "REGS"
}

// ParseBank decodes "regs"/"general" or "addr"/"address".
func ParseBank(s string) (BankKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regs", "general", "registers":
		return General, nil
	case "addr", "address":
		return Address, nil
	}
	return 0, errors.Wrapf(ErrValidation, "unknown register bank %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeIndexing:
		return "indexing"
	case ModeBase:
		return "base"
	case ModeIndexBase:
		return "index-base"
	}
	return ""
}

// ParseMode decodes "indexing", "base" or "index-base".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indexing":
		return ModeIndexing, nil
	case "base":
		return ModeBase, nil
	case "index-base":
		return ModeIndexBase, nil
	}
	return 0, errors.Wrapf(ErrAddressing, "unknown addressing mode %q", s)
}

func (d Direction) String() string {
	switch d {
	case ToMemory:
		return "toMemory"
	case FromMemory:
		return "fromMemory"
	}
	return ""
}

// ParseDirection decodes "toMemory" or "fromMemory" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tomemory":
		return ToMemory, nil
	case "frommemory":
		return FromMemory, nil
	}
	return 0, errors.Wrapf(ErrValidation, "unknown direction %q", s)
}

// String returns the selector the way it is written in a composition string,
// e.g. "SI", "BP" or "SI+BX".
func (s Selector) String() string {
	switch {
	case s.isIndex() && s.isBase():
		return s.Index.String() + "+" + s.Base.String()
	case s.isIndex():
		return s.Index.String()
	case s.isBase():
		return s.Base.String()
	}
	return ""
}

func (s Selector) isIndex() bool {
	return s.Index == SI || s.Index == DI
}

func (s Selector) isBase() bool {
	return s.Base == BX || s.Base == BP
}

// Mode returns the addressing mode a selector implies, or 0 for a selector
// that names no legal combination.
func (s Selector) Mode() Mode {
	switch {
	case s.isIndex() && s.isBase():
		return ModeIndexBase
	case s.isIndex():
		return ModeIndexing
	case s.isBase():
		return ModeBase
	}
	return 0
}

// ParseSelector decodes a register selection for the given mode. Compound
// selections accept "SI_BX" or "SI+BX" in either order.
func ParseSelector(mode Mode, s string) (Selector, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if text == "" {
		return Selector{}, errors.Wrapf(ErrAddressing, "no register selected for %s addressing", mode)
	}
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == '_' || r == '+' })
	var sel Selector
	for _, p := range parts {
		r, err := ParseReg(p)
		if err != nil {
			return Selector{}, errors.Wrapf(ErrAddressing, "bad register selection %q", s)
		}
		switch r {
		case SI, DI:
			if sel.isIndex() {
				return Selector{}, errors.Wrapf(ErrAddressing, "two index registers in %q", s)
			}
			sel.Index = r
		case BX, BP:
			if sel.isBase() {
				return Selector{}, errors.Wrapf(ErrAddressing, "two base registers in %q", s)
			}
			sel.Base = r
		default:
			return Selector{}, errors.Wrapf(ErrAddressing, "%s cannot take part in an address", r)
		}
	}
	if len(parts) == 0 || sel.Mode() != mode {
		return Selector{}, errors.Wrapf(ErrAddressing, "%q is not a valid selection for %s addressing", s, mode)
	}
	return sel, nil
}

func (o Origin) String() string {
	if o == OriginRandom {
		return "RANDOM"
	}
	return "PRZYPISZ"
}

func (t Target) String() string {
	switch t {
	case ResetRegisters:
		return "REGS"
	case ResetAddress:
		return "ADDR"
	case ResetMemory:
		return "MEM"
	case ResetStack:
		return "STACK"
	}
	return ""
}

// ParseTarget decodes "regs", "addr", "mem" or "stack".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regs", "registers", "general":
		return ResetRegisters, nil
	case "addr", "address":
		return ResetAddress, nil
	case "mem", "memory":
		return ResetMemory, nil
	case "stack":
		return ResetStack, nil
	}
	return 0, errors.Wrapf(ErrValidation, "unknown reset target %q", s)
}

func (p StackPolicy) String() string {
	if p == StackGrowsUp {
		return "up"
	}
	return "down"
}

// ParseStackPolicy decodes "down" or "up".
func ParseStackPolicy(s string) (StackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "":
		return StackGrowsDown, nil
	case "up":
		return StackGrowsUp, nil
	}
	return 0, errors.Wrapf(ErrValidation, "unknown stack policy %q", s)
}
