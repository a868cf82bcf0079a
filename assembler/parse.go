package assembler

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

// Mnemonic is an upper-case instruction name.
type Mnemonic string

// Known mnemonics.
const (
	MOV    Mnemonic = "MOV"
	XCHG   Mnemonic = "XCHG"
	PUSH   Mnemonic = "PUSH"
	POP    Mnemonic = "POP"
	RESET  Mnemonic = "RESET"
	RANDOM Mnemonic = "RANDOM"
	CLEAR  Mnemonic = "CLEAR"
)

// OperandKind tells the operand forms apart.
type OperandKind uint8

const (
	// OperandRegister is one of the eight register names.
	OperandRegister OperandKind = iota + 1
	// OperandImmediate is a 4-digit hex literal or an EQU symbol.
	OperandImmediate
	// OperandMemory is a bracketed effective address.
	OperandMemory
	// OperandTarget is a RESET or RANDOM keyword.
	OperandTarget
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind   OperandKind
	Reg    cpu.Reg
	Value  cpu.Word
	Mem    cpu.MemOperand
	Target string
	Raw    string
}

// String returns the operand in canonical form.
func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Reg.String()
	case OperandImmediate:
		return o.Value.String()
	case OperandMemory:
		return o.Mem.String()
	case OperandTarget:
		return o.Target
	}
	return o.Raw
}

// Reset and random targets.
const (
	TargetRegs  = "REGS"
	TargetAddr  = "ADDR"
	TargetMem   = "MEM"
	TargetStack = "STACK"
	TargetAll   = "ALL"
)

var (
	reMemory    = regexp.MustCompile(`^\[(.*)\]$`)
	reHex       = regexp.MustCompile(`(?i)^[0-9a-f]+$`)
	reTarget    = regexp.MustCompile(`(?i)^(regs|addr|mem|stack|all)$`)
	reSymbol    = regexp.MustCompile(`(?i)^[a-z_][a-z0-9_]*$`)
	reRegister  = regexp.MustCompile(`(?i)^(ax|bx|cx|dx|si|di|bp|disp)$`)
	reMemoryReg = regexp.MustCompile(`(?i)^(si|di|bx|bp)$`)
)

// ErrSyntax is returned for lines that do not form a known instruction.
var ErrSyntax = errors.New("syntax error")

// ParseMnemonic validates an instruction name, ignoring case.
func ParseMnemonic(s string) (Mnemonic, error) {
	mn := Mnemonic(strings.ToUpper(s))
	switch mn {
	case MOV, XCHG, PUSH, POP, RESET, RANDOM, CLEAR:
		return mn, nil
	}
	return "", errors.Wrapf(ErrSyntax, "unknown instruction %q", s)
}

// parseOperand converts an operand string into a structured Operand,
// trying the operand forms in order.
func parseOperand(s string, asm *Assembler) (Operand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Operand{}, errors.Wrap(ErrSyntax, "empty operand")
	}

	if op, ok := tryParseRegister(s); ok {
		return op, nil
	}
	if op, ok, err := tryParseMemory(s, asm); ok || err != nil {
		return op, err
	}
	if op, ok := tryParseTarget(s); ok {
		return op, nil
	}
	if op, ok, err := tryParseImmediate(s, asm); ok || err != nil {
		return op, err
	}
	return Operand{}, errors.Wrapf(ErrSyntax, "unknown operand format: %s", s)
}

func tryParseRegister(s string) (Operand, bool) {
	if !reRegister.MatchString(s) {
		return Operand{}, false
	}
	r, _ := cpu.ParseReg(s)
	return Operand{Kind: OperandRegister, Reg: r, Raw: s}, true
}

func tryParseTarget(s string) (Operand, bool) {
	if !reTarget.MatchString(s) {
		return Operand{}, false
	}
	return Operand{Kind: OperandTarget, Target: strings.ToUpper(s), Raw: s}, true
}

// tryParseImmediate handles hex literals and EQU symbols. Anything that looks
// like hex but is not exactly four digits is a validation error.
func tryParseImmediate(s string, asm *Assembler) (Operand, bool, error) {
	if reHex.MatchString(s) {
		w, err := cpu.ParseWord(s)
		if err != nil {
			return Operand{}, true, err
		}
		return Operand{Kind: OperandImmediate, Value: w, Raw: s}, true, nil
	}
	if reSymbol.MatchString(s) {
		w, ok := asm.symbols[strings.ToUpper(s)]
		if !ok {
			return Operand{}, true, errors.Wrapf(ErrSyntax, "undefined symbol %q", s)
		}
		return Operand{Kind: OperandImmediate, Value: w, Raw: s}, true, nil
	}
	return Operand{}, false, nil
}

// tryParseMemory handles [SI], [SI+DISP], [BX+SI+0005], [DI+BP+NAME] and so on.
// Terms may come in any order. A missing or DISP displacement means the DISP
// register is used at run time.
func tryParseMemory(s string, asm *Assembler) (Operand, bool, error) {
	m := reMemory.FindStringSubmatch(s)
	if m == nil {
		return Operand{}, false, nil
	}

	var sel cpu.Selector
	var haveIndex, haveBase, haveDisp bool
	disp := ""
	for _, term := range strings.Split(m[1], "+") {
		term = strings.TrimSpace(term)
		switch {
		case term == "":
			return Operand{}, true, errors.Wrapf(cpu.ErrAddressing, "empty term in %s", s)

		case reMemoryReg.MatchString(term):
			r, _ := cpu.ParseReg(term)
			if r == cpu.SI || r == cpu.DI {
				if haveIndex {
					return Operand{}, true, errors.Wrapf(cpu.ErrAddressing, "two index registers in %s", s)
				}
				sel.Index, haveIndex = r, true
			} else {
				if haveBase {
					return Operand{}, true, errors.Wrapf(cpu.ErrAddressing, "two base registers in %s", s)
				}
				sel.Base, haveBase = r, true
			}

		default:
			if haveDisp {
				return Operand{}, true, errors.Wrapf(cpu.ErrAddressing, "two displacements in %s", s)
			}
			haveDisp = true
			d, err := parseDisplacement(term, asm)
			if err != nil {
				return Operand{}, true, err
			}
			disp = d
		}
	}

	mode := sel.Mode()
	if mode == 0 {
		return Operand{}, true, errors.Wrapf(cpu.ErrAddressing, "%s names no index or base register", s)
	}
	return Operand{
		Kind: OperandMemory,
		Mem:  cpu.MemOperand{Mode: mode, Selector: sel, Disp: disp},
		Raw:  s,
	}, true, nil
}

// parseDisplacement returns "" for the DISP register, or the canonical literal.
func parseDisplacement(term string, asm *Assembler) (string, error) {
	if strings.EqualFold(term, "DISP") {
		return "", nil
	}
	if w, ok := asm.symbols[strings.ToUpper(term)]; ok {
		return w.String(), nil
	}
	w, err := cpu.ParseWord(term)
	if err != nil {
		return "", errors.Wrapf(cpu.ErrAddressing, "displacement %q is not a 4-digit hex value", term)
	}
	return w.String(), nil
}
