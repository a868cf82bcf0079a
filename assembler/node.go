package assembler

import (
	"strings"

	"github.com/Urethramancer/mov86/cpu"
)

// Form identifies which engine command an instruction maps onto.
type Form int

const (
	// FormMovReg is MOV r, r.
	FormMovReg Form = iota + 1
	// FormAssign is MOV r, 1A2B.
	FormAssign
	// FormMovToMemory is MOV [ea], r.
	FormMovToMemory
	// FormMovFromMemory is MOV r, [ea].
	FormMovFromMemory
	// FormXchgReg is XCHG r, r.
	FormXchgReg
	// FormXchgMemory is XCHG r, [ea] or XCHG [ea], r.
	FormXchgMemory
	// FormPush is PUSH r.
	FormPush
	// FormPop is POP r.
	FormPop
	// FormReset is RESET REGS|ADDR|MEM|STACK|ALL.
	FormReset
	// FormRandom is RANDOM REGS|ADDR.
	FormRandom
	// FormClear is CLEAR, which empties the operation log.
	FormClear
)

// Instruction is one assembled source line.
type Instruction struct {
	Line     int
	Mnemonic Mnemonic
	Operands []Operand
	Form     Form
}

// String returns the instruction in canonical form, e.g. "MOV [SI+BX+0005], AX".
func (in Instruction) String() string {
	if len(in.Operands) == 0 {
		return string(in.Mnemonic)
	}
	ops := make([]string, len(in.Operands))
	for i, op := range in.Operands {
		ops[i] = op.String()
	}
	return string(in.Mnemonic) + " " + strings.Join(ops, ", ")
}

// Register returns the first register operand.
func (in Instruction) Register() cpu.Reg {
	for _, op := range in.Operands {
		if op.Kind == OperandRegister {
			return op.Reg
		}
	}
	return 0
}

// Memory returns the memory operand, if any.
func (in Instruction) Memory() cpu.MemOperand {
	for _, op := range in.Operands {
		if op.Kind == OperandMemory {
			return op.Mem
		}
	}
	return cpu.MemOperand{}
}

// Target returns the keyword operand of RESET and RANDOM.
func (in Instruction) Target() string {
	for _, op := range in.Operands {
		if op.Kind == OperandTarget {
			return op.Target
		}
	}
	return ""
}
