package assembler

import (
	"github.com/pkg/errors"
)

// checkStack handles PUSH and POP.
// Syntax: PUSH r / POP r, with r one of AX, BX, CX, DX.
func checkStack(mn Mnemonic, operands []Operand) (Form, error) {
	if len(operands) != 1 {
		return 0, errors.Wrapf(ErrSyntax, "%s requires 1 operand", mn)
	}
	op := operands[0]
	if op.Kind != OperandRegister {
		return 0, errors.Wrapf(ErrSyntax, "operand of %s must be a register", mn)
	}
	if err := requireGeneral(op); err != nil {
		return 0, err
	}
	if mn == PUSH {
		return FormPush, nil
	}
	return FormPop, nil
}
