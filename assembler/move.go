package assembler

import (
	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

// checkMove handles the four MOV forms:
//
//	MOV r, r        general-purpose registers only
//	MOV r, 1A2B     any register
//	MOV [ea], r
//	MOV r, [ea]
func checkMove(operands []Operand) (Form, error) {
	if len(operands) != 2 {
		return 0, errors.Wrap(ErrSyntax, "MOV requires 2 operands")
	}
	dst, src := operands[0], operands[1]

	switch {
	case dst.Kind == OperandRegister && src.Kind == OperandImmediate:
		return FormAssign, nil

	case dst.Kind == OperandRegister && src.Kind == OperandRegister:
		if err := requireGeneral(dst, src); err != nil {
			return 0, err
		}
		return FormMovReg, nil

	case dst.Kind == OperandMemory && src.Kind == OperandRegister:
		if err := requireGeneral(src); err != nil {
			return 0, err
		}
		return FormMovToMemory, nil

	case dst.Kind == OperandRegister && src.Kind == OperandMemory:
		if err := requireGeneral(dst); err != nil {
			return 0, err
		}
		return FormMovFromMemory, nil
	}
	return 0, errors.Wrapf(ErrSyntax, "invalid operand combination for MOV: %s, %s", dst.Raw, src.Raw)
}

// checkXchg handles XCHG r, r and XCHG between a register and memory, in
// either operand order.
func checkXchg(operands []Operand) (Form, error) {
	if len(operands) != 2 {
		return 0, errors.Wrap(ErrSyntax, "XCHG requires 2 operands")
	}
	a, b := operands[0], operands[1]

	switch {
	case a.Kind == OperandRegister && b.Kind == OperandRegister:
		if err := requireGeneral(a, b); err != nil {
			return 0, err
		}
		return FormXchgReg, nil

	case a.Kind == OperandRegister && b.Kind == OperandMemory:
		if err := requireGeneral(a); err != nil {
			return 0, err
		}
		return FormXchgMemory, nil

	case a.Kind == OperandMemory && b.Kind == OperandRegister:
		if err := requireGeneral(b); err != nil {
			return 0, err
		}
		return FormXchgMemory, nil
	}
	return 0, errors.Wrapf(ErrSyntax, "invalid operand combination for XCHG: %s, %s", a.Raw, b.Raw)
}

func requireGeneral(ops ...Operand) error {
	for _, op := range ops {
		if op.Reg.Bank() != cpu.General {
			return errors.Wrapf(cpu.ErrValidation, "%s is not a general-purpose register", op.Reg)
		}
	}
	return nil
}
