package assembler

import (
	"github.com/pkg/errors"
)

func checkMisc(mn Mnemonic, operands []Operand) (Form, error) {
	switch mn {
	case RESET:
		return checkTarget(mn, operands, TargetRegs, TargetAddr, TargetMem, TargetStack, TargetAll)
	case RANDOM:
		return checkTarget(mn, operands, TargetRegs, TargetAddr)
	case CLEAR:
		if len(operands) != 0 {
			return 0, errors.Wrap(ErrSyntax, "CLEAR takes no operands")
		}
		return FormClear, nil
	}
	return 0, errors.Wrapf(ErrSyntax, "unknown misc instruction: %s", mn)
}

// --- RESET / RANDOM ---
func checkTarget(mn Mnemonic, operands []Operand, allowed ...string) (Form, error) {
	if len(operands) != 1 || operands[0].Kind != OperandTarget {
		return 0, errors.Wrapf(ErrSyntax, "%s requires one of %v", mn, allowed)
	}
	for _, t := range allowed {
		if operands[0].Target == t {
			if mn == RANDOM {
				return FormRandom, nil
			}
			return FormReset, nil
		}
	}
	return 0, errors.Wrapf(ErrSyntax, "%s cannot take %s", mn, operands[0].Target)
}
