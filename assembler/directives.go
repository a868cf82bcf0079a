package assembler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

func isDirective(mnemonic string) bool {
	return strings.EqualFold(strings.TrimPrefix(mnemonic, "."), "equ")
}

// defineSymbol handles ".equ NAME, 1A2B". Names are case-insensitive and may
// not shadow a register, a target keyword or a hex literal.
func (asm *Assembler) defineSymbol(operands string) error {
	parts := splitOperands(operands)
	if len(parts) != 2 {
		return errors.Wrap(ErrSyntax, ".equ requires a name and a value")
	}
	name, value := parts[0], parts[1]

	switch {
	case !reSymbol.MatchString(name):
		return errors.Wrapf(ErrSyntax, "invalid symbol name %q", name)
	case reRegister.MatchString(name), reTarget.MatchString(name), reHex.MatchString(name):
		return errors.Wrapf(ErrSyntax, "symbol name %q is reserved", name)
	}

	w, err := cpu.ParseWord(value)
	if err != nil {
		if prev, ok := asm.symbols[strings.ToUpper(value)]; ok {
			w = prev
		} else {
			return errors.Wrapf(err, "symbol %s", name)
		}
	}
	asm.symbols[strings.ToUpper(name)] = w
	return nil
}
