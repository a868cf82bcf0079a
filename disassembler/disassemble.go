package disassembler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

// Disassemble turns log entries, oldest first, back into program text that
// the assembler accepts. Running the program on a fresh CPU reproduces the
// registers, memory and stack the entries describe, provided the log was
// never cleared.
func Disassemble(entries []cpu.Entry) (string, error) {
	var result strings.Builder
	for _, e := range entries {
		line, err := Instruction(e)
		if err != nil {
			return "", err
		}
		result.WriteString(line)
		result.WriteByte('\n')
	}
	return result.String(), nil
}

// Instruction returns the source line equivalent to one log entry.
// Manual, random and register reset entries all become plain assignments.
// Memory forms carry the literal displacement that was in effect.
func Instruction(e cpu.Entry) (string, error) {
	switch e.Kind {
	case cpu.KindMov, cpu.KindXchg:
		return e.Op + " " + e.Register + ", " + e.SecondRegister, nil

	case cpu.KindMovToMemory:
		return e.Op + " [" + e.Pointer + "], " + e.Register, nil

	case cpu.KindMovFromMemory, cpu.KindXchgMemory:
		return e.Op + " " + e.Register + ", [" + e.Pointer + "]", nil

	case cpu.KindStack:
		return e.Op + " " + e.Register, nil

	case cpu.KindRandom, cpu.KindAssign:
		return cpu.OpMOV + " " + e.Register + ", " + e.Value, nil

	case cpu.KindReset:
		if e.Op == cpu.OpRESET {
			return cpu.OpRESET + " " + e.Register, nil
		}
		return cpu.OpMOV + " " + e.Register + ", " + e.Value, nil
	}
	return "", errors.Errorf("cannot disassemble log entry %s of kind %q", e.ID, e.Kind)
}
