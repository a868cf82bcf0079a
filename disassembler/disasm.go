package disassembler

import (
	"fmt"

	"github.com/Urethramancer/mov86/cpu"
)

// tagColumn is where the kind tag starts in a history line.
const tagColumn = 32

// Format renders one log entry as a history line: the instruction followed by
// a tag naming the operation kind, e.g.
//
//	MOV BX, AX                      MOV
//	MOV [SI+0005], AX               MOV
//	PUSH AX                         STACK
//
// Unknown kinds render as an empty string.
func Format(e cpu.Entry) string {
	text, err := Instruction(e)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%-*s%s", tagColumn, text, tag(e))
}

// FormatHistory renders every entry, keeping their order.
func FormatHistory(entries []cpu.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = Format(e)
	}
	return out
}

// tag is the label shown after the instruction. Memory forms show the plain
// mnemonic; the rest show their kind.
func tag(e cpu.Entry) string {
	switch e.Kind {
	case cpu.KindMovToMemory, cpu.KindMovFromMemory:
		return cpu.OpMOV
	case cpu.KindXchgMemory:
		return cpu.OpXCHG
	}
	return string(e.Kind)
}
