package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/mov86/assembler"
	"github.com/Urethramancer/mov86/cpu"
)

// Assembles a single line and checks its form and canonical text.
func assembleAndMatch(t *testing.T, src string, form assembler.Form, canonical string) assembler.Instruction {
	t.Helper()
	asm := assembler.New()
	prog, err := asm.Assemble(src)
	require.NoError(t, err, src)
	require.Len(t, prog, 1, src)
	assert.Equal(t, form, prog[0].Form, src)
	assert.Equal(t, canonical, prog[0].String(), src)
	return prog[0]
}

func TestBasicForms(t *testing.T) {
	tests := []struct {
		src       string
		form      assembler.Form
		canonical string
	}{
		{"MOV AX, BX", assembler.FormMovReg, "MOV AX, BX"},
		{"mov cx,dx", assembler.FormMovReg, "MOV CX, DX"},
		{"MOV AX, 1a2b", assembler.FormAssign, "MOV AX, 1A2B"},
		{"MOV DISP, 0005", assembler.FormAssign, "MOV DISP, 0005"},
		{"MOV [SI+DISP], AX", assembler.FormMovToMemory, "MOV [SI+DISP], AX"},
		{"MOV [si], ax", assembler.FormMovToMemory, "MOV [SI+DISP], AX"},
		{"MOV AX, [BX+SI+0005]", assembler.FormMovFromMemory, "MOV AX, [SI+BX+0005]"},
		{"XCHG AX, BX", assembler.FormXchgReg, "XCHG AX, BX"},
		{"XCHG AX, [DI]", assembler.FormXchgMemory, "XCHG AX, [DI+DISP]"},
		{"XCHG [BP+00ff], DX", assembler.FormXchgMemory, "XCHG [BP+00FF], DX"},
		{"PUSH AX", assembler.FormPush, "PUSH AX"},
		{"pop bx", assembler.FormPop, "POP BX"},
		{"RESET mem", assembler.FormReset, "RESET MEM"},
		{"RESET ALL", assembler.FormReset, "RESET ALL"},
		{"RANDOM ADDR", assembler.FormRandom, "RANDOM ADDR"},
		{"CLEAR", assembler.FormClear, "CLEAR"},
	}
	for _, tc := range tests {
		assembleAndMatch(t, tc.src, tc.form, tc.canonical)
	}
}

func TestOperands(t *testing.T) {
	in := assembleAndMatch(t, "MOV [DI+BP+0010], CX", assembler.FormMovToMemory, "MOV [DI+BP+0010], CX")
	assert.Equal(t, cpu.CX, in.Register())
	assert.Equal(t, cpu.MemOperand{Mode: cpu.ModeIndexBase, Selector: cpu.SelDI_BP, Disp: "0010"}, in.Memory())

	in = assembleAndMatch(t, "XCHG [BX], DX", assembler.FormXchgMemory, "XCHG [BX+DISP], DX")
	assert.Equal(t, cpu.DX, in.Register())
	assert.Equal(t, cpu.ModeBase, in.Memory().Mode)
	assert.Empty(t, in.Memory().Disp)

	in = assembleAndMatch(t, "RANDOM REGS", assembler.FormRandom, "RANDOM REGS")
	assert.Equal(t, assembler.TargetRegs, in.Target())
}

func TestProgram(t *testing.T) {
	src := `
; set up an address
MOV SI, 0010   ; index
MOV DISP, 0005

MOV AX, 1A2B
MOV [SI+DISP], AX
PUSH AX
POP BX
`
	prog, err := assembler.New().Assemble(src)
	require.NoError(t, err)
	require.Len(t, prog, 6)
	assert.Equal(t, 3, prog[0].Line)
	assert.Equal(t, 9, prog[5].Line)
	assert.Equal(t, assembler.FormPop, prog[5].Form)
}

func TestEqu(t *testing.T) {
	src := `.equ OFFSET, 0005
equ value, 1A2B
MOV AX, VALUE
MOV [SI+offset], AX`
	asm := assembler.New()
	prog, err := asm.Assemble(src)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	assert.Equal(t, "MOV AX, 1A2B", prog[0].String())
	assert.Equal(t, "MOV [SI+0005], AX", prog[1].String())
	assert.Equal(t, map[string]cpu.Word{"OFFSET": 5, "VALUE": 0x1A2B}, asm.Symbols())

	// Symbols persist across lines assembled one at a time.
	in, ok, err := asm.AssembleLine("MOV BX, offset")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "MOV BX, 0005", in.String())
}

func TestEquRejects(t *testing.T) {
	for _, src := range []string{
		".equ AX, 0001",
		".equ MEM, 0001",
		".equ ABCD, 0001",
		".equ NAME",
		".equ NAME, 12",
		".equ 1NAME, 0001",
	} {
		_, err := assembler.New().Assemble(src)
		assert.Error(t, err, src)
	}
}

func TestAssembleLineBlank(t *testing.T) {
	_, ok, err := assembler.New().AssembleLine("   ; nothing here")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRejects(t *testing.T) {
	tests := []struct {
		src  string
		kind error
	}{
		{"NOP", assembler.ErrSyntax},
		{"MOV AX", assembler.ErrSyntax},
		{"MOV AX, BX, CX", assembler.ErrSyntax},
		{"MOV 1234, AX", assembler.ErrSyntax},
		{"MOV [SI], [DI]", assembler.ErrSyntax},
		{"MOV [SI], 1234", assembler.ErrSyntax},
		{"MOV AX, UNKNOWN", assembler.ErrSyntax},
		{"MOV AX, $$", assembler.ErrSyntax},
		{"PUSH 1234", assembler.ErrSyntax},
		{"RESET", assembler.ErrSyntax},
		{"RANDOM MEM", assembler.ErrSyntax},
		{"CLEAR AX", assembler.ErrSyntax},
		{"MOV AX, 12", cpu.ErrValidation},
		{"MOV AX, 12345", cpu.ErrValidation},
		{"MOV SI, AX", cpu.ErrValidation},
		{"XCHG AX, DISP", cpu.ErrValidation},
		{"MOV [SI], BP", cpu.ErrValidation},
		{"PUSH SI", cpu.ErrValidation},
		{"MOV AX, [SI+12]", cpu.ErrAddressing},
		{"MOV AX, [SI+DI]", cpu.ErrAddressing},
		{"MOV AX, [BX+BP]", cpu.ErrAddressing},
		{"MOV AX, [0005]", cpu.ErrAddressing},
		{"MOV AX, [AX+0005]", cpu.ErrAddressing},
		{"MOV AX, [SI+0001+0002]", cpu.ErrAddressing},
		{"MOV AX, [SI+]", cpu.ErrAddressing},
	}
	for _, tc := range tests {
		_, err := assembler.New().Assemble(tc.src)
		assert.ErrorIs(t, err, tc.kind, tc.src)
	}
}

func TestErrorsCarryLineNumbers(t *testing.T) {
	_, err := assembler.New().Assemble("MOV AX, BX\n\nMOV AX, 12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, "ValidationError", cpu.Kind(err))
}
