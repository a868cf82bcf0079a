package assembler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/mov86/cpu"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]cpu.Word
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]cpu.Word),
	}
}

// Assemble parses a program, one instruction per line, and checks every
// instruction's operands. ';' starts a comment. Errors carry the line number
// and wrap ErrSyntax or one of the cpu rejections.
func (asm *Assembler) Assemble(src string) ([]Instruction, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, errors.Wrap(err, "parsing error")
	}

	program := make([]Instruction, 0, len(nodes))
	for _, n := range nodes {
		if n.directive {
			continue
		}
		form, err := checkInstruction(n.inst)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: %s", n.inst.Line, n.text)
		}
		n.inst.Form = form
		program = append(program, n.inst)
	}
	return program, nil
}

// AssembleLine assembles a single instruction. Blank and comment-only lines
// return ok == false.
func (asm *Assembler) AssembleLine(line string) (Instruction, bool, error) {
	program, err := asm.Assemble(line)
	if err != nil || len(program) == 0 {
		return Instruction{}, false, err
	}
	return program[0], true, nil
}

// Symbols returns a copy of the EQU symbol table.
func (asm *Assembler) Symbols() map[string]cpu.Word {
	out := make(map[string]cpu.Word, len(asm.symbols))
	for k, v := range asm.symbols {
		out[k] = v
	}
	return out
}

type node struct {
	inst      Instruction
	text      string
	directive bool
}

// parseLines converts raw source lines into nodes. EQU directives are applied
// as they are met, so a symbol must be defined before it is used.
func (asm *Assembler) parseLines(lines []string) ([]*node, error) {
	var nodes []*node
	for i, line := range lines {
		if commentIndex := strings.IndexRune(line, ';'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		if isDirective(mnemonic) {
			if err := asm.defineSymbol(operandStr); err != nil {
				return nil, errors.Wrapf(err, "line %d", i+1)
			}
			nodes = append(nodes, &node{text: line, directive: true})
			continue
		}

		mn, err := ParseMnemonic(mnemonic)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}

		var operands []Operand
		if operandStr != "" {
			for _, s := range splitOperands(operandStr) {
				op, err := parseOperand(s, asm)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", i+1)
				}
				operands = append(operands, op)
			}
		}
		nodes = append(nodes, &node{
			inst: Instruction{Line: i + 1, Mnemonic: mn, Operands: operands},
			text: line,
		})
	}
	return nodes, nil
}

// checkInstruction dispatches to the per-mnemonic operand checks.
func checkInstruction(in Instruction) (Form, error) {
	switch in.Mnemonic {
	case MOV:
		return checkMove(in.Operands)
	case XCHG:
		return checkXchg(in.Operands)
	case PUSH, POP:
		return checkStack(in.Mnemonic, in.Operands)
	case RESET, RANDOM, CLEAR:
		return checkMisc(in.Mnemonic, in.Operands)
	}
	return 0, errors.Wrapf(ErrSyntax, "unknown instruction: %s", in.Mnemonic)
}

// splitOperands splits an operand string by commas, but ignores commas inside brackets.
func splitOperands(s string) []string {
	var result []string
	bracketLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '[':
			bracketLevel++
		case ']':
			bracketLevel--
		case ',':
			if bracketLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
