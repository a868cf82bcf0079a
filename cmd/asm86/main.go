package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/mov86/assembler"
)

// This program checks a program file and prints it in canonical form, one
// instruction per line, or writes it to the given output file.
func main() {
	opt := arg.New("asm86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the canonical program to this file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "n", "numbers", "Prefix each line with its source line number.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Program to check.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(opt.GetPosString("FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	prog, err := assembler.New().Assemble(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	text := format(prog, opt.GetBool("numbers"))
	outputFile := opt.GetString("output")
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d instructions written to %s\n", len(prog), outputFile)
}

func format(prog []assembler.Instruction, numbers bool) string {
	var b strings.Builder
	for _, in := range prog {
		if numbers {
			fmt.Fprintf(&b, "%4d  ", in.Line)
		}
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}
