package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/Urethramancer/mov86/vm"
)

const shellHelp = `Instructions:
  MOV AX, BX | MOV AX, 1A2B | MOV [SI+DISP], AX | MOV AX, [BX+DI+0010]
  XCHG AX, BX | XCHG AX, [BP] | PUSH AX | POP BX
  RESET REGS|ADDR|MEM|STACK|ALL | RANDOM REGS|ADDR | CLEAR
  .equ NAME, 1A2B
Shell commands:
  regs      registers, stack pointer and memory
  history   operation log, most recent first
  program   operation log as a program
  debug     full state dump
  help      this text
  quit      leave
`

// shell runs an interactive prompt on the terminal in raw mode.
func shell(v *vm.VM, logger *logrus.Logger) error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "sim86> ")
	logger.SetOutput(t)

	fmt.Fprintln(t, "Type help for a list of commands.")
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !command(v, t, strings.TrimSpace(line)) {
			return nil
		}
	}
}

// command handles one shell line. It returns false when the shell should exit.
func command(v *vm.VM, w io.Writer, line string) bool {
	switch strings.ToLower(line) {
	case "":
	case "quit", "exit":
		return false
	case "help", "?":
		fmt.Fprint(w, shellHelp)
	case "regs":
		v.DumpRegisters(w)
	case "history":
		for _, h := range v.History() {
			fmt.Fprintln(w, h)
		}
	case "program":
		src, err := v.Program()
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", err)
			break
		}
		fmt.Fprint(w, src)
	case "debug":
		v.Debug(w, true)
	default:
		entries, err := v.RunLine(line)
		if err != nil {
			fmt.Fprintf(w, "%s: %s\n", kindOf(err), err)
			break
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s %s = %s\n", e.Kind, e.Register, e.Value)
		}
	}
	return true
}
