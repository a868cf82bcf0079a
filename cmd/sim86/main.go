package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/Urethramancer/mov86/cpu"
	"github.com/Urethramancer/mov86/script"
	"github.com/Urethramancer/mov86/vm"
)

// This program runs a program file or Lua script against a fresh simulator,
// or opens an interactive shell when no file is given.
func main() {
	opt := arg.New("sim86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log every accepted command.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "debug", "Print the full state when done.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "s", "stack", "Stack pointer convention: down (FFFE, -2) or up (0000, +2).", "down", false, arg.VarString, nil)
	opt.SetPositional("FILE", "Program (.asm) or Lua script (.lua) to run.", "", false, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil && err != arg.ErrNoArgs {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opt.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	policy, err := cpu.ParseStackPolicy(opt.GetString("stack"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	v, err := vm.New(
		vm.WithLogger(logger),
		vm.WithCPUOptions(cpu.WithStackPolicy(policy)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	file := opt.GetPosString("FILE")
	switch {
	case file == "" && term.IsTerminal(int(os.Stdin.Fd())):
		err = shell(v, logger)
	case file == "":
		err = runReader(v, os.Stdin)
	case strings.EqualFold(filepath.Ext(file), ".lua"):
		err = runScript(v, file)
	default:
		err = runFile(v, file)
	}

	if file != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		report(v, os.Stdout, opt.GetBool("debug"))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", err, kindOf(err))
		os.Exit(1)
	}
}

func runFile(v *vm.VM, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return v.Run(string(data))
}

func runReader(v *vm.VM, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return v.Run(string(data))
}

func runScript(v *vm.VM, path string) error {
	r := script.New(v)
	defer r.Close()
	return r.DoFile(path)
}

// report prints the final registers and memory, or the full state with --debug.
func report(v *vm.VM, w io.Writer, debug bool) {
	if debug {
		v.Debug(w, term.IsTerminal(int(os.Stdout.Fd())))
		return
	}
	v.DumpRegisters(w)
}

func kindOf(err error) string {
	if k := cpu.Kind(err); k != "" {
		return k
	}
	return "error"
}
