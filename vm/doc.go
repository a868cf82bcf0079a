// Package vm wraps a cpu.CPU in a session suitable for a user interface or a
// script: operands are plain strings, calls are serialized, accepted commands
// and rejections are logged through logrus, and programs written in the
// assembler syntax can be run and replayed.
//
// A typical session:
//
//	v, _ := vm.New()
//	v.Assign("AX", "1A2B")
//	v.Mov("BX", "AX")
//	v.Run("PUSH BX\nPOP CX")
//	for _, line := range v.History() {
//		fmt.Println(line)
//	}
//
// Every command returns nil or a rejection wrapping one of the cpu error
// values; cpu.Kind maps it to a name suitable for display.
package vm
