// Package script exposes a simulator session to Lua. Scripts load the "sim"
// module and drive the session with the same commands the vm package offers:
//
//	local sim = require("sim")
//	sim.assign("AX", "1A2B")
//	sim.mov("BX", "AX")
//	assert(sim.reg("BX") == "1A2B")
//	local ok, err, kind = sim.pop("CX")   -- nil, "...", "EmptyStackError"
//
// Commands return true on success, or nil, the error text and the rejection
// kind.
package script

import (
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"

	"github.com/Urethramancer/mov86/vm"
)

// Runner is a Lua state bound to one session. It is not safe for concurrent
// use, but the session it drives may be shared.
type Runner struct {
	vm *vm.VM
	L  *lua.LState
}

// New creates a Lua state with the "sim" module preloaded.
func New(v *vm.VM) *Runner {
	r := &Runner{vm: v, L: lua.NewState()}
	r.L.PreloadModule("sim", r.loader)
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.L.Close()
}

// DoString runs a chunk of Lua source.
func (r *Runner) DoString(src string) error {
	return errors.Wrap(r.L.DoString(src), "lua")
}

// DoFile runs a Lua file.
func (r *Runner) DoFile(path string) error {
	return errors.Wrapf(r.L.DoFile(path), "lua %s", path)
}

func (r *Runner) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), r.exports())
	L.Push(mod)
	return 1
}
