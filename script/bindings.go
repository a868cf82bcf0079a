package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/Urethramancer/mov86/cpu"
	"github.com/Urethramancer/mov86/vm"
)

func (r *Runner) exports() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		// Commands
		"assign":      r.assign,
		"assign_many": r.assignMany,
		"random":      r.random,
		"mov":         r.mov,
		"mov_mem":     r.movMem,
		"xchg":        r.xchg,
		"xchg_mem":    r.xchgMem,
		"push":        r.push,
		"pop":         r.pop,
		"reset":       r.reset,
		"clear":       r.clear,
		"run":         r.run,

		// Queries
		"reg":     r.reg,
		"regs":    r.regs,
		"addr":    r.addr,
		"mem":     r.mem,
		"stack":   r.stack,
		"history": r.history,
		"program": r.program,
		"ea":      r.ea,
	}
}

// result pushes true, or nil plus the message and rejection kind.
func result(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		L.Push(lua.LString(cpu.Kind(err)))
		return 3
	}
	L.Push(lua.LTrue)
	return 1
}

// addressing reads mode, selection and an optional displacement starting at
// stack index n.
func addressing(L *lua.LState, n int) vm.Addressing {
	return vm.Addressing{
		Mode:      L.CheckString(n),
		Selection: L.CheckString(n + 1),
		Disp:      L.OptString(n+2, ""),
	}
}

func (r *Runner) assign(L *lua.LState) int {
	return result(L, r.vm.Assign(L.CheckString(1), L.CheckString(2)))
}

func (r *Runner) assignMany(L *lua.LState) int {
	tbl := L.CheckTable(1)
	values := make(map[string]string)
	tbl.ForEach(func(k, v lua.LValue) {
		values[k.String()] = v.String()
	})
	return result(L, r.vm.AssignMany(values))
}

func (r *Runner) random(L *lua.LState) int {
	return result(L, r.vm.Randomize(L.CheckString(1)))
}

func (r *Runner) mov(L *lua.LState) int {
	return result(L, r.vm.Mov(L.CheckString(1), L.CheckString(2)))
}

func (r *Runner) movMem(L *lua.LState) int {
	return result(L, r.vm.MovMemory(L.CheckString(1), L.CheckString(2), addressing(L, 3)))
}

func (r *Runner) xchg(L *lua.LState) int {
	return result(L, r.vm.Xchg(L.CheckString(1), L.CheckString(2)))
}

func (r *Runner) xchgMem(L *lua.LState) int {
	return result(L, r.vm.XchgMemory(L.CheckString(1), addressing(L, 2)))
}

func (r *Runner) push(L *lua.LState) int {
	return result(L, r.vm.Push(L.CheckString(1)))
}

func (r *Runner) pop(L *lua.LState) int {
	return result(L, r.vm.Pop(L.CheckString(1)))
}

func (r *Runner) reset(L *lua.LState) int {
	return result(L, r.vm.Reset(L.OptString(1, "all")))
}

func (r *Runner) clear(L *lua.LState) int {
	r.vm.ClearLog()
	return result(L, nil)
}

func (r *Runner) run(L *lua.LState) int {
	return result(L, r.vm.Run(L.CheckString(1)))
}

func (r *Runner) reg(L *lua.LState) int {
	v, err := r.vm.Register(L.CheckString(1))
	if err != nil {
		return result(L, err)
	}
	L.Push(lua.LString(v))
	return 1
}

func stringTable(L *lua.LState, m map[string]string) *lua.LTable {
	t := L.NewTable()
	for k, v := range m {
		t.RawSetString(k, lua.LString(v))
	}
	return t
}

func (r *Runner) regs(L *lua.LState) int {
	L.Push(stringTable(L, r.vm.Registers()))
	return 1
}

func (r *Runner) addr(L *lua.LState) int {
	L.Push(stringTable(L, r.vm.AddressRegisters()))
	return 1
}

// mem returns the memory view as an array of {address=, value=} tables,
// most recent write first.
func (r *Runner) mem(L *lua.LState) int {
	t := L.NewTable()
	for _, c := range r.vm.Memory() {
		cell := L.NewTable()
		cell.RawSetString("address", lua.LString(fmt.Sprintf("%04X", c.Address)))
		cell.RawSetString("value", lua.LString(c.Value.String()))
		if c.Provenance != nil {
			cell.RawSetString("computed", lua.LString(c.Provenance.AddressCalculation))
			cell.RawSetString("source", lua.LString(c.Provenance.ValueSource))
		}
		t.Append(cell)
	}
	L.Push(t)
	return 1
}

// stack returns the stacked words, top first, and the pointer.
func (r *Runner) stack(L *lua.LState) int {
	vals, sp := r.vm.Stack()
	t := L.NewTable()
	for _, v := range vals {
		t.Append(lua.LString(v))
	}
	L.Push(t)
	L.Push(lua.LNumber(sp))
	return 2
}

func (r *Runner) history(L *lua.LState) int {
	t := L.NewTable()
	for _, line := range r.vm.History() {
		t.Append(lua.LString(line))
	}
	L.Push(t)
	return 1
}

func (r *Runner) program(L *lua.LState) int {
	src, err := r.vm.Program()
	if err != nil {
		return result(L, err)
	}
	L.Push(lua.LString(src))
	return 1
}

// ea returns the effective address as 4 hex digits and its composition.
func (r *Runner) ea(L *lua.LState) int {
	ea, err := r.vm.EffectiveAddress(addressing(L, 1))
	if err != nil {
		return result(L, err)
	}
	L.Push(lua.LString(fmt.Sprintf("%04X", ea.Address)))
	L.Push(lua.LString(ea.Composition))
	return 2
}
