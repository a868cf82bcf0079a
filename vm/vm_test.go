package vm_test

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/mov86/assembler"
	"github.com/Urethramancer/mov86/cpu"
	"github.com/Urethramancer/mov86/vm"
)

func newVM(t *testing.T, opts ...vm.Option) (*vm.VM, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	v, err := vm.New(append([]vm.Option{vm.WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return v, hook
}

func TestMovScenario(t *testing.T) {
	v, hook := newVM(t)
	require.NoError(t, v.Assign("AX", "1a2b"))
	require.NoError(t, v.Mov("BX", "AX"))

	regs := v.Registers()
	assert.Equal(t, "1A2B", regs["AX"])
	assert.Equal(t, "1A2B", regs["BX"])

	log := v.Log()
	require.Len(t, log, 2)
	assert.Equal(t, cpu.KindMov, log[0].Kind)
	assert.Equal(t, "BX", log[0].Register)
	assert.Equal(t, "AX", log[0].SecondRegister)
	assert.Equal(t, "1A2B", log[0].Value)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.DebugLevel, last.Level)
	assert.Equal(t, "BX", last.Data["register"])
}

func TestRejectionsAreLogged(t *testing.T) {
	v, hook := newVM(t)
	err := v.Pop("AX")
	assert.ErrorIs(t, err, cpu.ErrEmptyStack)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "EmptyStackError", last.Data["kind"])
	assert.Empty(t, v.Log())
}

func TestStringOperandRejections(t *testing.T) {
	v, _ := newVM(t)
	before := v.Snapshot()

	assert.ErrorIs(t, v.Assign("XX", "0001"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Assign("AX", "001"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Mov("SI", "AX"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Xchg("AX", "DISP"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Push("BP"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Randomize("mem"), cpu.ErrValidation)
	assert.ErrorIs(t, v.Reset("everything"), cpu.ErrValidation)
	assert.ErrorIs(t, v.AssignMany(map[string]string{"AX": "0001", "QX": "0002"}), cpu.ErrValidation)
	assert.ErrorIs(t, v.MovMemory("AX", "sideways", vm.Addressing{Mode: "indexing", Selection: "SI"}), cpu.ErrValidation)
	assert.ErrorIs(t, v.MovMemory("AX", "toMemory", vm.Addressing{Mode: "relative", Selection: "SI"}), cpu.ErrAddressing)
	assert.ErrorIs(t, v.MovMemory("AX", "toMemory", vm.Addressing{Mode: "base", Selection: "SI"}), cpu.ErrAddressing)
	assert.ErrorIs(t, v.MovMemory("AX", "toMemory", vm.Addressing{Mode: "indexing", Selection: "SI", Disp: "5"}), cpu.ErrAddressing)
	assert.ErrorIs(t, v.XchgMemory("AX", vm.Addressing{Mode: "index-base", Selection: "SI"}), cpu.ErrAddressing)
	assert.ErrorIs(t, v.MovMemory("AX", "fromMemory", vm.Addressing{Mode: "index-base", Selection: "DI_BP"}), cpu.ErrMemoryRead)

	assert.Equal(t, before, v.Snapshot())
}

func TestMemoryCommands(t *testing.T) {
	v, _ := newVM(t)
	require.NoError(t, v.AssignMany(map[string]string{"AX": "1A2B", "SI": "0010", "DISP": "0005", "CX": ""}))

	addr := vm.Addressing{Mode: "indexing", Selection: "SI"}
	ea, err := v.EffectiveAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0015), ea.Address)

	require.NoError(t, v.MovMemory("AX", "toMemory", addr))
	mem := v.Memory()
	require.Len(t, mem, 2)
	assert.Equal(t, uint16(0x0016), mem[0].Address)
	assert.Equal(t, uint16(0x0015), mem[1].Address)

	require.NoError(t, v.MovMemory("DX", "fromMemory", addr))
	dx, err := v.Register("dx")
	require.NoError(t, err)
	assert.Equal(t, "1A2B", dx)

	require.NoError(t, v.Assign("BX", "0042"))
	require.NoError(t, v.XchgMemory("BX", vm.Addressing{Mode: "index-base", Selection: "BX_SI", Disp: "FFC3"}))
	bx, _ := v.Register("BX")
	assert.Equal(t, "1A2B", bx, "0042+0010+FFC3 wraps to 0015")
}

func TestStackCommands(t *testing.T) {
	v, _ := newVM(t)
	require.NoError(t, v.Assign("AX", "1234"))
	require.NoError(t, v.Push("AX"))
	vals, sp := v.Stack()
	assert.Equal(t, []string{"1234"}, vals)
	assert.Equal(t, 0xFFFC, sp)

	require.NoError(t, v.Pop("CX"))
	vals, sp = v.Stack()
	assert.Empty(t, vals)
	assert.Equal(t, 0xFFFE, sp)
}

func TestRandomize(t *testing.T) {
	v, _ := newVM(t, vm.WithRandom(rand.New(rand.NewPCG(1, 1))))
	w, _ := newVM(t, vm.WithRandom(rand.New(rand.NewPCG(1, 1))))
	require.NoError(t, v.Randomize("addr"))
	require.NoError(t, w.Randomize("ADDR"))
	assert.Equal(t, v.AddressRegisters(), w.AddressRegisters())

	log := v.Log()
	require.Len(t, log, 4)
	for i, r := range []string{"DISP", "BP", "DI", "SI"} {
		assert.Equal(t, r, log[i].Register)
		assert.Equal(t, cpu.KindRandom, log[i].Kind)
	}
}

func TestReset(t *testing.T) {
	v, _ := newVM(t)
	require.NoError(t, v.Run("MOV AX, 1111\nMOV SI, 0100\nMOV [SI], AX\nPUSH AX"))
	require.NoError(t, v.Reset("all"))

	fresh, _ := newVM(t)
	got, want := v.Snapshot(), fresh.Snapshot()
	got.Log, want.Log = nil, nil
	assert.Equal(t, want, got)
}

func TestRun(t *testing.T) {
	v, _ := newVM(t)
	src := `
.equ OFFSET, 0005
MOV SI, 0010
MOV AX, 1A2B
MOV [SI+OFFSET], AX   ; store
MOV BX, [SI+OFFSET]
XCHG BX, CX
PUSH CX
POP DX
`
	require.NoError(t, v.Run(src))
	regs := v.Registers()
	assert.Equal(t, "1A2B", regs["AX"])
	assert.Equal(t, "0000", regs["BX"])
	assert.Equal(t, "1A2B", regs["CX"])
	assert.Equal(t, "1A2B", regs["DX"])
}

func TestRunStopsAtRejection(t *testing.T) {
	v, _ := newVM(t)
	err := v.Run("MOV AX, 0001\nPOP BX\nMOV CX, 0002")
	assert.ErrorIs(t, err, cpu.ErrEmptyStack)
	assert.Contains(t, err.Error(), "line 2")
	regs := v.Registers()
	assert.Equal(t, "0001", regs["AX"])
	assert.Equal(t, "0000", regs["CX"])

	// Assembly errors reject the whole program.
	err = v.Run("MOV DX, 0003\nJMP 0000")
	assert.ErrorIs(t, err, assembler.ErrSyntax)
	assert.Equal(t, "0000", v.Registers()["DX"])
}

func TestRunLine(t *testing.T) {
	v, _ := newVM(t)
	entries, err := v.RunLine("RESET REGS")
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	entries, err = v.RunLine("; comment only")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = v.RunLine("CLEAR")
	require.NoError(t, err)
	assert.Empty(t, v.Log())
}

func TestHistory(t *testing.T) {
	v, _ := newVM(t)
	require.NoError(t, v.Run("MOV AX, 0001\nPUSH AX"))
	hist := v.History()
	require.Len(t, hist, 2)
	assert.True(t, strings.HasPrefix(hist[0], "PUSH AX"))
	assert.True(t, strings.HasSuffix(hist[0], "STACK"))
	assert.True(t, strings.HasSuffix(hist[1], "PRZYPISZ"))
}

func TestReplay(t *testing.T) {
	v, _ := newVM(t, vm.WithRandom(rand.New(rand.NewPCG(5, 6))))
	require.NoError(t, v.Randomize("regs"))
	require.NoError(t, v.Randomize("addr"))
	require.NoError(t, v.Run(`
MOV AX, 1A2B
MOV CX, 00C0
MOV [SI], AX
MOV [DI+BX], CX
XCHG DX, [SI]
PUSH AX
PUSH BX
POP CX
XCHG AX, BX
MOV DX, AX
RESET ADDR
MOV DISP, 0002
MOV [BP+0010], DX
`))
	_ = v.Pop("AX")
	_ = v.Pop("AX")

	r, err := v.Replay()
	require.NoError(t, err)

	want, got := v.Snapshot(), r.Snapshot()
	assert.Equal(t, want.Registers, got.Registers)
	assert.Equal(t, want.AddressRegisters, got.AddressRegisters)
	assert.Equal(t, want.Stack, got.Stack)
	assert.Equal(t, want.StackPointer, got.StackPointer)
	assert.Equal(t, cellValues(want.Memory), cellValues(got.Memory))
}

func cellValues(cells []cpu.Cell) map[uint16]cpu.Byte {
	m := make(map[uint16]cpu.Byte, len(cells))
	for _, c := range cells {
		m[c.Address] = c.Value
	}
	return m
}

func TestConcurrentPushes(t *testing.T) {
	v, _ := newVM(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = v.Push("AX")
			}
		}()
	}
	wg.Wait()
	vals, sp := v.Stack()
	assert.Len(t, vals, 400)
	assert.Equal(t, 0xFFFE-2*400, sp)
	assert.Len(t, v.Log(), 400)
}

func TestDumps(t *testing.T) {
	v, _ := newVM(t)
	require.NoError(t, v.Run("MOV AX, BEEF\nMOV [BX], AX"))

	var buf bytes.Buffer
	v.DumpRegisters(&buf)
	out := buf.String()
	assert.Contains(t, out, "AX   BEEF")
	assert.Contains(t, out, "SP   FFFE")
	assert.Contains(t, out, "[0000] EF")
	assert.Contains(t, out, "[0001] BE")

	buf.Reset()
	v.Debug(&buf, false)
	assert.Contains(t, buf.String(), "StackPointer")
	assert.Contains(t, buf.String(), "MOV_TO_MEMORY")
}

func TestStackPolicyOption(t *testing.T) {
	v, _ := newVM(t, vm.WithCPUOptions(cpu.WithStackPolicy(cpu.StackGrowsUp)))
	require.NoError(t, v.Push("AX"))
	_, sp := v.Stack()
	assert.Equal(t, 2, sp)

	_, err := vm.New(vm.WithCPUOptions(cpu.WithStackPolicy(7)))
	assert.Error(t, err)
}

func TestAssignManyRejectsRepeatedRegister(t *testing.T) {
	for i := 0; i < 50; i++ {
		v, _ := newVM(t)
		err := v.AssignMany(map[string]string{"ax": "1111", "AX": "2222"})
		require.ErrorIs(t, err, cpu.ErrValidation)
		assert.Equal(t, "0000", v.Registers()["AX"])
		assert.Empty(t, v.Log())
	}
}

func TestReplayHasOwnRandomSource(t *testing.T) {
	v, _ := newVM(t, vm.WithRandom(rand.New(rand.NewPCG(7, 8))))
	ref, _ := newVM(t, vm.WithRandom(rand.New(rand.NewPCG(7, 8))))
	require.NoError(t, v.Randomize("regs"))
	require.NoError(t, ref.Randomize("regs"))

	r, err := v.Replay()
	require.NoError(t, err)
	assert.Equal(t, v.Registers(), r.Registers())
	require.NoError(t, r.Randomize("regs"))

	require.NoError(t, v.Randomize("addr"))
	require.NoError(t, ref.Randomize("addr"))
	assert.Equal(t, ref.AddressRegisters(), v.AddressRegisters())
}
