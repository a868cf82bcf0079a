package cpu

// Reg identifies one of the eight 16-bit registers. The first four form the
// general-purpose bank, the last four the address bank.
type Reg uint8

// Register numbers
const (
	// General-purpose registers
	AX Reg = iota
	BX
	CX
	DX

	// Address registers
	SI
	DI
	BP
	DISP // displacement, only ever used in address computation
)

// BankKind selects one of the two register banks.
type BankKind uint8

const (
	// General is the AX/BX/CX/DX bank.
	General BankKind = iota
	// Address is the SI/DI/BP/DISP bank.
	Address
)

// Mode is a memory addressing mode.
type Mode uint8

const (
	// ModeIndexing: index register + displacement: [SI+DISP], [DI+DISP]
	ModeIndexing Mode = iota + 1

	// ModeBase: base register + displacement: [BX+DISP], [BP+DISP]
	ModeBase

	// ModeIndexBase: index + base + displacement: [SI+BX+DISP] etc.
	ModeIndexBase
)

// Direction of a register<->memory MOV.
type Direction uint8

const (
	// ToMemory copies a register into memory.
	ToMemory Direction = iota + 1
	// FromMemory copies memory into a register.
	FromMemory
)

// Selector names the register(s) contributing to an effective address.
// ModeIndexing accepts SI or DI, ModeBase BX or BP, and ModeIndexBase one of
// SI_BX, SI_BP, DI_BX, DI_BP.
type Selector struct {
	Index Reg // SI or DI; unused in ModeBase
	Base  Reg // BX or BP; unused in ModeIndexing
}

// Selectors for every legal combination.
var (
	SelSI    = Selector{Index: SI}
	SelDI    = Selector{Index: DI}
	SelBX    = Selector{Base: BX}
	SelBP    = Selector{Base: BP}
	SelSI_BX = Selector{Index: SI, Base: BX}
	SelSI_BP = Selector{Index: SI, Base: BP}
	SelDI_BX = Selector{Index: DI, Base: BX}
	SelDI_BP = Selector{Index: DI, Base: BP}
)

// StackPolicy decides where the stack pointer starts and which way it moves.
type StackPolicy uint8

const (
	// StackGrowsDown starts at 0xFFFE and decrements by 2 on push.
	StackGrowsDown StackPolicy = iota
	// StackGrowsUp starts at 0x0000 and increments by 2 on push.
	StackGrowsUp
)

// Origin tells manual assignments apart from randomly generated ones in the log.
type Origin uint8

const (
	// OriginManual is a value typed in by the user.
	OriginManual Origin = iota
	// OriginRandom is a value drawn by a random generator.
	OriginRandom
)

// Target selects what a reset applies to.
type Target uint8

const (
	// ResetRegisters resets AX-DX.
	ResetRegisters Target = iota + 1
	// ResetAddress resets SI, DI, BP and DISP.
	ResetAddress
	// ResetMemory clears all 64K cells.
	ResetMemory
	// ResetStack empties the stack and restores the pointer.
	ResetStack
)
