package cpu

// Mnemonics recorded in the operation log.
const (
	OpMOV   = "MOV"
	OpXCHG  = "XCHG"
	OpPUSH  = "PUSH"
	OpPOP   = "POP"
	OpRESET = "RESET"
)

// EntryKind is the sub-variant of a logged operation.
type EntryKind string

// Operation log kinds.
const (
	// Register to register
	KindMov  EntryKind = "MOV"
	KindXchg EntryKind = "XCHG"

	// Register <-> memory
	KindMovToMemory   EntryKind = "MOV_TO_MEMORY"
	KindMovFromMemory EntryKind = "MOV_FROM_MEMORY"
	KindXchgMemory    EntryKind = "XCHG_MEMORY"

	// PUSH and POP
	KindStack EntryKind = "STACK"

	// Direct assignment
	KindRandom EntryKind = "RANDOM"
	KindAssign EntryKind = "PRZYPISZ" // manual assignment
	KindReset  EntryKind = "RESET"
)

func (o Origin) kind() EntryKind {
	if o == OriginRandom {
		return KindRandom
	}
	return KindAssign
}
