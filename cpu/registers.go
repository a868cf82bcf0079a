package cpu

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Bank holds four 16-bit registers: either AX-DX or SI, DI, BP and DISP.
// The zero value is not usable; use NewBank.
type Bank struct {
	kind BankKind
	vals [4]Word
}

// NewBank creates a bank with every register at 0000.
func NewBank(kind BankKind) *Bank {
	return &Bank{kind: kind}
}

// Kind returns which bank this is.
func (b *Bank) Kind() BankKind {
	return b.kind
}

func (b *Bank) slot(r Reg) (int, error) {
	if !r.Valid() || r.Bank() != b.kind {
		return 0, errors.Wrapf(ErrValidation, "%s is not in the %s bank", r, b.kind)
	}
	return int(r) & 3, nil
}

// Get returns the value of r. Registers outside the bank read as 0000.
func (b *Bank) Get(r Reg) Word {
	i, err := b.slot(r)
	if err != nil {
		return 0
	}
	return b.vals[i]
}

// Set stores an already validated value.
func (b *Bank) Set(r Reg, w Word) error {
	i, err := b.slot(r)
	if err != nil {
		return err
	}
	b.vals[i] = w
	return nil
}

// Update validates value as a 4-digit hex word and stores it.
func (b *Bank) Update(r Reg, value string) error {
	i, err := b.slot(r)
	if err != nil {
		return err
	}
	w, err := ParseWord(value)
	if err != nil {
		return errors.Wrapf(err, "register %s", r)
	}
	b.vals[i] = w
	return nil
}

// Move copies from into to. Moving a register onto itself is allowed.
func (b *Bank) Move(from, to Reg) error {
	src, err := b.slot(from)
	if err != nil {
		return err
	}
	dst, err := b.slot(to)
	if err != nil {
		return err
	}
	b.vals[dst] = b.vals[src]
	return nil
}

// Exchange swaps the values of two registers.
func (b *Bank) Exchange(first, second Reg) error {
	i, err := b.slot(first)
	if err != nil {
		return err
	}
	j, err := b.slot(second)
	if err != nil {
		return err
	}
	tmp := b.vals[i]
	b.vals[i] = b.vals[j]
	b.vals[j] = tmp
	return nil
}

// Reset sets every register back to 0000.
func (b *Bank) Reset() {
	b.vals = [4]Word{}
}

// Values returns a copy of the four registers in bank order.
func (b *Bank) Values() [4]Word {
	return b.vals
}

// Map returns the registers as a name -> value map, e.g. {"AX": "0000", ...}.
func (b *Bank) Map() map[string]string {
	m := make(map[string]string, 4)
	for i, r := range b.kind.Registers() {
		m[r.String()] = b.vals[i].String()
	}
	return m
}

// GenerateRandom draws four independent words, uniform over 0000-FFFF, in bank
// order. The bank itself is not modified.
func (b *Bank) GenerateRandom(rng *rand.Rand) [4]Word {
	var out [4]Word
	for i := range out {
		if rng == nil {
			out[i] = Word(rand.N(0x10000))
		} else {
			out[i] = Word(rng.IntN(0x10000))
		}
	}
	return out
}
