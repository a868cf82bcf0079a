package cpu

import (
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
)

// Assign stores a literal 4-digit hex value in any register (MOV r, value).
// The origin decides whether the entry is logged as PRZYPISZ or RANDOM.
func (c *CPU) Assign(r Reg, value string, origin Origin) (Entry, error) {
	if !r.Valid() {
		return Entry{}, errors.Wrapf(ErrValidation, "unknown register %d", r)
	}
	w, err := ParseWord(value)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "MOV %s", r)
	}
	return c.assign(r, w, origin.kind()), nil
}

func (c *CPU) assign(r Reg, w Word, kind EntryKind) Entry {
	c.bank(r).Set(r, w)
	return c.log.add(Entry{
		Op:       OpMOV,
		Kind:     kind,
		Register: r.String(),
		Value:    w.String(),
	})
}

// AssignMany assigns several registers at once. Empty values are skipped.
// Every value is validated before any register changes: one bad value rejects
// the whole batch. A batch with nothing to assign is rejected as well.
// Entries are added in register order.
func (c *CPU) AssignMany(values map[Reg]string, origin Origin) ([]Entry, error) {
	type pending struct {
		r Reg
		w Word
	}
	var todo []pending
	for r, v := range values {
		if v == "" {
			continue
		}
		if !r.Valid() {
			return nil, errors.Wrapf(ErrValidation, "unknown register %d", r)
		}
		w, err := ParseWord(v)
		if err != nil {
			return nil, errors.Wrapf(err, "register %s", r)
		}
		todo = append(todo, pending{r, w})
	}
	if len(todo) == 0 {
		return nil, errors.Wrap(ErrValidation, "no values to assign")
	}
	sort.Slice(todo, func(i, j int) bool { return todo[i].r < todo[j].r })

	entries := make([]Entry, 0, len(todo))
	for _, p := range todo {
		entries = append(entries, c.assign(p.r, p.w, origin.kind()))
	}
	return entries, nil
}

// AssignRandom applies four already generated words to a bank, in bank order,
// logging one RANDOM entry per register.
func (c *CPU) AssignRandom(bank BankKind, words [4]Word) []Entry {
	entries := make([]Entry, 0, 4)
	for i, r := range bank.Registers() {
		entries = append(entries, c.assign(r, words[i], KindRandom))
	}
	return entries
}

// GenerateRandom draws four random words for a bank without applying them.
func (c *CPU) GenerateRandom(bank BankKind, rng *rand.Rand) [4]Word {
	if bank == Address {
		return c.addr.GenerateRandom(rng)
	}
	return c.regs.GenerateRandom(rng)
}
