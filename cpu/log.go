package cpu

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one record of the operation log. Entries are never modified after
// they have been added.
type Entry struct {
	ID             string
	Time           time.Time
	Op             string
	Kind           EntryKind
	Register       string
	SecondRegister string // MOV/XCHG between registers only
	Pointer        string // composition of the effective address for memory forms
	Value          string
}

// Log is the most-recent-first record of every accepted operation.
type Log struct {
	entries []Entry
	clock   func() time.Time
	newID   func() string
	last    time.Time
}

// NewLog creates an empty log. Nil clock or id functions fall back to
// time.Now and random UUIDs.
func NewLog(clock func() time.Time, newID func() string) *Log {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Log{clock: clock, newID: newID}
}

// add stamps e with an id and a timestamp and puts it in front. Timestamps
// never go backwards, even if the clock does.
func (l *Log) add(e Entry) Entry {
	now := l.clock()
	if now.Before(l.last) {
		now = l.last
	}
	l.last = now
	e.ID = l.newID()
	e.Time = now
	l.entries = append([]Entry{e}, l.entries...)
	return e
}

// Entries returns a copy of the log, most recent first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Chronological returns a copy of the log, oldest first.
func (l *Log) Chronological() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(out)-1-i] = e
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.entries = nil
}
