package cpu

// Stack is a LIFO of words with an explicit stack pointer. Each word occupies
// two bytes, so the pointer moves by 2 per push or pop.
type Stack struct {
	policy  StackPolicy
	values  []Word // most recently pushed first
	pointer int
}

// NewStack creates an empty stack with the pointer at the policy's start.
func NewStack(policy StackPolicy) *Stack {
	s := &Stack{policy: policy}
	s.Reset()
	return s
}

// InitialPointer returns the pointer value of an empty stack.
func (s *Stack) InitialPointer() int {
	if s.policy == StackGrowsUp {
		return 0
	}
	return 0xFFFE
}

func (s *Stack) step() int {
	if s.policy == StackGrowsUp {
		return 2
	}
	return -2
}

// Push puts w on top of the stack. There is no overflow check: the pointer is
// unbounded and goes below 0000 or above FFFF when pushed far enough.
func (s *Stack) Push(w Word) {
	s.values = append([]Word{w}, s.values...)
	s.pointer += s.step()
}

// Pop removes and returns the top word. On an empty stack it returns false and
// changes nothing.
func (s *Stack) Pop() (Word, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	w := s.values[0]
	s.values = s.values[1:]
	s.pointer -= s.step()
	return w, true
}

// Peek returns the top word without removing it.
func (s *Stack) Peek() (Word, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[0], true
}

// Len returns the number of words on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Pointer returns the current stack pointer.
func (s *Stack) Pointer() int {
	return s.pointer
}

// Values returns a copy of the stacked words, most recently pushed first.
func (s *Stack) Values() []Word {
	out := make([]Word, len(s.values))
	copy(out, s.values)
	return out
}

// Reset empties the stack and restores the initial pointer.
func (s *Stack) Reset() {
	s.values = nil
	s.pointer = s.InitialPointer()
}
