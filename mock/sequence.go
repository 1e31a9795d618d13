package mock

import "github.com/google/uuid"

// Sequence is a cross-method ordering constraint: expectations bound to it
// may only be matched when they are the current head, and matching the
// head advances the queue.
//
// The sequence holds a bound-expectation count; it is considered released
// only when the last bound expectation has been satisfied and retired.
type Sequence struct {
	id    uuid.UUID
	order []*Expectation
	bound int
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{id: uuid.New()}
}

// ID returns the sequence's identity, used in diagnostics.
func (s *Sequence) ID() uuid.UUID { return s.id }

// bind appends an expectation to the required order.
func (s *Sequence) bind(e *Expectation) {
	s.order = append(s.order, e)
	s.bound++
}

// isHead reports whether e is the current head of the sequence.
func (s *Sequence) isHead(e *Expectation) bool {
	return len(s.order) > 0 && s.order[0] == e
}

// retire removes an expectation from the sequence and drops its reference.
// Normally the head advances, but teardown may retire out of order.
func (s *Sequence) retire(e *Expectation) {
	for i, cur := range s.order {
		if cur == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			s.bound--
			break
		}
	}
}

// headDistance returns how many expectations precede e in the sequence,
// or -1 if e is not bound to it.
func (s *Sequence) headDistance(e *Expectation) int {
	for i, cur := range s.order {
		if cur == e {
			return i
		}
	}
	return -1
}

// Released reports whether every bound expectation has been retired.
func (s *Sequence) Released() bool { return s.bound == 0 }

// Pending returns the number of bound expectations not yet satisfied.
func (s *Sequence) Pending() int { return s.bound }
