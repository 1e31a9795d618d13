package mock

import (
	"github.com/chazu/objkit/object"
)

// Unbounded marks an expectation that is never retired by call consumption.
const Unbounded = -1

// Matcher scores for best-match selection. A wildcard contributes a small
// positive score, an exact value a larger one, and any mismatch zeroes the
// whole candidate. Ties resolve by insertion order; that order dependence
// is a deliberate part of the contract.
const (
	scoreWildcard = 1
	scoreExact    = 10
)

// Matcher matches one positional argument.
type Matcher struct {
	wildcard bool
	value    object.Value
}

// Any matches any argument value.
var Any = Matcher{wildcard: true}

// Eq matches an argument equal to v (comparable kinds by ==, everything
// else by deep equality).
func Eq(v object.Value) Matcher {
	return Matcher{value: v}
}

// asMatcher lets WithArgs accept plain values alongside explicit matchers.
func asMatcher(v any) Matcher {
	if m, ok := v.(Matcher); ok {
		return m
	}
	return Eq(v)
}

// Expectation is one recorded rule for a mocked method: how many times,
// with what arguments, and with what outcome a call should be satisfied.
// Owned by the Mock that created it; released when its budget is exhausted
// or at teardown verification.
type Expectation struct {
	owner  *Mock
	slot   int
	method string

	matchers    []Matcher
	hasMatchers bool

	ret      object.Value
	callback func(args []object.Value) object.Value

	remaining int // calls left; Unbounded = never retired
	timesSet  bool

	seq     *Sequence
	seqSite callSite // where InSequence was declared

	site callSite // where ExpectCall was declared
}

// ---------------------------------------------------------------------------
// Builder surface
// ---------------------------------------------------------------------------

// WithArgs sets positional argument matchers. Plain values are shorthand
// for Eq; use Any for wildcards. The matcher count must equal the method's
// declared arity to ever match.
func (e *Expectation) WithArgs(matchers ...any) *Expectation {
	e.matchers = make([]Matcher, len(matchers))
	for i, m := range matchers {
		e.matchers[i] = asMatcher(m)
	}
	e.hasMatchers = true
	return e
}

// WillReturn sets a fixed return value for matched calls.
func (e *Expectation) WillReturn(v object.Value) *Expectation {
	e.ret = v
	e.callback = nil
	return e
}

// Invoke sets a callback to run with the call's arguments; its result
// becomes the return value. Replaces any fixed return value.
func (e *Expectation) Invoke(fn func(args []object.Value) object.Value) *Expectation {
	e.callback = fn
	return e
}

// Times sets the remaining-call budget. Without Times an expectation
// consumes exactly one call.
func (e *Expectation) Times(n int) *Expectation {
	if n <= 0 && n != Unbounded {
		e.owner.reporter.Fatalf("mock %s: Times(%d) at %s: budget must be positive or Unbounded",
			e.owner.name(), n, captureSite(1))
		return e
	}
	e.remaining = n
	e.timesSet = true
	return e
}

// AnyTimes marks the expectation as unbounded: it is never retired by call
// consumption and does not participate in teardown verification.
func (e *Expectation) AnyTimes() *Expectation {
	e.remaining = Unbounded
	e.timesSet = true
	return e
}

// InSequence binds the expectation to a cross-method ordering constraint.
// The expectation only becomes eligible when it is the head of seq.
func (e *Expectation) InSequence(seq *Sequence) *Expectation {
	if e.seq != nil {
		e.owner.reporter.Fatalf("mock %s: expectation for %q declared at %s is already in a sequence",
			e.owner.name(), e.method, e.site)
		return e
	}
	e.seq = seq
	e.seqSite = captureSite(1)
	seq.bind(e)
	return e
}

// ---------------------------------------------------------------------------
// Matching
// ---------------------------------------------------------------------------

// score rates how well the expectation matches the actual arguments.
// Zero means no match.
func (e *Expectation) score(args []object.Value) int {
	if !e.hasMatchers {
		// No declared matchers: matches anything, below any explicit match.
		return scoreWildcard
	}
	if len(e.matchers) != len(args) {
		return 0
	}
	total := 0
	for i, m := range e.matchers {
		switch {
		case m.wildcard:
			total += scoreWildcard
		case object.ValueEqual(m.value, args[i]):
			total += scoreExact
		default:
			return 0
		}
	}
	if total == 0 {
		// Zero-argument method with empty matcher set still matches.
		total = scoreWildcard
	}
	return total
}

// blocked reports whether the expectation is sequence-bound and not yet at
// the head of its sequence.
func (e *Expectation) blocked() bool {
	return e.seq != nil && !e.seq.isHead(e)
}

// outcome produces the return value for a matched call.
func (e *Expectation) outcome(args []object.Value) object.Value {
	if e.callback != nil {
		return e.callback(args)
	}
	return e.ret
}

// release drops outcome storage and sequence membership. Called when the
// budget is exhausted or at teardown.
func (e *Expectation) release() {
	if e.seq != nil {
		e.seq.retire(e)
		e.seq = nil
	}
	e.ret = nil
	e.callback = nil
}
