// Package mock implements a call-expectation engine on top of the object
// dispatch substrate.
//
// A Mock is a synthetic concrete type for an interface: every vtable slot
// funnels into the engine, which matches recorded expectations against the
// actual call, consumes call budgets, and produces stored return values or
// callback results. Cross-method ordering is enforced with Sequences.
//
// Protocol violations (no expectation queued, no match, broken sequence)
// indicate a broken test. They are reported through a TestReporter so host
// test frameworks can intercept them; the default reporter panics.
package mock
