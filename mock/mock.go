package mock

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/objkit/object"
)

var log = commonlog.GetLogger("objkit.mock")

// Mock is a synthetic implementation of an interface whose every method
// consults a per-method queue of expectations.
//
// Single-threaded like the rest of the substrate: the expectation queues
// are shared by the mock and any handles copied from it, and are mutated
// without locking.
type Mock struct {
	id       uuid.UUID
	iface    *object.Interface
	typ      *object.Type
	inst     *object.Instance
	handle   object.Handle
	reporter TestReporter

	queues [][]*Expectation // indexed by vtable slot
}

// New builds a mock implementing the interface. Violations are reported to
// reporter; pass nil for the panicking default. *testing.T is a reporter.
func New(iface *object.Interface, reporter TestReporter) *Mock {
	if reporter == nil {
		reporter = panicReporter{}
	}
	m := &Mock{
		id:       uuid.New(),
		iface:    iface,
		reporter: reporter,
		queues:   make([][]*Expectation, iface.NumMethods()),
	}

	// One synthetic concrete type per mock instance: every slot funnels
	// into the engine, so matching inherits the exact dispatch contract
	// real types get.
	opts := make([]object.TypeOption, 0, iface.NumMethods())
	for _, sig := range iface.Methods() {
		slot := iface.Slot(sig.Name)
		opts = append(opts, object.WithMethod(sig.Name,
			func(self *object.Instance, args []object.Value) object.Value {
				return m.dispatch(slot, args)
			}))
	}

	typ, err := iface.NewType(fmt.Sprintf("Mock(%s)", iface.Name()), opts...)
	if err != nil {
		// Only reachable with a corrupted descriptor.
		panic(fmt.Sprintf("mock: cannot build synthetic type for %s: %v", iface.Name(), err))
	}
	m.typ = typ
	m.inst = object.NewInstance(typ)
	m.handle = object.Bind(m.inst)
	return m
}

// Handle returns the dispatchable handle over the mock. Copies of it share
// the expectation queues.
func (m *Mock) Handle() object.Handle { return m.handle }

// Interface returns the mocked interface.
func (m *Mock) Interface() *object.Interface { return m.iface }

// Type returns the synthetic concrete type.
func (m *Mock) Type() *object.Type { return m.typ }

// name identifies the mock in diagnostics.
func (m *Mock) name() string {
	return fmt.Sprintf("%s#%s", m.typ.Name(), m.id.String()[:8])
}

// ExpectCall queues an expectation for a method and returns its builder.
// Without further builder calls the expectation matches any arguments,
// returns nil, and consumes exactly one call.
func (m *Mock) ExpectCall(method string) *Expectation {
	site := captureSite(1)
	slot := m.iface.Slot(method)
	if slot < 0 {
		m.reporter.Fatalf("mock %s: ExpectCall at %s: interface %s does not declare method %q",
			m.name(), site, m.iface.Name(), method)
		// Reachable only with an Errorf-style reporter; keep the builder
		// usable so the test fails exactly once.
		return &Expectation{owner: m, slot: -1, method: method, remaining: 1, site: site}
	}

	e := &Expectation{
		owner:     m,
		slot:      slot,
		method:    method,
		remaining: 1,
		site:      site,
	}
	m.queues[slot] = append(m.queues[slot], e)
	return e
}

// dispatch is the funnel every synthetic method lands in: select the best
// matching expectation, consume its budget, produce its outcome.
func (m *Mock) dispatch(slot int, args []object.Value) object.Value {
	method := m.iface.Sig(slot).Name
	queue := m.queues[slot]
	if len(queue) == 0 {
		m.reporter.Fatalf("mock %s: no expectation queued for %s.%s",
			m.name(), m.iface.Name(), method)
		return nil
	}

	// Best-match selection: highest score wins, insertion order breaks
	// ties. Sequence-bound candidates are only eligible at their sequence
	// head; matching-but-blocked candidates are remembered so a broken
	// ordering can be reported with both call sites.
	var (
		best      *Expectation
		bestIdx   int
		bestScore int
		blocked   *Expectation
	)
	for i, e := range queue {
		s := e.score(args)
		if s == 0 {
			continue
		}
		if e.blocked() {
			if blocked == nil {
				blocked = e
			}
			continue
		}
		if s > bestScore {
			best, bestIdx, bestScore = e, i, s
		}
	}

	if best == nil {
		if blocked != nil {
			m.reporter.Fatalf("mock %s: sequence broken: %s.%s expected at %s may not run yet; "+
				"its sequence constraint was declared at %s (sequence %s has %d earlier pending call(s))",
				m.name(), m.iface.Name(), method, blocked.site, blocked.seqSite,
				blocked.seq.ID().String()[:8], blocked.seq.headDistance(blocked))
			return nil
		}
		m.reporter.Fatalf("mock %s: no expectation for %s.%s matches arguments %v",
			m.name(), m.iface.Name(), method, args)
		return nil
	}

	ret := best.outcome(args)
	log.Debugf("%s: %s(%v) matched expectation from %s (score %d)",
		m.name(), method, args, best.site, bestScore)

	if best.remaining != Unbounded {
		best.remaining--
		if best.remaining == 0 {
			m.queues[slot] = append(queue[:bestIdx], queue[bestIdx+1:]...)
			best.release()
		}
	}
	return ret
}

// Verify is the teardown check: every expectation with a finite budget must
// have been fully consumed. Each unmet expectation is reported through the
// TestReporter with the call site that declared it; all remaining
// expectation storage is released. Returns an error summarizing failures
// so non-test callers can probe the result.
func (m *Mock) Verify() error {
	unmet := 0
	for slot, queue := range m.queues {
		for _, e := range queue {
			if e.remaining != Unbounded && e.remaining > 0 {
				unmet++
				m.reporter.Errorf("mock %s: unmet expectation for %s.%s declared at %s: %d call(s) remaining",
					m.name(), m.iface.Name(), e.method, e.site, e.remaining)
			}
			e.release()
		}
		m.queues[slot] = nil
	}
	if unmet > 0 {
		return fmt.Errorf("mock %s: %d unmet expectation(s)", m.name(), unmet)
	}
	return nil
}
