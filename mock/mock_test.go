package mock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/objkit/object"
)

// recorder captures reported violations instead of stopping the test, so
// failure paths can be asserted on.
type recorder struct {
	errors []string
	fatals []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func shapeIface(t *testing.T) *object.Interface {
	t.Helper()
	return object.MustInterface("Shape",
		object.MethodSig{Name: "area", NumArgs: 0, HasResult: true},
		object.MethodSig{Name: "set_size", NumArgs: 1},
		object.MethodSig{Name: "draw", NumArgs: 0, HasResult: true},
	)
}

// ---------------------------------------------------------------------------
// Basic expectation consumption
// ---------------------------------------------------------------------------

func TestFixedReturnDefaultsToOneCall(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	m.ExpectCall("area").WillReturn(42)

	v, err := m.Handle().Call("area")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCallBudgetSequence(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	m.ExpectCall("area").WillReturn(10).Times(3)
	m.ExpectCall("area").WillReturn(15)

	h := m.Handle()
	for _, want := range []int{10, 10, 10, 15} {
		v, err := h.Call("area")
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	// Fifth call: both expectations are exhausted and retired.
	_, err := h.Call("area")
	require.NoError(t, err) // the dispatch substrate itself is fine
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "no expectation queued")
	assert.Contains(t, rec.fatals[0], "Shape.area")
}

func TestExactMatchBeatsWildcard(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	// Wildcard queued first; the exact-value match must still win.
	wildcardHit := false
	m.ExpectCall("set_size").WithArgs(Any).Invoke(func(args []object.Value) object.Value {
		wildcardHit = true
		return nil
	})
	exactHit := false
	m.ExpectCall("set_size").WithArgs(101).Invoke(func(args []object.Value) object.Value {
		exactHit = true
		return nil
	})

	_, err := m.Handle().Call("set_size", 101)
	require.NoError(t, err)
	assert.True(t, exactHit, "exact-value expectation should be selected")
	assert.False(t, wildcardHit, "wildcard should lose to exact match")

	// The wildcard is still pending; burn it so Verify passes.
	_, err = m.Handle().Call("set_size", 5)
	require.NoError(t, err)
	assert.True(t, wildcardHit)
}

func TestInsertionOrderBreaksTies(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	m.ExpectCall("area").WillReturn("first")
	m.ExpectCall("area").WillReturn("second")

	v, err := m.Handle().Call("area")
	require.NoError(t, err)
	assert.Equal(t, "first", v, "equal scores resolve by insertion order")

	v, err = m.Handle().Call("area")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestArgumentMismatchIsFatal(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	m.ExpectCall("set_size").WithArgs(7)

	_, err := m.Handle().Call("set_size", 8)
	require.NoError(t, err)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "no expectation for Shape.set_size matches")
}

func TestInvokeCallbackReceivesArgs(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	m.ExpectCall("set_size").Invoke(func(args []object.Value) object.Value {
		return args[0].(int) * 2
	})

	v, err := m.Handle().Call("set_size", 21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestAnyTimesNeverRetired(t *testing.T) {
	m := New(shapeIface(t), t)

	m.ExpectCall("draw").WillReturn("grid").AnyTimes()

	h := m.Handle()
	for i := 0; i < 10; i++ {
		v, err := h.Call("draw")
		require.NoError(t, err)
		assert.Equal(t, "grid", v)
	}

	// Unbounded expectations do not fail verification.
	require.NoError(t, m.Verify())
}

// ---------------------------------------------------------------------------
// Teardown verification
// ---------------------------------------------------------------------------

func TestVerifyReportsUnmetExpectations(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	m.ExpectCall("area").WillReturn(1).Times(3)
	m.ExpectCall("draw").WillReturn("x")

	_, err := m.Handle().Call("area")
	require.NoError(t, err)

	verr := m.Verify()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "2 unmet expectation(s)")

	require.Len(t, rec.errors, 2)
	assert.Contains(t, rec.errors[0], "Shape.area")
	assert.Contains(t, rec.errors[0], "2 call(s) remaining")
	assert.Contains(t, rec.errors[1], "Shape.draw")
	assert.Contains(t, rec.errors[1], "1 call(s) remaining")

	// All queues were released at teardown.
	require.NoError(t, m.Verify())
}

func TestEmptyQueueIsFatal(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	_, err := m.Handle().Call("area")
	require.NoError(t, err)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "no expectation queued for Shape.area")
}

func TestExpectCallUnknownMethod(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	m.ExpectCall("perimeter")
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], `does not declare method "perimeter"`)
}

func TestDefaultReporterPanics(t *testing.T) {
	m := New(shapeIface(t), nil)
	assert.Panics(t, func() {
		m.Handle().MustCall("area")
	})
}

// ---------------------------------------------------------------------------
// Mock plugs into the dispatch substrate
// ---------------------------------------------------------------------------

func TestMockIsDispatchableType(t *testing.T) {
	in := shapeIface(t)
	m := New(in, t)
	defer func() { require.NoError(t, m.Verify()) }()

	// The synthetic type is a regular concrete type of the interface.
	assert.Equal(t, in, m.Type().Interface())
	assert.True(t, m.Type().VTable().Resolved(in.Slot("area")))

	// Handles copied from the mock share the expectation queues.
	m.ExpectCall("area").WillReturn(7)
	alias := m.Handle()
	v, err := alias.Call("area")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
