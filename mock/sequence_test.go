package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceEnforcesCrossMethodOrder(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	seq := NewSequence()
	m.ExpectCall("set_size").InSequence(seq)
	m.ExpectCall("area").WillReturn(9).InSequence(seq)

	h := m.Handle()
	_, err := h.Call("set_size", 3)
	require.NoError(t, err)

	v, err := h.Call("area")
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	assert.True(t, seq.Released(), "sequence releases with its last expectation")
}

func TestSequenceBrokenReportsBothSites(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	seq := NewSequence()
	m.ExpectCall("set_size").InSequence(seq)
	m.ExpectCall("area").WillReturn(9).InSequence(seq)

	// Calling area before set_size violates the declared order.
	_, err := m.Handle().Call("area")
	require.NoError(t, err)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "sequence broken")
	assert.Contains(t, rec.fatals[0], "Shape.area")
	// Both the blocked expectation's site and the binding site are named.
	assert.Contains(t, rec.fatals[0], "sequence_test.go")
	assert.Contains(t, rec.fatals[0], "declared at")
}

func TestUnorderedExpectationStillCallable(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	seq := NewSequence()
	m.ExpectCall("set_size").InSequence(seq)
	m.ExpectCall("area").WillReturn(1).InSequence(seq)

	// An independently declared, unordered expectation on the same method
	// remains callable while the sequence is pending.
	m.ExpectCall("area").WillReturn(2)

	h := m.Handle()
	v, err := h.Call("area")
	require.NoError(t, err)
	assert.Equal(t, 2, v, "unordered sibling matches while sequence head is pending")

	_, err = h.Call("set_size", 1)
	require.NoError(t, err)

	v, err = h.Call("area")
	require.NoError(t, err)
	assert.Equal(t, 1, v, "sequence head matches once unblocked")
}

func TestSequenceAcrossBudgetedExpectation(t *testing.T) {
	m := New(shapeIface(t), t)
	defer func() { require.NoError(t, m.Verify()) }()

	seq := NewSequence()
	m.ExpectCall("set_size").Times(2).InSequence(seq)
	m.ExpectCall("draw").WillReturn("done").InSequence(seq)

	h := m.Handle()
	_, err := h.Call("set_size", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Pending(), "head advances only when its budget is exhausted")

	_, err = h.Call("set_size", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, seq.Pending())

	v, err := h.Call("draw")
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.True(t, seq.Released())
}

func TestDoubleSequenceBindingRejected(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	a := NewSequence()
	b := NewSequence()
	m.ExpectCall("area").WillReturn(1).InSequence(a).InSequence(b)

	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "already in a sequence")
}

func TestSequenceHeadDistance(t *testing.T) {
	rec := &recorder{}
	m := New(shapeIface(t), rec)

	seq := NewSequence()
	e1 := m.ExpectCall("set_size").InSequence(seq)
	e2 := m.ExpectCall("area").WillReturn(1).InSequence(seq)

	assert.True(t, seq.isHead(e1))
	assert.False(t, seq.isHead(e2))
	assert.Equal(t, 1, seq.headDistance(e2))

	// Teardown retires everything, sequence included.
	_ = m.Verify()
	assert.True(t, seq.Released())
}
