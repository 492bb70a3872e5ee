package shareddata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partite-ai/shareddata"
	"github.com/partite-ai/shareddata/testutil"
)

// Writes through one explicit handle stay visible through every aliasing
// handle; no copy happens behind the caller's back.
func TestExplicitSharedMutation(t *testing.T) {
	var rec testutil.Recorder
	d := testutil.NewTracked(&rec, 5)
	d.Ref()
	h1 := shareddata.AdoptExplicit(d)
	h2 := h1.Copy()
	require.EqualValues(t, 2, d.Refs())

	h2.Data().Value = 9

	require.Equal(t, 9, h1.ConstData().Value)
	require.Equal(t, 9, h2.ConstData().Value)
	require.True(t, h1.Equal(h2))
	require.EqualValues(t, 0, rec.Clones())

	h1.Release()
	h2.Release()
	require.EqualValues(t, 1, rec.Disposed())
}

func TestExplicitDetachOnDemand(t *testing.T) {
	var rec testutil.Recorder
	h1 := shareddata.NewExplicit(testutil.NewTracked(&rec, 5))
	h2 := h1.Copy()

	h2.Detach()
	require.EqualValues(t, 1, rec.Clones())
	require.False(t, h1.Equal(h2))

	h2.Data().Value = 9
	require.Equal(t, 5, h1.ConstData().Value)
	require.Equal(t, 9, h2.ConstData().Value)

	h2.Detach()
	require.EqualValues(t, 1, rec.Clones())

	h1.Release()
	h2.Release()
	require.EqualValues(t, 0, rec.Live())
}

func TestExplicitCountConservation(t *testing.T) {
	var rec testutil.Recorder
	d := testutil.NewTracked(&rec, 1)
	h := shareddata.NewExplicit(d)

	copies := make([]shareddata.Explicit[*testutil.Tracked], 3)
	for i := range copies {
		copies[i] = h.Copy()
	}
	require.EqualValues(t, 4, d.Refs())

	for i := range copies {
		copies[i].Release()
	}
	require.EqualValues(t, 1, d.Refs())

	h.Release()
	require.EqualValues(t, 1, rec.Disposed())
}

func TestExplicitTakeAdopt(t *testing.T) {
	var rec testutil.Recorder
	h := shareddata.NewExplicit(testutil.NewTracked(&rec, 4))
	other := h.Copy()

	taken := h.Take()
	require.False(t, h.Valid())
	require.EqualValues(t, 2, taken.Refs())

	adopted := shareddata.AdoptExplicit(taken)
	require.EqualValues(t, 2, taken.Refs())
	require.True(t, adopted.Equal(other))

	adopted.Release()
	other.Release()
	require.EqualValues(t, 0, rec.Live())
}

func TestExplicitMoveAndAssign(t *testing.T) {
	var rec testutil.Recorder
	a := shareddata.NewExplicit(testutil.NewTracked(&rec, 1))
	b := shareddata.NewExplicit(testutil.NewTracked(&rec, 2))

	moved := a.Move()
	require.False(t, a.Valid())
	require.EqualValues(t, 1, moved.ConstData().Refs())

	b.CopyFrom(&moved)
	require.True(t, b.Equal(moved))
	require.Equal(t, 1, b.ConstData().Value)
	require.EqualValues(t, 1, rec.Disposed())

	b.MoveFrom(&moved)
	require.False(t, moved.Valid())
	require.EqualValues(t, 1, b.ConstData().Refs())

	b.Release()
	require.EqualValues(t, 0, rec.Live())
}

func TestExplicitResetAndSwap(t *testing.T) {
	var rec testutil.Recorder
	a := shareddata.NewExplicit(testutil.NewTracked(&rec, 1))
	b := shareddata.NewExplicit(testutil.NewTracked(&rec, 2))

	a.Swap(&b)
	require.Equal(t, 2, a.ConstData().Value)
	require.Equal(t, 1, b.ConstData().Value)

	a.Reset(nil)
	require.False(t, a.Valid())
	require.EqualValues(t, 1, rec.Disposed())

	next := testutil.NewTracked(&rec, 3)
	a.Reset(next)
	require.EqualValues(t, 1, next.Refs())

	a.Release()
	b.Release()
	require.EqualValues(t, 0, rec.Live())
}

func TestExplicitClonePanicLeavesHandleUntouched(t *testing.T) {
	d := &fragileData{Value: 5}
	a := shareddata.NewExplicit(d)
	b := a.Copy()

	require.PanicsWithValue(t, "clone failed", func() {
		a.Detach()
	})

	require.True(t, a.Valid())
	require.True(t, a.Equal(b))
	require.EqualValues(t, 2, d.Refs())
	require.Equal(t, 5, a.Data().Value)

	a.Release()
	b.Release()
	require.EqualValues(t, 0, d.Refs())
}

func TestExplicitEmptyHandle(t *testing.T) {
	var h shareddata.Explicit[*testutil.Tracked]
	require.False(t, h.Valid())
	h.Release()

	require.PanicsWithValue(t, "shareddata: attempted to access empty handle", func() {
		h.Data()
	})
	require.PanicsWithValue(t, "shareddata: attempted to detach empty handle", func() {
		h.Detach()
	})
	require.PanicsWithValue(t, "shareddata: attempted to take from empty handle", func() {
		h.Take()
	})
}
