// Package testutil provides instrumented payload types for exercising
// shareddata handles in tests and stress tools.
package testutil

import (
	"sync/atomic"

	"github.com/partite-ai/shareddata"
)

// Recorder counts payload lifecycle events. Safe for concurrent use.
type Recorder struct {
	created  atomic.Int64
	clones   atomic.Int64
	disposed atomic.Int64
}

// Created returns how many Tracked payloads were allocated against this
// recorder, clones included.
func (r *Recorder) Created() int64 {
	return r.created.Load()
}

// Clones returns how many of those allocations came from Clone.
func (r *Recorder) Clones() int64 {
	return r.clones.Load()
}

// Disposed returns how many payloads had Dispose called.
func (r *Recorder) Disposed() int64 {
	return r.disposed.Load()
}

// Live returns created minus disposed.
func (r *Recorder) Live() int64 {
	return r.created.Load() - r.disposed.Load()
}

// Tracked is an instrumented payload carrying a single integer value.
// Its Clone and Dispose report to the owning Recorder.
type Tracked struct {
	shareddata.RefCount
	rec      *Recorder
	disposed atomic.Bool

	Value int
}

// NewTracked allocates a payload with the given value. The count starts
// at zero; wrap it with NewShared/NewExplicit, or Ref it once before
// adopting.
func NewTracked(rec *Recorder, value int) *Tracked {
	rec.created.Add(1)
	return &Tracked{rec: rec, Value: value}
}

// Clone deep-copies the payload. The copy's count is zero.
func (t *Tracked) Clone() *Tracked {
	t.rec.created.Add(1)
	t.rec.clones.Add(1)
	return &Tracked{rec: t.rec, Value: t.Value}
}

// Dispose records teardown. It panics if the payload is disposed twice,
// which would mean the handles double-released it.
func (t *Tracked) Dispose() {
	if !t.disposed.CompareAndSwap(false, true) {
		panic("testutil: payload disposed twice")
	}
	t.rec.disposed.Add(1)
}
