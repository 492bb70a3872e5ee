package shareddata

import "sync/atomic"

// RefCount is an atomic reference count meant to be embedded in payload
// types. The zero value is ready to use and counts zero owners; every
// live handle referencing the payload accounts for exactly one unit.
//
// Payload code never touches the count itself. All transitions happen
// inside handle construction, copy, assignment, release, reset and
// take.
type RefCount struct {
	n atomic.Int32
}

// Ref increments the count by one.
func (c *RefCount) Ref() {
	if c.n.Add(1) <= 0 {
		panic("shareddata: ref of a released payload")
	}
}

// Deref decrements the count by one and reports whether it reached
// zero. It panics if the count goes negative, which indicates a
// reference released twice.
func (c *RefCount) Deref() bool {
	n := c.n.Add(-1)
	if n < 0 {
		panic("shareddata: deref below zero")
	}
	return n == 0
}

// Refs returns the current count.
func (c *RefCount) Refs() int32 {
	return c.n.Load()
}
