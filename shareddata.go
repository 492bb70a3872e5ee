// Package shareddata implements reference-counted handles for sharing a
// payload value across many owners.
//
// A payload type embeds RefCount and provides a Clone method performing a
// deep copy. It can then be held behind either of two generic handle
// types:
//
//   - Shared is implicitly sharing: requesting mutable access through
//     Data transparently detaches (clones) the payload if it is shared,
//     so writes never leak into other handles.
//   - Explicit is explicitly sharing: Data returns the possibly-shared
//     payload, and writes stay visible through every aliasing handle
//     until Detach is called.
//
// Handles are ordinary values with explicit lifecycle methods: Copy
// increments the count, Release decrements it and disposes the payload
// when the last reference is gone, Move transfers a reference without
// touching the count. The bookkeeping is lock-free and safe across
// goroutines operating on distinct handle instances, even when those
// handles alias the same payload. A single handle instance is not
// goroutine-safe, and payload field mutation is never synchronized by
// this package.
package shareddata

// Shareable constrains the payload types a handle can manage. Embedding
// RefCount provides Ref, Deref and Refs; the payload supplies Clone, a
// deep copy of its fields with a fresh (zero) count.
//
// T is typically a pointer to the payload struct. It may instead be an
// interface type, in which case Clone dispatches dynamically and a
// detach preserves the payload's concrete type.
type Shareable[T any] interface {
	Ref()
	Deref() bool
	Refs() int32
	Clone() T
}

// Disposer is implemented by payloads that need deterministic teardown.
// When the last reference to a payload is released, Dispose is called
// exactly once. Payloads without it are simply dropped.
type Disposer interface {
	Dispose()
}

// detach returns a solely-owned equivalent of d: d itself if nothing
// else references it, otherwise a clone seeded with a single reference.
// The clone happens before d is unbound, so a panic during Clone leaves
// d's count untouched.
//
// Two goroutines detaching handles that alias the same payload may both
// observe a shared count and both clone. That is wasteful but sound;
// neither ever sees a partially-built copy.
func detach[T Shareable[T]](d T) T {
	if d.Refs() == 1 {
		return d
	}
	fresh := d.Clone()
	fresh.Ref()
	release(d)
	return fresh
}

// release drops one reference and disposes the payload if it was the
// last.
func release[T Shareable[T]](d T) {
	if d.Deref() {
		if disp, ok := any(d).(Disposer); ok {
			disp.Dispose()
		}
	}
}

// isSet reports whether d is distinguishable from the zero T, i.e. an
// actual payload reference.
func isSet[T Shareable[T]](d T) bool {
	var zero T
	return any(d) != any(zero)
}
