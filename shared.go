package shareddata

// Shared is an implicitly sharing handle to a payload of type T. Copies
// of a Shared handle reference the same payload; the first request for
// mutable access through Data on a shared payload detaches, so writes
// through one handle are never observed through another.
//
// The zero value is the empty handle. Methods that need a payload panic
// when called on an empty handle.
type Shared[T Shareable[T]] struct {
	d   T
	set bool
}

// NewShared wraps d in a handle and increments d's count.
func NewShared[T Shareable[T]](d T) Shared[T] {
	d.Ref()
	return Shared[T]{d: d, set: true}
}

// AdoptShared wraps d without incrementing its count. The caller
// transfers one reference it already accounts for: either a payload
// whose count was seeded to 1 for this handle alone, or a reference
// obtained from Take. Adopting after Take relocates ownership without a
// redundant decrement/increment pair.
func AdoptShared[T Shareable[T]](d T) Shared[T] {
	return Shared[T]{d: d, set: true}
}

func (h Shared[T]) Valid() bool {
	return h.set
}

// Copy returns a new handle referencing the same payload and increments
// the count. Copying an empty handle yields an empty handle.
func (h Shared[T]) Copy() Shared[T] {
	if !h.set {
		return Shared[T]{}
	}
	h.d.Ref()
	return Shared[T]{d: h.d, set: true}
}

// Move transfers the reference to the returned handle and empties h.
// The count is unchanged.
func (h *Shared[T]) Move() Shared[T] {
	moved := *h
	*h = Shared[T]{}
	return moved
}

// Release drops the handle's reference, disposing the payload if it was
// the last, and empties the handle. No-op on an empty handle.
func (h *Shared[T]) Release() {
	if !h.set {
		return
	}
	release(h.d)
	*h = Shared[T]{}
}

// CopyFrom releases h's current reference and installs a copy of
// other's. The new reference is acquired before the old one is
// released, so h.CopyFrom(h) and aliased payloads are safe.
func (h *Shared[T]) CopyFrom(other *Shared[T]) {
	next := other.Copy()
	h.Release()
	*h = next
}

// MoveFrom releases h's current reference and steals other's, leaving
// other empty. No-op when h and other are the same handle.
func (h *Shared[T]) MoveFrom(other *Shared[T]) {
	if h == other {
		return
	}
	next := other.Move()
	h.Release()
	*h = next
}

// Data returns the payload for reading and writing. It detaches first,
// so the returned payload is solely owned by h.
func (h *Shared[T]) Data() T {
	if !h.set {
		panic("shareddata: attempted to access empty handle")
	}
	h.d = detach(h.d)
	return h.d
}

// ConstData returns the payload for reading only. It never detaches;
// the caller must not mutate the result.
func (h Shared[T]) ConstData() T {
	if !h.set {
		panic("shareddata: attempted to access empty handle")
	}
	return h.d
}

// Detach ensures h is the sole owner of its payload, cloning it if it
// is shared. Calling Detach again without an intervening share is a
// no-op.
func (h *Shared[T]) Detach() {
	if !h.set {
		panic("shareddata: attempted to detach empty handle")
	}
	h.d = detach(h.d)
}

// Take returns the payload and empties the handle without decrementing
// the count. Accountability for that one reference moves to the caller,
// who must later adopt it into a new handle or release it manually.
func (h *Shared[T]) Take() T {
	if !h.set {
		panic("shareddata: attempted to take from empty handle")
	}
	d := h.d
	*h = Shared[T]{}
	return d
}

// Reset releases the current reference. If d is non-zero its count is
// incremented and h references it afterwards; otherwise h becomes
// empty. The increment happens before the release, so resetting a
// handle to its own payload is safe.
func (h *Shared[T]) Reset(d T) {
	if !isSet(d) {
		h.Release()
		return
	}
	d.Ref()
	h.Release()
	*h = Shared[T]{d: d, set: true}
}

// Equal reports whether h and other reference the same payload
// instance. Contents are not compared and no detach occurs. Two empty
// handles are equal.
func (h Shared[T]) Equal(other Shared[T]) bool {
	if h.set != other.set {
		return false
	}
	if !h.set {
		return true
	}
	return any(h.d) == any(other.d)
}

func (h *Shared[T]) Swap(other *Shared[T]) {
	*h, *other = *other, *h
}
