package shareddata

// Explicit is an explicitly sharing handle to a payload of type T. It
// follows the same counting discipline as Shared, but Data never
// detaches: writes through one handle stay visible through every handle
// aliasing the payload until the caller invokes Detach.
//
// The zero value is the empty handle. Methods that need a payload panic
// when called on an empty handle.
type Explicit[T Shareable[T]] struct {
	d   T
	set bool
}

// NewExplicit wraps d in a handle and increments d's count.
func NewExplicit[T Shareable[T]](d T) Explicit[T] {
	d.Ref()
	return Explicit[T]{d: d, set: true}
}

// AdoptExplicit wraps d without incrementing its count. The caller
// transfers one reference it already accounts for, typically obtained
// from Take.
func AdoptExplicit[T Shareable[T]](d T) Explicit[T] {
	return Explicit[T]{d: d, set: true}
}

func (h Explicit[T]) Valid() bool {
	return h.set
}

// Copy returns a new handle referencing the same payload and increments
// the count. Copying an empty handle yields an empty handle.
func (h Explicit[T]) Copy() Explicit[T] {
	if !h.set {
		return Explicit[T]{}
	}
	h.d.Ref()
	return Explicit[T]{d: h.d, set: true}
}

// Move transfers the reference to the returned handle and empties h.
// The count is unchanged.
func (h *Explicit[T]) Move() Explicit[T] {
	moved := *h
	*h = Explicit[T]{}
	return moved
}

// Release drops the handle's reference, disposing the payload if it was
// the last, and empties the handle. No-op on an empty handle.
func (h *Explicit[T]) Release() {
	if !h.set {
		return
	}
	release(h.d)
	*h = Explicit[T]{}
}

// CopyFrom releases h's current reference and installs a copy of
// other's. The new reference is acquired before the old one is
// released, so h.CopyFrom(h) and aliased payloads are safe.
func (h *Explicit[T]) CopyFrom(other *Explicit[T]) {
	next := other.Copy()
	h.Release()
	*h = next
}

// MoveFrom releases h's current reference and steals other's, leaving
// other empty. No-op when h and other are the same handle.
func (h *Explicit[T]) MoveFrom(other *Explicit[T]) {
	if h == other {
		return
	}
	next := other.Move()
	h.Release()
	*h = next
}

// Data returns the payload for reading and writing. It never detaches;
// the payload may be shared with other handles.
func (h Explicit[T]) Data() T {
	if !h.set {
		panic("shareddata: attempted to access empty handle")
	}
	return h.d
}

// ConstData returns the payload for reading only. Same as Data; it
// exists so call sites read identically against either handle type.
func (h Explicit[T]) ConstData() T {
	if !h.set {
		panic("shareddata: attempted to access empty handle")
	}
	return h.d
}

// Detach ensures h is the sole owner of its payload, cloning it if it
// is shared. Calling Detach again without an intervening share is a
// no-op.
func (h *Explicit[T]) Detach() {
	if !h.set {
		panic("shareddata: attempted to detach empty handle")
	}
	h.d = detach(h.d)
}

// Take returns the payload and empties the handle without decrementing
// the count. Accountability for that one reference moves to the caller,
// who must later adopt it into a new handle or release it manually.
func (h *Explicit[T]) Take() T {
	if !h.set {
		panic("shareddata: attempted to take from empty handle")
	}
	d := h.d
	*h = Explicit[T]{}
	return d
}

// Reset releases the current reference. If d is non-zero its count is
// incremented and h references it afterwards; otherwise h becomes
// empty.
func (h *Explicit[T]) Reset(d T) {
	if !isSet(d) {
		h.Release()
		return
	}
	d.Ref()
	h.Release()
	*h = Explicit[T]{d: d, set: true}
}

// Equal reports whether h and other reference the same payload
// instance. Two empty handles are equal.
func (h Explicit[T]) Equal(other Explicit[T]) bool {
	if h.set != other.set {
		return false
	}
	if !h.set {
		return true
	}
	return any(h.d) == any(other.d)
}

func (h *Explicit[T]) Swap(other *Explicit[T]) {
	*h, *other = *other, *h
}
