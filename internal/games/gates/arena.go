package gates

// Handle is a stable reference into an Arena. A handle stays valid until its
// entry is destroyed; after that it never resolves again, even when the slot
// is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle, which never resolves.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type slot[T any] struct {
	gen   uint32
	alive bool
	value T
}

// Arena stores values in reusable slots addressed by generational handles.
// Iteration follows slot order, so it is deterministic.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[idx]
	s.gen++
	s.alive = true
	s.value = v
	a.live++
	return Handle{index: idx, gen: s.gen}
}

// Get returns a pointer to the value behind h, or nil when h is stale.
func (a *Arena[T]) Get(h Handle) *T {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil
	}
	return &s.value
}

// Remove destroys the value behind h. It returns false for stale handles.
func (a *Arena[T]) Remove(h Handle) bool {
	if a.Get(h) == nil {
		return false
	}
	s := &a.slots[h.index]
	s.alive = false
	var zero T
	s.value = zero
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live value in slot order. fn may remove the value
// it is given but must not insert.
func (a *Arena[T]) Each(fn func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.alive {
			fn(Handle{index: uint32(i), gen: s.gen}, &s.value)
		}
	}
}
