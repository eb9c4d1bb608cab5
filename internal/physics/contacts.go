package physics

import (
	"cmp"
	"slices"
)

// ContactKind distinguishes contact start and stop events.
type ContactKind int

const (
	ContactStarted ContactKind = iota
	ContactStopped
)

func (k ContactKind) String() string {
	if k == ContactStarted {
		return "started"
	}
	return "stopped"
}

// ContactEvent reports a change of contact between two bodies. A is always
// the body with the smaller id.
type ContactEvent struct {
	Kind ContactKind
	A, B BodyID
}

// Involves reports whether id is one of the participants.
func (e ContactEvent) Involves(id BodyID) bool {
	return e.A == id || e.B == id
}

// Other returns the participant that is not id.
func (e ContactEvent) Other(id BodyID) BodyID {
	if e.A == id {
		return e.B
	}
	return e.A
}

type pair struct {
	a, b BodyID
}

func makePair(a, b BodyID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// contactTracker turns the space's begin and separate callbacks into a
// drained event stream. Callbacks land in pending during a step; flush
// sorts them so the order does not depend on the broadphase.
type contactTracker struct {
	touching map[pair]bool
	pending  []ContactEvent
	events   []ContactEvent
}

func newContactTracker() contactTracker {
	return contactTracker{touching: make(map[pair]bool)}
}

func (t *contactTracker) begin(a, b BodyID) {
	p := makePair(a, b)
	if t.touching[p] {
		return
	}
	t.touching[p] = true
	t.pending = append(t.pending, ContactEvent{Kind: ContactStarted, A: p.a, B: p.b})
}

// separate ignores pairs already ended by forget.
func (t *contactTracker) separate(a, b BodyID) {
	p := makePair(a, b)
	if !t.touching[p] {
		return
	}
	delete(t.touching, p)
	t.pending = append(t.pending, ContactEvent{Kind: ContactStopped, A: p.a, B: p.b})
}

// forget ends every contact of a body that is being removed.
func (t *contactTracker) forget(id BodyID) {
	for p := range t.touching {
		if p.a == id || p.b == id {
			t.separate(p.a, p.b)
		}
	}
	t.flush()
}

func (t *contactTracker) flush() {
	slices.SortFunc(t.pending, func(x, y ContactEvent) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		if c := cmp.Compare(x.B, y.B); c != 0 {
			return c
		}
		return cmp.Compare(x.Kind, y.Kind)
	})
	t.events = append(t.events, t.pending...)
	t.pending = t.pending[:0]
}

func (t *contactTracker) drain() []ContactEvent {
	out := t.events
	t.events = nil
	return out
}
