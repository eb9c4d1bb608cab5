// Package physics adapts a Chipmunk2D space (github.com/jakecoffman/cp) to
// the needs of the game: axis-aligned boxes addressed by small integer ids,
// membership/filter interaction groups, rotation lock for the living player,
// and contact start/stop events that the game drains once per tick.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/gates/internal/core"
)

// BodyID identifies a body inside a World. Zero is never issued.
type BodyID uint32

// Kind selects how a body takes part in the simulation.
type Kind int

const (
	// Dynamic bodies are moved by gravity, velocity and contacts.
	Dynamic Kind = iota
	// Kinematic bodies follow their velocity only. Nothing pushes them.
	Kinematic
	// Static bodies never move.
	Static
)

// Groups filters which bodies may interact. Two bodies interact when each
// membership mask intersects the other's filter mask.
type Groups struct {
	Membership uint32
	Filter     uint32
}

func (g Groups) shapeFilter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Categories: uint(g.Membership),
		Mask:       uint(g.Filter),
	}
}

// BodyDef describes a body to add to the world.
type BodyDef struct {
	Kind         Kind
	Position     core.Vec2 // Center
	HalfExtents  core.Vec2
	Velocity     core.Vec2
	GravityScale float64 // Multiplier on world gravity, dynamic bodies only
	LockRotation bool
	Groups       Groups
}

// Surface response shared by every shape. Friction lets a dead player come
// to rest against the floor instead of sliding.
const (
	bodyMass        = 1.0
	surfaceFriction = 0.8
	collisionSlop   = 0.005
)

// All shapes share one collision type so a single handler sees every pair
// the filters let through.
const bodyCollision cp.CollisionType = 1

type entry struct {
	kind   Kind
	half   core.Vec2
	body   *cp.Body
	shape  *cp.Shape
	locked bool
}

// World owns the Chipmunk space and the pending contact events.
// A World is not safe for concurrent use; each game owns its own.
type World struct {
	space    *cp.Space
	bodies   map[BodyID]*entry
	order    []BodyID // Insertion order, for Len and deterministic teardown
	nextID   BodyID
	contacts contactTracker
}

// NewWorld creates an empty world. gravity is the downward acceleration in
// world units per second squared.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	space.SetCollisionSlop(collisionSlop)

	w := &World{
		space:    space,
		bodies:   make(map[BodyID]*entry),
		contacts: newContactTracker(),
	}

	handler := space.NewCollisionHandler(bodyCollision, bodyCollision)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Bodies()
		w.contacts.begin(bodyID(a), bodyID(b))
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		a, b := arb.Bodies()
		w.contacts.separate(bodyID(a), bodyID(b))
	}
	return w
}

func bodyID(b *cp.Body) BodyID {
	id, _ := b.UserData.(BodyID)
	return id
}

// Add inserts a body and returns its id.
func (w *World) Add(def BodyDef) BodyID {
	w.nextID++
	id := w.nextID

	var body *cp.Body
	switch def.Kind {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewBody(bodyMass, boxMoment(def.HalfExtents, def.LockRotation))
		if def.GravityScale != 1 {
			scale := def.GravityScale
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
			})
		}
	}
	body.UserData = id
	body.SetPosition(vec(def.Position))
	if def.Kind != Static {
		body.SetVelocityVector(vec(def.Velocity))
	}
	w.space.AddBody(body)

	shape := cp.NewBox(body, 2*def.HalfExtents.X, 2*def.HalfExtents.Y, 0)
	shape.SetFilter(def.Groups.shapeFilter())
	shape.SetCollisionType(bodyCollision)
	shape.SetFriction(surfaceFriction)
	shape.SetElasticity(0)
	w.space.AddShape(shape)

	w.bodies[id] = &entry{
		kind:   def.Kind,
		half:   def.HalfExtents,
		body:   body,
		shape:  shape,
		locked: def.Kind == Dynamic && def.LockRotation,
	}
	w.order = append(w.order, id)
	return id
}

// boxMoment is the moment of inertia of a box body. A locked body gets an
// infinite moment so contacts can never turn it.
func boxMoment(half core.Vec2, locked bool) float64 {
	if locked {
		return cp.INFINITY
	}
	return cp.MomentForBox(bodyMass, 2*half.X, 2*half.Y)
}

// Remove deletes a body. Contacts it was part of are reported as stopped.
// Unknown ids are ignored.
func (w *World) Remove(id BodyID) {
	e, ok := w.bodies[id]
	if !ok {
		return
	}
	// Stop events first so the separate callback fired by the space finds
	// nothing left to report.
	w.contacts.forget(id)
	w.space.RemoveShape(e.shape)
	w.space.RemoveBody(e.body)
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Has reports whether id refers to a live body.
func (w *World) Has(id BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Position returns the body's center. ok is false for unknown bodies.
func (w *World) Position(id BodyID) (pos core.Vec2, ok bool) {
	e, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return fromVec(e.body.Position()), true
}

// SetPosition teleports a dynamic or kinematic body.
func (w *World) SetPosition(id BodyID, pos core.Vec2) {
	if e, ok := w.bodies[id]; ok && e.kind != Static {
		e.body.SetPosition(vec(pos))
	}
}

// Velocity returns the body's linear velocity.
func (w *World) Velocity(id BodyID) (vel core.Vec2, ok bool) {
	e, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return fromVec(e.body.Velocity()), true
}

// SetVelocity sets the linear velocity of a dynamic or kinematic body.
func (w *World) SetVelocity(id BodyID, vel core.Vec2) {
	if e, ok := w.bodies[id]; ok && e.kind != Static {
		e.body.SetVelocityVector(vec(vel))
	}
}

// Bounds returns the axis-aligned box around the body at its current
// rotation.
func (w *World) Bounds(id BodyID) (core.AABB, bool) {
	e, ok := w.bodies[id]
	if !ok {
		return core.AABB{}, false
	}
	c, s := math.Abs(math.Cos(e.body.Angle())), math.Abs(math.Sin(e.body.Angle()))
	half := core.V2(c*e.half.X+s*e.half.Y, s*e.half.X+c*e.half.Y)
	return core.AABB{Center: fromVec(e.body.Position()), Half: half}, true
}

// Rotation returns the body's rotation in radians.
func (w *World) Rotation(id BodyID) float64 {
	if e, ok := w.bodies[id]; ok {
		return e.body.Angle()
	}
	return 0
}

// SetRotation sets the body's rotation in radians.
func (w *World) SetRotation(id BodyID, angle float64) {
	if e, ok := w.bodies[id]; ok && e.kind != Static {
		e.body.SetAngle(angle)
	}
}

// RotationLocked reports whether contacts are unable to turn the body.
func (w *World) RotationLocked(id BodyID) bool {
	if e, ok := w.bodies[id]; ok {
		return e.locked
	}
	return false
}

// UnlockRotation gives a dynamic body a finite moment of inertia so it can
// tumble from now on.
func (w *World) UnlockRotation(id BodyID) {
	e, ok := w.bodies[id]
	if !ok || !e.locked {
		return
	}
	e.locked = false
	e.body.SetMoment(boxMoment(e.half, false))
}

// Step advances the space by dt seconds and records contact changes.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
	w.contacts.flush()
}

// Drain returns the contact events recorded since the last call and clears
// them. Each event is delivered exactly once.
func (w *World) Drain() []ContactEvent {
	return w.contacts.drain()
}

func vec(v core.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVec(v cp.Vector) core.Vec2 {
	return core.V2(v.X, v.Y)
}
