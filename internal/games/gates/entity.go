package gates

import (
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

// Tag is a bit set of entity markers used by queries.
type Tag uint16

const (
	TagPlayer Tag = 1 << iota
	TagObstacle
	TagKillable
	TagSession // Destroyed when the session ends
	TagMenuItem
	TagGameOver
	TagScoreText
	TagCamera
	TagStatic
)

// Has reports whether every bit of mask is set.
func (t Tag) Has(mask Tag) bool {
	return t&mask == mask
}

// Entity is one object of the game world. Only the fields relevant to its
// tags are used.
type Entity struct {
	Tags Tag
	Body physics.BodyID // Zero when the entity has no physics body

	// Score trigger. HasTrigger marks the designated gate piece for its whole
	// life; Trigger is cleared once the gate has been scored.
	HasTrigger bool
	Trigger    bool

	// Widget data for labels, buttons and the camera anchor.
	WidgetID string
	Text     string
	Pos      core.Vec2
	Color    core.Color
}

// Registry owns the entity arena and keeps physics bodies in step with it:
// destroying an entity removes its body.
type Registry struct {
	arena  Arena[Entity]
	world  *physics.World
	byBody map[physics.BodyID]Handle
}

// NewRegistry creates an empty registry bound to world.
func NewRegistry(world *physics.World) *Registry {
	return &Registry{
		world:  world,
		byBody: make(map[physics.BodyID]Handle),
	}
}

// Spawn adds an entity and returns its handle.
func (r *Registry) Spawn(e Entity) Handle {
	h := r.arena.Insert(e)
	if e.Body != 0 {
		r.byBody[e.Body] = h
	}
	return h
}

// Get resolves h. It returns nil for destroyed entities.
func (r *Registry) Get(h Handle) *Entity {
	return r.arena.Get(h)
}

// Destroy removes the entity and its physics body.
func (r *Registry) Destroy(h Handle) {
	e := r.arena.Get(h)
	if e == nil {
		return
	}
	if e.Body != 0 {
		delete(r.byBody, e.Body)
		r.world.Remove(e.Body)
	}
	r.arena.Remove(h)
}

// DestroyTagged removes every entity carrying mask and returns the count.
func (r *Registry) DestroyTagged(mask Tag) int {
	hs := r.Tagged(mask)
	for _, h := range hs {
		r.Destroy(h)
	}
	return len(hs)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.arena.Len()
}

// ByBody returns the entity that owns a physics body.
func (r *Registry) ByBody(id physics.BodyID) (Handle, *Entity) {
	h, ok := r.byBody[id]
	if !ok {
		return Handle{}, nil
	}
	return h, r.arena.Get(h)
}

// Tagged returns handles of all entities carrying every bit of mask.
func (r *Registry) Tagged(mask Tag) []Handle {
	var hs []Handle
	r.arena.Each(func(h Handle, e *Entity) {
		if e.Tags.Has(mask) {
			hs = append(hs, h)
		}
	})
	return hs
}

// First returns the first entity carrying mask. Queries for "the" player or
// "the" score label go through here and must tolerate a nil result.
func (r *Registry) First(mask Tag) (Handle, *Entity) {
	var (
		found Handle
		ent   *Entity
	)
	r.arena.Each(func(h Handle, e *Entity) {
		if ent == nil && e.Tags.Has(mask) {
			found, ent = h, e
		}
	})
	return found, ent
}

// Count returns how many entities carry mask.
func (r *Registry) Count(mask Tag) int {
	n := 0
	r.arena.Each(func(_ Handle, e *Entity) {
		if e.Tags.Has(mask) {
			n++
		}
	})
	return n
}

// AllKillable returns handles of entities that end the session on contact.
func (r *Registry) AllKillable() []Handle {
	return r.Tagged(TagKillable)
}

// AllScoreTriggers returns handles of gate pieces designated as score
// triggers, whether or not the trigger has been consumed.
func (r *Registry) AllScoreTriggers() []Handle {
	var hs []Handle
	r.arena.Each(func(h Handle, e *Entity) {
		if e.HasTrigger {
			hs = append(hs, h)
		}
	})
	return hs
}

// Widget returns the widget entity with the given id.
func (r *Registry) Widget(id string) (Handle, *Entity) {
	var (
		found Handle
		ent   *Entity
	)
	r.arena.Each(func(h Handle, e *Entity) {
		if ent == nil && e.WidgetID == id {
			found, ent = h, e
		}
	})
	return found, ent
}
