package gates

import (
	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

// PlayerController writes the player's velocity and rotation. Every method
// is a no-op while no player exists.
type PlayerController struct {
	cfg   config.PlayerConfig
	reg   *Registry
	world *physics.World
}

// NewPlayerController creates a controller for the player in reg.
func NewPlayerController(cfg config.PlayerConfig, reg *Registry, world *physics.World) *PlayerController {
	return &PlayerController{cfg: cfg, reg: reg, world: world}
}

// SpawnPlayer creates the player body at its spawn point with rotation locked.
func (c *PlayerController) SpawnPlayer() Handle {
	body := c.world.Add(physics.BodyDef{
		Kind:         physics.Dynamic,
		Position:     core.V2(c.cfg.SpawnX, c.cfg.SpawnY),
		HalfExtents:  core.V2(c.cfg.HalfSize, c.cfg.HalfSize),
		GravityScale: 1,
		LockRotation: true,
		Groups:       playerGroups,
	})
	return c.reg.Spawn(Entity{
		Tags:  TagPlayer | TagKillable | TagSession,
		Body:  body,
		Color: core.ColorPlayer,
	})
}

func (c *PlayerController) body() (physics.BodyID, bool) {
	_, e := c.reg.First(TagPlayer)
	if e == nil {
		return 0, false
	}
	return e.Body, true
}

// Fly applies a lift: downward momentum is dropped, the impulse is added and
// the result is capped. It reports whether a player was lifted.
func (c *PlayerController) Fly() bool {
	id, ok := c.body()
	if !ok {
		return false
	}
	vel, _ := c.world.Velocity(id)
	vel.Y = min(c.cfg.MaxFlySpeed, max(vel.Y, 0)+c.cfg.FlyImpulse)
	c.world.SetVelocity(id, vel)
	return true
}

// ClampY nudges the player back down once above the soft ceiling.
func (c *PlayerController) ClampY() {
	id, ok := c.body()
	if !ok {
		return
	}
	pos, _ := c.world.Position(id)
	if pos.Y > c.cfg.CeilingY {
		vel, _ := c.world.Velocity(id)
		vel.Y = c.cfg.CeilingNudge
		c.world.SetVelocity(id, vel)
	}
}

// Tilt maps vertical speed to the body angle: nose up when climbing, nose
// down when falling.
func (c *PlayerController) Tilt(vy float64) float64 {
	return core.Lerp(c.cfg.TiltMin, c.cfg.TiltMax, vy)*2 - 1
}

// RotateBody sets the player's rotation from its vertical speed.
func (c *PlayerController) RotateBody() {
	id, ok := c.body()
	if !ok {
		return
	}
	vel, _ := c.world.Velocity(id)
	c.world.SetRotation(id, c.Tilt(vel.Y))
}
