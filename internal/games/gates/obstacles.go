package gates

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

// Interaction groups. A pair collides only when each membership intersects
// the other's filter, so obstacles ignore each other and the arena.
var (
	playerGroups   = physics.Groups{Membership: 0b0101, Filter: 0b1010}
	obstacleGroups = physics.Groups{Membership: 0b1000, Filter: 0b0100}
	staticGroups   = physics.Groups{Membership: 0b0010, Filter: 0b0001}
)

// ObstacleManager spawns gates at a fixed distance from each other, scrolls
// them toward the player and culls them once off screen.
type ObstacleManager struct {
	cfg    config.ObstaclesConfig
	reg    *Registry
	world  *physics.World
	logger *log.Logger
}

// NewObstacleManager creates a manager that spawns into reg.
func NewObstacleManager(cfg config.ObstaclesConfig, reg *Registry, world *physics.World, logger *log.Logger) *ObstacleManager {
	return &ObstacleManager{cfg: cfg, reg: reg, world: world, logger: logger}
}

// closest returns the largest x among score-trigger pieces, or -Inf when
// there are none.
func (m *ObstacleManager) closest() float64 {
	closest := math.Inf(-1)
	for _, h := range m.reg.AllScoreTriggers() {
		e := m.reg.Get(h)
		if pos, ok := m.world.Position(e.Body); ok && pos.X > closest {
			closest = pos.X
		}
	}
	return closest
}

// Spawn creates one gate at the spawn line when the closest gate has drifted
// more than the gate spacing away from it. It reports whether a gate spawned.
func (m *ObstacleManager) Spawn(rng *rand.Rand) bool {
	if math.Abs(m.closest()-m.cfg.SpawnX) <= m.cfg.GateSpacing {
		return false
	}

	// Both pieces share the offset so the gap stays contiguous.
	y := rng.Float64() * m.cfg.OffsetRange
	vel := core.V2(m.cfg.Speed, 0)

	upper := m.world.Add(physics.BodyDef{
		Kind:        physics.Kinematic,
		Position:    core.V2(m.cfg.SpawnX, m.cfg.UpperBaseY+y),
		HalfExtents: core.V2(m.cfg.HalfWidth, m.cfg.UpperHalfHeight),
		Velocity:    vel,
		Groups:      obstacleGroups,
	})
	m.reg.Spawn(Entity{
		Tags:       TagObstacle | TagKillable | TagSession,
		Body:       upper,
		HasTrigger: true,
		Trigger:    true,
		Color:      core.ColorUpperPiece,
	})

	lower := m.world.Add(physics.BodyDef{
		Kind:        physics.Kinematic,
		Position:    core.V2(m.cfg.SpawnX, m.cfg.LowerBaseY+y),
		HalfExtents: core.V2(m.cfg.HalfWidth, m.cfg.LowerHalfHeight),
		Velocity:    vel,
		Groups:      obstacleGroups,
	})
	m.reg.Spawn(Entity{
		Tags:  TagObstacle | TagKillable | TagSession,
		Body:  lower,
		Color: core.ColorLowerPiece,
	})

	m.logger.Debug("gate spawned", "x", m.cfg.SpawnX, "offset", y)
	return true
}

// Clean destroys every obstacle piece left of the cleanup line and returns
// how many were removed.
func (m *ObstacleManager) Clean() int {
	removed := 0
	for _, h := range m.reg.Tagged(TagObstacle) {
		e := m.reg.Get(h)
		if pos, ok := m.world.Position(e.Body); ok && pos.X < m.cfg.CleanupX {
			m.reg.Destroy(h)
			removed++
		}
	}
	return removed
}

// Stop freezes the horizontal motion of every obstacle.
func (m *ObstacleManager) Stop() {
	for _, h := range m.reg.Tagged(TagObstacle) {
		e := m.reg.Get(h)
		if vel, ok := m.world.Velocity(e.Body); ok {
			m.world.SetVelocity(e.Body, core.V2(0, vel.Y))
		}
	}
}
