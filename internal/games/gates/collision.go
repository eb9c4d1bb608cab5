package gates

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

// DeathDetector turns contact events into a session end.
type DeathDetector struct {
	reg    *Registry
	world  *physics.World
	fsm    *StateMachine
	logger *log.Logger
}

// NewDeathDetector creates a detector that requests End on fsm.
func NewDeathDetector(reg *Registry, world *physics.World, fsm *StateMachine, logger *log.Logger) *DeathDetector {
	return &DeathDetector{reg: reg, world: world, fsm: fsm, logger: logger}
}

// Lethal reports whether ev is a started contact between the player and a
// killable body.
func (d *DeathDetector) Lethal(ev physics.ContactEvent) bool {
	if ev.Kind != physics.ContactStarted {
		return false
	}
	_, player := d.reg.First(TagPlayer)
	if player == nil || !ev.Involves(player.Body) {
		return false
	}
	_, other := d.reg.ByBody(ev.Other(player.Body))
	return other != nil && other.Tags.Has(TagKillable)
}

// Process consumes one tick of contact events. On the first lethal contact
// the player goes limp, loses the horizontal push of the obstacle that hit
// it, and End is requested; later ones in the same tick change nothing. It
// reports whether the player died.
func (d *DeathDetector) Process(events []physics.ContactEvent) bool {
	died := false
	for _, ev := range events {
		if !d.Lethal(ev) {
			continue
		}
		if _, player := d.reg.First(TagPlayer); player != nil {
			d.world.UnlockRotation(player.Body)
			if vel, ok := d.world.Velocity(player.Body); ok {
				d.world.SetVelocity(player.Body, core.V2(0, vel.Y))
			}
		}
		if d.fsm.Request(StateEnd) {
			d.logger.Debug("lethal contact", "a", ev.A, "b", ev.B)
		}
		died = true
	}
	return died
}
