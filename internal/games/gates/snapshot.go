package gates

import "github.com/vovakirdan/gates/internal/core"

// GateSnapshot is the observable state of one gate piece.
type GateSnapshot struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Upper   bool // Carries the score trigger
	Trigger bool // Trigger not yet consumed
}

// Snapshot contains the observable game state for tests, replay checks and
// debugging. It is a copy; mutating it does not affect the game.
type Snapshot struct {
	Tick        uint64
	SessionTick uint64
	State       State
	Pending     bool
	Score       int
	SessionSeed int64

	PlayerAlive    bool
	PlayerPos      core.Vec2
	PlayerVel      core.Vec2
	PlayerRotation float64
	Ragdoll        bool // Rotation unlocked after death

	Gates      []GateSnapshot
	MenuItems  []string
	GameOver   bool
	ScoreLabel string
	Entities   int
	Bodies     int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	_, pending := g.fsm.Pending()
	s := Snapshot{
		Tick:        g.tick,
		SessionTick: g.sessionTick,
		State:       g.fsm.Current(),
		Pending:     pending,
		Score:       g.score.Score(),
		SessionSeed: g.sessionSeed,
		GameOver:    g.reg.Count(TagGameOver) > 0,
		Entities:    g.reg.Len(),
		Bodies:      g.world.Len(),
	}

	if _, p := g.reg.First(TagPlayer); p != nil {
		s.PlayerAlive = true
		s.PlayerPos, _ = g.world.Position(p.Body)
		s.PlayerVel, _ = g.world.Velocity(p.Body)
		s.PlayerRotation = g.world.Rotation(p.Body)
		s.Ragdoll = !g.world.RotationLocked(p.Body)
	}

	for _, h := range g.reg.Tagged(TagObstacle) {
		e := g.reg.Get(h)
		pos, _ := g.world.Position(e.Body)
		vel, _ := g.world.Velocity(e.Body)
		s.Gates = append(s.Gates, GateSnapshot{Pos: pos, Vel: vel, Upper: e.HasTrigger, Trigger: e.Trigger})
	}

	for _, h := range g.reg.Tagged(TagMenuItem) {
		s.MenuItems = append(s.MenuItems, g.reg.Get(h).WidgetID)
	}

	if _, label := g.reg.First(TagScoreText); label != nil {
		s.ScoreLabel = label.Text
	}
	return s
}
