// Package gates implements the gate runner: a body falls under gravity, the
// player lifts it through gaps in gates that scroll in from the right, and
// any contact with a gate or the arena ends the session.
//
// Game is the application context. It owns the physics world, the entity
// registry, the session resources (score, RNG) and the systems, and runs
// the systems in a fixed order every tick.
package gates

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

// StepResult describes what one tick did.
type StepResult struct {
	Tick         uint64 // Global tick index of this step
	SessionTick  uint64 // Session tick index of this step
	State        State  // State after the step
	Score        int
	Lifted       bool // A lift was applied this tick
	Transitioned bool
	Transition   Transition // Valid when Transitioned
	Exit         bool       // Exit was requested; the caller should stop stepping
}

// Game implements the gate runner.
type Game struct {
	cfg     config.GatesConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	world     *physics.World
	reg       *Registry
	fsm       *StateMachine
	obstacles *ObstacleManager
	player    *PlayerController
	death     *DeathDetector
	score     *ScoreTracker

	rng         *rand.Rand
	sessions    int64 // Sessions started since Reset
	sessionSeed int64
	sessionTick uint64
	tick        uint64
	exit        bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger routes game debug logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a game with the given configuration. Call Reset before Step.
func New(cfg config.GatesConfig, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reset discards all state and returns to the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.sessions = 0
	g.sessionSeed = runtime.Seed
	g.sessionTick = 0
	g.tick = 0
	g.exit = false
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.world = physics.NewWorld(g.cfg.Physics.Gravity)
	g.reg = NewRegistry(g.world)
	g.fsm = NewStateMachine(StateMenu, g.logger)
	g.obstacles = NewObstacleManager(g.cfg.Obstacles, g.reg, g.world, g.logger)
	g.player = NewPlayerController(g.cfg.Player, g.reg, g.world)
	g.death = NewDeathDetector(g.reg, g.world, g.fsm, g.logger)
	g.score = NewScoreTracker(g.cfg.Scoring.ThresholdX, g.reg, g.world)

	g.fsm.OnEnter(StateMenu, g.cleanupSession)
	g.fsm.OnEnter(StateMenu, g.showMenu)
	g.fsm.OnEnter(StatePlaying, g.closeMenu)
	g.fsm.OnEnter(StatePlaying, g.setupSession)
	g.fsm.OnEnter(StateEnd, g.obstacles.Stop)
	g.fsm.OnEnter(StateEnd, g.showGameOver)
	g.fsm.OnEnter(StateEnd, g.showMenu)
	g.fsm.OnExit(StateEnd, g.cleanupSession)
	g.fsm.Start()
}

// setupSession builds a fresh session: RNG, score, player, arena, camera
// anchor and score label.
func (g *Game) setupSession() {
	g.sessionSeed = g.runtime.Seed + g.sessions
	g.sessions++
	g.rng = rand.New(rand.NewSource(g.sessionSeed))
	g.sessionTick = 0
	g.score.Reset()

	g.player.SpawnPlayer()
	g.spawnArena()

	view := g.cfg.View
	g.reg.Spawn(Entity{
		Tags:     TagCamera | TagSession,
		WidgetID: CameraAnchor,
		Pos:      core.V2((view.MinX+view.MaxX)/2, (view.MinY+view.MaxY)/2),
	})
	g.reg.Spawn(Entity{
		Tags:     TagScoreText | TagSession,
		WidgetID: LabelScore,
		Text:     g.score.Label(),
		Color:    core.ColorText,
	})

	g.logger.Debug("session started", "session", g.sessions, "seed", g.sessionSeed)
}

// spawnArena creates the killable floor and ceiling.
func (g *Game) spawnArena() {
	arena := g.cfg.Arena
	for _, y := range []float64{arena.FloorY, arena.CeilingY} {
		body := g.world.Add(physics.BodyDef{
			Kind:        physics.Static,
			Position:    core.V2(0, y),
			HalfExtents: core.V2(arena.HalfWidth, arena.HalfThickness),
			Groups:      staticGroups,
		})
		g.reg.Spawn(Entity{
			Tags:  TagStatic | TagKillable | TagSession,
			Body:  body,
			Color: core.ColorGround,
		})
	}
}

// cleanupSession destroys every session-owned entity.
func (g *Game) cleanupSession() {
	if n := g.reg.DestroyTagged(TagSession); n > 0 {
		g.logger.Debug("session cleaned up", "entities", n)
	}
}

// playing reports whether gameplay systems run: the session is live and no
// transition away from it has been requested this tick.
func (g *Game) playing() bool {
	return g.fsm.Current() == StatePlaying && g.fsm.Effective() == StatePlaying
}

// Step advances the game by one tick. Systems run in a fixed order:
// menu buttons, lift, soft ceiling, physics, death detection, spawn, clean,
// scoring, tilt, score label, then at most one state transition. Once death
// is detected the remaining gameplay systems are skipped for the tick.
func (g *Game) Step(in core.InputFrame) StepResult {
	res := StepResult{Tick: g.tick, SessionTick: g.sessionTick}
	g.tick++

	if g.menuVisible() {
		if in.Clicked(ButtonStart) || in.Has(core.ActionConfirm) {
			g.fsm.Request(StatePlaying)
		}
		if in.Clicked(ButtonExit) {
			g.exit = true
		}
	}

	live := g.playing()
	if live {
		if in.Has(core.ActionLift) {
			res.Lifted = g.player.Fly()
		}
		g.player.ClampY()
	}

	// The world keeps running after death so the body can tumble.
	if g.fsm.Current() != StateMenu {
		g.world.Step(g.runtime.DT())
	}
	events := g.world.Drain()

	if live {
		g.death.Process(events)
	}
	if g.playing() {
		g.obstacles.Spawn(g.rng)
		g.obstacles.Clean()
		g.score.Update()
		g.player.RotateBody()
		g.updateScoreLabel()
	}
	if live {
		g.sessionTick++
	}

	if t, ok := g.fsm.Apply(); ok {
		res.Transitioned = true
		res.Transition = t
	}

	res.State = g.fsm.Current()
	res.Score = g.score.Score()
	res.Exit = g.exit
	return res
}

// State returns the committed session state.
func (g *Game) State() State {
	return g.fsm.Current()
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.score.Score()
}

// SessionSeed returns the seed of the current or last session. Replaying a
// session starts a new game with this value as its seed.
func (g *Game) SessionSeed() int64 {
	return g.sessionSeed
}

// SessionTick returns the index the next gameplay tick will carry.
func (g *Game) SessionTick() uint64 {
	return g.sessionTick
}

// ExitRequested reports whether the Exit button was activated.
func (g *Game) ExitRequested() bool {
	return g.exit
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.GatesConfig {
	return g.cfg
}

// Runtime returns the runtime configuration passed to Reset.
func (g *Game) Runtime() core.RuntimeConfig {
	return g.runtime
}
