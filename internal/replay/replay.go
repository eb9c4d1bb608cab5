// Package replay records the lift inputs of a session and re-simulates it.
// The game is deterministic for a given seed, tick rate and configuration,
// so a session is fully described by those and the ticks it lifted on.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/games/gates"
)

// End reasons recorded with a session.
const (
	EndCollision = "collision" // The player hit a killable body
	EndAbandoned = "abandoned" // The program exited mid-session
)

// ErrMismatch is returned when a re-simulation diverges from the record.
var ErrMismatch = errors.New("replay: result mismatch")

// Session is the record of one play-through.
type Session struct {
	Seed      int64
	TickRate  int
	Ticks     uint64 // Gameplay ticks the session lasted
	Score     int
	EndReason string

	// Session ticks a lift was applied on, ascending.
	Lifts []uint64
}

// Recorder follows a game's step results and cuts them into sessions.
type Recorder struct {
	current *Session
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Active reports whether a session is being recorded.
func (r *Recorder) Active() bool {
	return r.current != nil
}

// Observe feeds the result of one step of g. When the step ended a session
// the finished record is returned.
func (r *Recorder) Observe(g *gates.Game, res gates.StepResult) (Session, bool) {
	if res.Lifted && r.current != nil {
		r.current.Lifts = append(r.current.Lifts, res.SessionTick)
	}
	if !res.Transitioned {
		return Session{}, false
	}

	switch res.Transition.To {
	case gates.StatePlaying:
		r.current = &Session{
			Seed:     g.SessionSeed(),
			TickRate: g.Runtime().TickRate,
		}
	case gates.StateEnd:
		return r.finish(g, EndCollision)
	}
	return Session{}, false
}

// Abandon closes a session that is still running, for example when the
// program exits while playing.
func (r *Recorder) Abandon(g *gates.Game) (Session, bool) {
	return r.finish(g, EndAbandoned)
}

func (r *Recorder) finish(g *gates.Game, reason string) (Session, bool) {
	if r.current == nil {
		return Session{}, false
	}
	s := *r.current
	s.Ticks = g.SessionTick()
	s.Score = g.Score()
	s.EndReason = reason
	r.current = nil
	return s, true
}

// Player drives a fresh game through a recorded session one tick at a time.
type Player struct {
	game    *gates.Game
	session Session
	next    int
	started bool
	failed  bool
}

// NewPlayer creates a game for s with the configuration the session ran with.
func NewPlayer(cfg config.GatesConfig, s Session, opts ...gates.Option) *Player {
	g := gates.New(cfg, opts...)
	rt := core.DefaultConfig()
	rt.TickRate = s.TickRate
	rt.Seed = s.Seed
	g.Reset(rt)
	return &Player{game: g, session: s}
}

// Game returns the game being driven, for rendering.
func (p *Player) Game() *gates.Game {
	return p.game
}

// Done reports whether the recorded session has been fully replayed.
func (p *Player) Done() bool {
	if !p.started {
		return false
	}
	if p.failed {
		return true
	}
	return p.game.State() != gates.StatePlaying || p.game.SessionTick() >= p.session.Ticks
}

// Input returns the input for the next tick: the Start click first, then
// lifts on their recorded session ticks.
func (p *Player) Input() core.InputFrame {
	in := core.NewInputFrame()
	if !p.started {
		in.Click(gates.ButtonStart)
		return in
	}
	if p.next < len(p.session.Lifts) && p.session.Lifts[p.next] == p.game.SessionTick() {
		in.Set(core.ActionLift)
		p.next++
	}
	return in
}

// Step advances the replay by one tick. It returns false once done.
func (p *Player) Step() (gates.StepResult, bool) {
	if p.Done() {
		return gates.StepResult{}, false
	}
	res := p.game.Step(p.Input())
	if !p.started {
		p.started = true
		if res.State != gates.StatePlaying {
			p.failed = true
			return res, false
		}
	}
	return res, true
}

// Result is the outcome of a re-simulation.
type Result struct {
	Ticks uint64
	Score int
	Ended bool // The session reached End by collision
}

// Play re-simulates s headlessly.
func Play(cfg config.GatesConfig, s Session) (Result, error) {
	p := NewPlayer(cfg, s)
	for {
		if _, ok := p.Step(); !ok {
			break
		}
	}
	if p.failed {
		return Result{}, errors.New("replay: session did not start")
	}
	return Result{
		Ticks: p.game.SessionTick(),
		Score: p.game.Score(),
		Ended: p.game.State() == gates.StateEnd,
	}, nil
}

// Verify re-simulates s and checks it reproduces the recorded outcome.
func Verify(cfg config.GatesConfig, s Session) (Result, error) {
	res, err := Play(cfg, s)
	if err != nil {
		return res, err
	}
	if res.Score != s.Score || res.Ticks != s.Ticks {
		return res, fmt.Errorf("%w: recorded score %d in %d ticks, replayed score %d in %d ticks",
			ErrMismatch, s.Score, s.Ticks, res.Score, res.Ticks)
	}
	if s.EndReason == EndCollision && !res.Ended {
		return res, fmt.Errorf("%w: recorded collision did not happen", ErrMismatch)
	}
	return res, nil
}
