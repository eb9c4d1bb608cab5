package gates

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/physics"
)

var quiet = log.New(io.Discard)

func TestArenaHandles(t *testing.T) {
	var a Arena[string]
	h1 := a.Insert("one")
	h2 := a.Insert("two")
	require.Equal(t, 2, a.Len())
	assert.Equal(t, "one", *a.Get(h1))

	assert.True(t, a.Remove(h1))
	assert.False(t, a.Remove(h1), "double remove must fail")
	assert.Nil(t, a.Get(h1))

	// The freed slot is reused under a new generation.
	h3 := a.Insert("three")
	assert.Equal(t, h1.index, h3.index)
	assert.Nil(t, a.Get(h1), "stale handle must not resolve to the new value")
	assert.Equal(t, "three", *a.Get(h3))
	assert.Equal(t, "two", *a.Get(h2))

	assert.Nil(t, a.Get(Handle{}))

	var seen []string
	a.Each(func(_ Handle, v *string) { seen = append(seen, *v) })
	assert.Equal(t, []string{"three", "two"}, seen)
}

func TestRegistryDestroyRemovesBody(t *testing.T) {
	w := physics.NewWorld(0)
	r := NewRegistry(w)
	body := w.Add(physics.BodyDef{Kind: physics.Static, HalfExtents: core.V2(1, 1)})
	h := r.Spawn(Entity{Tags: TagStatic | TagSession, Body: body})
	r.Spawn(Entity{Tags: TagMenuItem, WidgetID: ButtonStart})

	_, e := r.ByBody(body)
	require.NotNil(t, e)

	assert.Equal(t, 1, r.DestroyTagged(TagSession))
	assert.False(t, w.Has(body))
	assert.Nil(t, r.Get(h))
	_, e = r.ByBody(body)
	assert.Nil(t, e)
	assert.Equal(t, 1, r.Len())

	_, player := r.First(TagPlayer)
	assert.Nil(t, player, "absent entities resolve to nil")
}

func TestStateMachineTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     State
		to       State
		accepted bool
	}{
		{"menu to playing", StateMenu, StatePlaying, true},
		{"menu to end", StateMenu, StateEnd, false},
		{"playing to end", StatePlaying, StateEnd, true},
		{"playing to menu", StatePlaying, StateMenu, false},
		{"end to playing", StateEnd, StatePlaying, true},
		{"end to end", StateEnd, StateEnd, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewStateMachine(tc.from, quiet)
			assert.Equal(t, tc.accepted, m.Request(tc.to))

			tr, ok := m.Apply()
			assert.Equal(t, tc.accepted, ok)
			if tc.accepted {
				assert.Equal(t, Transition{From: tc.from, To: tc.to}, tr)
				assert.Equal(t, tc.to, m.Current())
			} else {
				assert.Equal(t, tc.from, m.Current())
			}
		})
	}
}

func TestStateMachinePendingIsIdempotent(t *testing.T) {
	m := NewStateMachine(StatePlaying, quiet)
	require.True(t, m.Request(StateEnd))
	assert.False(t, m.Request(StateEnd), "second request while pending is a no-op")

	assert.Equal(t, StatePlaying, m.Current())
	assert.Equal(t, StateEnd, m.Effective())

	_, ok := m.Apply()
	require.True(t, ok)
	_, ok = m.Apply()
	assert.False(t, ok, "nothing left to apply")
}

func TestStateMachineAppliesOneTransitionPerTick(t *testing.T) {
	m := NewStateMachine(StateMenu, quiet)
	var calls []string
	m.OnEnter(StatePlaying, func() {
		calls = append(calls, "enter playing")
		// A hook asking for the next state queues it for the next Apply.
		m.Request(StateEnd)
	})
	m.OnExit(StatePlaying, func() { calls = append(calls, "exit playing") })
	m.OnEnter(StateEnd, func() { calls = append(calls, "enter end") })

	m.Request(StatePlaying)
	m.Apply()
	assert.Equal(t, StatePlaying, m.Current())
	assert.Equal(t, []string{"enter playing"}, calls)

	m.Apply()
	assert.Equal(t, StateEnd, m.Current())
	assert.Equal(t, []string{"enter playing", "exit playing", "enter end"}, calls)
}

func TestStateMachineStartRunsInitialEnterHooks(t *testing.T) {
	m := NewStateMachine(StateMenu, quiet)
	entered := 0
	m.OnEnter(StateMenu, func() { entered++ })
	m.Start()
	assert.Equal(t, 1, entered)
}

func newSystems(t *testing.T) (*Registry, *physics.World, config.GatesConfig) {
	t.Helper()
	cfg := config.DefaultGatesConfig()
	w := physics.NewWorld(cfg.Physics.Gravity)
	return NewRegistry(w), w, cfg
}

func TestPlayerFly(t *testing.T) {
	tests := []struct {
		name   string
		vy     float64
		maxFly float64
		wantVy float64
	}{
		{"falling clamps to max", -5, 3.8, 3.8},
		{"resting clamps to max", 0, 3.8, 3.8},
		{"fall does not subtract", -5, 20, 8},
		{"rising adds impulse", 2, 20, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, w, cfg := newSystems(t)
			cfg.Player.MaxFlySpeed = tc.maxFly
			pc := NewPlayerController(cfg.Player, reg, w)
			h := pc.SpawnPlayer()
			body := reg.Get(h).Body
			w.SetVelocity(body, core.V2(0, tc.vy))

			require.True(t, pc.Fly())
			vel, _ := w.Velocity(body)
			assert.Equal(t, tc.wantVy, vel.Y)
		})
	}
}

func TestPlayerSystemsWithoutPlayer(t *testing.T) {
	reg, w, cfg := newSystems(t)
	pc := NewPlayerController(cfg.Player, reg, w)

	assert.False(t, pc.Fly())
	assert.NotPanics(t, pc.ClampY)
	assert.NotPanics(t, pc.RotateBody)
}

func TestPlayerClampY(t *testing.T) {
	reg, w, cfg := newSystems(t)
	pc := NewPlayerController(cfg.Player, reg, w)
	body := reg.Get(pc.SpawnPlayer()).Body

	w.SetVelocity(body, core.V2(0, 2))
	pc.ClampY()
	vel, _ := w.Velocity(body)
	assert.Equal(t, 2.0, vel.Y, "below the soft ceiling nothing changes")

	w.SetPosition(body, core.V2(-2, 7.5))
	pc.ClampY()
	vel, _ = w.Velocity(body)
	assert.Equal(t, -0.1, vel.Y)
}

func TestPlayerTilt(t *testing.T) {
	reg, w, cfg := newSystems(t)
	pc := NewPlayerController(cfg.Player, reg, w)

	assert.InDelta(t, 0, pc.Tilt(0), 1e-12)
	assert.InDelta(t, 1, pc.Tilt(3), 1e-12)
	assert.InDelta(t, -1, pc.Tilt(-3), 1e-12)
	assert.InDelta(t, -1.0-2.0/3.0, pc.Tilt(-5), 1e-12, "tilt is not clamped")

	body := reg.Get(pc.SpawnPlayer()).Body
	w.SetVelocity(body, core.V2(0, 1.5))
	pc.RotateBody()
	assert.InDelta(t, 0.5, w.Rotation(body), 1e-12)
}

func TestObstacleSpawnGeometry(t *testing.T) {
	reg, w, cfg := newSystems(t)
	om := NewObstacleManager(cfg.Obstacles, reg, w, quiet)
	rng := rand.New(rand.NewSource(5))
	offset := rand.New(rand.NewSource(5)).Float64() * cfg.Obstacles.OffsetRange

	require.True(t, om.Spawn(rng))
	require.False(t, om.Spawn(rng), "a gate at the spawn line blocks the next one")

	pieces := reg.Tagged(TagObstacle)
	require.Len(t, pieces, 2)

	upper, lower := reg.Get(pieces[0]), reg.Get(pieces[1])
	assert.True(t, upper.HasTrigger && upper.Trigger)
	assert.False(t, lower.HasTrigger)
	assert.True(t, upper.Tags.Has(TagKillable|TagSession))
	assert.True(t, lower.Tags.Has(TagKillable|TagSession))

	ub, _ := w.Bounds(upper.Body)
	lb, _ := w.Bounds(lower.Body)
	assert.Equal(t, core.V2(8, 7+offset), ub.Center)
	assert.Equal(t, core.V2(8, -1+offset), lb.Center)
	assert.Equal(t, core.V2(0.5, 4), ub.Half)
	assert.Equal(t, core.V2(0.5, 3), lb.Half)

	vel, _ := w.Velocity(upper.Body)
	assert.Equal(t, core.V2(-4, 0), vel)
}

func TestObstacleSpawnDistanceGate(t *testing.T) {
	tests := []struct {
		name    string
		closest float64
		spawn   bool
	}{
		{"at spawn", 8, false},
		{"exactly spacing away", 4, false},
		{"just past spacing", 3.99, true},
		{"far left", -6, true},
		{"right of spawn within spacing", 11, false},
		{"right of spawn beyond spacing", 12.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, w, cfg := newSystems(t)
			body := w.Add(physics.BodyDef{Kind: physics.Kinematic, Position: core.V2(tc.closest, 7), HalfExtents: core.V2(0.5, 4)})
			reg.Spawn(Entity{Tags: TagObstacle, Body: body, HasTrigger: true})

			om := NewObstacleManager(cfg.Obstacles, reg, w, quiet)
			assert.Equal(t, tc.spawn, om.Spawn(rand.New(rand.NewSource(1))))
		})
	}
}

func TestObstacleConsumedTriggerStillGatesSpawn(t *testing.T) {
	reg, w, cfg := newSystems(t)
	body := w.Add(physics.BodyDef{Kind: physics.Kinematic, Position: core.V2(6, 7), HalfExtents: core.V2(0.5, 4)})
	reg.Spawn(Entity{Tags: TagObstacle, Body: body, HasTrigger: true, Trigger: false})

	om := NewObstacleManager(cfg.Obstacles, reg, w, quiet)
	assert.False(t, om.Spawn(rand.New(rand.NewSource(1))))
}

func TestObstacleCleanAndStop(t *testing.T) {
	reg, w, cfg := newSystems(t)
	om := NewObstacleManager(cfg.Obstacles, reg, w, quiet)

	for _, x := range []float64{-8.01, -7.99, 3} {
		body := w.Add(physics.BodyDef{Kind: physics.Kinematic, Position: core.V2(x, 0), HalfExtents: core.V2(0.5, 3), Velocity: core.V2(-4, 0)})
		reg.Spawn(Entity{Tags: TagObstacle, Body: body})
	}

	assert.Equal(t, 1, om.Clean())
	assert.Equal(t, 0, om.Clean(), "a gate is destroyed only once")
	assert.Equal(t, 2, reg.Count(TagObstacle))
	assert.Equal(t, 2, w.Len())

	om.Stop()
	for _, h := range reg.Tagged(TagObstacle) {
		vel, _ := w.Velocity(reg.Get(h).Body)
		assert.Zero(t, vel.X)
	}
}

func TestScoreTracker(t *testing.T) {
	reg, w, cfg := newSystems(t)
	st := NewScoreTracker(cfg.Scoring.ThresholdX, reg, w)

	body := w.Add(physics.BodyDef{Kind: physics.Kinematic, Position: core.V2(-2.45, 7), HalfExtents: core.V2(0.5, 4), Velocity: core.V2(-4, 0)})
	h := reg.Spawn(Entity{Tags: TagObstacle, Body: body, HasTrigger: true, Trigger: true})

	assert.Equal(t, 0, st.Update(), "not yet past the threshold")
	w.Step(1.0 / 60.0)
	assert.Equal(t, 1, st.Update())
	assert.Equal(t, 1, st.Score())
	assert.False(t, reg.Get(h).Trigger)

	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60.0)
		assert.Equal(t, 0, st.Update(), "a gate is scored once")
	}

	reg.Destroy(h)
	assert.Equal(t, 0, st.Update())
	assert.Equal(t, "Score: 1", st.Label())

	st.Reset()
	assert.Equal(t, 0, st.Score())
}

func TestDeathDetector(t *testing.T) {
	reg, w, cfg := newSystems(t)
	fsm := NewStateMachine(StatePlaying, quiet)
	pc := NewPlayerController(cfg.Player, reg, w)
	dd := NewDeathDetector(reg, w, fsm, quiet)

	player := reg.Get(pc.SpawnPlayer()).Body
	killer := w.Add(physics.BodyDef{Kind: physics.Static, HalfExtents: core.V2(1, 1)})
	reg.Spawn(Entity{Tags: TagStatic | TagKillable, Body: killer})
	harmless := w.Add(physics.BodyDef{Kind: physics.Static, HalfExtents: core.V2(1, 1)})
	reg.Spawn(Entity{Tags: TagStatic, Body: harmless})

	assert.False(t, dd.Process([]physics.ContactEvent{
		{Kind: physics.ContactStarted, A: player, B: harmless},
		{Kind: physics.ContactStopped, A: player, B: killer},
		{Kind: physics.ContactStarted, A: killer, B: harmless},
	}))
	assert.Equal(t, StatePlaying, fsm.Effective())
	assert.True(t, w.RotationLocked(player))

	// Two lethal contacts in one tick request End once.
	w.SetVelocity(player, core.V2(-4, 1.5))
	assert.True(t, dd.Process([]physics.ContactEvent{
		{Kind: physics.ContactStarted, A: player, B: killer},
		{Kind: physics.ContactStarted, A: killer, B: player},
	}))
	assert.Equal(t, StateEnd, fsm.Effective())
	assert.False(t, w.RotationLocked(player), "dead player goes limp")
	vel, _ := w.Velocity(player)
	assert.Equal(t, core.V2(0, 1.5), vel, "the obstacle's push is dropped, the fall is kept")

	tr, ok := fsm.Apply()
	require.True(t, ok)
	assert.Equal(t, Transition{From: StatePlaying, To: StateEnd}, tr)
	_, ok = fsm.Apply()
	assert.False(t, ok)
}

func TestDeathDetectorWithoutPlayer(t *testing.T) {
	reg, w, _ := newSystems(t)
	fsm := NewStateMachine(StatePlaying, quiet)
	dd := NewDeathDetector(reg, w, fsm, quiet)

	assert.False(t, dd.Process([]physics.ContactEvent{{Kind: physics.ContactStarted, A: 1, B: 2}}))
	assert.Equal(t, StatePlaying, fsm.Effective())
}
