package gates

import (
	"github.com/charmbracelet/log"
)

// State is the session lifecycle state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Transition is a committed state change.
type Transition struct {
	From State
	To   State
}

// legal lists the successors each state accepts.
var legal = map[State][]State{
	StateMenu:    {StatePlaying},
	StatePlaying: {StateEnd},
	StateEnd:     {StatePlaying},
}

// Hook is an enter or exit effect.
type Hook func()

// StateMachine owns the session state. Other systems only request
// transitions; Apply commits at most one per tick.
type StateMachine struct {
	current State
	next    State
	pending bool
	enter   map[State][]Hook
	exit    map[State][]Hook
	logger  *log.Logger
}

// NewStateMachine creates a machine in the initial state. Enter hooks of the
// initial state run on Start.
func NewStateMachine(initial State, logger *log.Logger) *StateMachine {
	return &StateMachine{
		current: initial,
		enter:   make(map[State][]Hook),
		exit:    make(map[State][]Hook),
		logger:  logger,
	}
}

// OnEnter registers a hook run when s is entered. Hooks run in registration order.
func (m *StateMachine) OnEnter(s State, h Hook) {
	m.enter[s] = append(m.enter[s], h)
}

// OnExit registers a hook run when s is left.
func (m *StateMachine) OnExit(s State, h Hook) {
	m.exit[s] = append(m.exit[s], h)
}

// Start runs the enter hooks of the current state.
func (m *StateMachine) Start() {
	for _, h := range m.enter[m.current] {
		h()
	}
}

// Current returns the committed state.
func (m *StateMachine) Current() State {
	return m.current
}

// Pending returns the requested state, if any.
func (m *StateMachine) Pending() (State, bool) {
	return m.next, m.pending
}

// Effective returns the pending state when a transition is queued and the
// committed state otherwise. Systems that must stop as soon as a transition
// is requested check this.
func (m *StateMachine) Effective() State {
	if m.pending {
		return m.next
	}
	return m.current
}

// Request queues a transition to `to`. Requests for an illegal successor,
// or made while another transition is pending, are ignored. It reports
// whether the request was accepted.
func (m *StateMachine) Request(to State) bool {
	if m.pending {
		return false
	}
	for _, s := range legal[m.current] {
		if s == to {
			m.next = to
			m.pending = true
			return true
		}
	}
	m.logger.Debug("ignored transition request", "from", m.current, "to", to)
	return false
}

// Apply commits the pending transition, running exit hooks of the old
// state and then enter hooks of the new one.
func (m *StateMachine) Apply() (Transition, bool) {
	if !m.pending {
		return Transition{}, false
	}
	t := Transition{From: m.current, To: m.next}
	m.pending = false

	for _, h := range m.exit[t.From] {
		h()
	}
	m.current = t.To
	for _, h := range m.enter[t.To] {
		h()
	}

	m.logger.Debug("state transition", "from", t.From, "to", t.To)
	return t, true
}
