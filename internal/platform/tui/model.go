package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gates/internal/config"
	"github.com/vovakirdan/gates/internal/core"
	"github.com/vovakirdan/gates/internal/games/gates"
	"github.com/vovakirdan/gates/internal/replay"
	"github.com/vovakirdan/gates/internal/storage"
)

// footerRows is the number of terminal rows under the game screen.
const footerRows = 1

// Model is the Bubble Tea model that runs one game. Every finished session
// is journaled to the store when one is configured.
type Model struct {
	game     *gates.Game
	screen   *core.Screen
	store    *storage.Store
	runtime  core.RuntimeConfig
	cfgYAML  []byte
	logger   *log.Logger
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	input    core.InputFrame
	recorder *replay.Recorder
	lastRun  *string // ID of the last journaled run, shared across copies
	quitting bool

	// Set when watching a recorded run instead of playing.
	player  *replay.Player
	runID   string
	watched bool
}

// NewModel creates a model that plays the game with the given config.
func NewModel(cfg config.GatesConfig, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfgYAML, err := config.Encode(cfg)
	if err != nil {
		logger.Warn("config will not be journaled", "error", err)
	}

	game := gates.New(cfg, gates.WithLogger(logger))
	return newModel(game, store, rt, logger, cfgYAML)
}

// NewReplayModel creates a model that plays back a recorded session.
func NewReplayModel(p *replay.Player, runID string, rt core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := newModel(p.Game(), nil, p.Game().Runtime(), logger, nil)
	m.runtime.ScreenW, m.runtime.ScreenH = rt.ScreenW, rt.ScreenH
	m.screen.Resize(rt.ScreenW, max(rt.ScreenH-footerRows, 1))
	m.player = p
	m.runID = runID
	return m
}

func newModel(game *gates.Game, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger, cfgYAML []byte) Model {
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false
	h.Width = rt.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(rt.ScreenW, max(rt.ScreenH-footerRows, 1)),
		store:    store,
		runtime:  rt,
		cfgYAML:  cfgYAML,
		logger:   logger,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     h,
		input:    core.NewInputFrame(),
		recorder: replay.NewRecorder(),
		lastRun:  new(string),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if m.player == nil {
		m.game.Reset(m.runtime)
	}
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.player == nil {
			m.mapper.MapMouseToFrame(msg, m.screen.Width(), m.screen.Height(), &m.input)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.player != nil {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.mapper.MapKeyToFrame(msg, &m.input) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The viewport scales with
// the screen, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.player != nil {
		if _, ok := m.player.Step(); !ok {
			m.watched = true
			return m, nil
		}
		return m, tickCmd(m.runtime.TickRate)
	}

	res := m.game.Step(m.input)
	m.input.Clear()

	if s, done := m.recorder.Observe(m.game, res); done {
		m.saveRun(s)
	}
	if res.Transitioned {
		m.logger.Debug("state changed", "from", res.Transition.From, "to", res.Transition.To, "score", res.Score)
	}

	if res.Exit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.runtime.TickRate)
}

// abandon journals a session cut short by quitting.
func (m Model) abandon() {
	if s, ok := m.recorder.Abandon(m.game); ok {
		m.saveRun(s)
	}
}

// saveRun journals a finished session. Failures are logged and the game
// continues regardless.
func (m Model) saveRun(s replay.Session) {
	if m.store == nil || m.cfgYAML == nil {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		Seed:       s.Seed,
		TickRate:   s.TickRate,
		Ticks:      s.Ticks,
		Score:      s.Score,
		EndReason:  s.EndReason,
		ConfigYAML: m.cfgYAML,
		Lifts:      s.Lifts,
	})
	if err != nil {
		m.logger.Error("could not journal run", "error", err)
		return
	}
	*m.lastRun = id
	m.logger.Info("run journaled", "id", id, "score", s.Score, "ticks", s.Ticks, "reason", s.EndReason)
}

// LastRun returns the ID of the last journaled run, or "".
func (m Model) LastRun() string {
	return *m.lastRun
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".gates", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("gates_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.player == nil {
		return footerStyle.Render(m.help.View(m.keys))
	}
	status := "replaying"
	if m.watched {
		status = "replay finished"
	}
	id := m.runID
	if len(id) > 8 {
		id = id[:8]
	}
	return footerStyle.Render(fmt.Sprintf("%s %s · score %d · q quit", status, id, m.game.Score()))
}

// Run starts the Bubble Tea program with the given model and returns the
// final model.
func Run(model Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks on menu buttons
	}, opts...)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
