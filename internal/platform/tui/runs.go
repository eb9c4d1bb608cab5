package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gates/internal/storage"
)

// Run browser layout constants
const (
	minWidthForDetails = 90 // Minimum width to show the details panel
	detailsWidth       = 28 // Width of the details panel
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing journaled runs.
type RunsModel struct {
	store       *storage.Store
	limit       int
	runs        []storage.Run
	err         error
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	selected    string // ID chosen for replay
	quitting    bool
	showDetails bool
}

// NewRunsModel creates a run browser over the newest limit runs.
func NewRunsModel(store *storage.Store, limit, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		store:       store,
		limit:       limit,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showDetails: width >= minWidthForDetails,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// Selected returns the ID of the run chosen for replay, or "".
func (m RunsModel) Selected() string {
	return m.selected
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "End", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("18")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the run list from the store.
func (m *RunsModel) loadRuns() {
	m.runs, m.err = nil, nil
	if m.store != nil {
		m.runs, m.err = m.store.Runs(m.limit)
	}
	m.updateTableRows()
}

func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.ShortID(),
			fmt.Sprintf("%d", r.Score),
			formatDuration(r),
			r.EndReason,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// current returns the highlighted run.
func (m RunsModel) current() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteRun(r.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetails = m.width >= minWidthForDetails
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("RUNS (%d)", len(m.runs)), m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.runs) == 0:
		b.WriteString(centerText("No runs journaled yet. Play a game first.", m.width))
		b.WriteString("\n")
	case m.showDetails:
		b.WriteString(m.renderWideLayout())
	default:
		b.WriteString(m.tableBox())
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) tableBox() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.table.View())
}

// renderWideLayout renders the table with a details panel for the
// highlighted run.
func (m RunsModel) renderWideLayout() string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailsWidth).
		Padding(0, 1)

	var d strings.Builder
	if r, ok := m.current(); ok {
		fmt.Fprintf(&d, "Run %s\n", r.ShortID())
		d.WriteString(strings.Repeat("-", detailsWidth-4))
		d.WriteString("\n")
		fmt.Fprintf(&d, "Score   %d\n", r.Score)
		fmt.Fprintf(&d, "Ticks   %d\n", r.Ticks)
		fmt.Fprintf(&d, "Rate    %d/s\n", r.TickRate)
		fmt.Fprintf(&d, "Seed    %d\n", r.Seed)
		fmt.Fprintf(&d, "End     %s\n", r.EndReason)
		fmt.Fprintf(&d, "Date    %s", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.tableBox(), "  ", panel.Render(d.String()))
}

// formatDuration renders a run's session length as m:ss.t.
func formatDuration(r storage.Run) string {
	d := r.Duration()
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}

// RunRuns starts the run browser and returns the ID selected for replay.
func RunRuns(store *storage.Store, limit, width, height int) (string, error) {
	m := NewRunsModel(store, limit, width, height)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(RunsModel); ok {
		return fm.Selected(), nil
	}
	return "", nil
}
