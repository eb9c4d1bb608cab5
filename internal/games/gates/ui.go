package gates

import (
	"github.com/vovakirdan/gates/internal/core"
)

// Widget ids. Buttons double as the click ids carried by core.InputFrame.
const (
	ButtonStart   = "start"
	ButtonExit    = "exit"
	LabelGameOver = "game_over"
	LabelScore    = "score"
	CameraAnchor  = "camera"
)

const (
	buttonW = 14
	buttonH = 3
)

// Layout holds the screen rectangles of the menu widgets.
type Layout struct {
	GameOver core.Rect
	Start    core.Rect
	Exit     core.Rect
}

// MenuLayout places the menu for a screen of w×h cells: the game-over label
// on top, then Start and Exit stacked in the middle.
func MenuLayout(w, h int) Layout {
	x := (w - buttonW) / 2
	startY := h/2 - 1
	return Layout{
		GameOver: core.NewRect(x, startY-3, buttonW, 1),
		Start:    core.NewRect(x, startY, buttonW, buttonH),
		Exit:     core.NewRect(x, startY+buttonH+1, buttonW, buttonH),
	}
}

// ButtonAt returns the id of the button under cell (x, y), or "".
func (l Layout) ButtonAt(x, y int) string {
	switch {
	case l.Start.Contains(x, y):
		return ButtonStart
	case l.Exit.Contains(x, y):
		return ButtonExit
	default:
		return ""
	}
}

// showMenu spawns the Start and Exit buttons unless they already exist.
func (g *Game) showMenu() {
	if g.reg.Count(TagMenuItem) > 0 {
		return
	}
	g.reg.Spawn(Entity{Tags: TagMenuItem, WidgetID: ButtonStart, Text: "Start", Color: core.ColorButton})
	g.reg.Spawn(Entity{Tags: TagMenuItem, WidgetID: ButtonExit, Text: "Exit", Color: core.ColorButton})
}

// closeMenu removes menu and game-over widgets left from a previous screen.
func (g *Game) closeMenu() {
	g.reg.DestroyTagged(TagMenuItem)
	g.reg.DestroyTagged(TagGameOver)
}

// showGameOver spawns the "Game Over" label.
func (g *Game) showGameOver() {
	g.reg.Spawn(Entity{
		Tags:     TagGameOver | TagSession,
		WidgetID: LabelGameOver,
		Text:     "Game Over",
		Color:    core.ColorText,
	})
}

// updateScoreLabel mirrors the score into the label, if one exists.
func (g *Game) updateScoreLabel() {
	if _, e := g.reg.First(TagScoreText); e != nil {
		e.Text = g.score.Label()
	}
}

// menuVisible reports whether the Start/Exit buttons are on screen.
func (g *Game) menuVisible() bool {
	return g.reg.Count(TagMenuItem) > 0
}
