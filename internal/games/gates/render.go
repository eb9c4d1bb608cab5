package gates

import (
	"math"

	"github.com/vovakirdan/gates/internal/core"
)

// Visual characters for rendering
const (
	PieceChar  = '█'
	GroundChar = '▓'
	TitleText  = "G A T E S"
)

// Player glyphs by heading, counter-clockwise from facing right.
var playerGlyphs = []rune("→↗↑↖←↙↓↘")

// viewport maps world coordinates onto a grid of terminal cells.
type viewport struct {
	left, top     float64
	width, height float64
	cols, rows    int
}

func (g *Game) viewport(cols, rows int) viewport {
	view := g.cfg.View
	center := core.V2((view.MinX+view.MaxX)/2, (view.MinY+view.MaxY)/2)
	if _, cam := g.reg.First(TagCamera); cam != nil {
		center = cam.Pos
	}
	w, h := view.MaxX-view.MinX, view.MaxY-view.MinY
	return viewport{
		left:   center.X - w/2,
		top:    center.Y + h/2,
		width:  w,
		height: h,
		cols:   cols,
		rows:   rows,
	}
}

func (v viewport) col(x float64) float64 {
	return (x - v.left) / v.width * float64(v.cols)
}

func (v viewport) row(y float64) float64 {
	return (v.top - y) / v.height * float64(v.rows)
}

// cell returns the cell containing world point p.
func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(v.col(p.X))), int(math.Floor(v.row(p.Y)))
}

// rect returns the cells covered by box, clipped to the grid. Boxes thinner
// than a cell still cover one.
func (v viewport) rect(box core.AABB) core.Rect {
	lo, hi := box.Min(), box.Max()
	x0 := int(math.Floor(v.col(lo.X)))
	x1 := int(math.Ceil(v.col(hi.X)))
	y0 := int(math.Floor(v.row(hi.Y)))
	y1 := int(math.Ceil(v.row(lo.Y)))
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	return core.NewRect(x0, y0, x1-x0, y1-y0).Clip(v.cols, v.rows)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := g.viewport(dst.Width(), dst.Height())

	// Arena and gates
	for _, mask := range []Tag{TagStatic, TagObstacle} {
		for _, h := range g.reg.Tagged(mask) {
			e := g.reg.Get(h)
			box, ok := g.world.Bounds(e.Body)
			if !ok {
				continue
			}
			ch := PieceChar
			if mask == TagStatic {
				ch = GroundChar
			}
			dst.DrawRectColored(vp.rect(box), ch, e.Color)
		}
	}

	// Player
	if _, p := g.reg.First(TagPlayer); p != nil {
		if pos, ok := g.world.Position(p.Body); ok {
			x, y := vp.cell(pos)
			dst.SetColored(x, y, playerGlyph(g.world.Rotation(p.Body)), p.Color)
		}
	}

	// HUD
	if _, label := g.reg.First(TagScoreText); label != nil {
		dst.DrawTextColored(2, 0, " "+label.Text+" ", label.Color)
	}

	g.renderMenu(dst)
}

// playerGlyph picks the arrow closest to the heading angle.
func playerGlyph(angle float64) rune {
	n := len(playerGlyphs)
	i := int(math.Round(angle/(2*math.Pi/float64(n)))) % n
	if i < 0 {
		i += n
	}
	return playerGlyphs[i]
}

// renderMenu draws the game-over label and the buttons on top of the scene.
func (g *Game) renderMenu(dst *core.Screen) {
	if !g.menuVisible() {
		return
	}
	layout := MenuLayout(dst.Width(), dst.Height())

	if _, label := g.reg.First(TagGameOver); label != nil {
		drawCentered(dst, layout.GameOver, label.Text, label.Color)
	} else if g.fsm.Current() == StateMenu {
		drawCentered(dst, layout.GameOver, TitleText, core.ColorText)
	}

	for _, id := range []string{ButtonStart, ButtonExit} {
		_, btn := g.reg.Widget(id)
		if btn == nil {
			continue
		}
		r, frame := layout.Start, core.ColorButtonFocus
		if id == ButtonExit {
			r, frame = layout.Exit, core.ColorButton
		}
		dst.DrawRectColored(r, ' ', core.ColorDefault)
		dst.DrawBox(r, frame)
		drawCentered(dst, core.NewRect(r.X, r.Y+r.H/2, r.W, 1), btn.Text, btn.Color)
	}
}

// drawCentered writes text centered horizontally within r, on its first row.
func drawCentered(dst *core.Screen, r core.Rect, text string, c core.Color) {
	dst.DrawTextColored(r.TextX(text), r.Y, text, c)
}
