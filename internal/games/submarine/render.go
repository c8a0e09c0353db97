package submarine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sub-arcade/internal/assets"
	"github.com/vovakirdan/sub-arcade/internal/core"
)

// Visual characters for rendering
const (
	GroundChar      = '▔'
	SandChar        = '░'
	PlaceholderChar = '▒'
	BubbleChar      = '°'
	WaveChar        = '~'
)

// projection maps world units onto screen cells. Row 0 is reserved for the HUD.
type projection struct {
	sx, sy float64 // Cells per world unit
	top    int     // First playfield row
}

func newProjection(dst *core.Screen, world core.Box) projection {
	rows := core.Max(dst.Height()-1, 1)
	return projection{
		sx:  float64(dst.Width()) / world.W,
		sy:  float64(rows) / world.H,
		top: 1,
	}
}

func (p projection) x(wx float64) int {
	return int(math.Floor(wx * p.sx))
}

func (p projection) y(wy float64) int {
	return p.top + int(math.Floor(wy*p.sy))
}

// rect projects a world box, keeping at least one cell in each direction.
func (p projection) rect(b core.Box) core.Rect {
	x0, y0 := p.x(b.X), p.y(b.Y)
	w := core.Max(p.x(b.Right())-x0, 1)
	h := core.Max(p.y(b.Bottom())-y0, 1)
	return core.NewRect(x0, y0, w, h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	world := core.NewBox(0, 0, g.cfg.World.Width, g.cfg.World.Height)
	proj := newProjection(dst, world)

	g.drawSeaFloor(dst, proj)
	dst.DrawHLine(0, proj.top, dst.Width(), WaveChar, core.ColorBlue)

	for _, p := range g.session.PowerUps() {
		g.drawTopAnchored(dst, proj, SpritePowerUp, p.Bounds(), core.ColorBrightYellow)
	}
	for _, o := range g.session.Obstacles() {
		g.drawBottomAnchored(dst, proj, g.obstacleSprite(o), o.Bounds(), obstacleColor(o.Variant))
	}
	g.drawBottomAnchored(dst, proj, SpritePlayer, g.session.Player().Bounds(), core.ColorBrightCyan)
	if pl := g.session.Player(); pl.Jumping {
		r := proj.rect(pl.Bounds())
		dst.SetColored(r.X-1, r.Bottom()-1, BubbleChar, core.ColorWhite)
	}

	g.drawHUD(dst)

	switch g.phase {
	case core.PhaseLoading:
		g.drawCenteredMessage(dst, "SUBMARINE ADVENTURE", "Loading sprites...")
	case core.PhaseReady:
		g.drawCenteredMessage(dst, g.variant.Title, "Press SPACE to dive")
	case core.PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case core.PhaseOver:
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  R restart  |  Enter submit  |  B menu", g.session.Score()))
	}
}

// drawSeaFloor draws the ground line and fills the sand below it.
func (g *Game) drawSeaFloor(dst *core.Screen, proj projection) {
	groundRow := proj.y(g.cfg.World.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorOrange)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SandChar, core.ColorYellow)
	}
}

// drawHUD renders score on the left and level, speed and pearls on the right.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.session.Score()), core.ColorWhite)

	right := fmt.Sprintf(" Lvl %d  Spd %.1f ", g.session.Level(), g.session.Speed())
	if g.cfg.PowerUps.Enabled {
		right += fmt.Sprintf(" Pearls %d ", g.session.Bonuses())
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-2, 0, right, core.ColorBrightCyan)
}

func (g *Game) obstacleSprite(o Obstacle) string {
	if o.Variant < 0 || o.Variant >= len(g.cfg.Obstacles.Variants) {
		return ""
	}
	return g.cfg.Obstacles.Variants[o.Variant].Name
}

func obstacleColor(variant int) core.Color {
	switch variant {
	case 0:
		return core.ColorSeaweed
	case 1:
		return core.ColorGray
	default:
		return core.ColorBrightRed
	}
}

// drawBottomAnchored draws a sprite whose last row sits on the bottom edge of
// the projected bounds, centered horizontally.
func (g *Game) drawBottomAnchored(dst *core.Screen, proj projection, name string, b core.Box, c core.Color) {
	r := proj.rect(b)
	sp, ok := g.sprites.Get(name)
	if !ok {
		dst.DrawRect(r, PlaceholderChar, c)
		return
	}
	x := r.X + (r.W-sp.Width())/2
	y := r.Bottom() - sp.Height()
	drawSprite(dst, sp, x, y, c)
}

// drawTopAnchored draws a sprite starting at the top edge of the projected bounds.
func (g *Game) drawTopAnchored(dst *core.Screen, proj projection, name string, b core.Box, c core.Color) {
	r := proj.rect(b)
	sp, ok := g.sprites.Get(name)
	if !ok {
		dst.DrawRect(r, PlaceholderChar, c)
		return
	}
	drawSprite(dst, sp, r.X+(r.W-sp.Width())/2, r.Y, c)
}

// drawSprite copies non-space runes; spaces are transparent.
func drawSprite(dst *core.Screen, sp *assets.Sprite, x, y int, c core.Color) {
	for dy, row := range sp.Rows {
		for dx, r := range row {
			if r == ' ' {
				continue
			}
			dst.SetColored(x+dx, y+dy, r, c)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Clamp(core.Max(len([]rune(title)), len([]rune(subtitle)))+4, 0, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightBlue)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
