package game

import (
	"fmt"

	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/sim"
)

// Render draws the world in the top-left corner and the HUD below it.
// Agents outside the screen are clipped.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall || g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	for id := range g.world.Len() {
		a := sim.AgentID(id)
		p := g.world.Position(a)
		switch {
		case g.world.Tagged(a):
			dst.SetColored(int(p.X), int(p.Y), TaggedChar, core.ColorBrightRed)
		case g.world.Visible(a):
			dst.SetColored(int(p.X), int(p.Y), VisibleChar, core.ColorYellow)
		default:
			dst.SetColored(int(p.X), int(p.Y), AgentChar, core.ColorGreen)
		}
	}

	g.renderHUD(dst)

	if g.paused {
		box := dst.Bounds().Centered(12, 3)
		dst.DrawBox(box)
		dst.DrawTextColored(box.X+3, box.Y+1, "PAUSED", core.ColorWhite)
	}
}

// renderHUD draws the separator and status line at the bottom.
func (g *Game) renderHUD(dst *core.Screen) {
	sepY := dst.Height() - HUDHeight
	dst.DrawHLine(0, sepY, dst.Width(), BorderChar)

	s := g.Summary()
	status := fmt.Sprintf(" %s  tick %d  tags %d  mean %.1f  it #%d  sees %d",
		g.Title(), s.Ticks, s.Transfers, s.MeanTicksPerTag(),
		g.world.TaggedID(), g.world.VisibleCount())
	dst.DrawText(0, sepY+1, status)

	if g.world.Width() > dst.Width() || g.world.Height() > sepY {
		note := fmt.Sprintf("[%dx%d clipped] ", g.world.Width(), g.world.Height())
		dst.DrawTextColored(dst.Width()-len(note), sepY+1, note, core.ColorGray)
	}
}
