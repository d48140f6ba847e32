package sokoban

import (
	"fmt"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

// Each tile is two terminal columns wide so the board looks roughly square.
const tileW = 2

// HUD rows above and below the board frame.
const (
	hudTop    = 2
	hudBottom = 3
)

// glyph is the terminal appearance of a tile or entity.
type glyph struct {
	text  string
	color core.Color
}

var (
	glyphWall      = glyph{"██", core.ColorGray}
	glyphGround    = glyph{" ·", core.ColorDarkGray}
	glyphDark      = glyph{"  ", core.ColorDefault}
	glyphGoal      = glyph{"()", core.ColorYellow}
	glyphBox       = glyph{"[]", core.ColorOrange}
	glyphBoxOnGoal = glyph{"[]", core.ColorBrightGreen}
	glyphPlayer    = glyph{"@@", core.ColorBrightWhite}
)

// tileGlyph returns the glyph for a static tile.
func tileGlyph(k level.TileKind) glyph {
	switch k {
	case level.Wall:
		return glyphWall
	case level.Goal:
		return glyphGoal
	case level.Darkness:
		return glyphDark
	default:
		return glyphGround
	}
}

// MinScreenSize returns the terminal size needed to draw grid with its HUD.
func MinScreenSize(grid *level.Grid) (w, h int) {
	w = core.Max(grid.Cols()*tileW+2, 40)
	h = grid.Rows() + 2 + hudTop + hudBottom
	return w, h
}

// Render draws the board and HUD into dst. The screen is pre-cleared.
func (g *Game) Render(dst *core.Screen) {
	switch g.status {
	case StatusFailed:
		g.renderFailed(dst)
		return
	case StatusFinished:
		g.renderFinished(dst)
		return
	}
	if g.board == nil {
		return
	}

	grid := g.board.Grid()
	minW, minH := MinScreenSize(grid)
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minW, minH), core.ColorGray)
		return
	}

	frameW := grid.Cols()*tileW + 2
	frameH := grid.Rows() + 2
	blockH := hudTop + frameH + hudBottom
	left := (dst.Width() - frameW) / 2
	top := (dst.Height() - blockH) / 2

	dst.DrawTextCentered(top, fmt.Sprintf("%s  %d/%d: %s", g.seq.Source().Name(), g.level.Number(), g.seq.Len(), g.level.Title), core.ColorBrightYellow)

	frameTop := top + hudTop
	dst.DrawBox(left, frameTop, frameW, frameH, core.ColorDarkGray)
	g.drawBoard(dst, left+1, frameTop+1)

	hudY := frameTop + frameH
	music := "off"
	if g.musicOn {
		music = "on"
	}
	dst.DrawTextCentered(hudY, fmt.Sprintf("Moves: %d  Pushes: %d  Music: %s", g.board.Moves(), g.board.Pushes(), music), core.ColorWhite)
	if g.notice != "" {
		dst.DrawTextCentered(hudY+1, g.notice, core.ColorBrightGreen)
	}
}

// drawBoard draws tiles, boxes and the player with the top-left tile at (x0, y0).
func (g *Game) drawBoard(dst *core.Screen, x0, y0 int) {
	grid := g.board.Grid()
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			drawGlyph(dst, x0+x*tileW, y0+y, tileGlyph(grid.At(core.C(x, y))))
		}
	}

	for _, box := range g.board.Boxes() {
		gl := glyphBox
		if box.InGoal {
			gl = glyphBoxOnGoal
		}
		drawGlyph(dst, x0+box.Pos.X*tileW, y0+box.Pos.Y, gl)
	}

	p := g.board.Player()
	drawGlyph(dst, x0+p.X*tileW, y0+p.Y, glyphPlayer)
}

func drawGlyph(dst *core.Screen, x, y int, gl glyph) {
	dst.DrawTextColor(x, y, gl.text, gl.color)
}

func (g *Game) renderFailed(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, fmt.Sprintf("Level %d could not be loaded", g.seq.Index()+1), core.ColorRed)
	if g.err != nil {
		dst.DrawTextCentered(mid, g.err.Error(), core.ColorWhite)
	}
	dst.DrawTextCentered(mid+2, "R: retry  N/P: other level  Q: quit", core.ColorGray)
}

func (g *Game) renderFinished(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "*** ALL LEVELS CLEARED ***", core.ColorBrightGreen)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("%s: %d levels", g.seq.Source().Name(), g.seq.Len()), core.ColorWhite)
	dst.DrawTextCentered(mid+3, "R: play again  P: last level  Q: quit", core.ColorGray)
}
