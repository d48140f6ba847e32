package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/slimekoban/internal/sokoban"
)

// Basic font metrics.
const (
	lineHeight = 14
	hudPadding = 4
	hudLines   = 2
	glyphWidth = 7
)

// hudHeight is the height of the status strip below the board, in pixels.
const hudHeight = hudLines*lineHeight + 2*hudPadding

var (
	hudFace       = text.NewGoXFace(basicfont.Face7x13)
	hudBackground = color.RGBA{0x14, 0x12, 0x18, 0xff}
	hudText       = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	hudAccent     = color.RGBA{0xe8, 0xc5, 0x47, 0xff}
)

// statusLines returns the two HUD lines for the current game state.
func statusLines(g *sokoban.Game) [hudLines]string {
	snap := g.Snapshot()
	total := g.Sequence().Len()

	switch snap.Status {
	case sokoban.StatusFailed:
		return [hudLines]string{
			fmt.Sprintf("Level %d could not be loaded", snap.Level),
			"R: retry  N/P: other level  Q: quit",
		}
	case sokoban.StatusFinished:
		return [hudLines]string{
			"All levels cleared!",
			"R: play again  Q: quit",
		}
	}

	music := "off"
	if g.MusicOn() {
		music = "on"
	}
	second := fmt.Sprintf("Moves: %d  Pushes: %d  Music: %s", snap.Moves, snap.Pushes, music)
	if n := g.Notice(); n != "" {
		second = n
	}
	return [hudLines]string{
		fmt.Sprintf("%d/%d %s", snap.Level, total, snap.Title),
		second,
	}
}

// drawHUD draws the status strip starting at y.
func drawHUD(dst *ebiten.Image, g *sokoban.Game, y, width int) {
	strip := dst.SubImage(rectAt(0, y, width, hudHeight)).(*ebiten.Image)
	strip.Fill(hudBackground)

	lines := statusLines(g)
	for i, line := range lines {
		clr := hudText
		if i == 0 {
			clr = hudAccent
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudPadding, float64(y+hudPadding+i*lineHeight))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(dst, fitText(line, (width-2*hudPadding)/glyphWidth), hudFace, op)
	}
}

// fitText truncates s to at most n characters.
func fitText(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "~"
}
