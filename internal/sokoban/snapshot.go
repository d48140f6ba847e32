package sokoban

import (
	"strings"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

// Snapshot captures the observable game state for tests, the clipboard and
// the window renderer.
type Snapshot struct {
	Pack   string
	Level  int // 1-indexed
	Title  string
	Status Status
	Player core.Coord
	Boxes  []BoxState
	Moves  int
	Pushes int
	Board  string // Level-file notation with entities overlaid
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Pack:   g.seq.Source().Name(),
		Level:  g.seq.Index() + 1,
		Status: g.status,
	}
	if g.board == nil {
		return s
	}

	s.Title = g.level.Title
	s.Player = g.board.Player()
	s.Boxes = g.board.Boxes()
	s.Moves = g.board.Moves()
	s.Pushes = g.board.Pushes()
	s.Board = g.board.String()
	return s
}

// String draws the board in level-file notation. Entities replace the tile
// symbol: 'p' player, 'P' player on a goal, 'b' box, 'B' box on a goal.
// Spawn tiles the entities have left read as ground.
func (b *Board) String() string {
	grid := b.grid
	var sb strings.Builder
	sb.Grow((grid.Cols() + 1) * grid.Rows())

	for y := 0; y < grid.Rows(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < grid.Cols(); x++ {
			sb.WriteRune(b.symbolAt(core.C(x, y)))
		}
	}
	return sb.String()
}

func (b *Board) symbolAt(c core.Coord) rune {
	tile := b.grid.At(c)
	onGoal := tile == level.Goal

	if c == b.player.Pos() {
		if onGoal {
			return 'P'
		}
		return 'p'
	}
	if occupied, inGoal := b.BoxAt(c); occupied {
		if inGoal {
			return 'B'
		}
		return 'b'
	}
	if tile == level.PlayerSpawn || tile == level.BoxSpawn {
		return level.Empty.Symbol()
	}
	return tile.Symbol()
}
