package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/slimekoban/internal/core"
)

// Grid is an immutable rectangular array of tiles.
// Cells are stored in row-major order: index = y*cols + x.
type Grid struct {
	rows  int
	cols  int
	cells []TileKind
}

// NewGrid creates a grid from rows of tiles. Every row must have the same
// length; NewGrid copies the input.
func NewGrid(rows [][]TileKind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedLevel)
	}

	g := &Grid{
		rows:  len(rows),
		cols:  len(rows[0]),
		cells: make([]TileKind, 0, len(rows)*len(rows[0])),
	}
	for y, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformedLevel, y+1, len(row), g.cols)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds returns true if the coordinate is inside the grid.
func (g *Grid) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Tile returns the tile at c, or ErrOutOfBounds.
func (g *Grid) Tile(c core.Coord) (TileKind, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.cols, g.rows)
	}
	return g.cells[c.Y*g.cols+c.X], nil
}

// At returns the tile at c. Coordinates outside the grid read as Wall so
// that movement off the edge is always blocked.
func (g *Grid) At(c core.Coord) TileKind {
	k, err := g.Tile(c)
	if err != nil {
		return Wall
	}
	return k
}

// Find returns the coordinates of every tile of the given kind, row by row.
func (g *Grid) Find(kind TileKind) []core.Coord {
	var found []core.Coord
	for i, k := range g.cells {
		if k == kind {
			found = append(found, core.C(i%g.cols, i/g.cols))
		}
	}
	return found
}

// Count returns how many tiles of the given kind the grid holds.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, k := range g.cells {
		if k == kind {
			n++
		}
	}
	return n
}

// PlayerSpawn returns the single player spawn of the grid.
func (g *Grid) PlayerSpawn() (core.Coord, error) {
	spawns := g.Find(PlayerSpawn)
	switch len(spawns) {
	case 1:
		return spawns[0], nil
	case 0:
		return core.Coord{}, fmt.Errorf("%w: no player spawn", ErrMalformedLevel)
	default:
		return core.Coord{}, fmt.Errorf("%w: %d player spawns, want 1", ErrMalformedLevel, len(spawns))
	}
}

// String returns the grid in level-file notation.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) + g.rows)
	for y := 0; y < g.rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.cols; x++ {
			sb.WriteRune(g.cells[y*g.cols+x].Symbol())
		}
	}
	return sb.String()
}
