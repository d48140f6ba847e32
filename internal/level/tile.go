// Package level loads box-pushing levels from plain-text files and keeps track
// of the current position in an ordered sequence of levels.
//
// A level file is a grid of one character per tile, one line per row:
//
//	x  wall
//	g  goal
//	d  darkness (decorative, walkable like ground)
//	p  player spawn
//	b  box spawn
//
// Any other rune is plain ground. Whitespace inside a line is ignored and
// blank lines are skipped, so "p b g" describes a row of three tiles.
package level

// TileKind is the semantic kind of a grid cell.
type TileKind uint8

const (
	Empty TileKind = iota
	Wall
	Goal
	PlayerSpawn
	BoxSpawn
	Darkness
)

// String returns a human-readable name for the tile kind.
func (k TileKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Goal:
		return "Goal"
	case PlayerSpawn:
		return "PlayerSpawn"
	case BoxSpawn:
		return "BoxSpawn"
	case Darkness:
		return "Darkness"
	default:
		return "Unknown"
	}
}

// Symbol returns the level-file character for the tile kind.
// Empty is written as '.'.
func (k TileKind) Symbol() rune {
	switch k {
	case Wall:
		return 'x'
	case Goal:
		return 'g'
	case PlayerSpawn:
		return 'p'
	case BoxSpawn:
		return 'b'
	case Darkness:
		return 'd'
	default:
		return '.'
	}
}

// Blocking reports whether neither the player nor a box may enter the tile.
func (k TileKind) Blocking() bool {
	return k == Wall
}

// TileFromSymbol maps a level-file character to its tile kind.
// Unknown characters are ground.
func TileFromSymbol(r rune) TileKind {
	switch r {
	case 'x':
		return Wall
	case 'g':
		return Goal
	case 'p':
		return PlayerSpawn
	case 'b':
		return BoxSpawn
	case 'd':
		return Darkness
	default:
		return Empty
	}
}
