// Package sokoban implements the box-pushing rules: entities, the
// movement/push resolver and the level-sequencing game loop. It has no
// dependency on any terminal, window or audio library.
package sokoban

import "github.com/vovakirdan/slimekoban/internal/core"

// Player is the pushing character.
type Player struct {
	pos core.Coord
}

// Reset places the player unconditionally.
func (p *Player) Reset(pos core.Coord) {
	p.pos = pos
}

// Pos returns the player position.
func (p *Player) Pos() core.Coord {
	return p.pos
}

// Box is a pushable crate.
type Box struct {
	pos    core.Coord
	inGoal bool
}

// NewBox creates a box at pos; inGoal is set from the tile underneath.
func NewBox(pos core.Coord, inGoal bool) *Box {
	return &Box{pos: pos, inGoal: inGoal}
}

// Update sets position and goal flag. The resolver calls it only after the
// destination has been validated.
func (b *Box) Update(pos core.Coord, inGoal bool) {
	b.pos = pos
	b.inGoal = inGoal
}

// Pos returns the box position.
func (b *Box) Pos() core.Coord {
	return b.pos
}

// InGoal reports whether the box rests on a goal tile.
func (b *Box) InGoal() bool {
	return b.inGoal
}

// BoxState is a read-only copy of a box for renderers.
type BoxState struct {
	Pos    core.Coord
	InGoal bool
}
