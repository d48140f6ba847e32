package sokoban

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

// ErrInvalidDirection is returned by TryMove for anything but the four
// cardinal directions.
var ErrInvalidDirection = errors.New("sokoban: invalid direction")

// Outcome is the result of a single move request.
type Outcome int

const (
	Blocked Outcome = iota
	Moved
	MovedPushingBox
	LevelComplete
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "Blocked"
	case Moved:
		return "Moved"
	case MovedPushingBox:
		return "MovedPushingBox"
	case LevelComplete:
		return "LevelComplete"
	default:
		return "Unknown"
	}
}

// Rules holds the decisions the level format leaves open.
type Rules struct {
	// VacuousCompletion makes a level without boxes count as solved after
	// the first step. When false such a level can never be completed and
	// must be skipped with the next-level action.
	VacuousCompletion bool `yaml:"vacuous_completion" toml:"vacuous_completion"`
}

// step is an undo record for one successful move.
type step struct {
	from      core.Coord
	box       int // index of the pushed box, -1 for a plain walk
	boxFrom   core.Coord
	boxInGoal bool
}

// Board is the live state of one level: the static grid plus the player and
// the boxes on it.
type Board struct {
	grid   *level.Grid
	rules  Rules
	spawn  core.Coord
	player Player
	boxes  []*Box

	moves   int
	pushes  int
	history []step
}

// NewBoard creates a board for grid and places the entities on their spawns.
// The grid is referenced, not copied.
func NewBoard(grid *level.Grid, rules Rules) (*Board, error) {
	spawn, err := grid.PlayerSpawn()
	if err != nil {
		return nil, fmt.Errorf("sokoban: %w", err)
	}

	b := &Board{
		grid:  grid,
		rules: rules,
		spawn: spawn,
	}
	b.Reset()
	return b, nil
}

// Reset returns the board to its initial configuration: the player goes back
// to its spawn and every box is rebuilt from the box spawns. Counters and the
// undo history are cleared.
func (b *Board) Reset() {
	b.player.Reset(b.spawn)

	spawns := b.grid.Find(level.BoxSpawn)
	b.boxes = make([]*Box, 0, len(spawns))
	for _, pos := range spawns {
		b.boxes = append(b.boxes, NewBox(pos, b.grid.At(pos) == level.Goal))
	}

	b.moves = 0
	b.pushes = 0
	b.history = b.history[:0]
}

// TryMove moves the player one tile in dir, pushing a box if there is one.
// A blocked move, including a push into a wall or another box, changes
// nothing.
func (b *Board) TryMove(dir core.Dir) (Outcome, error) {
	if !dir.Valid() {
		return Blocked, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	from := b.player.Pos()
	target := from.Step(dir)
	if b.grid.At(target).Blocking() {
		return Blocked, nil
	}

	idx := b.boxAt(target, nil)
	if idx < 0 {
		b.player.Reset(target)
		b.moves++
		b.history = append(b.history, step{from: from, box: -1})
		// Walking never changes a box; only a box-less level can be
		// completed by it.
		if len(b.boxes) == 0 && b.Complete() {
			return LevelComplete, nil
		}
		return Moved, nil
	}

	box := b.boxes[idx]
	boxTarget := target.Step(dir)
	if !b.canPush(box, boxTarget) {
		return Blocked, nil
	}

	b.history = append(b.history, step{from: from, box: idx, boxFrom: box.Pos(), boxInGoal: box.InGoal()})
	box.Update(boxTarget, b.grid.At(boxTarget) == level.Goal)
	b.player.Reset(target)
	b.moves++
	b.pushes++

	if b.Complete() {
		return LevelComplete, nil
	}
	return MovedPushingBox, nil
}

// canPush reports whether box may move to dst.
func (b *Board) canPush(box *Box, dst core.Coord) bool {
	if b.grid.At(dst).Blocking() {
		return false
	}
	return b.boxAt(dst, box) < 0
}

// boxAt returns the index of the box at c, ignoring exclude, or -1.
func (b *Board) boxAt(c core.Coord, exclude *Box) int {
	for i, box := range b.boxes {
		if box == exclude {
			continue
		}
		if box.Pos() == c {
			return i
		}
	}
	return -1
}

// Complete reports whether every box sits on a goal.
func (b *Board) Complete() bool {
	if len(b.boxes) == 0 {
		return b.rules.VacuousCompletion
	}
	for _, box := range b.boxes {
		if !box.InGoal() {
			return false
		}
	}
	return true
}

// Undo reverts the last successful move. It returns false when there is
// nothing to undo.
func (b *Board) Undo() bool {
	if len(b.history) == 0 {
		return false
	}

	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	b.player.Reset(last.from)
	b.moves--
	if last.box >= 0 {
		b.boxes[last.box].Update(last.boxFrom, last.boxInGoal)
		b.pushes--
	}
	return true
}

// Grid returns the static tile grid.
func (b *Board) Grid() *level.Grid {
	return b.grid
}

// Player returns the player position.
func (b *Board) Player() core.Coord {
	return b.player.Pos()
}

// Boxes returns a copy of every box, in spawn order.
func (b *Board) Boxes() []BoxState {
	states := make([]BoxState, len(b.boxes))
	for i, box := range b.boxes {
		states[i] = BoxState{Pos: box.Pos(), InGoal: box.InGoal()}
	}
	return states
}

// BoxAt reports whether a box occupies c and whether it is on a goal.
func (b *Board) BoxAt(c core.Coord) (occupied, inGoal bool) {
	idx := b.boxAt(c, nil)
	if idx < 0 {
		return false, false
	}
	return true, b.boxes[idx].InGoal()
}

// Moves returns the number of player steps since the last reset.
func (b *Board) Moves() int {
	return b.moves
}

// Pushes returns the number of box steps since the last reset.
func (b *Board) Pushes() int {
	return b.pushes
}

// CanUndo reports whether Undo would do anything.
func (b *Board) CanUndo() bool {
	return len(b.history) > 0
}
