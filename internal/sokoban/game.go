package sokoban

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

// GameID is the identifier used for records and SSH sessions.
const GameID = "slimekoban"

// noticeTicks is how long a HUD notice stays visible, in steps.
const noticeTicks = 90

// Status is the state of the game as a whole.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished" // every level cleared
	StatusFailed   Status = "failed"   // current level could not be loaded
)

// Options configure a Game.
type Options struct {
	Source     level.Source
	Dims       level.Dims   // Expected grid size when the pack declares none
	Policy     level.Policy // What Next/Prev do at the ends of the pack
	Rules      Rules
	StartLevel int // 1-indexed; 0 starts at the first level
	MusicOn    bool
}

// Game drives the level sequence: it turns input actions into moves, loads
// the next level when one is cleared and owns restart and undo.
type Game struct {
	opts  Options
	seq   *level.Sequence
	level *level.Level
	board *Board

	status  Status
	err     error
	musicOn bool

	notice      string
	noticeTicks int
	events      []core.Event
	tick        uint64

	screenW int
	screenH int
}

// New creates a game over the given pack. Call Reset before stepping.
func New(opts Options) *Game {
	return &Game{
		opts:    opts,
		seq:     level.NewSequence(opts.Source, opts.Policy),
		musicOn: opts.MusicOn,
		status:  StatusPlaying,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Slimekoban"
}

// Reset (re)starts the game at the configured start level.
// The returned error is also kept in Err until a level loads.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.events = nil
	g.notice = ""
	g.noticeTicks = 0

	start := 0
	if g.opts.StartLevel > 0 {
		start = g.opts.StartLevel - 1
	}
	if err := g.seq.Jump(start); err != nil {
		g.fail(err)
		return err
	}
	return g.loadCurrent()
}

// Resize updates the screen dimensions used by Render.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// loadCurrent replaces the grid and entities with the current level.
// On failure the previous board is dropped and the game blocks in
// StatusFailed; no partially loaded level is ever played.
func (g *Game) loadCurrent() error {
	lvl, err := g.seq.Load(g.opts.Dims)
	if err != nil {
		g.fail(err)
		return err
	}

	board, err := NewBoard(lvl.Grid, g.opts.Rules)
	if err != nil {
		g.fail(err)
		return err
	}

	g.level = lvl
	g.board = board
	g.status = StatusPlaying
	g.err = nil
	g.emit(core.EventLevelLoaded)
	return nil
}

func (g *Game) fail(err error) {
	g.level = nil
	g.board = nil
	g.status = StatusFailed
	g.err = err
}

// Step applies the actions of one input frame in arrival order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.noticeTicks > 0 {
		g.noticeTicks--
		if g.noticeTicks == 0 {
			g.notice = ""
		}
	}

	for _, a := range in.Actions() {
		g.apply(a)
	}

	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

// apply performs a single action.
func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionToggleMusic:
		g.musicOn = !g.musicOn
	case core.ActionRestart:
		g.Restart()
	case core.ActionNextLevel:
		//nolint:errcheck // Out-of-range is reported through the HUD notice
		g.NextLevel()
	case core.ActionPrevLevel:
		//nolint:errcheck // Out-of-range is reported through the HUD notice
		g.PrevLevel()
	case core.ActionUndo:
		if g.status == StatusPlaying && !g.board.Undo() {
			g.setNotice("Nothing to undo")
		}
	default:
		if d := a.Dir(); d != core.DirNone {
			//nolint:errcheck // Directions from Action.Dir are always valid
			g.Move(d)
		}
	}
}

// Move performs one player step. Moves are ignored unless a level is in
// progress. Clearing a level immediately loads the next one.
func (g *Game) Move(d core.Dir) (Outcome, error) {
	if g.status != StatusPlaying {
		return Blocked, nil
	}

	outcome, err := g.board.TryMove(d)
	if err != nil {
		return outcome, err
	}

	if outcome == LevelComplete {
		g.emit(core.EventLevelCleared)
		g.advanceAfterClear()
	}
	return outcome, nil
}

// advanceAfterClear moves on from a solved level. Under the clamp policy
// clearing the final level finishes the game.
func (g *Game) advanceAfterClear() {
	if err := g.seq.Advance(); err != nil {
		g.status = StatusFinished
		g.setNotice("All levels cleared!")
		return
	}
	if g.loadCurrent() == nil {
		g.setNotice(fmt.Sprintf("Level %d cleared", g.seq.Index()))
	}
}

// Restart resets the current level to its initial configuration. In the
// failed state it retries the load; once finished it starts the pack over.
func (g *Game) Restart() {
	switch g.status {
	case StatusPlaying:
		g.board.Reset()
		g.emit(core.EventLevelLoaded)
	case StatusFailed:
		//nolint:errcheck // Failure is kept in g.err and shown in the HUD
		g.loadCurrent()
	case StatusFinished:
		if g.seq.Jump(0) == nil {
			//nolint:errcheck // Failure is kept in g.err and shown in the HUD
			g.loadCurrent()
		}
	}
}

// NextLevel skips to the following level.
func (g *Game) NextLevel() error {
	return g.navigate(g.seq.Advance, "Already at the last level")
}

// PrevLevel goes back one level.
func (g *Game) PrevLevel() error {
	if g.status == StatusFinished {
		// The sequence still points at the last level.
		return g.loadCurrent()
	}
	return g.navigate(g.seq.Retreat, "Already at the first level")
}

func (g *Game) navigate(move func() error, atEnd string) error {
	if err := move(); err != nil {
		if errors.Is(err, level.ErrLevelOutOfRange) {
			g.setNotice(atEnd)
		}
		return err
	}
	return g.loadCurrent()
}

// Reload re-reads the current level from its source, e.g. after the file
// changed on disk. Progress on the level is lost.
func (g *Game) Reload() error {
	if g.status == StatusFinished {
		return nil
	}
	if err := g.loadCurrent(); err != nil {
		return err
	}
	g.setNotice("Level reloaded")
	return nil
}

// SetSource swaps the level pack, keeping the current index when possible.
func (g *Game) SetSource(src level.Source) error {
	index := g.seq.Index()
	g.opts.Source = src
	g.seq = level.NewSequence(src, g.opts.Policy)
	if err := g.seq.Jump(index); err != nil {
		//nolint:errcheck // Falls back to the first level
		g.seq.Jump(0)
	}
	return g.loadCurrent()
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTicks = noticeTicks
}

func (g *Game) emit(kind core.EventKind) {
	ev := core.Event{Kind: kind, Level: g.seq.Index() + 1}
	if g.level != nil {
		ev.Name = g.level.Title
	}
	if g.board != nil {
		ev.Moves = g.board.Moves()
		ev.Pushes = g.board.Pushes()
	}
	g.events = append(g.events, ev)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:    g.seq.Index() + 1,
		Finished: g.status == StatusFinished,
		Failed:   g.status == StatusFailed,
		MusicOn:  g.musicOn,
	}
	if g.board != nil {
		st.Moves = g.board.Moves()
		st.Pushes = g.board.Pushes()
	}
	return st
}

// Status returns the overall game status.
func (g *Game) Status() Status {
	return g.status
}

// Err returns the load error behind StatusFailed, or nil.
func (g *Game) Err() error {
	return g.err
}

// Board returns the live board, or nil while no level is loaded.
func (g *Game) Board() *Board {
	return g.board
}

// Level returns the loaded level, or nil while no level is loaded.
func (g *Game) Level() *level.Level {
	return g.level
}

// Sequence returns the level sequence.
func (g *Game) Sequence() *level.Sequence {
	return g.seq
}

// MusicOn reports whether background music should be playing.
func (g *Game) MusicOn() bool {
	return g.musicOn
}

// Notice returns the transient HUD message, if any.
func (g *Game) Notice() string {
	return g.notice
}

// Grid returns the tile grid of the loaded level, or nil.
func (g *Game) Grid() *level.Grid {
	if g.board == nil {
		return nil
	}
	return g.board.Grid()
}

// Player returns the player position on the loaded level.
func (g *Game) Player() core.Coord {
	if g.board == nil {
		return core.Coord{}
	}
	return g.board.Player()
}

// Boxes returns the boxes of the loaded level.
func (g *Game) Boxes() []BoxState {
	if g.board == nil {
		return nil
	}
	return g.board.Boxes()
}
