// Package window is the Ebitengine frontend: a tile window with a status
// strip, looping background music and a clipboard copy of the board.
package window

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/sokoban"
	"github.com/vovakirdan/slimekoban/internal/storage"
)

// Options configure the window frontend.
type Options struct {
	Game     sokoban.Options
	Store    *storage.Store // nil disables records
	TileSize int            // Pixels per tile
	Scale    int            // Window size multiplier
	VSync    bool
	Volume   float64 // Music volume, 0.0 - 1.0
}

// App implements ebiten.Game around a sokoban.Game.
type App struct {
	game    *sokoban.Game
	store   *storage.Store
	sprites *spriteSheet
	music   *music
	logger  *log.Logger

	tileSize     int
	frame        core.InputFrame
	clipboard    bool // clipboard.Init succeeded
	failedLogged bool
}

// NewApp creates the window app and loads the first level. A level that
// fails to load leaves the game in its failed state; the error is returned
// for logging only.
func NewApp(opts Options) (*App, error) {
	if opts.TileSize <= 0 {
		opts.TileSize = 16
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "slimekoban-window",
	})

	a := &App{
		game:     sokoban.New(opts.Game),
		store:    opts.Store,
		sprites:  newSpriteSheet(opts.TileSize),
		logger:   logger,
		tileSize: opts.TileSize,
		frame:    core.NewInputFrame(),
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "error", err)
	} else {
		a.clipboard = true
	}

	m, err := newMusic(opts.Volume)
	if err != nil {
		logger.Warn("music unavailable", "error", err)
	} else {
		a.music = m
	}

	err = a.game.Reset(core.DefaultConfig())
	return a, err
}

// Update polls input and steps the game once per frame.
func (a *App) Update() error {
	if pollInput(&a.frame) {
		a.copyBoard()
	}
	if a.frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	res := a.game.Step(a.frame)
	a.frame.Clear()

	for _, ev := range res.Events {
		switch ev.Kind {
		case core.EventLevelCleared:
			a.saveCompletion(ev)
			a.logger.Info("level cleared", "level", ev.Level, "moves", ev.Moves, "pushes", ev.Pushes)
		case core.EventLevelLoaded:
			a.resizeWindow()
		}
	}
	if res.State.Failed && !a.failedLogged {
		a.logger.Error("level could not be loaded", "error", a.game.Err())
	}
	a.failedLogged = res.State.Failed

	a.music.sync(res.State.MusicOn)
	return nil
}

// Draw renders the board, then the HUD strip below it.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(palette[spriteDark][0])

	if grid := a.game.Grid(); grid != nil {
		a.drawTiles(screen, grid)
		a.drawEntities(screen)
	}

	w, h := a.Layout(0, 0)
	drawHUD(screen, a.game, h-hudHeight, w)
}

func (a *App) drawTiles(screen *ebiten.Image, grid *level.Grid) {
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			a.drawSprite(screen, tileSprite(grid.At(core.C(x, y))), core.C(x, y))
		}
	}
}

func (a *App) drawEntities(screen *ebiten.Image) {
	for _, b := range a.game.Boxes() {
		sp := spriteBox
		if b.InGoal {
			sp = spriteBoxOnGoal
		}
		a.drawSprite(screen, sp, b.Pos)
	}
	a.drawSprite(screen, spritePlayer, a.game.Player())
}

func (a *App) drawSprite(screen *ebiten.Image, sp sprite, at core.Coord) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(at.X*a.tileSize), float64(at.Y*a.tileSize))
	screen.DrawImage(a.sprites.image(sp), op)
}

// Layout returns the logical screen size: the board plus the HUD strip.
// The width never drops below 40 HUD characters.
func (a *App) Layout(_, _ int) (int, int) {
	return a.boardSize()
}

func (a *App) boardSize() (int, int) {
	cols, rows := 12, 9
	if grid := a.game.Grid(); grid != nil {
		cols, rows = grid.Cols(), grid.Rows()
	}
	w := max(cols*a.tileSize, 40*glyphWidth)
	return w, rows*a.tileSize + hudHeight
}

// resizeWindow follows the logical size when a level of another size loads.
func (a *App) resizeWindow() {
	w, h := a.boardSize()
	scale := a.windowScale()
	ebiten.SetWindowSize(w*scale, h*scale)
}

func (a *App) windowScale() int {
	ww, _ := ebiten.WindowSize()
	w, _ := a.boardSize()
	if w == 0 || ww < w {
		return 1
	}
	return ww / w
}

// copyBoard puts the board in level-file notation on the clipboard.
func (a *App) copyBoard() {
	if !a.clipboard {
		return
	}
	snap := a.game.Snapshot()
	if snap.Board == "" {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(snap.Board+"\n"))
	a.logger.Info("board copied to clipboard", "pack", snap.Pack, "level", snap.Level)
}

func (a *App) saveCompletion(ev core.Event) {
	if a.store == nil {
		return
	}
	_, err := a.store.SaveCompletion(storage.Completion{
		Pack:   a.game.Sequence().Source().Name(),
		Level:  ev.Level,
		Title:  ev.Name,
		Moves:  ev.Moves,
		Pushes: ev.Pushes,
	})
	if err != nil {
		a.logger.Warn("could not save completion", "error", err)
	}
}

// Close releases the audio player.
func (a *App) Close() error {
	return a.music.close()
}

// Game returns the running game.
func (a *App) Game() *sokoban.Game {
	return a.game
}

// Run opens the window and plays until it is closed or the quit key is pressed.
func Run(opts Options) error {
	app, err := NewApp(opts)
	// Broken level files are shown in the window; a bad start level is not.
	if err != nil && !errors.Is(err, level.ErrMalformedLevel) && !errors.Is(err, level.ErrLevelNotFound) {
		return err
	}
	defer app.Close()

	scale := max(opts.Scale, 1)
	w, h := app.boardSize()
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("Slimekoban - %s", app.game.Sequence().Source().Name()))
	ebiten.SetVsyncEnabled(opts.VSync)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func rectAt(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
