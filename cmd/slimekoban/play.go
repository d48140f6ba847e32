package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slimekoban/internal/config"
	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/platform/tui"
	"github.com/vovakirdan/slimekoban/internal/platform/window"
	"github.com/vovakirdan/slimekoban/internal/sokoban"
)

var (
	flagWindow  bool
	flagWatch   bool
	flagWrap    bool
	flagNoMusic bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level pack",
	Long: `Start playing the selected level pack.

Without a level number the terminal shows a level menu with your best
results; with one the game starts directly at that level.

Controls:
  Arrows/WASD/HJKL  - Move
  R                 - Restart level
  U/Z               - Undo last step
  N/E               - Next level
  P                 - Previous level
  M                 - Toggle music
  ?                 - Help (terminal)
  C                 - Copy board to clipboard (window)
  Q/Esc             - Quit (back to menu in the terminal menu)

Examples:
  slimekoban play
  slimekoban play 2
  slimekoban play --window
  slimekoban play --levels ./levels --watch
  slimekoban play --wrap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a window instead of the terminal")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels when files in --levels change")
	playCmd.Flags().BoolVar(&flagWrap, "wrap", false, "Wrap around at either end of the pack")
	playCmd.Flags().BoolVar(&flagNoMusic, "no-music", false, "Start with music off")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	startLevel := 0
	if len(args) == 1 {
		startLevel, err = strconv.Atoi(args[0])
		if err != nil || startLevel < 1 || startLevel > src.Len() {
			return fmt.Errorf("level must be a number between 1 and %d, got %q", src.Len(), args[0])
		}
	}

	if flagWatch && cfg.Levels.Dir == "" {
		return errors.New("--watch needs a level directory (--levels)")
	}

	gameOpts, err := gameOptions(cfg, src, startLevel)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, true)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if flagWindow {
		return window.Run(window.Options{
			Game:     gameOpts,
			Store:    store,
			TileSize: cfg.Window.TileSize,
			Scale:    cfg.Window.Scale,
			VSync:    cfg.Window.VSync,
			Volume:   cfg.Audio.Volume,
		})
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Game:  gameOpts,
		Store: store,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.TickRate,
		},
	}
	if flagWatch {
		opts.WatchDir = cfg.Levels.Dir
	}

	if startLevel == 0 {
		return tui.RunSession(opts)
	}
	return tui.Run(opts)
}

// gameOptions builds the game settings shared by every frontend.
func gameOptions(cfg config.Config, src level.Source, startLevel int) (sokoban.Options, error) {
	policy, err := cfg.Levels.BoundsPolicy()
	if err != nil {
		return sokoban.Options{}, err
	}
	if flagWrap {
		policy = level.PolicyWrap
	}

	return sokoban.Options{
		Source:     src,
		Dims:       cfg.Levels.Dims(),
		Policy:     policy,
		Rules:      cfg.Rules,
		StartLevel: startLevel,
		MusicOn:    cfg.Audio.Music && !flagNoMusic,
	}, nil
}
