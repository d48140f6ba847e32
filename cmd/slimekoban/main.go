// slimekoban is a box-pushing puzzle game for the terminal, a window and SSH.
//
// Usage:
//
//	slimekoban play [level]   - Play the selected pack (level menu without a level)
//	slimekoban list           - List packs and the levels of the selected pack
//	slimekoban check          - Validate every level of the selected pack
//	slimekoban scores [pack]  - Show best results per level
//	slimekoban serve          - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Config file (YAML, or TOML with a .toml extension)
//	--levels <dir>   - Play level files from a directory instead of a pack
//	--pack <id>      - Registered level pack (default: classic)
//	--db <dsn>       - Records database: SQLite path or postgres:// URL
//	--fps <rate>     - Terminal input polls per second (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slimekoban/internal/config"
	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/platform/tui"
	"github.com/vovakirdan/slimekoban/internal/registry"
	"github.com/vovakirdan/slimekoban/internal/storage"

	// Import packs to register them
	_ "github.com/vovakirdan/slimekoban/internal/levels/classic"
)

const defaultDBPath = "~/.slimekoban/records.db"

var (
	// Global flags
	flagConfig string
	flagLevels string
	flagPack   string
	flagDB     string
	flagFPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slimekoban",
	Short: "Slimekoban - push the boxes onto the goals",
	Long: `Slimekoban is a box-pushing puzzle game. Guide the slime through each
level and push every box onto a goal to move on to the next one.

Available commands:
  play     - Play a pack in the terminal or in a window
  list     - Show packs and levels
  check    - Validate level files
  scores   - View best results
  serve    - Start SSH server for remote play

Examples:
  slimekoban play
  slimekoban play 3
  slimekoban play --window
  slimekoban play --levels ./my-levels --watch
  slimekoban serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if os.Getenv("NO_COLOR") != "" {
			tui.SetTheme(tui.MonochromeTheme())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (overrides --pack)")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", "", "Registered level pack")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Records database (default "+defaultDBPath+")")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Terminal input polls per second")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("levels") {
		cfg.Levels.Dir = flagLevels
	}
	if flags.Changed("pack") {
		cfg.Levels.Pack = flagPack
		if !flags.Changed("levels") {
			cfg.Levels.Dir = ""
		}
	}
	if flags.Changed("db") {
		cfg.Storage.DSN = flagDB
	}
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openSource returns the level directory when one is configured, the
// registered pack otherwise.
func openSource(cfg config.Config) (level.Source, error) {
	if cfg.Levels.Dir != "" {
		src, err := level.NewDirSource(cfg.Levels.Dir)
		if err != nil {
			return nil, fmt.Errorf("reading levels from %s: %w", cfg.Levels.Dir, err)
		}
		return src, nil
	}
	if !registry.Exists(cfg.Levels.Pack) {
		return nil, fmt.Errorf("unknown pack %q, run 'slimekoban list' to see available packs", cfg.Levels.Pack)
	}
	return registry.Open(cfg.Levels.Pack)
}

// openStore opens the records database. When optional is set a failure
// only prints a warning and the game runs without records.
func openStore(cfg config.Config, optional bool) (*storage.Store, error) {
	dsn := cfg.Storage.DSN
	if dsn == "" {
		dsn = defaultDBPath
	}

	store, err := storage.Open(dsn)
	if err != nil {
		if optional {
			fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
			return nil, nil
		}
		return nil, fmt.Errorf("opening records database: %w", err)
	}
	return store, nil
}
