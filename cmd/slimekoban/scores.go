package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slimekoban/internal/platform/tui"
)

var (
	flagScoresTUI bool
	flagRecent    int
	flagClear     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show best results per level",
	Long: `Display the best result (fewest moves, then fewest pushes) for every
cleared level of a pack. Without an argument the selected pack is shown.

Examples:
  slimekoban scores
  slimekoban scores classic --recent 5
  slimekoban scores --tui
  slimekoban scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse records in an interactive table")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent completions")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all records of the pack")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	pack := cfg.Levels.Pack
	if len(args) == 1 {
		pack = args[0]
	} else if cfg.Levels.Dir != "" {
		src, srcErr := openSource(cfg)
		if srcErr != nil {
			return srcErr
		}
		pack = src.Name()
	}

	if flagClear {
		if err := store.Clear(pack); err != nil {
			return fmt.Errorf("clearing records: %w", err)
		}
		fmt.Printf("Records of %s cleared.\n", pack)
		return nil
	}

	best, err := store.BestPerLevel(pack)
	if err != nil {
		return fmt.Errorf("retrieving records: %w", err)
	}

	fmt.Printf("Best results - %s (%s)\n", pack, store.Backend())
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No levels cleared yet.")
		fmt.Println()
		fmt.Println("Run 'slimekoban play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-5s  %-20s  %-5s  %-6s  %-10s  %s\n", "Level", "Title", "Moves", "Pushes", "Player", "Date")
	fmt.Printf("  %-5s  %-20s  %-5s  %-6s  %-10s  %s\n", "-----", "-----", "-----", "------", "------", "----")
	for _, c := range best {
		fmt.Printf("  %-5d  %-20s  %-5d  %-6d  %-10s  %s\n",
			c.Level, truncate(c.Title, 20), c.Moves, c.Pushes, playerName(c.Player), c.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, statsErr := store.Stats(pack); statsErr == nil {
		fmt.Println()
		fmt.Printf("Levels cleared: %d  Completions: %d  Total moves: %d\n",
			stats.LevelsCleared, stats.Completions, stats.TotalMoves)
	}

	if flagRecent > 0 {
		recent, err := store.Recent(pack, flagRecent)
		if err != nil {
			return fmt.Errorf("retrieving recent records: %w", err)
		}
		fmt.Println()
		fmt.Println("Recent:")
		for _, c := range recent {
			fmt.Printf("  %s  level %d  %d moves  %d pushes  %s\n",
				c.CreatedAt.Format("2006-01-02 15:04"), c.Level, c.Moves, c.Pushes, playerName(c.Player))
		}
	}
	return nil
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
