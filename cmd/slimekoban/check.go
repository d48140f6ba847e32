package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slimekoban/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every level of the selected pack",
	Long: `Loads every level of the selected pack (or of the --levels directory)
the same way the game does and reports the ones that cannot be played.

A level is reported when its file is missing, its size does not match the
pack or it does not have exactly one player. A level with more boxes than
goals loads but can never be cleared, so it is reported too.

Examples:
  slimekoban check
  slimekoban check --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	dims := level.ResolveDims(src, cfg.Levels.Dims())
	failed := 0

	fmt.Printf("Checking %s (%d levels, %s)\n", src.Name(), src.Len(), dims)
	fmt.Println()

	for i := 0; i < src.Len(); i++ {
		lvl, loadErr := level.Load(src, i, dims)
		if loadErr != nil {
			failed++
			fmt.Printf("  FAIL %3d  %s: %v\n", i+1, src.Title(i), loadErr)
			continue
		}
		boxes := lvl.Grid.Count(level.BoxSpawn)
		goals := lvl.Grid.Count(level.Goal)
		if boxes > goals {
			failed++
			fmt.Printf("  FAIL %3d  %s: %d boxes but only %d goals\n", i+1, lvl.Title, boxes, goals)
			continue
		}
		note := ""
		if boxes == 0 {
			note = "  (no boxes)"
		}
		fmt.Printf("  ok   %3d  %s: %d boxes, %d goals%s\n", i+1, lvl.Title, boxes, goals, note)
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, src.Len())
	}
	fmt.Println("All levels OK.")
	return nil
}
