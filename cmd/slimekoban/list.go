package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slimekoban/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and levels",
	Long: `Shows the registered level packs, then the levels of the selected
pack (or of the --levels directory) with their titles.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	packs := registry.List()

	fmt.Println("Available packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, p.ID, p.Levels, p.Title)
	}
	fmt.Println()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Levels in %s:\n", src.Name())
	fmt.Println()
	for i := 0; i < src.Len(); i++ {
		fmt.Printf("  %3d  %s\n", i+1, src.Title(i))
	}
	fmt.Println()
	fmt.Println("Run 'slimekoban play <level>' to start at a level.")
	return nil
}
