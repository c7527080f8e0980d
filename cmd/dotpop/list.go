package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board presets",
	Long:  `Shows every board preset registered from the configuration.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-24s  %s\n", maxIDLen, "ID", "Size", "Title", "Palette")
	fmt.Printf("  %-*s  %-7s  %-24s  %s\n", maxIDLen, "--", "----", "-----", "-------")

	for _, g := range games {
		size, palette := "-", "-"
		if p, ok := dots.Preset(g.ID); ok {
			size = fmt.Sprintf("%dx%d", p.Width, p.Height)
			palette = strings.Join(p.Palette, ",")
		}
		fmt.Printf("  %-*s  %-7s  %-24s  %s\n", maxIDLen, g.ID, size, g.Title, palette)
	}

	fmt.Println()
	fmt.Println("Run 'dotpop play <id>' to play a board.")
}
