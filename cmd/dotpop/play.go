package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/layouts"
	"github.com/vovakirdan/dotpop/internal/platform/tui"
	"github.com/vovakirdan/dotpop/internal/registry"
)

var (
	flagPlayLayout     string
	flagPlayLayoutsDir string
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a board",
	Long: `Start playing the given board preset (default: classic), or a fixed
starting board from a layout file.

Controls:
  Arrows/WASD/hjkl  - Move cursor
  Space/Enter       - Pop the region under the cursor
  Mouse click       - Pop the clicked region
  P                 - Pause
  R                 - New board
  Ctrl+S            - Save screenshot
  Q/Esc/Ctrl+C      - Quit

Examples:
  dotpop play
  dotpop play wide
  dotpop play --seed 42 small
  dotpop play --layout rings
  dotpop play --layout ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayLayout, "layout", "", "Layout ID or YAML file to start from")
	playCmd.Flags().StringVar(&flagPlayLayoutsDir, "layouts-dir", "layouts", "Directory searched for layout IDs")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "classic"
	if len(args) > 0 {
		gameID = args[0]
	}

	var game registry.Game
	if flagPlayLayout != "" {
		l, err := layouts.Resolve(flagPlayLayoutsDir, flagPlayLayout)
		if err != nil {
			fatal(logger, "could not load layout", err)
		}
		g, err := dots.NewFromLayout(l, dots.Animation())
		if err != nil {
			fatal(logger, "invalid layout", err)
		}
		game = g
	} else {
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'dotpop list' to see available boards.")
			os.Exit(1)
		}
		g, err := registry.Create(gameID)
		if err != nil {
			fatal(logger, "could not create board", err)
		}
		game = g
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal(logger, "error running board", runErr)
	}
}
