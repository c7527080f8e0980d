package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotpop/internal/platform/tui"
	"github.com/vovakirdan/dotpop/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start dotpop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
Press Esc or B on a board to return to the menu, Tab in the menu for history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - Session history
  Q            - Quit

Examples:
  dotpop menu
  dotpop menu --fps 30
  dotpop menu --db ./sessions.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH, "")
			if histErr != nil {
				logger.Error("history failed", "error", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create board", "board", menuResult.GameID, "error", err)
			continue
		}

		// Fresh deal each time unless a seed was requested
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.RunGame(game, store, cfg, logger)
		if err != nil {
			logger.Error("error running board", "error", err)
		}
		if !back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
