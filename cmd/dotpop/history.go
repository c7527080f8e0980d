package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotpop/internal/platform/tui"
	"github.com/vovakirdan/dotpop/internal/registry"
	"github.com/vovakirdan/dotpop/internal/storage"
)

var (
	flagHistoryRecent      bool
	flagHistoryLimit       int
	flagHistoryInteractive bool
	flagHistoryClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [preset]",
	Short: "Show stored sessions",
	Long: `Without a preset, summarize every board with stored sessions.
With a preset, list its best sessions (or the most recent with --recent).

Examples:
  dotpop history
  dotpop history classic
  dotpop history classic --recent --limit 20
  dotpop history -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryRecent, "recent", false, "List most recent sessions instead of best")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to list")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse history in the terminal UI")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete stored sessions for the preset")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'dotpop list' to see available boards.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal(logger, "could not open sessions database", err)
	}
	defer store.Close()

	switch {
	case flagHistoryInteractive:
		cfg := terminalConfig()
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH, gameID); err != nil {
			logger.Error("history failed", "error", err)
		}
	case flagHistoryClear:
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a preset")
			return
		}
		if err := store.ClearSessions(gameID); err != nil {
			logger.Error("could not clear sessions", "board", gameID, "error", err)
			return
		}
		fmt.Printf("Cleared sessions for %s.\n", gameID)
	case gameID == "":
		printSummary(store)
	default:
		printSessions(store, gameID)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllGamesStats()
	if err != nil {
		logger.Error("could not read stats", "error", err)
		return
	}

	if len(stats) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-8s  %-6s  %-7s  %-7s  %s\n", "Board", "Sessions", "Best", "Avg", "Largest", "Last played")
	fmt.Printf("  %-12s  %-8s  %-6s  %-7s  %-7s  %s\n", "-----", "--------", "----", "---", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-12s  %-8d  %-6d  %-7.1f  %-7d  %s\n",
			id, s.SessionCount, s.BestRemoved, s.AvgRemoved, s.Largest, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printSessions(store *storage.Store, gameID string) {
	var sessions []storage.Session
	var err error
	label := "Best"
	if flagHistoryRecent {
		label = "Recent"
		sessions, err = store.RecentSessions(gameID, flagHistoryLimit)
	} else {
		sessions, err = store.BestSessions(gameID, flagHistoryLimit)
	}
	if err != nil {
		logger.Error("could not read sessions", "board", gameID, "error", err)
		return
	}

	fmt.Printf("%s sessions - %s\n", label, gameID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dotpop play %s' to record one!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-8s  %-12s  %s\n", "#", "Popped", "Moves", "Largest", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-8s  %-12s  %s\n", "-", "------", "-----", "-------", "----", "------", "----")
	for i, s := range sessions {
		fmt.Printf("  %-4d  %-7d  %-6d  %-7d  %-8s  %-12s  %s\n",
			i+1, s.Removed, s.Selections, s.Largest, formatDuration(s.Duration), s.Player, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
