// dotpop is a tile-popping puzzle for the terminal, over SSH, and over WebSocket.
//
// Usage:
//
//	dotpop list                - List board presets
//	dotpop play [preset]       - Play a board
//	dotpop menu                - Pick boards interactively
//	dotpop serve               - Start the SSH (and optional WebSocket) server
//	dotpop history [preset]    - Show stored sessions
//	dotpop sim x,y ...         - Apply selections headlessly and print each step
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.dotpop/sessions.db)
//	--config <path>      - Board presets and animation YAML
//	--log-level <level>  - debug, info, warn, error
//
// Flag defaults can also come from the environment or a .env file:
// DOTPOP_DB, DOTPOP_LOG_LEVEL, DOTPOP_SSH_ADDR, DOTPOP_WS_ADDR.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/vovakirdan/dotpop/internal/config"
	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/games/dots"
	"github.com/vovakirdan/dotpop/internal/logging"
	"github.com/vovakirdan/dotpop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger = logging.Discard()
)

// envFlags maps flag names to the environment variables that can set them.
var envFlags = map[string]string{
	"db":        "DOTPOP_DB",
	"log-level": "DOTPOP_LOG_LEVEL",
	"ssh":       "DOTPOP_SSH_ADDR",
	"ws":        "DOTPOP_WS_ADDR",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotpop",
	Short: "dotpop - pop connected dots in your terminal",
	Long: `dotpop is a tile-matching puzzle: select a dot and its whole
same-colored region pops, the dots above fall, and new ones drop in.

Available commands:
  list     - Show all board presets
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server (plus WebSocket with --ws)
  history  - View stored sessions
  sim      - Run selections headlessly

Examples:
  dotpop list
  dotpop play classic
  dotpop play --layout layouts/rings.yaml
  dotpop serve --ssh :2222 --ws :8080
  dotpop sim --seed 7 3,4 0,0`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dotpop/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to board presets YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simCmd)
}

// setup loads .env, applies environment defaults, configures logging and
// installs the board presets before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if err := applyEnv(cmd.Flags()); err != nil {
		return err
	}

	if err := logging.SetLevel(flagLogLevel); err != nil {
		return err
	}
	logger = logging.New("dotpop")

	cfg, err := config.LoadDots(flagConfig)
	if err != nil {
		return fmt.Errorf("loading board config: %w", err)
	}
	if err := dots.Configure(cfg); err != nil {
		return fmt.Errorf("board config: %w", err)
	}
	logger.Debug("board config loaded", "presets", cfg.PresetIDs())
	return nil
}

// applyEnv sets every flag left at its default from its environment variable.
func applyEnv(flags *pflag.FlagSet) error {
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

// openStore opens the sessions database, or returns nil so play continues
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg.WithDefaults()
}

// fatal logs err and exits.
func fatal(l *log.Logger, msg string, err error) {
	l.Error(msg, "error", err)
	os.Exit(1)
}
