// vetovoima is a terminal gravity-steering game: drive around the inside of
// a ring, fight the gravity well at its center and reach the goal before the
// countdown runs out.
//
// Usage:
//
//	vetovoima                   - Start the launcher menu
//	vetovoima play [variant]    - Play a variant directly
//	vetovoima list              - List available variants
//	vetovoima scores [variant]  - Show the best runs
//	vetovoima serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.vetovoima/runs.db)
//	--config <path>      - Use a custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--log-file <path>    - Write debug logs to a file
//	--sound              - Play sound cues
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/games/vetovoima"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vetovoima",
	Short: "Vetovoima - steer against gravity in your terminal",
	Long: `Vetovoima is a terminal game about gravity. Drive along the inside of
a ring of debris, push and pull the gravity well at its center and reach
the goal before the countdown runs out. Every goal starts a new level.

Running without a command opens the launcher menu.

Available commands:
  play     - Play a variant directly
  list     - Show all variants
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  vetovoima
  vetovoima play
  vetovoima play vetovoima_cycle --difficulty hard
  vetovoima serve --ssh :2222
  vetovoima scores`,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	Run:               runLauncher,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vetovoima/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound cues")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// logFile is the open --log-file, closed after the command ran.
var logFile *os.File

// setup checks the game configuration and applies the global flags to the
// game package. A broken config file is fatal here rather than in the game,
// which would fall back to the defaults.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if _, err := config.Load(flagConfig); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	vetovoima.SetConfigPath(flagConfig)

	if err := vetovoima.SetDifficultyPreset(flagDifficulty); err != nil {
		return err
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
	}
	vetovoima.SetLogger(newLogger(logFile))
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if logFile != nil {
		logFile.Close()
	}
}

// newLogger returns a debug logger writing to f, or a discarding one.
// Local play owns the terminal, so logs never go to stderr.
func newLogger(f *os.File) *log.Logger {
	if f == nil {
		return log.New(io.Discard)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "vetovoima",
	})
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		DevTools: os.Getenv("DEV_TOOLS") == "1",
	}
}
