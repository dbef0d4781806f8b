package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/platform/tui"
	"github.com/vovakirdan/vetovoima/internal/registry"
	"github.com/vovakirdan/vetovoima/internal/sounds"
	"github.com/vovakirdan/vetovoima/internal/storage"
)

const defaultVariant = "vetovoima"

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: vetovoima).

Controls:
  D/Right     - Accelerate
  A/Left      - Brake / reverse
  W/Up        - Weaken gravity
  S/Down      - Strengthen gravity
  Enter/Space - Start a run, toggle auto-cycle in the menu
  Esc/B       - Back to the title screen
  F2          - Developer overlay
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Variants:
  vetovoima        - Manual gravity control
  vetovoima_cycle  - Gravity cycles on its own

Examples:
  vetovoima play
  vetovoima play vetovoima_cycle
  vetovoima play --difficulty easy --sound
  vetovoima play --config ./my-vetovoima.yaml --log-file debug.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultVariant
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'vetovoima list' to see available variants.")
		os.Exit(1)
	}

	store := openStore()
	defer closeStore(store)

	audio := startSound()
	defer stopSound(audio)

	if err := play(gameID, store, runtimeConfig(), audio); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// play runs one variant until the player quits.
func play(gameID string, store *storage.Store, cfg core.RuntimeConfig, audio *sounds.Manager) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	opts := []tui.ModelOption{tui.WithLogger(newLogger(logFile))}
	if audio != nil {
		opts = append(opts, tui.WithSink(audio))
	}
	return tui.Run(game, store, cfg, opts...)
}

// openStore opens the runs database. Without it the game still works.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

// startSound opens the audio device when --sound is set. A missing device
// only disables sound.
func startSound() *sounds.Manager {
	if !flagSound {
		return nil
	}
	audio := sounds.NewManager(newLogger(logFile))
	if err := audio.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return nil
	}
	return audio
}

func stopSound(audio *sounds.Manager) {
	if audio != nil {
		audio.Cleanup()
	}
}
