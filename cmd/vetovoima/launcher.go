package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vetovoima/internal/games/vetovoima"
	"github.com/vovakirdan/vetovoima/internal/platform/tui"
)

// runLauncher loops menu -> difficulty -> game until the player quits.
// The difficulty picker is skipped when --difficulty is given.
func runLauncher(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	audio := startSound()
	defer stopSound(audio)

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if flagDifficulty == "" {
			preset, chosen, diffErr := tui.RunDifficultySelector(cfg)
			if diffErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", diffErr)
				continue
			}
			if !chosen {
				continue
			}
			//nolint:errcheck // Presets from the picker are always valid
			vetovoima.SetDifficultyPreset(string(preset))
		}

		// New level layout for every game unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := play(menuResult.GameID, store, cfg, audio); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
