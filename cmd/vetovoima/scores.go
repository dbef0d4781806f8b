package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vetovoima/internal/registry"
	"github.com/vovakirdan/vetovoima/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs",
	Long: `Display the best runs of a variant, ranked by the level reached.
Without a variant, prints a summary of every variant played so far.

Examples:
  vetovoima scores
  vetovoima scores vetovoima
  vetovoima scores vetovoima_cycle --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'vetovoima list' to see available variants.")
		os.Exit(1)
	}

	if err := printRuns(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
}

// printSummary prints one line of stats per registered variant.
func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println("Runs")
	fmt.Println()
	fmt.Printf("  %-18s  %5s  %5s  %6s  %9s  %s\n", "Variant", "Runs", "Best", "Avg", "Played", "Last")
	fmt.Printf("  %-18s  %5s  %5s  %6s  %9s  %s\n", "-------", "----", "----", "---", "------", "----")

	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-18s  %5d  %5s  %6s  %9s  %s\n", g.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-18s  %5d  %5d  %6.1f  %9s  %s\n",
			g.ID, st.RunsCount, st.BestLevel, st.AvgLevel,
			st.TotalTime.Round(time.Second), st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// printRuns prints the best runs of one variant.
func printRuns(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'vetovoima play %s' to record the first run!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %-20s  %s\n", "Rank", "Level", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-20s  %s\n", "----", "-----", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-5d  %-8s  %-20d  %s\n",
			i+1, r.Level, r.Duration.Round(time.Second), r.Seed,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
