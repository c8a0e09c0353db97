package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sub-arcade/internal/platform/tui"
	"github.com/vovakirdan/sub-arcade/internal/registry"
	"github.com/vovakirdan/sub-arcade/internal/storage"
)

var (
	flagStats bool
	flagTUI   bool
	flagRuns  int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a variant (default: submarine).

With --stats, also print run statistics for every variant played.
With --runs N, also list the N best recorded runs of the variant.
With --clear, erase the variant's high scores and run history.
With --tui, browse all boards interactively.

Examples:
  subrun scores
  subrun scores submarine_classic
  subrun scores --stats
  subrun scores --runs 5
  subrun scores --clear submarine_classic
  subrun scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Print run statistics")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Open the interactive high-score screen")
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 0, "List the best N recorded runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Erase high scores and run history")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "tui")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "submarine"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown variant %q, run 'subrun list' to see available variants", gameID)
	}

	logger, closeLog := newLogger(nil, "")
	defer closeLog()

	env, closeEnv := openEnv(logger)
	defer closeEnv()

	if flagTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(env, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if flagClear {
		return clearScores(ctx, env, gameID, game.Title())
	}

	entries := env.Board(gameID).Load(ctx)

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'subrun play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
		fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "----", "-----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, e.Name, e.Score, e.Date)
		}
	}

	if flagRuns <= 0 && !flagStats {
		return nil
	}

	fmt.Println()
	if env.Store == nil {
		fmt.Println("Run history needs the scores database.")
		return nil
	}

	if flagRuns > 0 {
		runs, err := env.Store.TopRuns(ctx, gameID, flagRuns)
		if err != nil {
			return err
		}
		printRuns(runs)
	}

	if flagStats {
		all, err := env.Store.AllStats(ctx)
		if err != nil {
			return err
		}
		if flagRuns > 0 {
			fmt.Println()
		}
		printStats(all)
	}
	return nil
}

func clearScores(ctx context.Context, env *tui.Env, gameID, title string) error {
	if err := env.Board(gameID).Reset(ctx); err != nil {
		return err
	}
	if env.Store != nil {
		if err := env.Store.ClearRuns(ctx, gameID); err != nil {
			return err
		}
	}
	env.Logger.Info("scores cleared", "variant", gameID)
	fmt.Printf("Cleared high scores and run history for %s.\n", title)
	return nil
}

func printRuns(runs []storage.Run) {
	fmt.Println("Best runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %8s  %6s  %6s  %s\n", "Rank", "Score", "Ticks", "Pearls", "Played")
	for i, r := range runs {
		fmt.Printf("  %-4d  %8d  %6d  %6d  %s\n",
			i+1, r.Score, r.Ticks, r.Bonuses, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(all map[string]*storage.Stats) {
	fmt.Println("Run statistics")
	fmt.Println()
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %6s  %8s  %8s  %6s  %s\n", "Variant", "Runs", "Best", "Avg", "Pearls", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-18s  %6d  %8d  %8.0f  %6d  %s\n",
			id, st.Runs, st.HighScore, st.AvgScore, st.Bonuses, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
