package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ikbal01/tanks-game/internal/platform/tui"
	"github.com/Ikbal01/tanks-game/internal/registry"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

var flagScoresPrint bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent battles",
	Long: `Open the scoreboard, or print it with --print.

Examples:
  tanks scores
  tanks scores --print`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPrint, "print", false, "Print the top 10 of each mode instead of opening the scoreboard")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !flagScoresPrint {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	}

	out := cmd.OutOrStdout()
	for _, g := range registry.List() {
		scores, err := store.TopScores(g.ID, 10)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "High Scores - %s\n\n", g.Title)
		if len(scores) == 0 {
			fmt.Fprintf(out, "  No scores recorded yet.\n\n")
			continue
		}
		fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Stage", "Date")
		fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
		for i, e := range scores {
			fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %s\n", i+1, e.Score, e.Stage, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(out)
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	for _, g := range registry.List() {
		if s, ok := stats[g.ID]; ok {
			fmt.Fprintf(out, "%s: %d battles, best stage %d, average score %.0f\n", g.Title, s.GamesCount, s.BestStage, s.AvgScore)
		}
	}
	return nil
}
