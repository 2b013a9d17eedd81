package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
)

var (
	flagPlayer string
	flagSort   string
	flagLimit  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your stats and the leaderboard",
	Long: `Display a player's counters, rank and recent games from the stats
database, followed by the leaderboard.

Examples:
  wordle stats
  wordle stats --sort winrate --limit 5
  wordle stats --player ssh:AbC123`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagPlayer, "player", localPlayer, "Player id")
	statsCmd.Flags().StringVar(&flagSort, "sort", stats.SortStreak, "Leaderboard order: streak | winrate")
	statsCmd.Flags().IntVar(&flagLimit, "limit", stats.DefaultLeaderboardLimit, "Leaderboard rows")
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := stats.Open(cfg.Stats.Driver, cfg.Stats.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := cmd.Context()

	st, err := db.Stats(ctx, flagPlayer)
	if err != nil {
		return err
	}
	rank, err := db.Rank(ctx, flagPlayer)
	if err != nil {
		return err
	}

	fmt.Printf("Stats - %s\n\n", flagPlayer)
	fmt.Printf("  Played          %d\n", st.GamesPlayed)
	fmt.Printf("  Win %%           %.2f\n", st.WinRate())
	fmt.Printf("  Current streak  %d\n", st.CurrentStreak)
	fmt.Printf("  Max streak      %d\n", st.MaxStreak)
	fmt.Printf("  Rank            #%d\n\n", rank)

	history, err := db.History(ctx, flagPlayer, 5)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Println("Recent games")
		for _, h := range history {
			result := "lost"
			if h.Won {
				result = fmt.Sprintf("won in %d", h.Attempts)
			}
			fmt.Printf("  %s  %-5s  %s\n", h.PlayedAt.Local().Format("2006-01-02 15:04"), h.Target, result)
		}
		fmt.Println()
	}

	rows, err := db.Leaderboard(ctx, flagSort, flagLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Leaderboard (%s)\n\n", flagSort)
	if len(rows) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'wordle play' to start a streak!")
		return nil
	}
	fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "Rank", "Player", "Played", "Win %", "Max streak")
	fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "----", "------", "------", "-----", "----------")
	for i, r := range rows {
		fmt.Printf("  %-4d  %-24s  %-6d  %-6.2f  %d\n", i+1, r.Player, r.GamesPlayed, r.WinRate, r.MaxStreak)
	}
	return nil
}
