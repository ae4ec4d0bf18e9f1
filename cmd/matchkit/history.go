package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beleapps/matchkit/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryWins  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived match results",
	Long: `Display the most recently archived match results.

Examples:
  matchkit history
  matchkit history --limit 20
  matchkit history --wins G:1001`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of results to show")
	historyCmd.Flags().StringVar(&flagHistoryWins, "wins", "", "Also show the win count for the given player")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.RecentResults(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No results archived yet.")
		fmt.Println()
		fmt.Println("Run 'matchkit simulate <id> --archive' to record one.")
		return
	}

	fmt.Println("Archived results:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-14s  %-10s  %-10s  %-7s  %-9s  %-6s  %s\n",
		"Match", "Local", "Outcome", "Score", "End", "Rounds", "Date")
	fmt.Printf("  %-14s  %-10s  %-10s  %-7s  %-9s  %-6s  %s\n",
		"-----", "-----", "-------", "-----", "---", "------", "----")

	// Print results
	for _, e := range entries {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		score := fmt.Sprintf("%d:%d", e.Score1, e.Score2)
		fmt.Printf("  %-14s  %-10s  %-10s  %-7s  %-9s  %-6d  %s\n",
			e.MatchID, e.LocalPlayer, e.LocalOutcome, score, e.EndReason, e.Rounds, dateStr)
	}

	if flagHistoryWins != "" {
		wins, err := store.Wins(flagHistoryWins)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error counting wins: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Printf("Wins for %s: %d\n", flagHistoryWins, wins)
	}
}
