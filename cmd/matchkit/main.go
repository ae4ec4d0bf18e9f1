// matchkit is a turn-based match coordination engine for two-player
// asynchronous games.
//
// Usage:
//
//	matchkit classify <snapshot.yaml>  - Classify a match snapshot into buckets
//	matchkit simulate <scenario>       - Drive a scripted match through the engine
//	matchkit scenarios                 - List available scripted scenarios
//	matchkit history                   - Show archived match results
//
// Global flags:
//
//	--config <path>  - Engine config file (default: search order)
//	--db <path>      - Result archive path (default: ~/.matchkit/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matchkit",
	Short: "Matchkit - turn-based match coordination engine",
	Long: `Matchkit classifies turn-based match snapshots and runs the
turn-transition engine for two-player asynchronous games.

Available commands:
  classify   - Classify a YAML match snapshot into display buckets
  simulate   - Drive a scripted scenario through the coordinator
  scenarios  - List available scripted scenarios
  history    - View archived match results

Examples:
  matchkit classify snapshot.yaml
  matchkit simulate duel
  matchkit scenarios
  matchkit history --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to engine config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.matchkit/results.db", "Path to result archive database")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(historyCmd)
}
