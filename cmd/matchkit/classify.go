package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beleapps/matchkit/internal/core"
	"github.com/beleapps/matchkit/internal/snapshot"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <snapshot.yaml>",
	Short: "Classify a match snapshot into display buckets",
	Long: `Read a YAML match snapshot, classify every match from the local
player's perspective, and print the resulting buckets along with any
advisory actions (stale removals, auto-wins) and per-match faults.

Examples:
  matchkit classify snapshot.yaml
  matchkit classify testdata/mixed.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
		os.Exit(1)
	}

	snap, err := snapshot.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing snapshot: %v\n", err)
		os.Exit(1)
	}

	ws := core.BuildWorkingSet(snap.Matches, snap.LocalPlayer)

	fmt.Printf("Local player: %s\n", snap.LocalPlayer)
	fmt.Printf("Matches in snapshot: %d\n", len(snap.Matches))
	fmt.Println()

	buckets := []core.Bucket{
		core.BucketLocalTurn,
		core.BucketOpponentTurn,
		core.BucketEnded,
		core.BucketInvitationReceived,
		core.BucketInvitationSent,
		core.BucketSearching,
	}

	// Calculate column width
	maxNameLen := 0
	for _, b := range buckets {
		if len(b.String()) > maxNameLen {
			maxNameLen = len(b.String())
		}
	}

	fmt.Println("Buckets:")
	for _, b := range buckets {
		matches := ws.Bucket(b)
		fmt.Printf("  %-*s  %d", maxNameLen, b.String(), len(matches))
		for i, m := range matches {
			if i == 0 {
				fmt.Print("  (")
			} else {
				fmt.Print(", ")
			}
			fmt.Print(m.ID)
		}
		if len(matches) > 0 {
			fmt.Print(")")
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("Local action needed: %d\n", len(ws.RequiresLocalAction))
	fmt.Printf("Awaiting other players: %d\n", len(ws.AwaitingOther))

	if len(ws.Removals) > 0 {
		fmt.Println()
		fmt.Println("Stale matches to remove:")
		for _, id := range ws.Removals {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(ws.AutoWins) > 0 {
		fmt.Println()
		fmt.Println("Opponent quit, claim the win:")
		for _, id := range ws.AutoWins {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(ws.Hidden) > 0 {
		fmt.Println()
		fmt.Println("Hidden (local player already lost):")
		for _, id := range ws.Hidden {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(ws.Faults) > 0 {
		fmt.Println()
		fmt.Println("Faults:")
		for _, f := range ws.Faults {
			fmt.Printf("  %s: %v\n", f.MatchID, f.Err)
		}
	}
}
