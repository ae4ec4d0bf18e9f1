package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beleapps/matchkit/internal/config"
	"github.com/beleapps/matchkit/internal/coordinator"
	"github.com/beleapps/matchkit/internal/scenario"
	"github.com/beleapps/matchkit/internal/storage"
)

var flagArchive bool

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Drive a scripted scenario through the coordinator",
	Long: `Play a scripted two-player scenario through the turn-transition
engine and print every instruction the coordinator issues.

Moves by the local player go through the engine; the opponent's moves
are computed the way their own client would and pushed back in as
match updates.

Examples:
  matchkit simulate duel
  matchkit simulate forfeit --archive`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagArchive, "archive", false, "Record the concluded result in the archive database")
}

// archiveRecorder wraps the store so the command can wait for the
// coordinator's asynchronous save before exiting.
type archiveRecorder struct {
	store *storage.Store
	done  chan error
}

func (r *archiveRecorder) RecordResult(rec coordinator.MatchRecord) error {
	err := r.store.RecordResult(rec)
	r.done <- err
	return err
}

func runSimulate(cmd *cobra.Command, args []string) {
	s, err := scenario.Lookup(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'matchkit scenarios' to see available scenarios.")
		os.Exit(1)
	}

	engineCfg, err := config.LoadEngine(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := coordinator.Config{
		TotalRounds:   engineCfg.Rules.TotalRounds,
		TurnTimeout:   time.Duration(engineCfg.Relay.TurnTimeoutSeconds) * time.Second,
		MessageBuffer: engineCfg.Relay.MessageBuffer,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "matchkit",
	})

	var recorder *archiveRecorder
	if flagArchive {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		recorder = &archiveRecorder{store: store, done: make(chan error, 1)}
	}

	fmt.Printf("Scenario: %s - %s\n", s.ID, s.Title)
	fmt.Printf("Players: %s (local) vs %s, %d rounds\n", s.LocalID, s.OpponentID, s.Rounds)
	fmt.Println()

	var rec coordinator.ResultRecorder
	if recorder != nil {
		rec = recorder
	}
	res, err := scenario.Run(s, cfg, logger, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, step := range res.Steps {
		who := "opponent"
		if step.Actor == s.LocalID {
			who = "local"
		}
		action := step.Note
		if step.Instruction != nil {
			action = fmt.Sprintf("%s (%T)", step.Note, step.Instruction)
		}
		fmt.Printf("  %2d. round %d  %-8s  %s\n", i+1, step.Round, who, action)
	}

	fmt.Println()
	if res.Ended {
		fmt.Println("Match ended:")
		for _, p := range res.Final.Participants {
			fmt.Printf("  %-8s  %s\n", p.PlayerID, p.Outcome)
		}
	} else {
		fmt.Println("Match still open.")
		if len(res.Working.Hidden) > 0 {
			fmt.Println("The match is hidden from the local player's list.")
		}
	}

	if recorder != nil {
		// Only a conclusion issued by the local coordinator is recorded;
		// a match the opponent's client closed is theirs to record.
		endedLocally := false
		if res.Ended && len(res.Steps) > 0 {
			_, endedLocally = res.Steps[len(res.Steps)-1].Instruction.(coordinator.EndMatch)
		}
		if endedLocally {
			select {
			case err := <-recorder.done:
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error archiving result: %v\n", err)
					os.Exit(1)
				}
				fmt.Println()
				fmt.Println("Result archived. Run 'matchkit history' to view it.")
			case <-time.After(5 * time.Second):
				fmt.Fprintln(os.Stderr, "Timed out waiting for the archive write.")
				os.Exit(1)
			}
		} else {
			fmt.Println()
			fmt.Println("Nothing to archive: the match did not conclude locally.")
		}
	}
}
