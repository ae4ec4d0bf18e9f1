package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beleapps/matchkit/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List available scripted scenarios",
	Long:  `Shows all scripted scenarios the simulate command can run.`,
	Run:   runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) {
	infos := scenario.List()

	if len(infos) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print scenarios
	for _, info := range infos {
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, info.Title)
	}

	fmt.Println()
	fmt.Println("Run 'matchkit simulate <id>' to drive a scenario.")
}
