package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available demos",
	Long:  `Shows a list of all registered timestep demos.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	demos := registry.List()

	if len(demos) == 0 {
		fmt.Println("No demos available.")
		return
	}

	fmt.Println("Available demos:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, d := range demos {
		maxIDLen = max(maxIDLen, len(d.ID))
		maxTitleLen = max(maxTitleLen, len(d.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Strategy")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------")

	for _, d := range demos {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, d.ID, maxTitleLen, d.Title, d.Description)
	}

	fmt.Println()
	fmt.Println("Run 'timestep play <id>' to run a demo.")
}
