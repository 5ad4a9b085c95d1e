package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/platform/tui"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <demo>",
	Short: "Show recorded runs of a demo",
	Long: `Display the most recent recorded runs of the specified demo.

Runs are recorded when an interactive demo is closed and by
'timestep trace --save'.

Examples:
  timestep runs fixed
  timestep runs finaltouch --limit 25
  timestep runs semifixed --browse
  timestep runs variable --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Open the interactive runs browser")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs of the demo")
}

func runRuns(cmd *cobra.Command, args []string) {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'timestep list' to see available demos.")
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsBrowse {
		cfg := terminalConfig()
		if _, err := tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH, demoID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagRunsClear {
		if err := store.ClearRuns(demoID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared runs of %s.\n", demoID)
		return
	}

	runs, err := store.RecentRuns(demoID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Recorded runs - %s\n", demo.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'timestep play %s' to record one.\n", demoID)
		return
	}

	fmt.Printf("  %-4s  %-11s  %-7s  %-7s  %-8s  %-6s  %-10s  %s\n",
		"#", "Mode", "Frames", "Steps", "Pos", "FPS", "Time", "Date")
	fmt.Printf("  %-4s  %-11s  %-7s  %-7s  %-8s  %-6s  %-10s  %s\n",
		"-", "----", "------", "-----", "---", "---", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-11s  %-7d  %-7d  %-8.1f  %-6.1f  %-10v  %s\n",
			i+1, r.Mode, r.Frames, r.SimSteps, r.FinalPosition, r.AvgFPS,
			r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sum, err := store.Summary(demoID); err == nil {
		fmt.Println()
		fmt.Printf("Total: %d runs, %d simulation steps, avg %.1f fps\n", sum.Runs, sum.TotalSteps, sum.AvgFPS)
	}
}
