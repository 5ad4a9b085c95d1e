package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/platform/tui"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a demo picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to run a demo.
Esc inside a demo returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Run demo
  Tab          - Browse recorded runs
  Q            - Quit

Examples:
  timestep menu
  timestep menu --pace fast
  timestep menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyDemoFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	if err := menuLoop(store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// menuLoop alternates between the picker and whatever it chose until the
// user leaves.
func menuLoop(store *storage.Store, logger *log.Logger) error {
	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		var back bool
		switch res.Choice {
		case tui.ChoiceRuns:
			back, err = tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH, "")
		case tui.ChoiceDemo:
			demo, cerr := registry.Create(res.DemoID)
			if cerr != nil {
				return cerr
			}
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			back, err = tui.Run(demo, store, cfg, logger)
		}
		if err != nil || !back {
			return err
		}
	}
}
