package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-timestep/internal/config"
	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/demos"
	"github.com/vovakirdan/tui-timestep/internal/platform/tui"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

var (
	flagConfig string
	flagPace   string
)

var playCmd = &cobra.Command{
	Use:   "play <demo>",
	Short: "Run a demo",
	Long: `Run the specified demo in the terminal.

Controls:
  P/Space    - Pause the simulation
  R          - Restart
  S          - Toggle slow motion (quarter frame rate)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Pace options override the presentation frame rate:
  slow      - 12 fps
  normal    - 60 fps
  fast      - 144 fps
  uncapped  - 1000 fps

Examples:
  timestep play variable
  timestep play fixed --pace slow
  timestep play finaltouch --config ./my-finaltouch.yaml
  timestep play freephysics --verbose`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Pace preset: slow, normal, fast, uncapped")
	menuCmd.Flags().StringVar(&flagPace, "pace", "", "Pace preset: slow, normal, fast, uncapped")
}

// applyDemoFlags validates and installs the --config and --pace settings.
func applyDemoFlags() error {
	if flagPace != "" {
		if _, err := config.FrameRateForPreset(config.PacePreset(flagPace)); err != nil {
			return err
		}
	}
	demos.SetConfigPath(flagConfig)
	demos.SetPace(config.PacePreset(flagPace))
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: flagFPS,
		Seed:      flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'timestep list' to see available demos.")
		os.Exit(1)
	}

	if err := applyDemoFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		logger.Warn("running without run log", "error", err)
		store = nil
	}

	_, runErr := tui.Run(demo, store, terminalConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
