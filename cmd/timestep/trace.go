package main

import (
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/headless"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

var (
	flagTraceFrames    int
	flagTraceFrameTime time.Duration
	flagTraceJitter    float64
	flagTracePlot      bool
	flagTraceSave      bool
	flagTraceEvery     int
)

var traceCmd = &cobra.Command{
	Use:   "trace <demo>",
	Short: "Run a demo headless and print a per-frame trace",
	Long: `Drive a demo with a synthetic frame schedule, without a terminal UI.

Every frame lasts --frame-time, optionally varied by up to --jitter (a
fraction of the frame time) using --seed. The first frame has a zero delta.
The same seed always produces the same trace.

Examples:
  timestep trace fixed
  timestep trace semifixed --frames 120 --jitter 0.5 --seed 7
  timestep trace finaltouch --frame-time 33ms --plot
  timestep trace variable --save`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagTraceFrames, "frames", 60, "Number of frames to run")
	traceCmd.Flags().DurationVar(&flagTraceFrameTime, "frame-time", time.Second/60, "Nominal frame duration")
	traceCmd.Flags().Float64Var(&flagTraceJitter, "jitter", 0, "Relative frame time jitter in [0, 1)")
	traceCmd.Flags().BoolVar(&flagTracePlot, "plot", false, "Plot simulated and rendered positions")
	traceCmd.Flags().BoolVar(&flagTraceSave, "save", false, "Record the run in the run log")
	traceCmd.Flags().IntVar(&flagTraceEvery, "every", 1, "Print every Nth frame")
	traceCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
}

func runTrace(cmd *cobra.Command, args []string) {
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

	schedule := headless.Schedule{
		Frames:    flagTraceFrames,
		FrameTime: flagTraceFrameTime,
		Jitter:    flagTraceJitter,
		Seed:      flagSeed,
	}

	logger := newLogger(os.Stderr, "trace")
	cfg := core.DefaultConfig()
	cfg.Seed = flagSeed

	trace, err := headless.Run(demo, cfg, schedule, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTrace(demo, trace)

	if flagTracePlot {
		fmt.Println()
		fmt.Println(plotTrace(trace))
	}

	if flagTraceSave {
		saveTrace(trace)
	}
}

func printTrace(demo registry.Demo, trace headless.Trace) {
	fmt.Printf("%s (%s)\n\n", demo.Title(), demo.ID())
	fmt.Printf("  %-6s  %-12s  %-5s  %-9s  %-9s  %s\n", "Tick", "Delta", "Steps", "Position", "Rendered", "Alpha")
	fmt.Printf("  %-6s  %-12s  %-5s  %-9s  %-9s  %s\n", "----", "-----", "-----", "--------", "--------", "-----")

	every := max(flagTraceEvery, 1)
	for i, s := range trace.Samples {
		if i%every != 0 && i != len(trace.Samples)-1 {
			continue
		}
		fmt.Printf("  %-6d  %-12v  %-5d  %-9.3f  %-9.3f  %.3f\n",
			s.Frame.Ticks, s.Frame.Delta, s.Steps, s.Position, s.Rendered, s.Alpha)
	}

	sum := trace.Summary
	fmt.Println()
	fmt.Printf("frames: %d  steps: %d  final position: %.3f  fps: %.1f  duration: %v\n",
		sum.Frames, sum.Steps, sum.FinalPosition, sum.AvgFPS, sum.Duration)
}

// plotTrace charts simulated and rendered positions over frames.
func plotTrace(trace headless.Trace) string {
	return asciigraph.PlotMany(
		[][]float64{trace.Positions(), trace.RenderedPositions()},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Green),
		asciigraph.Caption(fmt.Sprintf("position (0-%.0f) per frame: simulated, rendered (green)", timestep.TrackLength)),
	)
}

func saveTrace(trace headless.Trace) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		return
	}
	defer store.Close()

	sum := trace.Summary
	id, err := store.SaveRun(storage.RunEntry{
		DemoID:        sum.DemoID,
		Mode:          storage.ModeHeadless,
		Frames:        sum.Frames,
		SimSteps:      sum.Steps,
		FinalPosition: sum.FinalPosition,
		AvgFPS:        sum.AvgFPS,
		Duration:      sum.Duration,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
		return
	}
	fmt.Printf("saved run #%d\n", id)
}
