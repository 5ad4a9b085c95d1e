// timestep is a terminal laboratory of game-loop timestep strategies.
//
// Usage:
//
//	timestep list              - List available demos
//	timestep play <demo>       - Run a demo
//	timestep menu              - Pick demos interactively
//	timestep trace <demo>      - Run a demo headless and print its trace
//	timestep runs <demo>       - Show recorded runs of a demo
//	timestep serve             - Start SSH server for remote viewing
//	timestep genconf           - Write the default configuration document
//
// Global flags:
//
//	--fps <rate>    - Default presentation frame rate (default: 60)
//	--seed <value>  - RNG seed for jittered schedules
//	--db <path>     - Run log path (default: ~/.timestep/runs.db)
//	--log <path>    - Log file for interactive modes (default: ~/.timestep/timestep.log)
//	--verbose       - Log per-frame diagnostics
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import demos to register them
	_ "github.com/vovakirdan/tui-timestep/internal/demos"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "timestep",
	Short: "Game-loop timestep demos in your terminal",
	Long: `timestep runs small demos that move a body around an 800-unit track,
each under a different game-loop stepping policy: variable delta, fixed
delta, semi-fixed, decoupled physics with interpolation, and vsync-locked.

Available commands:
  list     - Show all available demos
  play     - Run a specific demo
  menu     - Interactive demo picker
  trace    - Headless run with a per-frame trace
  runs     - View recorded runs
  serve    - Start SSH server for remote viewing
  genconf  - Write the default configuration document

Examples:
  timestep list
  timestep play finaltouch
  timestep play fixed --pace slow
  timestep trace semifixed --frames 120 --jitter 0.3 --plot
  timestep serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Default presentation frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.timestep/runs.db", "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.timestep/timestep.log", "Log file for interactive modes")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-frame diagnostics")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genconfCmd)
}

// newLogger builds a logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// fileLogger opens the log file for interactive modes, where stderr would
// corrupt the alternate screen. The returned func closes the file.
// Falls back to a discarding logger if the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "timestep"), func() { f.Close() }
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
