package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/config"
)

var flagGenconfOut string

var genconfCmd = &cobra.Command{
	Use:   "genconf",
	Short: "Write the default configuration document",
	Long: `Write the default configuration of every demo as one YAML document.

Use "-" as the output path to print to stdout. Single demo sections can be
copied into ~/.timestep/configs/<demo>.yaml to override the defaults.

Examples:
  timestep genconf
  timestep genconf --out ./configs/all.yaml
  timestep genconf --out -`,
	Args: cobra.NoArgs,
	Run:  runGenconf,
}

func init() {
	genconfCmd.Flags().StringVar(&flagGenconfOut, "out", "conf.yaml", "Output path")
}

func runGenconf(_ *cobra.Command, _ []string) {
	if flagGenconfOut == "-" {
		data, err := config.GenerateDocument()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	if err := config.WriteDocument(flagGenconfOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagGenconfOut)
}
