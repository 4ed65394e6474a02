package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gll",
	Short: "Run a GLL parse over an RSM and an input graph",
	Long: `gll drives the generalized LL parser engine over a
recursive state machine and an input graph read from a JSON file:
- parse:   run a cold parse and print the SPPF root / reachability pairs
- show:    print an RSM's states and edges in readable form
- reparse: run a cold parse, then reparse at one vertex and print both results`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
