package main

import (
	"fmt"
	"os"

	"github.com/nihei9/rsmgll/gll"
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/spf13/cobra"
)

var reparseFlags = struct {
	vertex *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "reparse <grammar/graph file path>",
		Short:   "Cold-parse a file, then incrementally reparse one vertex and compare",
		Example: `  gll reparse --vertex 2 abab.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runReparse,
	}
	reparseFlags.vertex = cmd.Flags().Int("vertex", 0, "vertex to restore descriptors at before reparsing")
	rootCmd.AddCommand(cmd)
}

func runReparse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", args[0], err)
	}
	defer f.Close()

	fs, err := readFileSpec(f)
	if err != nil {
		return err
	}
	r, table, err := buildRSM(fs)
	if err != nil {
		return fmt.Errorf("cannot build RSM: %w", err)
	}
	g, recoverable, err := buildGraph(fs, table)
	if err != nil {
		return fmt.Errorf("cannot build input graph: %w", err)
	}

	var driver *gll.Driver
	if recoverable {
		driver = gll.NewRecovering(r, g.(inputgraph.RecoveryGraph))
	} else {
		driver = gll.New(r, g)
	}

	cold, err := driver.Parse()
	if err != nil {
		return err
	}
	fmt.Println("cold parse:")
	printResult(table, cold)

	warm, err := driver.Reparse(inputgraph.Vertex(*reparseFlags.vertex))
	if err != nil {
		return err
	}
	fmt.Println("\nafter reparse:")
	printResult(table, warm)
	return nil
}
