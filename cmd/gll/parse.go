package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/nihei9/rsmgll/gll"
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/symbol"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	recover *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar/graph file path>",
		Short:   "Run a cold parse and print the result",
		Example: `  gll parse dyck.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.recover = cmd.Flags().Bool("recover", false, "enable error recovery mode regardless of the file's \"recover\" field")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", args[0], err)
	}
	defer f.Close()

	fs, err := readFileSpec(f)
	if err != nil {
		return err
	}
	if *parseFlags.recover {
		fs.Graph.Recover = true
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

	result, err := driver.Parse()
	if err != nil {
		return err
	}

	printResult(table, result)
	return nil
}

func printResult(table *symbol.Table, result *gll.Result) {
	root := result.Root()
	if root == nil {
		fmt.Println("parse failed: no accepting derivation")
	} else {
		name, _ := table.NonterminalText(root.Nonterminal())
		fmt.Printf("root: %v [%v,%v] weight=%v\n", name, root.LeftExtent(), root.RightExtent(), root.Weight())
	}

	pairs := make([]gll.Pair, 0, len(result.Reachability))
	for p := range result.Reachability {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Start != pairs[j].Start {
			return pairs[i].Start < pairs[j].Start
		}
		return pairs[i].End < pairs[j].End
	})
	fmt.Println("reachability:")
	for _, p := range pairs {
		fmt.Printf("  %v -> weight %v\n", p, result.Reachability[p])
	}
}
