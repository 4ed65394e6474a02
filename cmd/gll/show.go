package main

import (
	"fmt"
	"os"

	"github.com/nihei9/rsmgll/rsm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar/graph file path>",
		Short:   "Print an RSM's states and edges",
		Example: `  gll show dyck.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	for id := rsm.StateID(0); int(id) < r.NumStates(); id++ {
		s := r.State(id)
		ntName, _ := table.NonterminalText(s.Nonterminal())
		flags := ""
		if s.IsStart() {
			flags += " start"
		}
		if s.IsFinal() {
			flags += " final"
		}
		fmt.Printf("state %v (%v)%v\n", id, ntName, flags)
		for _, e := range s.TerminalEdges() {
			name, _ := table.TerminalText(e.Terminal)
			fmt.Printf("  --%v--> %v\n", name, e.Target)
		}
		for _, e := range s.NonterminalEdges() {
			name, _ := table.NonterminalText(e.Nonterminal)
			fmt.Printf("  ==%v==> %v\n", name, e.Target)
		}
	}
	return nil
}
