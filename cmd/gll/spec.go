package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/symbol"
)

// fileSpec is the on-disk JSON description of an already-built RSM
// plus an input graph (spec §6's input surface, given a concrete
// serialization). It plays the role vartan's spec.CompiledGrammar JSON
// plays for the LALR driver: a plain data format for output already
// produced elsewhere, not a grammar source language. Building this
// file from grammar source is the grammar-combinator DSL's job, out of
// scope here (spec §1).
type fileSpec struct {
	Terminals    []string      `json:"terminals"`
	Nonterminals []string      `json:"nonterminals"`
	Start        string        `json:"start"`
	States       []stateSpec   `json:"states"`
	Graph        graphSpec     `json:"graph"`
}

type stateSpec struct {
	ID               int            `json:"id"`
	Nonterminal      string         `json:"nonterminal"`
	Start            bool           `json:"start"`
	Final            bool           `json:"final"`
	TerminalEdges    []edgeGroup    `json:"terminalEdges"`
	NonterminalEdges []ntEdgeGroup  `json:"nonterminalEdges"`
}

type edgeGroup struct {
	Terminal string `json:"terminal"`
	Targets  []int  `json:"targets"`
}

type ntEdgeGroup struct {
	Nonterminal string `json:"nonterminal"`
	Targets     []int  `json:"targets"`
}

type graphSpec struct {
	Kind     string       `json:"kind"` // "tokens" or "graph"
	Tokens   []string     `json:"tokens"`
	Vertices int          `json:"vertices"`
	Starts   []int        `json:"starts"`
	Finals   []int        `json:"finals"`
	Edges    []edgeSpec   `json:"edges"`
	Recover  bool         `json:"recover"`
}

type edgeSpec struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Terminal string `json:"terminal"`
	Epsilon  bool   `json:"epsilon"`
}

func readFileSpec(r io.Reader) (*fileSpec, error) {
	var fs fileSpec
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, fmt.Errorf("cannot parse grammar/graph file: %w", err)
	}
	return &fs, nil
}

// buildRSM turns a fileSpec into an *rsm.RSM via rsm.Builder, the way
// a generated/compiled grammar would hand the core its RSM.
func buildRSM(fs *fileSpec) (*rsm.RSM, *symbol.Table, error) {
	table := symbol.NewTable()
	b := rsm.NewBuilder(table)

	for _, nt := range fs.Nonterminals {
		b.Nonterminal(nt)
	}
	startNT, ok := table.ToNonterminal(fs.Start)
	if !ok {
		return nil, nil, fmt.Errorf("start nonterminal %q is not declared", fs.Start)
	}
	b.SetStartNonterminal(startNT)

	for _, t := range fs.Terminals {
		table.InternTerminal(t)
	}

	idMap := map[int]rsm.StateID{}
	for _, s := range fs.States {
		nt, ok := table.ToNonterminal(s.Nonterminal)
		if !ok {
			return nil, nil, fmt.Errorf("state %d: unknown nonterminal %q", s.ID, s.Nonterminal)
		}
		id := b.AddState(nt, s.Start, s.Final)
		idMap[s.ID] = id
	}
	for _, s := range fs.States {
		from := idMap[s.ID]
		for _, eg := range s.TerminalEdges {
			term, ok := table.ToTerminal(eg.Terminal)
			if !ok {
				return nil, nil, fmt.Errorf("state %d: unknown terminal %q", s.ID, eg.Terminal)
			}
			for _, tgt := range eg.Targets {
				b.AddTerminalEdge(from, term, idMap[tgt])
			}
		}
		for _, eg := range s.NonterminalEdges {
			nt, ok := table.ToNonterminal(eg.Nonterminal)
			if !ok {
				return nil, nil, fmt.Errorf("state %d: unknown nonterminal %q", s.ID, eg.Nonterminal)
			}
			for _, tgt := range eg.Targets {
				b.AddNonterminalEdge(from, nt, idMap[tgt])
			}
		}
	}

	r, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return r, table, nil
}

func buildGraph(fs *fileSpec, table *symbol.Table) (inputgraph.Graph, bool, error) {
	switch fs.Graph.Kind {
	case "tokens":
		toks := make([]symbol.Terminal, len(fs.Graph.Tokens))
		for i, t := range fs.Graph.Tokens {
			sym, ok := table.ToTerminal(t)
			if !ok {
				return nil, false, fmt.Errorf("token %d: unknown terminal %q", i, t)
			}
			toks[i] = sym
		}
		if fs.Graph.Recover {
			return inputgraph.NewRecoverableTokenChain(toks), true, nil
		}
		return inputgraph.NewTokenChain(toks), false, nil
	case "graph":
		if fs.Graph.Recover {
			return nil, false, fmt.Errorf("recovery mode is only supported for \"tokens\" graphs")
		}
		b := inputgraph.NewBuilder()
		vs := make([]inputgraph.Vertex, fs.Graph.Vertices)
		for i := range vs {
			vs[i] = b.AddVertex()
		}
		for _, v := range fs.Graph.Starts {
			b.SetStart(vs[v])
		}
		for _, v := range fs.Graph.Finals {
			b.SetFinal(vs[v])
		}
		for _, e := range fs.Graph.Edges {
			if e.Epsilon {
				b.AddEdge(vs[e.From], inputgraph.EpsilonLabel(), vs[e.To])
				continue
			}
			term, ok := table.ToTerminal(e.Terminal)
			if !ok {
				return nil, false, fmt.Errorf("edge %d->%d: unknown terminal %q", e.From, e.To, e.Terminal)
			}
			b.AddEdge(vs[e.From], inputgraph.TerminalLabel(term), vs[e.To])
		}
		return b.Build(), false, nil
	default:
		return nil, false, fmt.Errorf("unknown graph kind: %q", fs.Graph.Kind)
	}
}
