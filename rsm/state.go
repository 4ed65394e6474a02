// Package rsm is the Recursive State Machine model and interpreter
// (spec §3, §4.1): a set of nonterminal automata, each with a start
// state, whose states carry labeled outgoing edges to terminals or to
// other nonterminals. Grammar construction — turning grammar source
// into an RSM — is out of scope here (spec §1); this package only
// interprets an already-built RSM, the way vartan's grammar package
// interprets an already-built parsing table rather than a raw BNF
// string.
package rsm

import (
	"fmt"

	"github.com/nihei9/rsmgll/symbol"
)

// StateID identifies an RSM state within one RSM. IDs are dense and
// assigned by Builder in creation order, so a State can also be used
// as a slice index by callers that want an arena keyed by StateID.
type StateID uint32

func (s StateID) String() string {
	return fmt.Sprintf("q%d", uint32(s))
}

// terminalEdge and nonterminalEdge record one label's successor set,
// in the order the label was first seen by the builder, so that
// State's edge iteration is deterministic (spec §4.1: "iteration order
// ... must be fixed").
type terminalEdge struct {
	term    symbol.Terminal
	targets []StateID
}

type nonterminalEdge struct {
	nt      symbol.Nonterminal
	targets []StateID
}

// State is one node of one nonterminal's automaton.
type State struct {
	id          StateID
	nonterminal symbol.Nonterminal
	isStart     bool
	isFinal     bool

	termEdges   []terminalEdge
	termIndex   map[symbol.Terminal]int // index into termEdges
	ntEdges     []nonterminalEdge
	ntIndex     map[symbol.Nonterminal]int // index into ntEdges
}

func (s *State) ID() StateID                    { return s.id }
func (s *State) Nonterminal() symbol.Nonterminal { return s.nonterminal }
func (s *State) IsStart() bool                   { return s.isStart }
func (s *State) IsFinal() bool                   { return s.isFinal }

// TerminalEdge is one (terminal, successor) step surfaced to the
// driver during edge enumeration (spec §4.5 step 5).
type TerminalEdge struct {
	Terminal symbol.Terminal
	Target   StateID
}

// TerminalEdges returns, in deterministic first-seen order, every
// (terminal, target) pair reachable from s. A terminal with multiple
// successors (ambiguous RSM) yields one TerminalEdge per successor,
// successors themselves also in first-seen order.
func (s *State) TerminalEdges() []TerminalEdge {
	out := make([]TerminalEdge, 0, len(s.termEdges))
	for _, e := range s.termEdges {
		for _, tgt := range e.targets {
			out = append(out, TerminalEdge{Terminal: e.term, Target: tgt})
		}
	}
	return out
}

// TargetsForTerminal returns the successor states for exactly one
// terminal, in first-seen order, without allocating the full edge
// list. Used by the driver's scan step (spec §4.5 step 5) which only
// cares about the terminal actually present on the current input edge.
func (s *State) TargetsForTerminal(t symbol.Terminal) []StateID {
	if s.termIndex == nil {
		return nil
	}
	i, ok := s.termIndex[t]
	if !ok {
		return nil
	}
	return s.termEdges[i].targets
}

// NonterminalEdge is one (nonterminal, successor) step (spec §4.5 step 6).
type NonterminalEdge struct {
	Nonterminal symbol.Nonterminal
	Target      StateID
}

// NonterminalEdges returns, in deterministic first-seen order, every
// (nonterminal, target) pair reachable from s.
func (s *State) NonterminalEdges() []NonterminalEdge {
	out := make([]NonterminalEdge, 0, len(s.ntEdges))
	for _, e := range s.ntEdges {
		for _, tgt := range e.targets {
			out = append(out, NonterminalEdge{Nonterminal: e.nt, Target: tgt})
		}
	}
	return out
}

// ExpectedTerminals lists the terminals this state can consume,
// first-seen order. Used by the recovery layer to synthesize
// insert-token edges (spec §4.6).
func (s *State) ExpectedTerminals() []symbol.Terminal {
	out := make([]symbol.Terminal, 0, len(s.termEdges))
	for _, e := range s.termEdges {
		out = append(out, e.term)
	}
	return out
}
