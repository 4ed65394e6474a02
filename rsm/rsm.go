package rsm

import (
	"fmt"

	vartanerr "github.com/nihei9/rsmgll/error"
	"github.com/nihei9/rsmgll/symbol"
)

// Nonterminal is one automaton of the RSM: a name plus the state that
// begins it (spec §3 "RSM nonterminal"). Nonterminals are created once
// per grammar by Builder.
type Nonterminal struct {
	id         symbol.Nonterminal
	name       string
	startState StateID
}

func (n *Nonterminal) ID() symbol.Nonterminal { return n.id }
func (n *Nonterminal) Name() string           { return n.name }
func (n *Nonterminal) StartState() StateID    { return n.startState }

// RSM is the whole grammar: every nonterminal's automaton, addressable
// by StateID or by symbol.Nonterminal. It is immutable once built by
// Builder.Build; the core never rewrites it (spec §4.1).
type RSM struct {
	states       []*State
	nonterminals map[symbol.Nonterminal]*Nonterminal
	start        symbol.Nonterminal
}

// State looks up a state by ID. It panics on an out-of-range ID: a
// well-formed driver never manufactures a StateID it didn't receive
// from this RSM, so an out-of-range ID means the caller is handing the
// core state that didn't come from this RSM — a GrammarError, raised
// by the caller via StateOrErr, not a panic deep in the hot path.
func (r *RSM) State(id StateID) *State {
	return r.states[id]
}

// StateOrErr is the checked counterpart of State, for callers (code
// generators, CLI loaders) that cannot guarantee the ID came from this
// RSM (spec §6, "specialized parser MUST raise a grammar-coverage
// error if the RSM references a nonterminal not in the generated
// table").
func (r *RSM) StateOrErr(id StateID) (*State, error) {
	if int(id) < 0 || int(id) >= len(r.states) {
		return nil, &vartanerr.GrammarError{Cause: fmt.Errorf("unknown state id: %v", id)}
	}
	return r.states[id], nil
}

func (r *RSM) Nonterminal(id symbol.Nonterminal) (*Nonterminal, error) {
	nt, ok := r.nonterminals[id]
	if !ok {
		return nil, &vartanerr.GrammarError{Cause: fmt.Errorf("unknown nonterminal id: %v", id)}
	}
	return nt, nil
}

// StartNonterminal is the grammar's start symbol S (spec §4.5
// acceptance rule).
func (r *RSM) StartNonterminal() symbol.Nonterminal {
	return r.start
}

// StartState is the entry state for the start nonterminal's automaton.
func (r *RSM) StartState() (*State, error) {
	nt, err := r.Nonterminal(r.start)
	if err != nil {
		return nil, err
	}
	return r.StateOrErr(nt.StartState())
}

func (r *RSM) NumStates() int { return len(r.states) }
