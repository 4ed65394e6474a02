package rsm

import (
	"fmt"

	vartanerr "github.com/nihei9/rsmgll/error"
	"github.com/nihei9/rsmgll/symbol"
)

// Builder assembles an RSM state by state. It is the programmatic
// input surface spec §6 describes ("Grammar/RSM: rsm.startState,
// state.isStart/isFinal, state.terminalEdges, state.nonterminalEdges")
// — a way to hand the core an already-built RSM, not a grammar
// compiler. The grammar-combinator DSL that would normally produce
// these calls is an external collaborator (spec §1) and out of scope.
type Builder struct {
	table        *symbol.Table
	states       []*State
	nonterminals map[symbol.Nonterminal]*Nonterminal
	start        symbol.Nonterminal
	haveStart    bool
}

func NewBuilder(table *symbol.Table) *Builder {
	return &Builder{
		table:        table,
		nonterminals: map[symbol.Nonterminal]*Nonterminal{},
	}
}

// Nonterminal registers nonterminal name (idempotent) and returns its
// ID. The automaton's start state is attached later via AddState(...,
// isStart=true) since a nonterminal's states don't exist until built.
func (b *Builder) Nonterminal(name string) symbol.Nonterminal {
	id := b.table.InternNonterminal(name)
	if _, ok := b.nonterminals[id]; !ok {
		b.nonterminals[id] = &Nonterminal{id: id, name: name}
	}
	return id
}

// SetStartNonterminal designates the grammar's start symbol S (spec
// §4.5 acceptance rule references it as startNonterminal).
func (b *Builder) SetStartNonterminal(nt symbol.Nonterminal) {
	b.start = nt
	b.haveStart = true
}

// AddState creates a new state owned by nt and returns its ID. Exactly
// one state per nonterminal must be created with isStart=true (spec
// §3 invariant); Build validates this.
func (b *Builder) AddState(nt symbol.Nonterminal, isStart, isFinal bool) StateID {
	id := StateID(len(b.states))
	s := &State{
		id:          id,
		nonterminal: nt,
		isStart:     isStart,
		isFinal:     isFinal,
		termIndex:   map[symbol.Terminal]int{},
		ntIndex:     map[symbol.Nonterminal]int{},
	}
	b.states = append(b.states, s)
	if isStart {
		if ntRec, ok := b.nonterminals[nt]; ok {
			ntRec.startState = id
		}
	}
	return id
}

// AddTerminalEdge adds `from --t--> to`. Successor sets preserve the
// order edges were added (spec §4.1 determinism requirement).
func (b *Builder) AddTerminalEdge(from StateID, t symbol.Terminal, to StateID) {
	s := b.states[from]
	i, ok := s.termIndex[t]
	if !ok {
		i = len(s.termEdges)
		s.termIndex[t] = i
		s.termEdges = append(s.termEdges, terminalEdge{term: t})
	}
	s.termEdges[i].targets = append(s.termEdges[i].targets, to)
}

// AddNonterminalEdge adds `from --N--> to` (an RSM "call" edge).
func (b *Builder) AddNonterminalEdge(from StateID, nt symbol.Nonterminal, to StateID) {
	s := b.states[from]
	i, ok := s.ntIndex[nt]
	if !ok {
		i = len(s.ntEdges)
		s.ntIndex[nt] = i
		s.ntEdges = append(s.ntEdges, nonterminalEdge{nt: nt})
	}
	s.ntEdges[i].targets = append(s.ntEdges[i].targets, to)
}

// Build validates and freezes the RSM. It enforces the one invariant
// spec §3 calls out explicitly: exactly one start state per
// nonterminal.
func (b *Builder) Build() (*RSM, error) {
	if !b.haveStart {
		return nil, &vartanerr.GrammarError{Cause: fmt.Errorf("no start nonterminal set")}
	}
	seen := map[symbol.Nonterminal]StateID{}
	for _, s := range b.states {
		if !s.isStart {
			continue
		}
		if prev, ok := seen[s.nonterminal]; ok {
			return nil, &vartanerr.GrammarError{
				State: s.id,
				Cause: fmt.Errorf("nonterminal %v has more than one start state: %v and %v", s.nonterminal, prev, s.id),
			}
		}
		seen[s.nonterminal] = s.id
	}
	for nt := range b.nonterminals {
		if _, ok := seen[nt]; !ok {
			return nil, &vartanerr.GrammarError{Cause: fmt.Errorf("nonterminal %v has no start state", nt)}
		}
	}
	if _, ok := b.nonterminals[b.start]; !ok {
		return nil, &vartanerr.GrammarError{Cause: fmt.Errorf("start nonterminal %v was never registered", b.start)}
	}

	return &RSM{
		states:       b.states,
		nonterminals: b.nonterminals,
		start:        b.start,
	}, nil
}
