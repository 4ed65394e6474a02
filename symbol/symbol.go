// Package symbol gives terminals and nonterminals stable, comparable
// identity. It plays the role vartan's grammar/symbol package plays for
// the LALR tables: a small interned-string table backing compact
// integer IDs, so the rest of the engine can use value equality
// instead of string comparison on every descriptor.
package symbol

import "fmt"

// Terminal is an opaque, value-equal token identity. A Table issues
// IDs densely from 0, so 0 is a real terminal; callers use OptTerminal
// to represent the "no terminal" (epsilon) case instead of overloading 0.
type Terminal uint32

func (t Terminal) String() string {
	return fmt.Sprintf("t%d", uint32(t))
}

// OptTerminal is the (terminal?) field of an input-edge label: present
// for a real token edge, absent for an epsilon edge.
type OptTerminal struct {
	Terminal Terminal
	Ok       bool
}

func Some(t Terminal) OptTerminal { return OptTerminal{Terminal: t, Ok: true} }
func None() OptTerminal           { return OptTerminal{} }

// Nonterminal is an opaque, value-equal nonterminal identity.
type Nonterminal uint32

func (n Nonterminal) String() string {
	return fmt.Sprintf("n%d", uint32(n))
}

// Table interns terminal and nonterminal names into Terminal/Nonterminal
// IDs, mirroring the writer/reader split of vartan's SymbolTable.
type Table struct {
	termText2Sym map[string]Terminal
	termSym2Text []string
	ntText2Sym   map[string]Nonterminal
	ntSym2Text   []string
}

func NewTable() *Table {
	return &Table{
		termText2Sym: map[string]Terminal{},
		termSym2Text: []string{},
		ntText2Sym:   map[string]Nonterminal{},
		ntSym2Text:   []string{},
	}
}

func (t *Table) InternTerminal(text string) Terminal {
	if s, ok := t.termText2Sym[text]; ok {
		return s
	}
	s := Terminal(len(t.termSym2Text))
	t.termText2Sym[text] = s
	t.termSym2Text = append(t.termSym2Text, text)
	return s
}

func (t *Table) InternNonterminal(text string) Nonterminal {
	if s, ok := t.ntText2Sym[text]; ok {
		return s
	}
	s := Nonterminal(len(t.ntSym2Text))
	t.ntText2Sym[text] = s
	t.ntSym2Text = append(t.ntSym2Text, text)
	return s
}

func (t *Table) TerminalText(s Terminal) (string, bool) {
	i := int(s)
	if i < 0 || i >= len(t.termSym2Text) {
		return "", false
	}
	return t.termSym2Text[i], true
}

func (t *Table) NonterminalText(s Nonterminal) (string, bool) {
	i := int(s)
	if i < 0 || i >= len(t.ntSym2Text) {
		return "", false
	}
	return t.ntSym2Text[i], true
}

func (t *Table) ToTerminal(text string) (Terminal, bool) {
	s, ok := t.termText2Sym[text]
	return s, ok
}

func (t *Table) ToNonterminal(text string) (Nonterminal, bool) {
	s, ok := t.ntText2Sym[text]
	return s, ok
}
