package symbol

import "testing"

func TestInternTerminalIsIdempotent(t *testing.T) {
	table := NewTable()
	a1 := table.InternTerminal("a")
	a2 := table.InternTerminal("a")
	b := table.InternTerminal("b")

	if a1 != a2 {
		t.Errorf("InternTerminal(\"a\") returned different IDs: %v, %v", a1, a2)
	}
	if a1 == b {
		t.Errorf("InternTerminal(\"a\") and InternTerminal(\"b\") collided: %v", a1)
	}

	text, ok := table.TerminalText(a1)
	if !ok || text != "a" {
		t.Errorf("TerminalText(a1) = (%q, %v), want (\"a\", true)", text, ok)
	}
}

func TestTerminalTextOutOfRange(t *testing.T) {
	table := NewTable()
	table.InternTerminal("a")
	if _, ok := table.TerminalText(Terminal(99)); ok {
		t.Error("TerminalText with an unissued ID should report ok=false")
	}
}

func TestOptTerminal(t *testing.T) {
	a := Terminal(3)
	some := Some(a)
	if !some.Ok || some.Terminal != a {
		t.Errorf("Some(a) = %+v", some)
	}
	none := None()
	if none.Ok {
		t.Errorf("None() = %+v, want Ok=false", none)
	}
}

func TestToTerminalUnknown(t *testing.T) {
	table := NewTable()
	if _, ok := table.ToTerminal("nope"); ok {
		t.Error("ToTerminal on an unregistered name should report ok=false")
	}
}
