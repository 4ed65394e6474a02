package inputgraph

import "github.com/nihei9/rsmgll/symbol"

// TokenChain is the degenerate, linear case of Graph: a flat sequence
// of terminals, vertex i being "before token i", vertex len(tokens)
// being "after the last token". It is what a conventional string
// parser consumes, expressed in the same input surface the graph
// parser uses, so that scenarios E1/E2/E3/E5 (plain token strings) and
// E6 (genuine graph input) exercise one driver.
//
// This has no dependency on any lexer; a caller wanting to parse real
// source text still needs to tokenize it first (the third-party lexer
// adapter is an external collaborator, spec §1) and hand the resulting
// []symbol.Terminal here.
type TokenChain struct {
	tokens []symbol.Terminal
}

func NewTokenChain(tokens []symbol.Terminal) *TokenChain {
	return &TokenChain{tokens: tokens}
}

func (c *TokenChain) Len() int { return len(c.tokens) }

func (c *TokenChain) StartVertices() []Vertex { return []Vertex{0} }

func (c *TokenChain) IsStartVertex(v Vertex) bool { return v == 0 }

func (c *TokenChain) IsFinalVertex(v Vertex) bool { return int(v) == len(c.tokens) }

func (c *TokenChain) Edges(v Vertex) []Edge {
	if int(v) >= len(c.tokens) {
		return nil
	}
	return []Edge{{Label: TerminalLabel(c.tokens[v]), Head: v + 1}}
}

func (c *TokenChain) TerminalAt(v Vertex) (symbol.Terminal, bool) {
	if int(v) >= len(c.tokens) {
		return 0, false
	}
	return c.tokens[v], true
}

// RecoverableTokenChain adds the two synthetic edit edges spec §4.6
// describes to a TokenChain:
//   - delete-token: skip the token at v without matching it, weight 1,
//     landing on the same vertex the real edge would (the token is
//     treated as noise rather than a parse of it).
//   - insert-token: a zero-width edge for any terminal the current RSM
//     state expects, weight 1, a self-loop at v.
type RecoverableTokenChain struct {
	*TokenChain
}

func NewRecoverableTokenChain(tokens []symbol.Terminal) *RecoverableTokenChain {
	return &RecoverableTokenChain{TokenChain: NewTokenChain(tokens)}
}

func (c *RecoverableTokenChain) SyntheticEdges(v Vertex, state RecoveryState) []SyntheticEdge {
	var out []SyntheticEdge
	if int(v) < len(c.tokens) {
		out = append(out, SyntheticEdge{Label: EpsilonLabel(), Head: v + 1, Weight: 1})
	}
	for _, t := range state.ExpectedTerminals() {
		out = append(out, SyntheticEdge{Label: TerminalLabel(t), Head: v, Weight: 1})
	}
	return out
}
