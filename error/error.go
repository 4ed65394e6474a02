package error

import "fmt"

// GrammarError reports that an RSM is internally inconsistent, e.g. a
// state a generated parser's table references but the RSM never
// defines, or a terminal transition a caller expected but the current
// state doesn't have. Grammar construction is out of scope for the
// core (spec §1); this is raised only when the core is HANDED a bad
// RSM, not when one is built.
type GrammarError struct {
	State fmt.Stringer
	Cause error
}

func (e *GrammarError) Error() string {
	if e.State == nil {
		return fmt.Sprintf("grammar error: %v", e.Cause)
	}
	return fmt.Sprintf("grammar error: state %v: %v", e.State, e.Cause)
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}

// InvariantViolation reports an internal bug: code popping a GSS node
// that was never in the store, a descriptor referencing an unknown
// SPPF node, and similar states that should be unreachable in a
// correct implementation. It is always returned, never panicked, so a
// host embedding the parser keeps control of its own process.
type InvariantViolation struct {
	Cause error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation (this is a bug): %v", e.Cause)
}

func (e *InvariantViolation) Unwrap() error {
	return e.Cause
}
