package whaturl

import (
	"fmt"
	"strings"

	"github.com/badu/whaturl/diag"
)

// OutcomeKind discriminates Parse's three possible results.
type OutcomeKind int

const (
	// Success means the parse produced a Value with no diagnostics.
	Success OutcomeKind = iota
	// SuccessWithWarnings means the parse produced a Value but also
	// accumulated non-fatal diagnostics along the way.
	SuccessWithWarnings
	// Failure means a fatal diagnostic aborted the parse; Value is the
	// zero value and must be discarded.
	Failure
)

// Outcome is the result of a Parse call: a closed tagged union mirroring
// ParseOutcome (Success / SuccessWithWarnings / Failure).
type Outcome struct {
	Kind     OutcomeKind
	Value    Value
	Warnings diag.Errors
	Errors   diag.Errors
}

// OK reports whether the parse produced a usable Value (Success or
// SuccessWithWarnings).
func (o Outcome) OK() bool { return o.Kind != Failure }

// Failed is a ValidationFailure carrying the original input and the
// fatal (plus any accumulated) diagnostics that aborted a Parse call.
// It implements error so ParseOrThrow can return it directly.
type Failed struct {
	Input  string
	Errors diag.Errors
}

func (e *Failed) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "whaturl: invalid URL %q:", e.Input)
	for _, err := range e.Errors {
		b.WriteByte(' ')
		b.WriteString(err.Error())
	}
	return b.String()
}

// ParseOrThrow collapses Success and SuccessWithWarnings to their Value,
// and turns a Failure into a *Failed error — the Go-idiomatic analogue of
// the source's parseOrThrow, which raises a validation exception.
func ParseOrThrow(input string, base *Value) (Value, error) {
	outcome := Parse(input, base)
	if outcome.Kind == Failure {
		return Value{}, &Failed{Input: input, Errors: outcome.Errors}
	}
	return outcome.Value, nil
}
