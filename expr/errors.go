package expr

import (
	"fmt"

	"github.com/arturoeanton/go-markup/event"
)

// SyntaxError reports a malformed expression at compile time. Pos is the
// filename/line passed to Compile; the error is returned as it is, with no
// further wrapping, through the compiler and markup.Template.
type SyntaxError struct {
	Msg string
	Pos event.Position
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expression syntax error: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// EvaluationError reports a runtime failure evaluating a compiled
// expression. Missing names are NOT evaluation errors (forgiving lookup
// returns none instead); this is reserved for things like calling a
// non-callable or a builtin raising.
type EvaluationError struct {
	Msg string
	Pos event.Position
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: error evaluating expression: %s", e.Pos, e.Msg)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
