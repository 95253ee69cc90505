package directive

import (
	"fmt"

	"github.com/arturoeanton/go-markup/event"
)

// TemplateSyntaxError reports a malformed expression or directive argument
// discovered at compile time, with the offending position attached.
type TemplateSyntaxError struct {
	Msg string
	Pos event.Position
	Err error
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *TemplateSyntaxError) Unwrap() error { return e.Err }

// BadDirectiveError is a TemplateSyntaxError raised for an element or
// attribute in the directive namespace that names no known directive.
type BadDirectiveError struct {
	TemplateSyntaxError
	Name string
}

func NewBadDirectiveError(name string, pos event.Position) *BadDirectiveError {
	return &BadDirectiveError{
		TemplateSyntaxError: TemplateSyntaxError{
			Msg: fmt.Sprintf("unknown directive %q", name),
			Pos: pos,
		},
		Name: name,
	}
}

// EvalPanic is the payload directives and the render pipeline panic with on
// an expression evaluation failure. The render package's top-level drain
// recovers it and turns it into a returned error; flatten re-panics with
// the SUB's position attached via Wrap, so the error always reports where
// in the source the failing expression lives.
type EvalPanic struct {
	Err error
	Pos event.Position
}

// Raise panics with an EvalPanic wrapping err at pos. Directives call this
// instead of returning an error, since Apply's contract is a plain
// stream-in/stream-out transform with no error return.
func Raise(err error, pos event.Position) {
	panic(&EvalPanic{Err: err, Pos: pos})
}

// Wrap returns p's error as a TemplateSyntaxError carrying the SUB's
// position; render's flatten filter re-panics with the result.
func (p *EvalPanic) Wrap(subPos event.Position) *TemplateSyntaxError {
	return &TemplateSyntaxError{Msg: p.Err.Error(), Pos: subPos, Err: p.Err}
}
