package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// When implements py:when="expr": the first sibling When/Otherwise within
// an enclosing Choose block whose test succeeds yields its body; the rest
// emit nothing.
type When struct {
	Expr *expr.Expression
}

func NewWhen(source, filename string, line int) (*When, error) {
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &When{Expr: e}, nil
}

func (w *When) DirectiveName() string { return "when" }
func (w *When) SortKey() int          { return OrderWhen }
func (w *When) String() string        { return "when(" + w.Expr.String() + ")" }

func (w *When) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	return func(yield func(event.Event) bool) {
		state, _ := ctx.Choose().(*ChooseState)
		if state == nil || state.Matched {
			return
		}
		val, err := w.Expr.Evaluate(ctx, nil, false)
		if err != nil {
			Raise(err, w.Expr.Position())
		}
		var ok bool
		if state.HasValue {
			ok = expr.EqualValues(state.Value, val)
		} else {
			ok = expr.Truthy(val)
		}
		if !ok {
			return
		}
		state.Matched = true
		ApplyChain(event.FromSlice(events), ctx, rest)(yield)
	}
}
