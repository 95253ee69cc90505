package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// If implements py:if="expr": yields the body only when expr is truthy.
type If struct {
	Expr *expr.Expression
}

func NewIf(source, filename string, line int) (*If, error) {
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &If{Expr: e}, nil
}

func (d *If) DirectiveName() string { return "if" }
func (d *If) SortKey() int          { return OrderIf }
func (d *If) String() string        { return "if(" + d.Expr.String() + ")" }

func (d *If) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	return func(yield func(event.Event) bool) {
		val, err := d.Expr.Evaluate(ctx, nil, false)
		if err != nil {
			Raise(err, d.Expr.Position())
		}
		if !truthyValue(val) {
			return
		}
		ApplyChain(event.FromSlice(events), ctx, rest)(yield)
	}
}
