package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// Content implements py:content="expr": keeps the host START/END, replaces
// everything between them with a single EXPR event.
type Content struct {
	Expr *expr.Expression
}

func NewContent(source, filename string, line int) (*Content, error) {
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &Content{Expr: e}, nil
}

func (c *Content) DirectiveName() string { return "content" }
func (c *Content) SortKey() int          { return OrderContent }
func (c *Content) String() string        { return "content(" + c.Expr.String() + ")" }

func (c *Content) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	first, last, ok := firstLast(events)
	if !ok {
		return ApplyChain(event.FromSlice(events), ctx, rest)
	}
	newStream := []event.Event{first, event.NewExpr(c.Expr, c.Expr.Position()), last}
	return ApplyChain(event.FromSlice(newStream), ctx, rest)
}
