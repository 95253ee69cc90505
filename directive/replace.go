package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// Replace implements py:replace="expr": the entire host element and body
// are replaced by a single EXPR event.
type Replace struct {
	Expr *expr.Expression
}

func NewReplace(source, filename string, line int) (*Replace, error) {
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &Replace{Expr: e}, nil
}

func (r *Replace) DirectiveName() string { return "replace" }
func (r *Replace) SortKey() int          { return OrderReplace }
func (r *Replace) String() string        { return "replace(" + r.Expr.String() + ")" }

func (r *Replace) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	return ApplyChain(event.One(event.NewExpr(r.Expr, r.Expr.Position())), ctx, rest)
}
