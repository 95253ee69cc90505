package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// ChooseState is the per-choose-block coordination record stored under
// scope's reserved _choose key (via Context.SetChoose), read by When and
// Otherwise.
type ChooseState struct {
	Value    any
	HasValue bool
	Matched  bool
}

// Choose implements py:choose="expr?": pushes a fresh ChooseState that
// nested When/Otherwise directives (compiled as SUBs in the body) consult.
type Choose struct {
	Expr *expr.Expression // nil: "when" compares truthiness, not equality
}

func NewChoose(source, filename string, line int) (*Choose, error) {
	if source == "" {
		return &Choose{}, nil
	}
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &Choose{Expr: e}, nil
}

func (c *Choose) DirectiveName() string { return "choose" }
func (c *Choose) SortKey() int          { return OrderChoose }
func (c *Choose) String() string {
	if c.Expr == nil {
		return "choose()"
	}
	return "choose(" + c.Expr.String() + ")"
}

func (c *Choose) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	return func(yield func(event.Event) bool) {
		state := &ChooseState{}
		if c.Expr != nil {
			val, err := c.Expr.Evaluate(ctx, nil, false)
			if err != nil {
				Raise(err, c.Expr.Position())
			}
			state.Value, state.HasValue = val, true
		}
		ctx.Push(scope.Frame{})
		ctx.SetChoose(state)
		ApplyChain(event.FromSlice(events), ctx, rest)(yield)
		ctx.Pop()
	}
}
