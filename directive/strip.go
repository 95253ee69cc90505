package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// Strip implements py:strip="expr?": drops the host START/END when expr is
// truthy (an empty source, e.g. the element-form py:strip="" or a
// directive-only element, defaults to true).
type Strip struct {
	Expr *expr.Expression // nil means "always strip"
}

func NewStrip(source, filename string, line int) (*Strip, error) {
	if source == "" {
		return &Strip{}, nil
	}
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &Strip{Expr: e}, nil
}

func (s *Strip) DirectiveName() string { return "strip" }
func (s *Strip) SortKey() int          { return OrderStrip }
func (s *Strip) String() string {
	if s.Expr == nil {
		return "strip()"
	}
	return "strip(" + s.Expr.String() + ")"
}

func (s *Strip) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	shouldStrip := true
	if s.Expr != nil {
		val, err := s.Expr.Evaluate(ctx, nil, false)
		if err != nil {
			Raise(err, s.Expr.Position())
		}
		shouldStrip = truthyValue(val)
	}
	if !shouldStrip {
		return ApplyChain(event.FromSlice(events), ctx, rest)
	}
	if _, _, ok := firstLast(events); !ok {
		return ApplyChain(event.FromSlice(events), ctx, rest)
	}
	return ApplyChain(event.FromSlice(events[1:len(events)-1]), ctx, rest)
}
