package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// Attrs implements py:attrs="expr": expr must evaluate to a mapping merged
// into the host START's attributes; keys whose value is none are removed.
type Attrs struct {
	Expr *expr.Expression
}

func NewAttrs(source, filename string, line int) (*Attrs, error) {
	e, err := expr.Compile(source, filename, line)
	if err != nil {
		return nil, err
	}
	return &Attrs{Expr: e}, nil
}

func (a *Attrs) DirectiveName() string { return "attrs" }
func (a *Attrs) SortKey() int          { return OrderAttrs }
func (a *Attrs) String() string        { return "attrs(" + a.Expr.String() + ")" }

func (a *Attrs) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	if len(events) == 0 || events[0].Kind != event.START {
		return ApplyChain(event.FromSlice(events), ctx, rest)
	}
	val, err := a.Expr.Evaluate(ctx, nil, false)
	if err != nil {
		Raise(err, a.Expr.Position())
	}
	start := events[0]
	merged := start.Start.Attrs.Clone()
	switch m := val.(type) {
	case map[string]any:
		mergeAttrMap(merged, m)
	case map[any]any:
		strMap := make(map[string]any, len(m))
		for k, v := range m {
			strMap[toKeyString(k)] = v
		}
		mergeAttrMap(merged, strMap)
	}
	start.Start.Attrs = merged
	events[0] = start
	return ApplyChain(event.FromSlice(events), ctx, rest)
}

func mergeAttrMap(merged *event.Attributes, m map[string]any) {
	for k, v := range m {
		if v == nil {
			merged.Remove(event.Name(k))
			continue
		}
		merged.Set(event.Name(k), stringifyAttr(v))
	}
}

func toKeyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stringifyAttr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return toDisplayString(v)
}
