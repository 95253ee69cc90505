package render

import (
	"fmt"
	"strings"

	"github.com/arturoeanton/go-markup/directive"
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// eval is the eval filter: collapses each START's interpolated attribute
// values into final strings, and expands bare EXPR events (produced by
// text interpolation, or by the content/replace directives) into their
// evaluated form.
func eval(sc *scope.Context, events event.Seq) event.Seq {
	return func(yield func(event.Event) bool) {
		events(func(e event.Event) bool {
			switch e.Kind {
			case event.START:
				return yield(evalStart(sc, e))
			case event.EXPR:
				return evalExprEvent(sc, e, yield)
			default:
				return yield(e)
			}
		})
	}
}

func evalStart(sc *scope.Context, e event.Event) event.Event {
	if len(e.Start.Interp) == 0 {
		return e
	}
	attrs := e.Start.Attrs.Clone()
	for name, parts := range e.Start.Interp {
		var sb strings.Builder
		anyNone := false
		for _, p := range parts {
			switch p.Kind {
			case event.TEXT:
				sb.WriteString(p.TextVal.Data)
			case event.EXPR:
				val, err := evaluateExpr(p.Expr, sc)
				if err != nil {
					directive.Raise(err, p.Pos)
				}
				if val == nil {
					anyNone = true
					continue
				}
				sb.WriteString(displayString(val))
			}
		}
		final := sb.String()
		if final == "" && anyNone {
			attrs.Remove(name)
		} else {
			attrs.Set(name, final)
		}
	}
	e.Start.Attrs = attrs
	e.Start.Interp = nil
	return e
}

func evalExprEvent(sc *scope.Context, e event.Event, yield func(event.Event) bool) bool {
	val, err := evaluateExpr(e.Expr, sc)
	if err != nil {
		directive.Raise(err, e.Pos)
	}
	if val == nil {
		return true
	}
	if s, ok := val.(string); ok {
		return yield(event.NewText(s, e.Pos))
	}
	if seq, ok := val.(event.Seq); ok {
		cont := true
		recombine(sc, seq)(func(ie event.Event) bool {
			if !yield(ie) {
				cont = false
				return false
			}
			return true
		})
		return cont
	}
	return yield(event.NewText(displayString(val), e.Pos))
}

func evaluateExpr(ee event.Expression, sc *scope.Context) (any, error) {
	ex, ok := ee.(*expr.Expression)
	if !ok {
		return nil, fmt.Errorf("render: unsupported expression type %T", ee)
	}
	return ex.Evaluate(sc, nil, false)
}

func displayString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// recombine is the full eval->match->flatten triple, used whenever a
// nested stream (a callable's returned body, a flattened SUB's output)
// must itself be fully reduced to plain events before being yielded
// inline -- guaranteeing SUB/EXPR never escape to a consumer.
func recombine(sc *scope.Context, seq event.Seq) event.Seq {
	return flatten(sc, matchFilter(sc, eval(sc, seq)))
}
