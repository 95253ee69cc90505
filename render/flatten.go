package render

import (
	"github.com/arturoeanton/go-markup/directive"
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
)

// flatten is the flatten filter: every SUB event produced by the compiler
// carries its own directive chain (def, match, for, if, ...) plus the
// inner events those directives apply to. flatten is what actually runs
// that chain -- via directive.ApplyChain -- and recursively reduces
// whatever it produces back down to plain events, so SUB and EXPR never
// reach a consumer.
func flatten(sc *scope.Context, events event.Seq) event.Seq {
	return func(yield func(event.Event) bool) {
		events(func(e event.Event) bool {
			if e.Kind != event.SUB {
				return yield(e)
			}
			return flattenSub(sc, e, yield)
		})
	}
}

func flattenSub(sc *scope.Context, e event.Event, yield func(event.Event) bool) (cont bool) {
	defer func() {
		if r := recover(); r != nil {
			if p, ok := r.(*directive.EvalPanic); ok {
				panic(p.Wrap(e.Pos))
			}
			panic(r)
		}
	}()

	dirs := fromEventDirectives(e.Sub.Directives)
	expanded := directive.ApplyChain(event.FromSlice(e.Sub.Inner), sc, dirs)
	recombined := recombine(sc, expanded)

	cont = true
	recombined(func(ie event.Event) bool {
		if !yield(ie) {
			cont = false
			return false
		}
		return true
	})
	return cont
}

func fromEventDirectives(eds []event.Directive) []directive.Directive {
	out := make([]directive.Directive, len(eds))
	for i, d := range eds {
		dd, _ := d.(directive.Directive)
		out[i] = dd
	}
	return out
}
