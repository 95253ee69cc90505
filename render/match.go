package render

import (
	"fmt"

	"github.com/arturoeanton/go-markup/directive"
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
	"github.com/arturoeanton/go-markup/xpath"
)

// matchFilter is the top-level match filter: every registered template is
// eligible, none excluded.
func matchFilter(sc *scope.Context, events event.Seq) event.Seq {
	return matchStream(sc, events, nil)
}

// matchStream offers every incoming START/END to each registered match
// template's tester (skipping exclude, the template currently firing, so
// it never recursively matches its own direct output -- though it MAY
// still be re-applied to output produced by a *different* template). On a
// template's first positive match it buffers the whole matched sub-tree
// and fires the template in place of the raw events.
func matchStream(sc *scope.Context, events event.Seq, exclude *directive.MatchTemplate) event.Seq {
	return func(yield func(event.Event) bool) {
		testers := map[*directive.MatchTemplate]*xpath.Tester{}
		getTester := func(mt *directive.MatchTemplate) *xpath.Tester {
			t, ok := testers[mt]
			if !ok {
				t = mt.Path.Test(true)
				testers[mt] = t
			}
			return t
		}

		var (
			capturing    *directive.MatchTemplate
			capturingMts []*directive.MatchTemplate
			pending      []event.Event
			depth        int
		)

		cont := true
		events(func(e event.Event) bool {
			if capturing != nil {
				pending = append(pending, e)
				switch e.Kind {
				case event.START:
					depth++
				case event.END:
					depth--
					if depth == 0 {
						for _, mt := range capturingMts {
							getTester(mt).Next(e)
						}
						mt, body := capturing, pending
						capturing, pending = nil, nil
						cont = fireMatch(sc, mt, body, yield)
						return cont
					}
				}
				return true
			}

			mts := currentTemplates(sc, exclude)
			var hit *directive.MatchTemplate
			for _, mt := range mts {
				res := getTester(mt).Next(e)
				if hit == nil && e.Kind == event.START && res.Matched {
					hit = mt
				}
			}
			if hit != nil {
				capturing = hit
				capturingMts = mts
				depth = 1
				pending = []event.Event{e}
				return true
			}
			if !yield(e) {
				cont = false
				return false
			}
			return true
		})
	}
}

// currentTemplates reads the live match-template list from scope, filtering
// out exclude and ignoring any malformed entries defensively.
func currentTemplates(sc *scope.Context, exclude *directive.MatchTemplate) []*directive.MatchTemplate {
	raw := sc.MatchTemplates()
	out := make([]*directive.MatchTemplate, 0, len(raw))
	for _, v := range raw {
		mt, ok := v.(*directive.MatchTemplate)
		if !ok || mt == exclude {
			continue
		}
		out = append(out, mt)
	}
	return out
}

// fireMatch flattens the captured sub-tree, binds a select() closure over
// it, runs the template's residual directives and body, and yields the
// result through eval/match(exclude=mt)/flatten -- excluding mt from that
// recursive match pass is what suppresses a template from re-matching its
// own output.
func fireMatch(sc *scope.Context, mt *directive.MatchTemplate, captured []event.Event, yield func(event.Event) bool) bool {
	flattened := event.Collect(flatten(sc, event.FromSlice(captured)))

	selectFn := expr.FuncCallable(func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("select: expected exactly one path argument")
		}
		src, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("select: expected a string path argument")
		}
		p, err := xpath.Compile(src)
		if err != nil {
			return nil, err
		}
		return event.FromSlice(p.Select(flattened)), nil
	})

	sc.Push(scope.Frame{"select": selectFn})
	body := directive.ApplyChain(event.FromSlice(mt.Body), sc, mt.Residual)
	result := flatten(sc, matchStream(sc, eval(sc, body), mt))

	cont := true
	result(func(ie event.Event) bool {
		if !yield(ie) {
			cont = false
			return false
		}
		return true
	})
	sc.Pop()
	return cont
}
