// Package render composes the three built-in pipeline filters -- eval,
// match, flatten -- around a compiled event program, driven as a
// context-aware, single-pass, cancellation-checked synchronous pull
// iterator rather than a goroutine/channel producer: match's "buffer up to
// the balancing END" step needs synchronous control a goroutine-fed channel
// would make awkward to cancel mid-buffer.
package render

import (
	"context"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
)

// Filter transforms one event stream into another, composed around the
// built-in eval/match/flatten trio.
type Filter func(event.Seq) event.Seq

// Generate wraps events in eval, match and flatten (in that order), then
// any user-supplied filters. ctx is consulted once per pulled event for
// cancellation -- the one place in the pipeline a context.Context matters.
func Generate(ctx context.Context, sc *scope.Context, events event.Seq, filters ...Filter) event.Seq {
	if sc.MatchTemplates() == nil {
		sc.SetMatchTemplates([]any{})
	}

	checked := checkCancel(ctx, events)
	out := recombine(sc, checked)
	for _, f := range filters {
		out = f(out)
	}
	return out
}

// checkCancel consults ctx.Err() once per pulled event, stopping the
// stream early if the caller cancelled.
func checkCancel(ctx context.Context, events event.Seq) event.Seq {
	return func(yield func(event.Event) bool) {
		events(func(e event.Event) bool {
			if ctx.Err() != nil {
				return false
			}
			return yield(e)
		})
	}
}

// Drain fully pulls seq, recovering a directive.EvalPanic (or any other
// panic raised during evaluation) into a returned error instead of letting
// it cross the iterator boundary uncaught. Generate itself is lazy and
// panic-free to construct, so the actual evaluation -- where
// directive.Raise panics -- only happens here, when a consumer (typically
// the façade's Render function) drains the composed stream.
func Drain(seq event.Seq) (out []event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toRenderError(r)
		}
	}()
	seq(func(e event.Event) bool {
		out = append(out, e)
		return true
	})
	return out, nil
}

func toRenderError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return &PanicError{Value: r}
}

// PanicError wraps a non-error panic value recovered at the drain
// boundary, so Drain's return is always a proper error.
type PanicError struct{ Value any }

func (e *PanicError) Error() string { return "render: recovered panic" }
