package markup

import (
	"errors"

	"github.com/arturoeanton/go-markup/event"
)

// fallbackLocal is the xi:fallback element's local name, recognized
// inside an unresolved xi:include.
const fallbackLocal = "fallback"

// XIncludeFilter resolves `xi:include` elements (namespace
// event.XIncludeNS) against an owning Loader, substituting the included
// template's compiled event stream in place. On TemplateNotFound it falls
// back to an `xi:fallback` child if one is present.
type XIncludeFilter struct {
	Loader     Loader
	RelativeTo string
}

// Apply walks a compiled event slice, replacing each xi:include element
// with its resolved content. It also descends into every SUB event's
// Inner range, since the compiler lifts any directive-bearing host
// element (py:if, py:for, ...) into a SUB, which would otherwise hide an
// xi:include nested inside one from this top-level walk.
func (f *XIncludeFilter) Apply(events []event.Event) ([]event.Event, error) {
	out := make([]event.Event, 0, len(events))
	i := 0
	for i < len(events) {
		ev := events[i]
		if ev.Kind == event.START && ev.Start.Name.Namespace == event.XIncludeNS && ev.Start.Name.Local == "include" {
			end := matchingEnd(events, i)
			resolved, err := f.resolveInclude(ev, events[i+1:end])
			if err != nil {
				return nil, err
			}
			out = append(out, resolved...)
			i = end + 1
			continue
		}
		if ev.Kind == event.SUB {
			inner, err := f.Apply(ev.Sub.Inner)
			if err != nil {
				return nil, err
			}
			ev.Sub = &event.Sub{Directives: ev.Sub.Directives, Inner: inner}
		}
		out = append(out, ev)
		i++
	}
	return out, nil
}

func (f *XIncludeFilter) resolveInclude(include event.Event, inner []event.Event) ([]event.Event, error) {
	href, _ := include.Start.Attrs.Get(event.Name("href"))
	included, err := f.Loader.Load(href, f.RelativeTo)
	if err == nil {
		return included.Events, nil
	}

	var notFound *TemplateNotFound
	if !errors.As(err, &notFound) {
		return nil, err
	}
	fallback, ok := findFallback(inner)
	if !ok {
		return nil, err
	}
	return f.Apply(fallback)
}

// matchingEnd returns the index of the END event balancing the START at
// start, counting nested START/END regardless of name.
func matchingEnd(events []event.Event, start int) int {
	depth := 0
	for i := start; i < len(events); i++ {
		switch events[i].Kind {
		case event.START:
			depth++
		case event.END:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(events) - 1
}

// findFallback looks for a top-level xi:fallback child within inner and
// returns its own inner events.
func findFallback(inner []event.Event) ([]event.Event, bool) {
	for i := 0; i < len(inner); i++ {
		ev := inner[i]
		if ev.Kind != event.START {
			continue
		}
		end := matchingEnd(inner, i)
		if ev.Start.Name.Namespace == event.XIncludeNS && ev.Start.Name.Local == fallbackLocal {
			return inner[i+1 : end], true
		}
		i = end
	}
	return nil, false
}
