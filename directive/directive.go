// Package directive implements the eleven template transformers --
// def, match, for, if, when, otherwise, choose, replace, content, attrs,
// strip -- as a closed sum type (one concrete struct per directive, no
// inheritance), composed through the shared ApplyChain helper.
package directive

import (
	"sort"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
)

// Canonical application order: def, match, for, if, when, otherwise, choose,
// replace, content, attrs, strip. Earlier entries are
// structurally outer (loop/branch around the rest); later entries modify
// the host element itself.
const (
	OrderDef = iota
	OrderMatch
	OrderFor
	OrderIf
	OrderWhen
	OrderOtherwise
	OrderChoose
	OrderReplace
	OrderContent
	OrderAttrs
	OrderStrip
)

// Directive is the shared contract every directive variant implements. It
// satisfies event.Directive (DirectiveName) so compiled SUB events can
// reference it without the event package depending on this one.
type Directive interface {
	DirectiveName() string
	SortKey() int
	String() string

	// Apply consumes stream (this directive's host element range, or the
	// already-transformed range handed down by an earlier structural
	// directive) and returns the stream produced by this directive,
	// composing rest -- the sibling directives still to apply on the same
	// host -- via ApplyChain.
	Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq
}

// ApplyChain threads directives through stream left to right: the first
// directive's Apply is handed every remaining sibling as rest, and decides
// itself when and how many times to invoke ApplyChain on them (e.g. for
// invokes it once per loop iteration; if invokes it zero or one times).
func ApplyChain(stream event.Seq, ctx *scope.Context, directives []Directive) event.Seq {
	if len(directives) == 0 {
		return stream
	}
	d := directives[0]
	rest := directives[1:]
	return d.Apply(stream, ctx, rest)
}

// SortCanonical orders directives by their fixed precedence regardless of
// source attribute order. Stable
// so directives of equal (impossible, since each directive has a distinct
// SortKey) order would preserve source order.
func SortCanonical(ds []Directive) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].SortKey() < ds[j].SortKey() })
}

// firstLast reports the first and last event of a materialized range,
// along with whether the range looks like a single balanced element (first
// is START, last is the matching END). Several directives need this shape
// to rewrite or drop the host tags.
func firstLast(events []event.Event) (first, last event.Event, ok bool) {
	if len(events) < 2 {
		return event.Event{}, event.Event{}, false
	}
	first, last = events[0], events[len(events)-1]
	return first, last, first.Kind == event.START && last.Kind == event.END && last.End == first.Start.Name
}
