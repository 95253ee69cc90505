package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
)

// Otherwise implements py:otherwise="": yields its body if no earlier
// When in the same Choose block matched.
type Otherwise struct{}

func NewOtherwise() *Otherwise { return &Otherwise{} }

func (o *Otherwise) DirectiveName() string { return "otherwise" }
func (o *Otherwise) SortKey() int          { return OrderOtherwise }
func (o *Otherwise) String() string        { return "otherwise()" }

func (o *Otherwise) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	return func(yield func(event.Event) bool) {
		state, _ := ctx.Choose().(*ChooseState)
		if state == nil || state.Matched {
			return
		}
		state.Matched = true
		ApplyChain(event.FromSlice(events), ctx, rest)(yield)
	}
}
