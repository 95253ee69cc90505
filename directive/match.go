package directive

import (
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
	"github.com/arturoeanton/go-markup/xpath"
)

// MatchTemplate pairs a compiled path tester with the captured body and the
// sibling directives that still need to apply each time the template
// fires. Stored (as `any`, to avoid scope depending on this package) in the
// context's match-template list.
type MatchTemplate struct {
	Path     *xpath.Path
	Body     []event.Event
	Residual []Directive
}

// Match implements py:match="path": registers a MatchTemplate in context
// and emits nothing at the definition site. The render package's match
// filter is what actually fires templates against later events.
type Match struct {
	Path *xpath.Path
}

func NewMatch(source string) (*Match, error) {
	p, err := xpath.Compile(source)
	if err != nil {
		return nil, err
	}
	return &Match{Path: p}, nil
}

func (m *Match) DirectiveName() string { return "match" }
func (m *Match) SortKey() int          { return OrderMatch }
func (m *Match) String() string        { return "match(" + m.Path.String() + ")" }

func (m *Match) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	body := event.Collect(stream)
	residual := append([]Directive(nil), rest...)
	ctx.AppendMatchTemplate(&MatchTemplate{Path: m.Path, Body: body, Residual: residual})
	return event.Empty()
}
