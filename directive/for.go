package directive

import (
	"reflect"
	"strings"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// For implements py:for="targets in iterable": runs its body once per item,
// binding targets (tuple-unpacked when more than one) to each item's
// components in a freshly pushed scope frame.
type For struct {
	Targets []string
	Iter    *expr.Expression
}

func NewFor(source, filename string, line int) (*For, error) {
	targets, iterSrc, err := splitForClause(source)
	if err != nil {
		return nil, &TemplateSyntaxError{Msg: err.Error(), Pos: event.Position{Filename: filename, Line: line}}
	}
	e, err := expr.Compile(iterSrc, filename, line)
	if err != nil {
		return nil, err
	}
	return &For{Targets: targets, Iter: e}, nil
}

func splitForClause(source string) ([]string, string, error) {
	idx := findForIn(source)
	if idx < 0 {
		return nil, "", &forSyntaxErr{msg: "expected \"targets in iterable\" in for directive: " + source}
	}
	targetPart := strings.TrimSpace(source[:idx])
	iterPart := strings.TrimSpace(source[idx+4:])
	var targets []string
	for _, t := range strings.Split(targetPart, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil, "", &forSyntaxErr{msg: "missing loop targets in for directive: " + source}
	}
	return targets, iterPart, nil
}

type forSyntaxErr struct{ msg string }

func (e *forSyntaxErr) Error() string { return e.msg }

// findForIn finds the top-level " in " keyword, skipping quoted strings and
// bracketed groups so "x in [a, b]" isn't confused by inner content.
func findForIn(s string) int {
	depth := 0
	var quote byte
	for i := 0; i+4 <= len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && quote == 0 && s[i:i+4] == " in " {
			return i
		}
	}
	return -1
}

func (d *For) DirectiveName() string { return "for" }
func (d *For) SortKey() int          { return OrderFor }
func (d *For) String() string {
	return "for(" + strings.Join(d.Targets, ", ") + " in " + d.Iter.String() + ")"
}

func (d *For) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	events := event.Collect(stream)
	return func(yield func(event.Event) bool) {
		val, err := d.Iter.Evaluate(ctx, nil, false)
		if err != nil {
			Raise(err, d.Iter.Position())
		}
		items := iterateItems(val)
		for _, item := range items {
			frame := scope.Frame{}
			bindTargets(frame, d.Targets, item)
			ctx.Push(frame)
			cont := true
			ApplyChain(event.FromSlice(events), ctx, rest)(func(e event.Event) bool {
				if !yield(e) {
					cont = false
					return false
				}
				return true
			})
			ctx.Pop()
			if !cont {
				return
			}
		}
	}
}

func bindTargets(frame scope.Frame, targets []string, item any) {
	if len(targets) == 1 {
		frame[targets[0]] = item
		return
	}
	parts := tupleParts(item)
	for i, name := range targets {
		if i < len(parts) {
			frame[name] = parts[i]
		} else {
			frame[name] = nil
		}
	}
}

func tupleParts(item any) []any {
	switch t := item.(type) {
	case [2]any:
		return []any{t[0], t[1]}
	case []any:
		return t
	}
	rv := reflect.ValueOf(item)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{item}
}

// iterateItems yields an []any of items from any slice, array, map, or
// []any/map[string]any value, mirroring expr.Lookup's uniform access: map
// iteration yields [2]any{key, value} pairs so a two-target for can
// destructure them.
func iterateItems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		out := make([]any, 0, len(t))
		for k, val := range t {
			out = append(out, [2]any{k, val})
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, [2]any{iter.Key().Interface(), iter.Value().Interface()})
		}
		return out
	}
	return nil
}
