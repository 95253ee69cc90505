// Package compiler walks the parsed event stream, lifting directive
// attributes/elements into SUB events and splitting interpolated text and
// attribute values into TEXT/EXPR event runs, in one pass that re-emits a
// flat compiled program.
package compiler

import (
	"strings"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
)

// Interpolate splits s on "${...}" and "$name.path" markers, with "$$"
// escaping a literal "$". The result is a run of TEXT and EXPR events; a
// string with no markers returns a single TEXT event.
func Interpolate(s string, filename string, line int) ([]event.Event, error) {
	pos := event.Position{Filename: filename, Line: line}
	var out []event.Event
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, event.NewText(buf.String(), pos))
			buf.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '$' {
			buf.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '$' {
			buf.WriteByte('$')
			i += 2
			continue
		}
		if i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, &InterpolationError{Msg: "unterminated ${...} in " + s, Pos: pos}
			}
			inner := s[i+2 : i+2+end]
			flush()
			e, err := expr.Compile(inner, filename, line)
			if err != nil {
				return nil, err
			}
			out = append(out, event.NewExpr(e, pos))
			i = i + 2 + end + 1
			continue
		}
		if i+1 < len(s) && isIdentStart(s[i+1]) {
			j := i + 1
			for j < len(s) && isIdentOrDot(s[j]) {
				j++
			}
			name := s[i+1 : j]
			flush()
			e, err := expr.Compile(name, filename, line)
			if err != nil {
				return nil, err
			}
			out = append(out, event.NewExpr(e, pos))
			i = j
			continue
		}
		buf.WriteByte('$')
		i++
	}
	flush()
	if len(out) == 0 {
		return []event.Event{event.NewText("", pos)}, nil
	}
	return out, nil
}

// HasMarker reports whether s contains any "$" interpolation marker,
// letting the compiler skip building an Interp list for attributes that
// are plain literals.
func HasMarker(s string) bool { return strings.IndexByte(s, '$') >= 0 }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentOrDot(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.'
}

// InterpolationError reports a malformed interpolation marker.
type InterpolationError struct {
	Msg string
	Pos event.Position
}

func (e *InterpolationError) Error() string { return e.Pos.String() + ": " + e.Msg }
