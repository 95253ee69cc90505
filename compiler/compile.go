package compiler

import (
	"github.com/arturoeanton/go-markup/directive"
	"github.com/arturoeanton/go-markup/event"
)

// elementArg maps a directive's element-form local name to the attribute
// name its argument is read from. "otherwise" takes no argument at all.
var elementArg = map[string]string{
	"def":       "function",
	"match":     "path",
	"for":       "each",
	"if":        "test",
	"when":      "test",
	"choose":    "test",
	"otherwise": "",
	"replace":   "value",
	"content":   "value",
	"attrs":     "value",
	"strip":     "value",
}

// frame tracks one currently-open host element while Compile walks the
// parser's flat event stream.
type frame struct {
	name        event.QName
	isDirective bool // element itself is in the directive namespace
	dirs        []directive.Directive
	outStart    int // index in out where this host's range begins
}

// Compile lifts directive attributes/elements out of a parsed event
// sequence into SUB events, interpolates ordinary attribute values and text
// nodes, and strips START_NS/END_NS pairs bound to the directive
// namespace.
func Compile(events []event.Event, filename string) ([]event.Event, error) {
	var out []event.Event
	var frames []frame
	var nsStack []event.NSStart

	for _, ev := range events {
		switch ev.Kind {
		case event.START_NS:
			nsStack = append(nsStack, ev.NSStart)
			if ev.NSStart.URI == event.DirectiveNS {
				continue
			}
			out = append(out, ev)

		case event.END_NS:
			var top event.NSStart
			if len(nsStack) > 0 {
				top = nsStack[len(nsStack)-1]
				nsStack = nsStack[:len(nsStack)-1]
			}
			if top.URI == event.DirectiveNS {
				continue
			}
			out = append(out, ev)

		case event.START:
			f, newStart, err := compileStart(ev, filename, len(out))
			if err != nil {
				return nil, err
			}
			frames = append(frames, f)
			if !f.isDirective {
				out = append(out, newStart)
			}

		case event.END:
			if len(frames) == 0 {
				out = append(out, ev)
				continue
			}
			f := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			if f.isDirective {
				inner := append([]event.Event(nil), out[f.outStart:]...)
				out = out[:f.outStart]
				directive.SortCanonical(f.dirs)
				out = append(out, event.NewSub(toEventDirectives(f.dirs), inner, ev.Pos))
				continue
			}
			out = append(out, ev)
			if len(f.dirs) > 0 {
				hostRange := append([]event.Event(nil), out[f.outStart:]...)
				out = out[:f.outStart]
				directive.SortCanonical(f.dirs)
				out = append(out, event.NewSub(toEventDirectives(f.dirs), hostRange, ev.Pos))
			}

		case event.TEXT:
			if ev.TextVal.PreEscaped || !HasMarker(ev.TextVal.Data) {
				out = append(out, ev)
				continue
			}
			parts, err := Interpolate(ev.TextVal.Data, filename, ev.Pos.Line)
			if err != nil {
				return nil, err
			}
			out = append(out, parts...)

		default:
			out = append(out, ev)
		}
	}

	return out, nil
}

// compileStart partitions a START event's attributes into directive
// attributes (consumed into f.dirs) and ordinary attributes (interpolated
// in place), and recognizes a directive-namespace element itself.
func compileStart(ev event.Event, filename string, outIdx int) (frame, event.Event, error) {
	name := ev.Start.Name
	f := frame{name: name, outStart: outIdx}

	if name.Namespace == event.DirectiveNS {
		f.isDirective = true
		attrName, ok := elementArg[name.Local]
		if !ok {
			return frame{}, event.Event{}, directive.NewBadDirectiveError(name.Local, ev.Pos)
		}
		arg := ""
		if attrName != "" {
			arg, _ = ev.Start.Attrs.Get(event.Name(attrName))
		}
		d, err := buildDirective(name.Local, arg, filename, ev.Pos.Line)
		if err != nil {
			return frame{}, event.Event{}, err
		}
		f.dirs = append(f.dirs, d)
		return f, event.Event{}, nil
	}

	newAttrs := event.NewAttributes()
	interpMap := map[event.QName][]event.Event{}
	var buildErr error
	ev.Start.Attrs.Each(func(n event.QName, v string) bool {
		if n.Namespace == event.DirectiveNS {
			d, err := buildDirective(n.Local, v, filename, ev.Pos.Line)
			if err != nil {
				buildErr = err
				return false
			}
			f.dirs = append(f.dirs, d)
			return true
		}
		if !HasMarker(v) {
			newAttrs.Set(n, v)
			return true
		}
		parts, err := Interpolate(v, filename, ev.Pos.Line)
		if err != nil {
			buildErr = err
			return false
		}
		newAttrs.Set(n, v)
		interpMap[n] = parts
		return true
	})
	if buildErr != nil {
		return frame{}, event.Event{}, buildErr
	}
	if len(interpMap) == 0 {
		interpMap = nil
	}
	return f, event.NewStartInterp(name, newAttrs, interpMap, ev.Pos), nil
}

func toEventDirectives(ds []directive.Directive) []event.Directive {
	out := make([]event.Directive, len(ds))
	for i, d := range ds {
		out[i] = d
	}
	return out
}
