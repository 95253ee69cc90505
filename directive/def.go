package directive

import (
	"strings"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/expr"
	"github.com/arturoeanton/go-markup/scope"
)

// Param is one formal parameter of a py:def function signature: a bare
// name, or name=default with Default compiled as an expression evaluated
// at call time when the caller omits that argument.
type Param struct {
	Name    string
	Default *expr.Expression
}

// Def implements py:def="name(args, k=default, ...)": emits nothing at the
// definition site, and binds a callable under Name in scope that, when
// invoked, pushes a parameter-bound frame and replays the captured body
// (with any residual sibling directives still applied, at call time so
// they see the bound parameters).
type Def struct {
	Name   string
	Params []Param
}

func NewDef(source, filename string, line int) (*Def, error) {
	pos := event.Position{Filename: filename, Line: line}
	name, argSrc, err := splitDefSignature(source)
	if err != nil {
		return nil, &TemplateSyntaxError{Msg: err.Error(), Pos: pos}
	}
	var params []Param
	for _, raw := range splitTopLevel(argSrc, ',') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if eq := strings.IndexByte(raw, '='); eq >= 0 {
			pname := strings.TrimSpace(raw[:eq])
			defSrc := strings.TrimSpace(raw[eq+1:])
			defExpr, err := expr.Compile(defSrc, filename, line)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Name: pname, Default: defExpr})
		} else {
			params = append(params, Param{Name: raw})
		}
	}
	return &Def{Name: name, Params: params}, nil
}

func splitDefSignature(source string) (name, args string, err error) {
	open := strings.IndexByte(source, '(')
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(source), ")") {
		return "", "", &forSyntaxErr{msg: "expected \"name(args)\" in def directive: " + source}
	}
	name = strings.TrimSpace(source[:open])
	trimmed := strings.TrimSpace(source)
	args = trimmed[open+1 : len(trimmed)-1]
	if name == "" {
		return "", "", &forSyntaxErr{msg: "missing function name in def directive: " + source}
	}
	return name, args, nil
}

// splitTopLevel splits s on sep, ignoring occurrences inside quotes or
// nested parens/brackets.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
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
		default:
			if c == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func (d *Def) DirectiveName() string { return "def" }
func (d *Def) SortKey() int          { return OrderDef }
func (d *Def) String() string        { return "def(" + d.Name + ")" }

func (d *Def) Apply(stream event.Seq, ctx *scope.Context, rest []Directive) event.Seq {
	body := event.Collect(stream)
	residual := append([]Directive(nil), rest...)
	params := d.Params

	ctx.Set(d.Name, expr.FuncCallable(func(args []any) (any, error) {
		return event.Seq(func(yield func(event.Event) bool) {
			frame := scope.Frame{}
			for i, p := range params {
				if i < len(args) {
					frame[p.Name] = args[i]
					continue
				}
				if p.Default != nil {
					val, err := p.Default.Evaluate(ctx, nil, false)
					if err != nil {
						Raise(err, p.Default.Position())
					}
					frame[p.Name] = val
				} else {
					frame[p.Name] = nil
				}
			}
			ctx.Push(frame)
			ApplyChain(event.FromSlice(body), ctx, residual)(yield)
			ctx.Pop()
		}), nil
	}))

	return event.Empty()
}
