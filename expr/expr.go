// Package expr implements a small compiled-expression language over dotted
// paths, literals, comparisons, boolean connectives and calls, following a
// "compile(source) -> expression; expression.evaluate(scope, nocall) ->
// value|error" contract. The render package evaluates only this package's
// *Expression; it has no interface through which another evaluator can be
// plugged in.
package expr

import (
	"strings"
	"sync"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/scope"
)

// Expression is a compiled expression ready for (repeated) evaluation.
// It satisfies event.Expression.
type Expression struct {
	src  string
	ast  node
	pos  event.Position
}

// Compile parses source into an Expression. filename/line are attached to
// any syntax error and to the compiled expression's own Position, used by
// downstream error wrapping.
func Compile(source, filename string, line int) (*Expression, error) {
	p := newParser(source, filename, line)
	ast, err := p.parseFull()
	if err != nil {
		return nil, err
	}
	return &Expression{src: source, ast: ast, pos: event.Position{Filename: filename, Line: line}}, nil
}

// Position returns the expression's source location.
func (e *Expression) Position() event.Position { return e.pos }

// String returns the original source text.
func (e *Expression) String() string { return e.src }

type evalCtx struct {
	scope  *scope.Context
	locals map[string]any
	nocall bool
	pos    event.Position
}

// resolve implements the free-name lookup order: nearest local scope, then
// context frames, then the builtin function table.
func (ec *evalCtx) resolve(name string) (any, bool) {
	if ec.locals != nil {
		if v, ok := ec.locals[name]; ok {
			return v, true
		}
	}
	if v, ok := ec.scope.Get(name); ok {
		return v, true
	}
	if fn, ok := lookupBuiltin(name); ok {
		return fn, true
	}
	return nil, false
}

// maybeCall implements "if the result is callable and nocall is false, it
// is invoked with no arguments and its return substituted."
func (ec *evalCtx) maybeCall(v any) (any, error) {
	if ec.nocall {
		return v, nil
	}
	if c, ok := asCallable(v); ok {
		return c.Call(nil)
	}
	return v, nil
}

// Evaluate runs the compiled expression against ctx. locals is the
// directive-injected innermost scope (e.g. a for-loop's target bindings,
// or select() inside a match template); it may be nil. nocall suppresses
// the zero-arg auto-invoke of a resolved callable, for callers that need
// the callable value itself rather than its result.
func (e *Expression) Evaluate(ctx *scope.Context, locals map[string]any, nocall bool) (any, error) {
	ec := &evalCtx{scope: ctx, locals: locals, nocall: nocall, pos: e.pos}
	v, err := e.ast.eval(ec)
	if err != nil {
		if _, ok := err.(*EvaluationError); ok {
			return nil, err
		}
		return nil, &EvaluationError{Msg: err.Error(), Pos: e.pos, Err: err}
	}
	return v, nil
}

var (
	builtinsMu sync.RWMutex
	builtins   = map[string]Callable{}
)

func lookupBuiltin(name string) (Callable, bool) {
	builtinsMu.RLock()
	defer builtinsMu.RUnlock()
	fn, ok := builtins[name]
	return fn, ok
}

// RegisterFunction installs a named builtin callable into the global
// function table consulted by free-name lookup, e.g.
// RegisterFunction("upper", ...). A sync.RWMutex-guarded name->func map,
// open for host applications to extend.
func RegisterFunction(name string, fn func(args []any) (any, error)) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	builtins[name] = FuncCallable(fn)
}

func init() {
	RegisterFunction("len", func(args []any) (any, error) {
		if len(args) != 1 {
			return 0, nil
		}
		return lengthOf(args[0]), nil
	})
	RegisterFunction("str", func(args []any) (any, error) {
		if len(args) != 1 {
			return "", nil
		}
		return toStr(args[0]), nil
	})
	RegisterFunction("int", func(args []any) (any, error) {
		if len(args) != 1 {
			return 0, nil
		}
		f, _ := asFloat(args[0])
		return int(f), nil
	})
	RegisterFunction("bool", func(args []any) (any, error) {
		if len(args) != 1 {
			return false, nil
		}
		return truthy(args[0]), nil
	})
	RegisterFunction("defined", func(args []any) (any, error) {
		if len(args) != 1 {
			return false, nil
		}
		return args[0] != nil, nil
	})
	RegisterFunction("upper", func(args []any) (any, error) {
		if len(args) != 1 {
			return "", nil
		}
		return strings.ToUpper(toStr(args[0])), nil
	})
	RegisterFunction("lower", func(args []any) (any, error) {
		if len(args) != 1 {
			return "", nil
		}
		return strings.ToLower(toStr(args[0])), nil
	})
	// value_of(x, default) returns x unless it's none, in which case it
	// returns default (or none with no default given).
	RegisterFunction("value_of", func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		if args[0] != nil {
			return args[0], nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return nil, nil
	})
}

func lengthOf(v any) int {
	switch t := v.(type) {
	case string:
		return len([]rune(t))
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	}
	return 0
}
