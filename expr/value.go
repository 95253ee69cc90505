package expr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Callable is implemented by any value bound in scope/locals/builtins that
// can be invoked from an expression -- e.g. the closure directive.def
// installs in context, or a builtin function.
type Callable interface {
	Call(args []any) (any, error)
}

// FuncCallable adapts a plain Go func([]any) (any, error) to Callable, the
// shape every builtin in this package uses.
type FuncCallable func(args []any) (any, error)

func (f FuncCallable) Call(args []any) (any, error) { return f(args) }

func asCallable(v any) (Callable, bool) {
	c, ok := v.(Callable)
	return c, ok
}

// Lookup implements uniform attribute/item access: given any value and a
// key, it tries (1) a named struct field, (2) a map entry, (3) slice/array
// indexing when key parses as an integer, falling back to none. This
// unifies `a.b` and `a["b"]`.
func Lookup(v any, key string) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		if val, ok := t[key]; ok {
			return val
		}
		return nil
	case map[any]any:
		if val, ok := t[key]; ok {
			return val
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if f := rv.FieldByName(strings.Title(key)); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
		if f := rv.FieldByName(key); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
		m := rv.MethodByName(strings.Title(key))
		if !m.IsValid() {
			m = rv.MethodByName(key)
		}
		if m.IsValid() && m.Type().NumIn() == 0 {
			out := m.Call(nil)
			if len(out) > 0 {
				return out[0].Interface()
			}
		}
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if kv.Type().ConvertibleTo(rv.Type().Key()) {
			val := rv.MapIndex(kv.Convert(rv.Type().Key()))
			if val.IsValid() {
				return val.Interface()
			}
		}
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < rv.Len() {
			return rv.Index(i).Interface()
		}
	}
	return nil
}

// Truthy implements boolean coercion for if/when/choose: nil, false, zero
// numbers, empty strings and empty collections are falsy. Exported for the
// directive package, which applies the same coercion to raw evaluated
// values outside any expression AST node.
func Truthy(v any) bool { return truthy(v) }

// EqualValues implements equality comparison (numeric when both sides
// parse as numbers, string comparison otherwise), exported for directive's
// when/choose value comparison.
func EqualValues(l, r any) bool { return equalValues(l, r) }

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0
		}
		return true
	}
}

func negate(v any) any {
	switch t := v.(type) {
	case int:
		return -t
	case int64:
		return -t
	case float64:
		return -t
	}
	return v
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

func toStr(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func equalValues(l, r any) bool {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		return lf == rf
	}
	return toStr(l) == toStr(r)
}

func applyBinary(op string, l, r any, ec *evalCtx) (any, error) {
	switch op {
	case "==":
		return equalValues(l, r), nil
	case "!=":
		return !equalValues(l, r), nil
	case "<", "<=", ">", ">=":
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if lok && rok {
			switch op {
			case "<":
				return lf < rf, nil
			case "<=":
				return lf <= rf, nil
			case ">":
				return lf > rf, nil
			case ">=":
				return lf >= rf, nil
			}
		}
		ls, rs := toStr(l), toStr(r)
		switch op {
		case "<":
			return ls < rs, nil
		case "<=":
			return ls <= rs, nil
		case ">":
			return ls > rs, nil
		case ">=":
			return ls >= rs, nil
		}
	case "+":
		if ls, ok := l.(string); ok {
			return ls + toStr(r), nil
		}
		if rs, ok := r.(string); ok {
			return toStr(l) + rs, nil
		}
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if lok && rok {
			return numResult(l, r, lf+rf), nil
		}
		return nil, &EvaluationError{Msg: "cannot add " + fmt.Sprintf("%T and %T", l, r), Pos: ec.pos}
	case "-", "*", "/":
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return nil, &EvaluationError{Msg: "non-numeric operand for " + op, Pos: ec.pos}
		}
		switch op {
		case "-":
			return numResult(l, r, lf-rf), nil
		case "*":
			return numResult(l, r, lf*rf), nil
		case "/":
			if rf == 0 {
				return nil, &EvaluationError{Msg: "division by zero", Pos: ec.pos}
			}
			return lf / rf, nil
		}
	}
	return nil, &EvaluationError{Msg: "unknown operator " + op, Pos: ec.pos}
}

// numResult keeps integer arithmetic integer when both operands were ints.
func numResult(l, r any, f float64) any {
	_, li := l.(int)
	_, ri := r.(int)
	if li && ri && f == float64(int(f)) {
		return int(f)
	}
	return f
}
