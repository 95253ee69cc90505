package expr

import (
	"testing"

	"github.com/arturoeanton/go-markup/scope"
)

func eval(t *testing.T, source string, sc *scope.Context, locals map[string]any) any {
	t.Helper()
	e, err := Compile(source, "test", 1)
	if err != nil {
		t.Fatalf("Compile(%q): %v", source, err)
	}
	v, err := e.Evaluate(sc, locals, false)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", source, err)
	}
	return v
}

func TestEvaluateLiteralsAndArithmetic(t *testing.T) {
	sc := scope.New()
	tests := []struct {
		src  string
		want any
	}{
		{"1 + 2", 3},
		{"'a' + 'b'", "ab"},
		{"2 * 3 - 1", 5},
		{"10 / 4", 2.5},
		{"not true", false},
		{"1 < 2 and 2 < 3", true},
		{"1 > 2 or 3 == 3", true},
	}
	for _, tt := range tests {
		if got := eval(t, tt.src, sc, nil); got != tt.want {
			t.Errorf("%q = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEvaluateResolvesLocalsBeforeScope(t *testing.T) {
	sc := scope.New()
	sc.Push(scope.Frame{"item": "outer"})
	got := eval(t, "item", sc, map[string]any{"item": "inner"})
	if got != "inner" {
		t.Errorf("locals did not shadow scope: got %v", got)
	}
}

func TestEvaluateDottedPathAndIndex(t *testing.T) {
	sc := scope.New()
	sc.Push(scope.Frame{"book": map[string]any{"title": "Dune"}, "items": []any{"a", "b", "c"}})
	if got := eval(t, "book.title", sc, nil); got != "Dune" {
		t.Errorf("book.title = %v", got)
	}
	if got := eval(t, "items[1]", sc, nil); got != "b" {
		t.Errorf("items[1] = %v", got)
	}
}

func TestEvaluateCallableAutoInvoke(t *testing.T) {
	sc := scope.New()
	sc.Push(scope.Frame{"greet": FuncCallable(func(args []any) (any, error) { return "hi", nil })})
	if got := eval(t, "greet", sc, nil); got != "hi" {
		t.Errorf("auto-invoke of zero-arg callable = %v, want hi", got)
	}
}

func TestEvaluateNoCallSuppressesAutoInvoke(t *testing.T) {
	sc := scope.New()
	fn := FuncCallable(func(args []any) (any, error) { return "hi", nil })
	sc.Push(scope.Frame{"greet": fn})
	e, err := Compile("greet", "test", 1)
	if err != nil {
		t.Fatal(err)
	}
	v, err := e.Evaluate(sc, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(FuncCallable); !ok {
		t.Errorf("nocall=true should return the callable itself, got %T", v)
	}
}

func TestEvaluateUndefinedNameResolvesToNone(t *testing.T) {
	sc := scope.New()
	e, err := Compile("nosuchname", "test", 1)
	if err != nil {
		t.Fatal(err)
	}
	v, err := e.Evaluate(sc, nil, false)
	if err != nil {
		t.Fatalf("forgiving lookup should not error on an undefined name: %v", err)
	}
	if v != nil {
		t.Errorf("nosuchname = %v, want nil", v)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	if _, err := Compile("1 +", "test", 1); err == nil {
		t.Error("expected a syntax error for an incomplete expression")
	}
}
