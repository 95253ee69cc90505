package compiler

import (
	"strings"
	"testing"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/parser"
)

func compileSource(t *testing.T, source string) []event.Event {
	t.Helper()
	raw, err := parser.Parse(strings.NewReader(source), "test")
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	compiled, err := Compile(raw, "test")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return compiled
}

func TestCompileLiftsDirectiveIntoSub(t *testing.T) {
	events := compileSource(t, `<doc xmlns:py="http://markup.edgewall.org/"><p py:if="flag">hi</p></doc>`)
	var sawSub bool
	for _, e := range events {
		if e.Kind == event.SUB {
			sawSub = true
			if len(e.Sub.Directives) != 1 || e.Sub.Directives[0].DirectiveName() != "if" {
				t.Errorf("expected a single if directive on the SUB, got %v", e.Sub.Directives)
			}
		}
	}
	if !sawSub {
		t.Error("expected a directive attribute to compile into a SUB event")
	}
}

func TestCompileCanonicalOrderIndependentOfSourceOrder(t *testing.T) {
	// py:strip and py:if reversed in source order must still compile to the
	// same canonical [if, strip] directive order (if is structurally outer).
	a := compileSource(t, `<doc xmlns:py="http://markup.edgewall.org/"><p py:if="true" py:strip="">hi</p></doc>`)
	b := compileSource(t, `<doc xmlns:py="http://markup.edgewall.org/"><p py:strip="" py:if="true">hi</p></doc>`)

	namesOf := func(events []event.Event) []string {
		for _, e := range events {
			if e.Kind == event.SUB {
				var names []string
				for _, d := range e.Sub.Directives {
					names = append(names, d.DirectiveName())
				}
				return names
			}
		}
		return nil
	}
	na, nb := namesOf(a), namesOf(b)
	if len(na) != 2 || len(nb) != 2 {
		t.Fatalf("expected 2 directives each, got %v / %v", na, nb)
	}
	if na[0] != nb[0] || na[1] != nb[1] {
		t.Errorf("directive order should be source-order-independent: %v vs %v", na, nb)
	}
	if na[0] != "if" || na[1] != "strip" {
		t.Errorf("expected canonical order [if, strip], got %v", na)
	}
}

func TestCompileSplitsInterpolatedText(t *testing.T) {
	events := compileSource(t, `<doc xmlns:py="http://markup.edgewall.org/"><p>hi ${name}!</p></doc>`)
	var sawExpr bool
	for _, e := range events {
		if e.Kind == event.EXPR {
			sawExpr = true
		}
	}
	if !sawExpr {
		t.Error("expected interpolated text to compile into an EXPR event")
	}
}
