package markup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arturoeanton/go-markup/event"
)

func TestSanitizerDropsScriptAndUnsafeAttrs(t *testing.T) {
	source := `<div ` + py + `><script>alert(1)</script><a href="javascript:x" onclick="y">hi</a></div>`
	tmpl, err := Parse(strings.NewReader(source), "test")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(context.Background(), nil, "xml", "", Sanitizer)
	if err != nil {
		t.Fatal(err)
	}
	got := out.(string)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("expected <script> dropped entirely, got %q", got)
	}
	if strings.Contains(got, "javascript:") || strings.Contains(got, "onclick") {
		t.Errorf("expected unsafe attributes stripped, got %q", got)
	}
	if !strings.Contains(got, "hi") {
		t.Errorf("expected surviving text content, got %q", got)
	}
}

func TestFileLoaderCachesByModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.xml")
	if err := os.WriteFile(path, []byte(`<p xmlns:py="http://markup.edgewall.org/">hi</p>`), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := &FileLoader{Roots: []string{dir}}
	first, err := loader.Load("greet.xml", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := loader.Load("greet.xml", "")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same cached *Template across loads with an unchanged mtime")
	}
}

func TestFileLoaderNotFoundListsSearchedPaths(t *testing.T) {
	loader := &FileLoader{Roots: []string{t.TempDir()}}
	_, err := loader.Load("missing.xml", "")
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	notFound, ok := err.(*TemplateNotFound)
	if !ok {
		t.Fatalf("expected *TemplateNotFound, got %T", err)
	}
	if len(notFound.Searched) != 1 {
		t.Errorf("expected one searched path, got %v", notFound.Searched)
	}
}

func TestXIncludeFilterInlinesIncludedTemplate(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.xml")
	if err := os.WriteFile(partial, []byte(`<b>included</b>`), 0o644); err != nil {
		t.Fatal(err)
	}
	main := filepath.Join(dir, "main.xml")
	source := `<div xmlns:xi="http://www.w3.org/2001/XInclude"><xi:include href="partial.xml"/></div>`
	if err := os.WriteFile(main, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &FileLoader{Roots: []string{dir}, Include: true}
	tmpl, err := loader.Load("main.xml", "")
	if err != nil {
		t.Fatal(err)
	}

	var sawIncludedText bool
	for _, e := range tmpl.Events {
		if e.Kind == event.TEXT && e.TextVal.Data == "included" {
			sawIncludedText = true
		}
		if e.Kind == event.START && e.Start.Name.Local == "include" {
			t.Error("xi:include element should have been replaced, not passed through")
		}
	}
	if !sawIncludedText {
		t.Error("expected the included template's text content inlined")
	}
}

func TestXIncludeFilterResolvesIncludeNestedInsideDirective(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.xml")
	if err := os.WriteFile(partial, []byte(`<b>included</b>`), 0o644); err != nil {
		t.Fatal(err)
	}
	main := filepath.Join(dir, "main.xml")
	source := `<div xmlns:py="http://markup.edgewall.org/" xmlns:xi="http://www.w3.org/2001/XInclude" py:if="true">` +
		`<xi:include href="partial.xml"/></div>`
	if err := os.WriteFile(main, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &FileLoader{Roots: []string{dir}, Include: true}
	tmpl, err := loader.Load("main.xml", "")
	if err != nil {
		t.Fatal(err)
	}

	var sawIncludedText, sawUnresolvedInclude bool
	var walk func(events []event.Event)
	walk = func(events []event.Event) {
		for _, e := range events {
			if e.Kind == event.TEXT && e.TextVal.Data == "included" {
				sawIncludedText = true
			}
			if e.Kind == event.START && e.Start.Name.Local == "include" {
				sawUnresolvedInclude = true
			}
			if e.Kind == event.SUB {
				walk(e.Sub.Inner)
			}
		}
	}
	walk(tmpl.Events)

	if sawUnresolvedInclude {
		t.Error("xi:include nested inside a directive-bearing element should have been replaced, not passed through")
	}
	if !sawIncludedText {
		t.Error("expected the included template's text content inlined inside the directive's SUB")
	}
}

func TestXIncludeFilterFallsBackOnMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.xml")
	source := `<div xmlns:xi="http://www.w3.org/2001/XInclude">` +
		`<xi:include href="nope.xml"><xi:fallback><b>fallback</b></xi:fallback></xi:include>` +
		`</div>`
	if err := os.WriteFile(main, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &FileLoader{Roots: []string{dir}, Include: true}
	tmpl, err := loader.Load("main.xml", "")
	if err != nil {
		t.Fatal(err)
	}

	var sawFallback bool
	for _, e := range tmpl.Events {
		if e.Kind == event.TEXT && e.TextVal.Data == "fallback" {
			sawFallback = true
		}
	}
	if !sawFallback {
		t.Error("expected the xi:fallback content when the include target is missing")
	}
}
