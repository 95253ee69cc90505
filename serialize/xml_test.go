package serialize

import (
	"io"
	"strings"
	"testing"

	"github.com/arturoeanton/go-markup/event"
)

func render(t *testing.T, fn func(io.Writer, event.Seq) error, events []event.Event) string {
	t.Helper()
	var buf strings.Builder
	if err := fn(&buf, event.FromSlice(events)); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return buf.String()
}

func TestXMLCollapsesEmptyElement(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStart(event.Name("a"), event.NewAttributes(), pos),
		event.NewEnd(event.Name("a"), pos),
	}
	got := render(t, XML, events)
	if got != "<a/>" {
		t.Errorf("got %q, want <a/>", got)
	}
}

func TestXMLEscapesTextAndAttrs(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStart(event.Name("a"), event.AttributesOf([2]string{"href", `a"b`}), pos),
		event.NewText("<hi> & bye", pos),
		event.NewEnd(event.Name("a"), pos),
	}
	got := render(t, XML, events)
	want := `<a href="a&quot;b">&lt;hi&gt; &amp; bye</a>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestXMLNamespaceDeclaredOnIntroducingElement(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStartNS("py", "http://markup.edgewall.org/", pos),
		event.NewStart(event.NewQName("http://markup.edgewall.org/", "for"), event.NewAttributes(), pos),
		event.NewEnd(event.NewQName("http://markup.edgewall.org/", "for"), pos),
		event.NewEndNS("py", pos),
	}
	got := render(t, XML, events)
	if !strings.Contains(got, `xmlns:py="http://markup.edgewall.org/"`) {
		t.Errorf("missing xmlns declaration in %q", got)
	}
}

func TestHTMLVoidElementHasNoClosingTag(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStart(event.Name("br"), event.NewAttributes(), pos),
		event.NewEnd(event.Name("br"), pos),
	}
	got := render(t, HTML, events)
	if got != "<br>" {
		t.Errorf("got %q, want <br>", got)
	}
}

func TestHTMLBooleanAttributeRendersNameOnly(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStart(event.Name("input"), event.AttributesOf([2]string{"checked", "checked"}), pos),
		event.NewEnd(event.Name("input"), pos),
	}
	got := render(t, HTML, events)
	if got != `<input checked>` {
		t.Errorf("got %q, want <input checked>", got)
	}
}

func TestHTMLSuppressesForeignNamespaceSubtree(t *testing.T) {
	pos := event.Position{}
	foreign := event.NewQName("urn:foreign", "widget")
	events := []event.Event{
		event.NewStart(event.Name("div"), event.NewAttributes(), pos),
		event.NewStart(foreign, event.NewAttributes(), pos),
		event.NewText("hidden", pos),
		event.NewEnd(foreign, pos),
		event.NewEnd(event.Name("div"), pos),
	}
	got := render(t, HTML, events)
	if strings.Contains(got, "hidden") || strings.Contains(got, "widget") {
		t.Errorf("expected foreign-namespace subtree suppressed, got %q", got)
	}
}

func TestWhitespaceCollapsesAdjacentText(t *testing.T) {
	pos := event.Position{}
	events := []event.Event{
		event.NewStart(event.Name("p"), event.NewAttributes(), pos),
		event.NewText("line one  \n", pos),
		event.NewText("\n\n\nline two", pos),
		event.NewEnd(event.Name("p"), pos),
	}
	out := event.Collect(Whitespace(event.FromSlice(events)))
	var text strings.Builder
	for _, e := range out {
		if e.Kind == event.TEXT {
			text.WriteString(e.TextVal.Data)
		}
	}
	if strings.Contains(text.String(), "\n\n\n") {
		t.Errorf("expected collapsed newlines, got %q", text.String())
	}
}
