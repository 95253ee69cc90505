package markup

import (
	"context"
	"strings"
	"testing"

	"github.com/arturoeanton/go-markup/serialize"
)

const py = `xmlns:py="http://markup.edgewall.org/"`

func renderXML(t *testing.T, source string, data map[string]any) string {
	t.Helper()
	tmpl, err := Parse(strings.NewReader(source), "test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := tmpl.Render(context.Background(), data, "xml", "", serialize.Whitespace)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s, ok := out.(string)
	if !ok {
		t.Fatalf("Render returned %T, want string", out)
	}
	return s
}

func TestForStrip(t *testing.T) {
	source := `<doc ` + py + `> <div py:for="item in items" py:strip=""><b>${item}</b></div> </doc>`
	got := renderXML(t, source, map[string]any{"items": []any{1, 2}})
	want := `<doc> <b>1</b><b>2</b> </doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAttrsRemoval(t *testing.T) {
	source := `<doc ` + py + `><elem class="foo" py:attrs="{'class': None}"/></doc>`
	got := renderXML(t, source, nil)
	want := `<doc><elem/></doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestChooseWhenOtherwise(t *testing.T) {
	source := `<div ` + py + ` py:choose=""><span py:when="False">no</span><span py:otherwise="">yes</span></div>`
	got := renderXML(t, source, nil)
	want := `<div><span>yes</span></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefAndReplace(t *testing.T) {
	source := `<doc ` + py + `><p py:def="echo(g,n='world')">${g}, ${n}!</p><div py:replace="echo('hi')"/></doc>`
	got := renderXML(t, source, nil)
	want := `<doc><p>hi, world!</p></doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMatchRecursion(t *testing.T) {
	source := `<doc ` + py + `><elem py:match="elem" py:strip=""><div class="elem">${select('*/text()')}</div></elem><elem>Hey Joe</elem></doc>`
	got := renderXML(t, source, nil)
	want := `<doc><div class="elem">Hey Joe</div></doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMatchAppliesToOtherTemplatesOutputNotItsOwn(t *testing.T) {
	// Two independent match templates: "a" rewrites into a "b", and "b" is
	// itself matched by a second template. The second firing on the first
	// template's output must still happen (cross-template re-application is
	// allowed), while neither template ever re-triggers on its own output.
	source := `<doc ` + py + `>` +
		`<a py:match="a" py:strip=""><b>from-a</b></a>` +
		`<b py:match="b" py:strip=""><c>from-b</c></b>` +
		`<a/>` +
		`</doc>`
	got := renderXML(t, source, nil)
	want := `<doc><c>from-b</c></doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterpolationEscapeRoundTrip(t *testing.T) {
	source := `<doc ` + py + `><p>$$${'$'}</p></doc>`
	got := renderXML(t, source, nil)
	want := `<doc><p>$$</p></doc>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIdempotentRerender(t *testing.T) {
	source := `<doc ` + py + `><p py:if="flag">on</p></doc>`
	tmpl, err := Parse(strings.NewReader(source), "test")
	if err != nil {
		t.Fatal(err)
	}
	data := map[string]any{"flag": true}
	first, err := tmpl.Render(context.Background(), data, "xml", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := tmpl.Render(context.Background(), data, "xml", "")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("rendering twice produced different output: %q vs %q", first, second)
	}
}
