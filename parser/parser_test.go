package parser

import (
	"strings"
	"testing"

	"github.com/arturoeanton/go-markup/event"
)

func TestParseEmitsBalancedStartEnd(t *testing.T) {
	events, err := Parse(strings.NewReader(`<a><b>text</b></a>`), "test")
	if err != nil {
		t.Fatal(err)
	}
	var depth int
	for _, e := range events {
		switch e.Kind {
		case event.START:
			depth++
		case event.END:
			depth--
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced START/END, final depth %d", depth)
	}
}

func TestParseStripsBangComments(t *testing.T) {
	events, err := Parse(strings.NewReader(`<a><!--!hidden--><!--visible--></a>`), "test")
	if err != nil {
		t.Fatal(err)
	}
	var comments []string
	for _, e := range events {
		if e.Kind == event.COMMENT {
			comments = append(comments, e.Comment)
		}
	}
	if len(comments) != 1 || comments[0] != "visible" {
		t.Errorf("expected only the non-bang comment to survive, got %v", comments)
	}
}

func TestParsePropagatesPosition(t *testing.T) {
	events, err := Parse(strings.NewReader("<a>\n<b/>\n</a>"), "widget.xml")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range events {
		if e.Pos.Filename != "widget.xml" {
			t.Errorf("event %v missing filename in position %v", e.Kind, e.Pos)
		}
	}
}

func TestParseHTMLAutoClosesVoidElements(t *testing.T) {
	events, err := ParseHTML(strings.NewReader(`<div><br><img src="x"></div>`), "test")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range events {
		if e.Kind == event.START {
			names = append(names, e.Start.Name.Local)
		}
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["br"] || !found["img"] {
		t.Errorf("expected br/img as START events, got %v", names)
	}
}

func TestParseNamespaceDeclaration(t *testing.T) {
	events, err := Parse(strings.NewReader(`<root xmlns:py="http://markup.edgewall.org/"><py:for/></root>`), "test")
	if err != nil {
		t.Fatal(err)
	}
	var sawNS bool
	for _, e := range events {
		if e.Kind == event.START_NS && e.NSStart.Prefix == "py" && e.NSStart.URI == "http://markup.edgewall.org/" {
			sawNS = true
		}
	}
	if !sawNS {
		t.Error("expected a START_NS event for the py: prefix binding")
	}
}
