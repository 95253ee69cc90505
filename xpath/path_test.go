package xpath

import (
	"testing"

	"github.com/arturoeanton/go-markup/event"
)

func tag(local string) event.QName { return event.Name(local) }

func buildBookstore() []event.Event {
	pos := event.Position{}
	return []event.Event{
		event.NewStart(tag("store"), event.NewAttributes(), pos),
		event.NewStart(tag("book"), event.AttributesOf([2]string{"category", "reference"}), pos),
		event.NewText("Sayings of the Century", pos),
		event.NewEnd(tag("book"), pos),
		event.NewStart(tag("book"), event.AttributesOf([2]string{"category", "fiction"}), pos),
		event.NewText("Moby Dick", pos),
		event.NewEnd(tag("book"), pos),
		event.NewEnd(tag("store"), pos),
	}
}

func TestSelectChildStep(t *testing.T) {
	path, err := Compile("store/book")
	if err != nil {
		t.Fatal(err)
	}
	out := path.Select(buildBookstore())
	var starts int
	for _, e := range out {
		if e.Kind == event.START && e.Start.Name.Local == "book" {
			starts++
		}
	}
	if starts != 2 {
		t.Errorf("expected 2 matched <book> subtrees, got %d", starts)
	}
}

func TestSelectAttributePredicate(t *testing.T) {
	path, err := Compile("store/book[@category='fiction']")
	if err != nil {
		t.Fatal(err)
	}
	out := path.Select(buildBookstore())
	if len(out) == 0 {
		t.Fatal("expected at least one matched event")
	}
	if out[0].Kind != event.START || out[0].Start.Name.Local != "book" {
		t.Fatalf("expected the fiction <book> subtree, got %+v", out[0])
	}
	v, _ := out[0].Start.Attrs.Get(tag("category"))
	if v != "fiction" {
		t.Errorf("matched wrong book: category=%q", v)
	}
}

func TestSelectTextStep(t *testing.T) {
	path, err := Compile("store/book/text()")
	if err != nil {
		t.Fatal(err)
	}
	out := path.Select(buildBookstore())
	if len(out) != 2 {
		t.Fatalf("expected 2 text events, got %d", len(out))
	}
	if out[0].Kind != event.TEXT || out[0].TextVal.Data != "Sayings of the Century" {
		t.Errorf("unexpected first text: %+v", out[0])
	}
}

func TestSelectDescendantAxis(t *testing.T) {
	path, err := Compile("//book")
	if err != nil {
		t.Fatal(err)
	}
	out := path.Select(buildBookstore())
	var starts int
	for _, e := range out {
		if e.Kind == event.START {
			starts++
		}
	}
	if starts != 2 {
		t.Errorf("expected //book to find both books, got %d starts", starts)
	}
}

func TestTesterMatchesWholeSubtreeAndResumes(t *testing.T) {
	path, err := Compile("book")
	if err != nil {
		t.Fatal(err)
	}
	tester := path.Test(true)
	events := buildBookstore()

	var matchedStarts int
	depth := 0
	for i := 0; i < len(events); i++ {
		e := events[i]
		res := tester.Next(e)
		if e.Kind == event.START {
			depth++
			if res.Matched {
				matchedStarts++
				// Simulate the match filter's contract: skip inner events
				// of the captured subtree until its balancing END, feed only
				// that END back to the tester, and walk the depth counter
				// back down to where it started.
				inner := depth
				j := i + 1
				for ; j < len(events); j++ {
					if events[j].Kind == event.START {
						inner++
					} else if events[j].Kind == event.END {
						inner--
						if inner < depth {
							break
						}
					}
				}
				if j < len(events) {
					tester.Next(events[j])
				}
				depth--
				i = j
				continue
			}
		} else if e.Kind == event.END {
			depth--
		}
	}
	if matchedStarts != 2 {
		t.Errorf("expected the book-only path to match both books, got %d", matchedStarts)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	if _, err := Compile("book["); err == nil {
		t.Error("expected a syntax error for an unterminated predicate")
	}
}
