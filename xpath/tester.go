package xpath

import "github.com/arturoeanton/go-markup/event"

// TestResult is one Tester.Next verdict: Matched true means "emit the
// sub-tree starting at this event"; Matched false means skip. Synth is
// reserved for leaf-test paths (text()/comment()/@attr as the final step)
// used by Select; the live match-template Tester only ever produces
// structural, whole-subtree matches, so Synth is always nil here.
type TestResult struct {
	Matched bool
	Synth   *event.Event
}

// Tester is the stateful, incremental predicate compiled from a Path:
// called once per incoming START/END event, tracking a depth stack of
// which step is the active cursor. On a failed non-closure step
// it walks back to the last // closure step to allow re-matching deeper
// in the tree, and on a full match it reports true for the caller to
// capture the whole matched sub-tree (the caller must not call Next again
// for events inside that sub-tree until its balancing END, to keep the
// depth stack in sync).
type Tester struct {
	path          *Path
	ignoreContext bool
	stack         []int
	cur           int
}

// Test compiles a stateful tester from p. ignoreContext=true makes the
// tester treat every element as a potential fresh match start regardless
// of ancestry, which is how py:match paths are applied (a match template
// matches its target element wherever it occurs, not only from the
// template's document root).
func (p *Path) Test(ignoreContext bool) *Tester {
	return &Tester{path: p, ignoreContext: ignoreContext}
}

// Next advances the tester by one event. Non-START/END events never match
// and do not affect the depth stack.
func (t *Tester) Next(e event.Event) TestResult {
	switch e.Kind {
	case event.START:
		reached, matched := t.advance(t.cur, e)
		if t.ignoreContext && !matched && t.cur != 0 {
			freshReached, freshMatched := t.advance(0, e)
			if freshMatched || freshReached > reached {
				reached, matched = freshReached, freshMatched
			}
		}
		t.stack = append(t.stack, reached)
		t.cur = reached
		return TestResult{Matched: matched}
	case event.END:
		if len(t.stack) > 0 {
			t.stack = t.stack[:len(t.stack)-1]
		}
		if len(t.stack) > 0 {
			t.cur = t.stack[len(t.stack)-1]
		} else {
			t.cur = 0
		}
		return TestResult{}
	default:
		return TestResult{}
	}
}

func (t *Tester) advance(fromIdx int, e event.Event) (reached int, matched bool) {
	steps := t.path.steps
	if fromIdx < 0 || fromIdx >= len(steps) {
		return -1, false
	}
	st := steps[fromIdx]
	if testMatches(st.test, e.Start.Name) && predsMatch(st.preds, nodeContext{name: e.Start.Name, attrs: e.Start.Attrs}) {
		next := fromIdx + 1
		if next == len(steps) {
			return next, true
		}
		return next, false
	}
	if st.axis == ClosureAxis {
		return fromIdx, false
	}
	for j := fromIdx - 1; j >= 0; j-- {
		if steps[j].axis == ClosureAxis {
			return j, false
		}
	}
	return -1, false
}
