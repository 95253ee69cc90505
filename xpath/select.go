package xpath

import "github.com/arturoeanton/go-markup/event"

// Select applies the path to events, yielding the events of every matched
// element's complete sub-tree (document order), synthesized TEXT events for
// attribute final steps, or the matching TEXT/COMMENT/PI leaf events for
// text()/comment()/processing-instruction() final steps. events is
// expected to be a bounded, balanced range; the engine always calls it on
// an already-buffered sub-range (a match template's captured subtree),
// never on the unbounded live document stream.
func (p *Path) Select(events []event.Event) []event.Event {
	forest := buildForest(events)
	if len(p.steps) == 0 {
		return nil
	}
	candidates := forest
	last := len(p.steps) - 1
	for i := 0; i < last; i++ {
		candidates = matchStep(candidates, p.steps[i], i == 0)
		if len(candidates) == 0 {
			return nil
		}
	}
	return finalizeStep(candidates, p.steps[last], last == 0)
}

// matchStep advances candidates through st, returning matched element
// nodes in document order. first indicates st is the path's first step,
// in which case a child-axis test applies to the candidates themselves (a
// relative path's first step addresses the given context nodes, not their
// children); a leading // searches the candidates and all their descendants.
func matchStep(candidates []*node, st step, first bool) []*node {
	var out []*node
	if first && st.axis != ClosureAxis {
		for _, c := range candidates {
			if c.kind == nodeElement && testMatches(st.test, c.name) && predsMatch(st.preds, nodeContext{name: c.name, attrs: c.attrs}) {
				out = append(out, c)
			}
		}
		return out
	}
	for _, c := range candidates {
		if st.axis == ClosureAxis {
			walkDescendantOrSelf(c, func(n *node) {
				if n.kind == nodeElement && testMatches(st.test, n.name) && predsMatch(st.preds, nodeContext{name: n.name, attrs: n.attrs}) {
					out = append(out, n)
				}
			})
			continue
		}
		for _, ch := range c.children {
			if ch.kind == nodeElement && testMatches(st.test, ch.name) && predsMatch(st.preds, nodeContext{name: ch.name, attrs: ch.attrs}) {
				out = append(out, ch)
			}
		}
	}
	return out
}

func walkDescendantOrSelf(n *node, visit func(*node)) {
	visit(n)
	for _, ch := range n.children {
		walkDescendantOrSelf(ch, visit)
	}
}

func testMatches(t nodeTest, name event.QName) bool {
	switch t.kind {
	case testElement:
		return name.Local == t.name || name.String() == t.name
	case testWildcard, testNode, testSelf:
		return true
	default:
		return false
	}
}

func predsMatch(preds []predNode, nc nodeContext) bool {
	for _, pr := range preds {
		if !pr.evalPred(nc).truthy() {
			return false
		}
	}
	return true
}

// finalizeStep evaluates the path's last step. Structural tests emit the
// matched elements' intact sub-trees; attribute tests synthesize TEXT
// events, and text/comment/PI tests pass the matching leaf events through.
func finalizeStep(candidates []*node, st step, first bool) []event.Event {
	switch st.test.kind {
	case testElement, testWildcard, testNode, testSelf:
		matched := matchStep(candidates, st, first)
		var out []event.Event
		for _, n := range matched {
			out = append(out, n.full...)
		}
		return out
	case testAttr, testAttrWildcard:
		var out []event.Event
		for _, c := range attrContextNodes(candidates, st, first) {
			if !predsMatch(st.preds, nodeContext{name: c.name, attrs: c.attrs}) || c.attrs == nil {
				continue
			}
			if st.test.kind == testAttrWildcard {
				c.attrs.Each(func(name event.QName, v string) bool {
					out = append(out, event.NewText(v, event.Position{}))
					return true
				})
				continue
			}
			if v, ok := c.attrs.Get(event.Name(st.test.name)); ok {
				out = append(out, event.NewText(v, event.Position{}))
			}
		}
		return out
	case testText, testComment, testPI:
		var out []event.Event
		for _, c := range attrContextNodes(candidates, st, first) {
			leafKind := nodeTextLeaf
			switch st.test.kind {
			case testComment:
				leafKind = nodeCommentLeaf
			case testPI:
				leafKind = nodePILeaf
			}
			var visit func(*node)
			emit := func(n *node) {
				if n.kind != leafKind {
					return
				}
				if st.test.kind == testPI && st.test.hasPI {
					if n.leaf.PIVal.Target != st.test.piLit {
						return
					}
				}
				out = append(out, n.leaf)
			}
			if st.axis == ClosureAxis {
				visit = func(n *node) {
					emit(n)
					for _, ch := range n.children {
						visit(ch)
					}
				}
				for _, ch := range c.children {
					visit(ch)
				}
			} else {
				for _, ch := range c.children {
					emit(ch)
				}
			}
		}
		return out
	}
	return nil
}

// attrContextNodes resolves the element nodes a final attribute/text/
// comment/PI step applies to: candidates themselves if this leaf test is
// the path's only step, otherwise the elements matched by treating st as
// a structural element test would have matched one level up -- i.e.
// candidates already holds the elements the leaf test reads from.
func attrContextNodes(candidates []*node, st step, first bool) []*node {
	return candidates
}
