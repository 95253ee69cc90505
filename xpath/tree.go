package xpath

import "github.com/arturoeanton/go-markup/event"

type nodeKind int

const (
	nodeElement nodeKind = iota
	nodeTextLeaf
	nodeCommentLeaf
	nodePILeaf
)

// node is a lightweight materialized tree used by Select, built once from
// a (small, already-buffered) event slice. The live document stream never
// goes through this tree -- only the bounded sub-ranges Select is asked to
// query (e.g. a match template's captured subtree).
type node struct {
	kind     nodeKind
	name     event.QName
	attrs    *event.Attributes
	children []*node
	leaf     event.Event // valid when kind != nodeElement
	full     []event.Event
}

// buildForest turns a flat, balanced event slice into the list of
// top-level sibling nodes, each carrying its own fully materialized event
// range in full (used to re-emit an element match's subtree intact).
func buildForest(events []event.Event) []*node {
	var stack []*node
	var forest []*node
	start := make([]int, 0)

	appendLeaf := func(n *node, idx int) {
		n.full = []event.Event{events[idx]}
		if len(stack) == 0 {
			forest = append(forest, n)
		} else {
			top := stack[len(stack)-1]
			top.children = append(top.children, n)
		}
	}

	for i, e := range events {
		switch e.Kind {
		case event.START:
			n := &node{kind: nodeElement, name: e.Start.Name, attrs: e.Start.Attrs}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.children = append(top.children, n)
			}
			stack = append(stack, n)
			start = append(start, i)
		case event.END:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			s := start[len(start)-1]
			stack = stack[:len(stack)-1]
			start = start[:len(start)-1]
			n.full = events[s : i+1]
			if len(stack) == 0 {
				forest = append(forest, n)
			}
		case event.TEXT:
			appendLeaf(&node{kind: nodeTextLeaf, leaf: e}, i)
		case event.COMMENT:
			appendLeaf(&node{kind: nodeCommentLeaf, leaf: e}, i)
		case event.PI:
			appendLeaf(&node{kind: nodePILeaf, leaf: e}, i)
		default:
			// PROLOG/DOCTYPE/NS events are bookkeeping, not addressable
			// tree nodes; ignored by the query engine.
		}
	}
	return forest
}
