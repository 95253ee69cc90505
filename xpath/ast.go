package xpath

import "github.com/arturoeanton/go-markup/event"

// Axis is the step's traversal axis: child ('/') or descendant-or-self
// closure ('//'). These are the only two axes the restricted grammar
// supports; anything else is a PathSyntaxError at compile time.
type Axis int

const (
	ChildAxis Axis = iota
	ClosureAxis
)

type testKind int

const (
	testElement testKind = iota
	testWildcard
	testAttr
	testAttrWildcard
	testText
	testComment
	testPI
	testNode
	testSelf
)

// nodeTest is one step's node test: an element name, '*', '@name', '@*',
// text(), comment(), processing-instruction([literal]), node() or '.'.
type nodeTest struct {
	kind    testKind
	name    string
	piLit   string
	hasPI   bool
}

// step is one '/'-or-'//'-separated path component, with its predicates.
type step struct {
	axis  Axis
	test  nodeTest
	preds []predNode
}

// predNode is the predicate expression AST: @name, literal strings,
// name()/local-name()/namespace-uri()/not(), boolean and/or, = and !=.
type predNode interface {
	evalPred(nc nodeContext) predVal
}

// predVal is a predicate's evaluated value: either a boolean or a string
// (string comparisons like @name='x' compare string values; elsewhere a
// string coerces to boolean "non-empty").
type predVal struct {
	isBool bool
	b      bool
	s      string
}

func boolVal(b bool) predVal { return predVal{isBool: true, b: b} }
func strVal(s string) predVal { return predVal{s: s} }

func (v predVal) truthy() bool {
	if v.isBool {
		return v.b
	}
	return v.s != ""
}

// nodeContext is the information a predicate can query about the element
// currently under test: its qualified name and its attribute list.
type nodeContext struct {
	name  event.QName
	attrs *event.Attributes
}

type attrRefNode struct{ name string } // @name or @* (name=="*")

func (n attrRefNode) evalPred(nc nodeContext) predVal {
	if n.name == "*" {
		return boolVal(nc.attrs != nil && nc.attrs.Len() > 0)
	}
	if nc.attrs == nil {
		return strVal("")
	}
	v, _ := nc.attrs.Get(event.Name(n.name))
	return strVal(v)
}

type litNode struct{ s string }

func (n litNode) evalPred(nc nodeContext) predVal { return strVal(n.s) }

type funcNode struct {
	name string
	args []predNode
}

func (n funcNode) evalPred(nc nodeContext) predVal {
	switch n.name {
	case "name":
		if nc.name.Namespace == "" {
			return strVal(nc.name.Local)
		}
		return strVal("{" + nc.name.Namespace + "}" + nc.name.Local)
	case "local-name":
		return strVal(nc.name.Local)
	case "namespace-uri":
		return strVal(nc.name.Namespace)
	case "not":
		if len(n.args) != 1 {
			return boolVal(false)
		}
		return boolVal(!n.args[0].evalPred(nc).truthy())
	}
	return boolVal(false)
}

type cmpNode struct {
	op   string // "=" or "!="
	l, r predNode
}

func (n cmpNode) evalPred(nc nodeContext) predVal {
	lv := n.l.evalPred(nc)
	rv := n.r.evalPred(nc)
	eq := toCmpStr(lv) == toCmpStr(rv)
	if n.op == "!=" {
		return boolVal(!eq)
	}
	return boolVal(eq)
}

func toCmpStr(v predVal) string {
	if v.isBool {
		if v.b {
			return "true"
		}
		return "false"
	}
	return v.s
}

type boolNode struct {
	op   string // "and" or "or"
	l, r predNode
}

func (n boolNode) evalPred(nc nodeContext) predVal {
	if n.op == "and" {
		return boolVal(n.l.evalPred(nc).truthy() && n.r.evalPred(nc).truthy())
	}
	return boolVal(n.l.evalPred(nc).truthy() || n.r.evalPred(nc).truthy())
}
