package expr

// node is the compiled expression's AST; each variant implements eval.
type node interface {
	eval(ec *evalCtx) (any, error)
}

type literalNode struct{ val any }

func (n literalNode) eval(ec *evalCtx) (any, error) { return n.val, nil }

type identNode struct{ name string }

func (n identNode) eval(ec *evalCtx) (any, error) {
	v, found := ec.resolve(n.name)
	if !found {
		return nil, nil // forgiving lookup: missing name -> none
	}
	return ec.maybeCall(v)
}

type memberNode struct {
	x    node
	name string
}

func (n memberNode) eval(ec *evalCtx) (any, error) {
	base, err := n.x.eval(ec)
	if err != nil {
		return nil, err
	}
	return ec.maybeCall(Lookup(base, n.name))
}

type indexNode struct {
	x   node
	idx node
}

func (n indexNode) eval(ec *evalCtx) (any, error) {
	base, err := n.x.eval(ec)
	if err != nil {
		return nil, err
	}
	idx, err := n.idx.eval(ec)
	if err != nil {
		return nil, err
	}
	return ec.maybeCall(Lookup(base, toStr(idx)))
}

type callNode struct {
	fn   node
	args []node
}

func (n callNode) eval(ec *evalCtx) (any, error) {
	fnVal, err := evalFnTarget(n.fn, ec)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(ec)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	callable, ok := asCallable(fnVal)
	if !ok {
		return nil, &EvaluationError{Msg: "value is not callable", Pos: ec.pos}
	}
	return callable.Call(args)
}

// evalNoCall evaluates n the way identNode/memberNode would, but without
// the trailing auto-invoke, since callNode needs the raw callable to
// apply its own argument list.
func (n identNode) evalNoCall(ec *evalCtx) (any, error) {
	v, found := ec.resolve(n.name)
	if !found {
		return nil, nil
	}
	return v, nil
}

func (n memberNode) evalNoCall(ec *evalCtx) (any, error) {
	base, err := n.x.eval(ec)
	if err != nil {
		return nil, err
	}
	return Lookup(base, n.name), nil
}

// noCallEvaler is implemented by nodes that can be evaluated without the
// trailing auto-call so callNode can fetch the bare callable.
type noCallEvaler interface {
	evalNoCall(ec *evalCtx) (any, error)
}

func evalFnTarget(n node, ec *evalCtx) (any, error) {
	if nc, ok := n.(noCallEvaler); ok {
		return nc.evalNoCall(ec)
	}
	return n.eval(ec)
}

// dictNode builds a mapping literal, e.g. py:attrs="{'class': None}".
// Keys are themselves expressions (almost always string literals) so a
// computed key like {name: value} works the same as Python's dict display.
type dictNode struct {
	keys, vals []node
}

func (n dictNode) eval(ec *evalCtx) (any, error) {
	m := make(map[string]any, len(n.keys))
	for i, k := range n.keys {
		kv, err := k.eval(ec)
		if err != nil {
			return nil, err
		}
		vv, err := n.vals[i].eval(ec)
		if err != nil {
			return nil, err
		}
		m[toStr(kv)] = vv
	}
	return m, nil
}

type unaryNode struct {
	op string
	x  node
}

func (n unaryNode) eval(ec *evalCtx) (any, error) {
	v, err := n.x.eval(ec)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "not":
		return !truthy(v), nil
	case "-":
		return negate(v), nil
	}
	return nil, &EvaluationError{Msg: "unknown unary operator " + n.op, Pos: ec.pos}
}

type binaryNode struct {
	op   string
	l, r node
}

func (n binaryNode) eval(ec *evalCtx) (any, error) {
	switch n.op {
	case "and":
		l, err := n.l.eval(ec)
		if err != nil {
			return nil, err
		}
		if !truthy(l) {
			return false, nil
		}
		r, err := n.r.eval(ec)
		if err != nil {
			return nil, err
		}
		return truthy(r), nil
	case "or":
		l, err := n.l.eval(ec)
		if err != nil {
			return nil, err
		}
		if truthy(l) {
			return true, nil
		}
		r, err := n.r.eval(ec)
		if err != nil {
			return nil, err
		}
		return truthy(r), nil
	}

	l, err := n.l.eval(ec)
	if err != nil {
		return nil, err
	}
	r, err := n.r.eval(ec)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.op, l, r, ec)
}
