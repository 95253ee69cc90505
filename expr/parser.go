package expr

import (
	"strconv"
	"strings"

	"github.com/arturoeanton/go-markup/event"
)

type parser struct {
	lex  *lexer
	tok  token
	pos  event.Position
	file string
	line int
}

func newParser(src, filename string, line int) *parser {
	p := &parser{lex: newLexer(src), file: filename, line: line}
	p.tok = p.lex.next()
	return p
}

func (p *parser) syntaxErr(msg string) error {
	return &SyntaxError{Msg: msg, Pos: event.Position{Filename: p.file, Line: p.line}}
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) expect(k tokKind, text string) error {
	if p.tok.kind != k || (text != "" && p.tok.text != text) {
		return p.syntaxErr("expected '" + text + "'")
	}
	p.advance()
	return nil
}

func (p *parser) parseExpr() (node, error) { return p.parseOr() }

func (p *parser) parseOr() (node, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokIdent && p.tok.text == "or" {
		p.advance()
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: "or", l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseAnd() (node, error) {
	l, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokIdent && p.tok.text == "and" {
		p.advance()
		r, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: "and", l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseNot() (node, error) {
	if p.tok.kind == tokIdent && p.tok.text == "not" {
		p.advance()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: "not", x: x}, nil
	}
	return p.parseComparison()
}

var cmpOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) parseComparison() (node, error) {
	l, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokOp && cmpOps[p.tok.text] {
		op := p.tok.text
		p.advance()
		r, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: op, l: l, r: r}, nil
	}
	return l, nil
}

func (p *parser) parseAdditive() (node, error) {
	l, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.advance()
		r, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: op, l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text
		p.advance()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: op, l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind == tokOp && p.tok.text == "-" {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: "-", x: x}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tok.kind == tokDot:
			p.advance()
			if p.tok.kind != tokIdent {
				return nil, p.syntaxErr("expected name after '.'")
			}
			name := p.tok.text
			p.advance()
			n = memberNode{x: n, name: name}
		case p.tok.kind == tokLBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokRBracket, "]"); err != nil {
				return nil, err
			}
			n = indexNode{x: n, idx: idx}
		case p.tok.kind == tokLParen:
			p.advance()
			var args []node
			for p.tok.kind != tokRParen {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.tok.kind == tokComma {
					p.advance()
					continue
				}
				break
			}
			if err := p.expect(tokRParen, ")"); err != nil {
				return nil, err
			}
			n = callNode{fn: n, args: args}
		default:
			return n, nil
		}
	}
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tokString:
		s := p.tok.text
		p.advance()
		return literalNode{val: s}, nil
	case tokNumber:
		text := p.tok.text
		p.advance()
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, p.syntaxErr("invalid number " + text)
			}
			return literalNode{val: f}, nil
		}
		i, err := strconv.Atoi(text)
		if err != nil {
			return nil, p.syntaxErr("invalid number " + text)
		}
		return literalNode{val: i}, nil
	case tokIdent:
		name := p.tok.text
		p.advance()
		switch name {
		case "true", "True":
			return literalNode{val: true}, nil
		case "false", "False":
			return literalNode{val: false}, nil
		case "none", "None", "null":
			return literalNode{val: nil}, nil
		}
		return identNode{name: name}, nil
	case tokLParen:
		p.advance()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return n, nil
	case tokLBrace:
		return p.parseDict()
	}
	return nil, p.syntaxErr("unexpected token '" + p.tok.text + "'")
}

// parseDict parses a Python-style mapping literal: {k: v, k: v, ...}.
func (p *parser) parseDict() (node, error) {
	p.advance() // consume '{'
	var d dictNode
	for p.tok.kind != tokRBrace {
		k, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		d.keys = append(d.keys, k)
		d.vals = append(d.vals, v)
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseFull() (node, error) {
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.syntaxErr("unexpected trailing token '" + p.tok.text + "'")
	}
	return n, nil
}
