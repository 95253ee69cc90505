package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/arturoeanton/go-markup/event"
)

// voidElements are HTML elements with no content model; their END event
// is synthesized immediately after START.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"frame": true, "hr": true, "img": true, "input": true, "isindex": true,
	"link": true, "meta": true, "param": true,
}

// Options configures a parse pass.
type Options struct {
	// HTML enables lenient parsing: non-strict well-formedness, implicit
	// END events for void elements, and balanced closes for any tags left
	// open at EOF.
	HTML bool
}

// Parse parses source as strict XML, returning the flat event sequence.
func Parse(source io.Reader, filename string) ([]event.Event, error) {
	return parse(source, filename, Options{})
}

// ParseHTML parses source in lenient HTML mode: void elements auto-close,
// unbalanced well-formedness errors are tolerated, and any tags still open
// at EOF are closed implicitly.
func ParseHTML(source io.Reader, filename string) ([]event.Event, error) {
	return parse(source, filename, Options{HTML: true})
}

type nsDecl struct {
	prefix string
	uri    string
}

type openElem struct {
	name  event.QName
	decls []nsDecl
}

func parse(source io.Reader, filename string, opts Options) ([]event.Event, error) {
	dec := xml.NewDecoder(source)
	dec.CharsetReader = charsetReader
	dec.Entity = entityTable()
	dec.Strict = !opts.HTML
	if opts.HTML {
		voidList := make([]string, 0, len(voidElements))
		for v := range voidElements {
			voidList = append(voidList, v)
		}
		dec.AutoClose = voidList
	}

	var out []event.Event
	var stack []openElem
	sawDoctype := false

	pos := func() event.Position {
		line, col := dec.InputPos()
		return event.Position{Filename: filename, Line: line, Column: col}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if opts.HTML {
				break
			}
			return nil, &ParseError{Msg: err.Error(), Pos: pos(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p := pos()
			var decls []nsDecl
			attrs := event.NewAttributes()
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					decls = append(decls, nsDecl{prefix: a.Name.Local, uri: a.Value})
					continue
				}
				if a.Name.Space == "" && a.Name.Local == "xmlns" {
					decls = append(decls, nsDecl{prefix: "", uri: a.Value})
					continue
				}
				attrs.Set(event.NewQName(a.Name.Space, a.Name.Local), a.Value)
			}
			for _, d := range decls {
				out = append(out, event.NewStartNS(d.prefix, d.uri, p))
			}
			name := event.NewQName(t.Name.Space, t.Name.Local)
			out = append(out, event.NewStart(name, attrs, p))
			stack = append(stack, openElem{name: name, decls: decls})

			if opts.HTML && voidElements[strings.ToLower(t.Name.Local)] {
				out = append(out, event.NewEnd(name, p))
				for i := len(decls) - 1; i >= 0; i-- {
					out = append(out, event.NewEndNS(decls[i].prefix, p))
				}
				stack = stack[:len(stack)-1]
			}

		case xml.EndElement:
			if opts.HTML && voidElements[strings.ToLower(t.Name.Local)] {
				continue // END already emitted right after the void START
			}
			p := pos()
			name := event.NewQName(t.Name.Space, t.Name.Local)
			out = append(out, event.NewEnd(name, p))
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for i := len(top.decls) - 1; i >= 0; i-- {
					out = append(out, event.NewEndNS(top.decls[i].prefix, p))
				}
			}

		case xml.CharData:
			out = append(out, event.NewText(string(t), pos()))

		case xml.Comment:
			text := strings.TrimSpace(string(t))
			if strings.HasPrefix(text, "!") {
				continue // bang-prefixed comment: dropped before it ever becomes an event
			}
			out = append(out, event.NewComment(string(t), pos()))

		case xml.ProcInst:
			p := pos()
			if t.Target == "xml" {
				ver, enc, standalone := parseXMLDecl(t.Inst)
				out = append(out, event.NewProlog(ver, enc, standalone, p))
				continue
			}
			out = append(out, event.NewPI(t.Target, string(t.Inst), p))

		case xml.Directive:
			if !sawDoctype {
				name, pub, sys := parseDoctype(t)
				out = append(out, event.NewDoctype(name, pub, sys, pos()))
				sawDoctype = true
			}
		}
	}

	if opts.HTML {
		p := pos()
		for i := len(stack) - 1; i >= 0; i-- {
			out = append(out, event.NewEnd(stack[i].name, p))
			for j := len(stack[i].decls) - 1; j >= 0; j-- {
				out = append(out, event.NewEndNS(stack[i].decls[j].prefix, p))
			}
		}
	}

	return out, nil
}

// parseXMLDecl extracts version/encoding/standalone from a raw <?xml ...?>
// instruction body.
func parseXMLDecl(inst []byte) (version, encoding, standalone string) {
	fields := splitAttrs(string(inst))
	for _, f := range fields {
		switch f.key {
		case "version":
			version = f.val
		case "encoding":
			encoding = f.val
		case "standalone":
			standalone = f.val
		}
	}
	return
}

type kv struct{ key, val string }

// splitAttrs parses a sequence of key="value" (or key='value') pairs.
func splitAttrs(s string) []kv {
	var out []kv
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
			i++
		}
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' {
			i++
		}
		key := s[start:i]
		for i < len(s) && s[i] != '=' {
			i++
		}
		if i >= len(s) {
			break
		}
		i++ // skip '='
		for i < len(s) && (s[i] == ' ') {
			i++
		}
		if i >= len(s) || (s[i] != '"' && s[i] != '\'') {
			continue
		}
		quote := s[i]
		i++
		vstart := i
		for i < len(s) && s[i] != quote {
			i++
		}
		val := s[vstart:i]
		if i < len(s) {
			i++
		}
		if key != "" {
			out = append(out, kv{key: key, val: val})
		}
	}
	return out
}

// parseDoctype extracts name/pubid/sysid from a raw <!DOCTYPE ...> body.
func parseDoctype(d xml.Directive) (name, pub, sys string) {
	s := strings.TrimSpace(string(d))
	if !strings.HasPrefix(strings.ToUpper(s), "DOCTYPE") {
		return "", "", ""
	}
	s = strings.TrimSpace(s[len("DOCTYPE"):])
	fields := tokenizeDoctype(s)
	if len(fields) > 0 {
		name = fields[0]
	}
	for i := 1; i < len(fields); i++ {
		switch strings.ToUpper(fields[i]) {
		case "PUBLIC":
			if i+1 < len(fields) {
				pub = fields[i+1]
			}
			if i+2 < len(fields) {
				sys = fields[i+2]
			}
		case "SYSTEM":
			if i+1 < len(fields) {
				sys = fields[i+1]
			}
		}
	}
	return
}

func tokenizeDoctype(s string) []string {
	var out []string
	var b bytes.Buffer
	inQuote := byte(0)
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
				flush()
				continue
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"', '\'':
			flush()
			inQuote = c
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			b.WriteByte(c)
		}
	}
	flush()
	return out
}
