// Package serialize turns a fully reduced event stream (no SUB, no EXPR
// left) into XML, XHTML or HTML text, writing directly to an io.Writer,
// split per output method with the shared DOCTYPE/namespace/escaping
// bookkeeping factored into base.
package serialize

import (
	"fmt"
	"io"
	"strings"

	"github.com/arturoeanton/go-markup/event"
)

// base holds the bookkeeping shared by all three serializer variants:
// DOCTYPE emitted at most once, the namespace-prefix stack built from
// START_NS/END_NS, and the deferred pending bindings waiting for the
// element that introduces them.
type base struct {
	w              io.Writer
	err            error
	doctypeWritten bool
	nsStack        []event.NSStart
	pendingNS      []event.NSStart
}

func (b *base) write(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.w, s)
}

// prefixFor returns the nearest enclosing prefix bound to uri, searching
// innermost-first so shadowed bindings resolve correctly.
func (b *base) prefixFor(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	for i := len(b.nsStack) - 1; i >= 0; i-- {
		if b.nsStack[i].URI == uri {
			return b.nsStack[i].Prefix, true
		}
	}
	return "", false
}

func (b *base) qualifiedName(name event.QName) string {
	if name.Namespace == "" {
		return name.Local
	}
	if p, ok := b.prefixFor(name.Namespace); ok && p != "" {
		return p + ":" + name.Local
	}
	return name.Local
}

func (b *base) writeProlog(p event.Prolog) {
	version := p.Version
	if version == "" {
		version = "1.0"
	}
	b.write(fmt.Sprintf(`<?xml version="%s"`, version))
	if p.Encoding != "" {
		b.write(fmt.Sprintf(` encoding="%s"`, p.Encoding))
	}
	if p.Standalone != "" {
		b.write(fmt.Sprintf(` standalone="%s"`, p.Standalone))
	}
	b.write("?>\n")
}

func (b *base) writeDoctype(d event.Doctype) {
	if b.doctypeWritten {
		return
	}
	b.doctypeWritten = true
	b.write("<!DOCTYPE " + d.Name)
	switch {
	case d.PubID != "":
		b.write(fmt.Sprintf(` PUBLIC "%s" "%s"`, d.PubID, d.SysID))
	case d.SysID != "":
		b.write(fmt.Sprintf(` SYSTEM "%s"`, d.SysID))
	}
	b.write(">\n")
}

func (b *base) writePI(pi event.PIData) {
	if pi.Data == "" {
		b.write("<?" + pi.Target + "?>")
		return
	}
	b.write("<?" + pi.Target + " " + pi.Data + "?>")
}

func (b *base) writeComment(s string) {
	b.write("<!--" + s + "-->")
}

// escapeText escapes the three characters unsafe in text content.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeAttrValue additionally escapes the double quote.
func escapeAttrValue(s string) string {
	if !strings.ContainsAny(s, "&<>\"") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
