package serialize

import (
	"fmt"
	"io"

	"github.com/arturoeanton/go-markup/event"
)

type mode int

const (
	xmlMode mode = iota
	xhtmlMode
	htmlMode
)

// xhtmlNS is the namespace HTML mode treats as native; any other
// namespace is foreign and its elements are suppressed.
const xhtmlNS = "http://www.w3.org/1999/xhtml"

// voidElements never carry content (the parser auto-closes them in HTML
// mode); HTML mode renders them as open tags with no closing tag at all.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"frame": true, "hr": true, "img": true, "input": true, "isindex": true,
	"link": true, "meta": true, "param": true,
}

// booleanAttrs render name-only when truthy, in HTML mode only.
var booleanAttrs = map[string]bool{
	"checked": true, "selected": true, "disabled": true, "ismap": true,
	"multiple": true, "nohref": true, "noshade": true, "readonly": true,
	"defer": true, "declare": true, "compact": true, "noresize": true,
	"nowrap": true,
}

// XML serializes events as well-formed XML: empty elements collapse to
// <a/> by a one-token peek, and xmlns declarations are emitted on the
// element that introduces each binding.
func XML(w io.Writer, events event.Seq) error {
	return run(w, events, xmlMode)
}

// XHTML applies XML's rules, except that only void elements (br, img, ...)
// collapse to a self-closing tag; other empty elements get an explicit end
// tag.
func XHTML(w io.Writer, events event.Seq) error {
	return run(w, events, xhtmlMode)
}

// HTML suppresses elements namespaced outside XHTML, renders boolean
// attributes name-only when truthy, and leaves void elements as open tags.
func HTML(w io.Writer, events event.Seq) error {
	return run(w, events, htmlMode)
}

func run(w io.Writer, events event.Seq, m mode) error {
	b := &base{w: w}
	pb := newPushback(events)
	defer pb.close()

	skipDepth := 0
	for {
		ev, ok := pb.take()
		if !ok {
			break
		}

		if skipDepth > 0 {
			switch ev.Kind {
			case event.START:
				skipDepth++
			case event.END:
				skipDepth--
			}
			continue
		}

		switch ev.Kind {
		case event.START_NS:
			b.nsStack = append(b.nsStack, ev.NSStart)
			b.pendingNS = append(b.pendingNS, ev.NSStart)
		case event.END_NS:
			if n := len(b.nsStack); n > 0 {
				b.nsStack = b.nsStack[:n-1]
			}
		case event.PROLOG:
			b.writeProlog(ev.Prolog)
		case event.DOCTYPE:
			b.writeDoctype(ev.Doctype)
		case event.PI:
			b.writePI(ev.PIVal)
		case event.COMMENT:
			b.writeComment(ev.Comment)
		case event.TEXT:
			if ev.TextVal.PreEscaped {
				b.write(ev.TextVal.Data)
			} else {
				b.write(escapeText(ev.TextVal.Data))
			}
		case event.START:
			if m == htmlMode && ev.Start.Name.Namespace != "" && ev.Start.Name.Namespace != xhtmlNS {
				skipDepth = 1
				continue
			}
			writeStart(b, pb, ev, m)
		case event.END:
			b.write("</" + b.qualifiedName(ev.End) + ">")
		}

		if b.err != nil {
			return b.err
		}
	}
	return b.err
}

func writeStart(b *base, pb *pushback, ev event.Event, m mode) {
	name := ev.Start.Name
	b.write("<" + b.qualifiedName(name))

	for _, ns := range b.pendingNS {
		if ns.Prefix == "" {
			b.write(fmt.Sprintf(` xmlns="%s"`, ns.URI))
		} else {
			b.write(fmt.Sprintf(` xmlns:%s="%s"`, ns.Prefix, ns.URI))
		}
	}
	b.pendingNS = nil

	ev.Start.Attrs.Each(func(n event.QName, v string) bool {
		writeAttr(b, n, v, m)
		return true
	})

	if m == htmlMode {
		b.write(">")
		if voidElements[name.Local] {
			if next, ok := pb.peek(); ok && next.Kind == event.END && next.End == name {
				pb.take()
			}
		}
		return
	}

	// xmlMode: collapse to a self-closing tag when the very next event is
	// this element's own balancing END. xhtmlMode collapses only void
	// elements; other empty elements keep an explicit end tag.
	if next, ok := pb.peek(); ok && next.Kind == event.END && next.End == name && (m == xmlMode || voidElements[name.Local]) {
		pb.take()
		b.write("/>")
		return
	}
	b.write(">")
}

func writeAttr(b *base, n event.QName, v string, m mode) {
	if m == htmlMode && booleanAttrs[n.Local] {
		if attrTruthy(v) {
			b.write(" " + n.Local)
		}
		return
	}
	b.write(fmt.Sprintf(` %s="%s"`, b.qualifiedName(n), escapeAttrValue(v)))
}

func attrTruthy(v string) bool {
	switch v {
	case "", "false", "False", "0", "none", "None":
		return false
	}
	return true
}
