// Package markup is the public façade: parsing a template, compiling it,
// and rendering it against a data scope to XML/XHTML/HTML text.
package markup

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/arturoeanton/go-markup/compiler"
	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/parser"
	"github.com/arturoeanton/go-markup/render"
	"github.com/arturoeanton/go-markup/scope"
	"github.com/arturoeanton/go-markup/serialize"
)

// Template is a compiled, immutable event program: it may be shared
// read-only across concurrent renders, while a render's scope.Context is
// single-owner.
type Template struct {
	Events   []event.Event
	Filename string
}

// Parse compiles source as strict XML into a Template.
func Parse(source io.Reader, filename string) (*Template, error) {
	return parseWith(source, filename, false)
}

// ParseHTML compiles source in lenient HTML mode into a Template.
func ParseHTML(source io.Reader, filename string) (*Template, error) {
	return parseWith(source, filename, true)
}

func parseWith(source io.Reader, filename string, html bool) (*Template, error) {
	var (
		raw []event.Event
		err error
	)
	if html {
		raw, err = parser.ParseHTML(source, filename)
	} else {
		raw, err = parser.Parse(source, filename)
	}
	if err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(raw, filename)
	if err != nil {
		return nil, err
	}
	return &Template{Events: compiled, Filename: filename}, nil
}

var serializers = map[string]func(io.Writer, event.Seq) error{
	"xml":   serialize.XML,
	"xhtml": serialize.XHTML,
	"html":  serialize.HTML,
}

// Render runs the template against data: method selects the serializer,
// and an empty encoding returns a Unicode string while any other encoding
// name returns transcoded bytes. filters are spliced in
// after the built-in eval/match/flatten trio (render.Generate), so a
// caller passes serialize.Whitespace and/or markup.Sanitizer here to
// enable them.
func (t *Template) Render(ctx context.Context, data map[string]any, method, encoding string, filters ...render.Filter) (any, error) {
	sc := scope.New()
	sc.Push(scope.Frame(data))

	seq := render.Generate(ctx, sc, event.FromSlice(t.Events), filters...)
	events, err := render.Drain(seq)
	if err != nil {
		return nil, err
	}

	serializeFn, ok := serializers[method]
	if !ok {
		return nil, fmt.Errorf("markup: unknown render method %q", method)
	}
	var buf bytes.Buffer
	if err := serializeFn(&buf, event.FromSlice(events)); err != nil {
		return nil, err
	}

	if encoding == "" {
		return buf.String(), nil
	}
	return encodeBytes(buf.String(), encoding)
}
