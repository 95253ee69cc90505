package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arturoeanton/go-markup/event"
	"github.com/arturoeanton/go-markup/markup"
	"github.com/arturoeanton/go-markup/render"
	"github.com/arturoeanton/go-markup/serialize"
	"github.com/arturoeanton/go-markup/xpath"
)

// cliRender parses and renders a template file.
func cliRender(args []string) {
	flags, data, positional := parseFlags(args)
	if len(positional) < 1 {
		die(fmt.Errorf("render: a template file path is required"))
	}

	f := openFile(positional[0])
	defer f.Close()

	var (
		tmpl *markup.Template
		err  error
	)
	if _, html := flags["html"]; html {
		tmpl, err = markup.ParseHTML(f, positional[0])
	} else {
		tmpl, err = markup.Parse(f, positional[0])
	}
	if err != nil {
		die(err)
	}

	method := flags["method"]
	if method == "" {
		method = "xml"
	}

	bindings := make(map[string]any, len(data))
	for k, v := range data {
		bindings[k] = v
	}

	var filters []render.Filter
	if _, sanitize := flags["sanitize"]; sanitize {
		filters = append(filters, markup.Sanitizer)
	}
	filters = append(filters, serialize.Whitespace)

	result, err := tmpl.Render(context.Background(), bindings, method, flags["encoding"], filters...)
	if err != nil {
		die(err)
	}

	switch v := result.(type) {
	case string:
		fmt.Println(v)
	case []byte:
		os.Stdout.Write(v)
		fmt.Println()
	}
}

// cliQuery parses a template without any data bindings, then runs an
// ad hoc XPath selection over its (directive-free) event stream.
func cliQuery(args []string) {
	_, _, positional := parseFlags(args)
	if len(positional) < 2 {
		die(fmt.Errorf("query: usage: markup query <file> <xpath>"))
	}

	f := openFile(positional[0])
	defer f.Close()

	tmpl, err := markup.Parse(f, positional[0])
	if err != nil {
		die(err)
	}

	result, err := tmpl.Render(context.Background(), nil, "xml", "")
	if err != nil {
		die(err)
	}
	rendered, ok := result.(string)
	if !ok {
		die(fmt.Errorf("query: unexpected render result type %T", result))
	}

	events, err := markup.Parse(strings.NewReader(rendered), positional[0])
	if err != nil {
		die(err)
	}

	path, err := xpath.Compile(positional[1])
	if err != nil {
		die(err)
	}

	selected := path.Select(events.Events)
	if err := serialize.XML(os.Stdout, event.FromSlice(selected)); err != nil {
		die(err)
	}
	fmt.Println()
}
