package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/arturoeanton/go-markup/markup"
)

// demoRegistry links a `demo <name>` argument to its demo function.
var demoRegistry = map[string]func(){
	"for_strip": demoForStrip,
	"choose":    demoChoose,
	"def":       demoDef,
	"match":     demoMatch,
}

var demoOrder = []string{"for_strip", "choose", "def", "match"}

func runDemos(arg string) {
	fmt.Println("========================================")
	fmt.Println("  markup - directive demo gallery")
	fmt.Println("========================================")

	if arg == "all" || arg == "" {
		for _, name := range demoOrder {
			runOneDemo(name)
		}
		return
	}
	runOneDemo(arg)
}

func runOneDemo(name string) {
	fn, ok := demoRegistry[name]
	if !ok {
		fmt.Printf("unknown demo %q\n", name)
		return
	}
	fmt.Printf("\n--- %s ---\n", name)
	fn()
}

func renderSource(source string, data map[string]any) {
	tmpl, err := markup.Parse(strings.NewReader(source), "demo")
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	result, err := tmpl.Render(context.Background(), data, "xml", "")
	if err != nil {
		fmt.Println("render error:", err)
		return
	}
	fmt.Println(result)
}

func demoForStrip() {
	renderSource(`<ul xmlns:py="http://markup.edgewall.org/"><li py:for="item in items" py:strip="">${item}</li></ul>`,
		map[string]any{"items": []any{"one", "two", "three"}})
}

func demoChoose() {
	renderSource(`<div xmlns:py="http://markup.edgewall.org/" py:choose="status">
  <span py:when="'ok'">all good</span>
  <span py:otherwise="">trouble</span>
</div>`, map[string]any{"status": "ok"})
}

func demoDef() {
	renderSource(`<div xmlns:py="http://markup.edgewall.org/">
  <div py:def="greet(name)">Hello, ${name}!</div>
  ${greet('world')}
</div>`, nil)
}

func demoMatch() {
	renderSource(`<html xmlns:py="http://markup.edgewall.org/">
  <elem py:match="elem" py:strip="">Hey ${select('text()')}</elem>
  <elem>Joe</elem>
</html>`, nil)
}
