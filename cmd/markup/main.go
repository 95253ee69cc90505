// Command markup is the templating engine's CLI: render, query and demo
// subcommands dispatched from a flag-routed command table.
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render":
		cliRender(args)
	case "query":
		cliQuery(args)
	case "demo":
		target := "all"
		if len(args) > 0 {
			target = args[0]
		}
		runDemos(target)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("markup - a streaming XML/HTML templating engine")
	fmt.Println("Usage: markup <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  render <file> [--html] [--method=xml|xhtml|html] [--encoding=NAME] [--data=key=value]...")
	fmt.Println("                         Render a template file")
	fmt.Println("  query <file> <xpath>  Run an XPath selection over a rendered document")
	fmt.Println("  demo [name]           Run a built-in demo (default: all)")
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseFlags splits args into a recognized set of --key=value flags (plus
// repeatable --data=key=value bindings) and the remaining positional
// arguments, hand-rolled rather than the standard flag package since
// positional and repeated flags are mixed freely on the command line here.
func parseFlags(args []string) (flags map[string]string, data map[string]string, positional []string) {
	flags = map[string]string{}
	data = map[string]string{}
	for _, a := range args {
		if !strings.HasPrefix(a, "--") {
			positional = append(positional, a)
			continue
		}
		kv := strings.SplitN(strings.TrimPrefix(a, "--"), "=", 2)
		key := kv[0]
		val := ""
		if len(kv) == 2 {
			val = kv[1]
		}
		if key == "data" {
			dkv := strings.SplitN(val, "=", 2)
			if len(dkv) == 2 {
				data[dkv[0]] = dkv[1]
			}
			continue
		}
		flags[key] = val
	}
	return flags, data, positional
}

func openFile(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		die(err)
	}
	return f
}
