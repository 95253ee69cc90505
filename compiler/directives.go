package compiler

import (
	"github.com/arturoeanton/go-markup/directive"
	"github.com/arturoeanton/go-markup/event"
)

// buildDirective constructs the concrete directive for local name, given
// its argument source text (already resolved from either the attribute's
// own value or the element-form's fixed argument attribute).
func buildDirective(name, arg, filename string, line int) (directive.Directive, error) {
	switch name {
	case "def":
		return directive.NewDef(arg, filename, line)
	case "match":
		return directive.NewMatch(arg)
	case "for":
		return directive.NewFor(arg, filename, line)
	case "if":
		return directive.NewIf(arg, filename, line)
	case "when":
		return directive.NewWhen(arg, filename, line)
	case "otherwise":
		return directive.NewOtherwise(), nil
	case "choose":
		return directive.NewChoose(arg, filename, line)
	case "replace":
		return directive.NewReplace(arg, filename, line)
	case "content":
		return directive.NewContent(arg, filename, line)
	case "attrs":
		return directive.NewAttrs(arg, filename, line)
	case "strip":
		return directive.NewStrip(arg, filename, line)
	}
	return nil, directive.NewBadDirectiveError(name, event.Position{Filename: filename, Line: line})
}
