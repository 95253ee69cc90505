package directive

import (
	"fmt"

	"github.com/arturoeanton/go-markup/expr"
)

// truthyValue delegates to expr.Truthy -- the coercion rule directives need
// on raw evaluated values, outside any expression AST node.
func truthyValue(v any) bool { return expr.Truthy(v) }

// toDisplayString stringifies an evaluated expression result the way the
// eval filter does for TEXT substitution: strings pass through verbatim,
// everything else via fmt's default formatting.
func toDisplayString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
