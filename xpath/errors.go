// Package xpath compiles a restricted XPath subset into a stateful Tester
// (an incremental per-event predicate) and a Select function that yields
// matched sub-trees or synthesized text events from an event stream.
package xpath

import "fmt"

// PathSyntaxError reports an unsupported or malformed XPath construct at
// compile time -- absolute paths and unsupported axes included.
type PathSyntaxError struct {
	Msg string
	Err error
}

func (e *PathSyntaxError) Error() string { return fmt.Sprintf("xpath syntax error: %s", e.Msg) }

func (e *PathSyntaxError) Unwrap() error { return e.Err }
