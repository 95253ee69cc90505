// Package parser turns XML/HTML source into the event.Event stream
// consumed by the compiler, attaching source positions to every event.
// It drives an encoding/xml.Decoder token loop, adapted to produce
// event.Event values with position tracking and explicit START_NS/END_NS
// bracketing instead of decoding into typed Go structs.
package parser

import (
	"fmt"

	"github.com/arturoeanton/go-markup/event"
)

// ParseError reports malformed XML input, with the offending position
// attached.
type ParseError struct {
	Msg string
	Pos event.Position
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
