// Package event defines the tagged-union markup event that flows through
// the template pipeline: parser -> compiler -> render -> serialize.
package event

import "fmt"

// Kind is the closed set of event tags. SUB and EXPR are internal kinds
// produced by the compiler and consumed before a stream reaches a
// serializer; a serializer that sees one is a programming error upstream.
type Kind int

const (
	START Kind = iota
	END
	TEXT
	PROLOG
	DOCTYPE
	START_NS
	END_NS
	PI
	COMMENT
	EXPR
	SUB
)

func (k Kind) String() string {
	switch k {
	case START:
		return "START"
	case END:
		return "END"
	case TEXT:
		return "TEXT"
	case PROLOG:
		return "PROLOG"
	case DOCTYPE:
		return "DOCTYPE"
	case START_NS:
		return "START_NS"
	case END_NS:
		return "END_NS"
	case PI:
		return "PI"
	case COMMENT:
		return "COMMENT"
	case EXPR:
		return "EXPR"
	case SUB:
		return "SUB"
	default:
		return "UNKNOWN"
	}
}

// Position is the source location an event was produced from, used only
// for diagnostics.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Start carries a START event's qualified name and attribute list. Interp
// holds, for attribute values containing interpolation, the alternating
// TEXT/EXPR event list the eval filter collapses into the attribute's final
// string; an attribute absent from Interp has a plain literal value already
// in Attrs.
type Start struct {
	Name   QName
	Attrs  *Attributes
	Interp map[QName][]Event
}

// Prolog carries an XML declaration's fields.
type Prolog struct {
	Version    string
	Encoding   string
	Standalone string
}

// Doctype carries a DOCTYPE declaration's fields.
type Doctype struct {
	Name  string
	PubID string
	SysID string
}

// NSStart carries a namespace prefix binding introduced by START_NS.
type NSStart struct {
	Prefix string
	URI    string
}

// PIData carries a processing instruction's target and data.
type PIData struct {
	Target string
	Data   string
}

// Text carries TEXT event payload. PreEscaped marks text that already
// underwent escaping (or must never be escaped again), e.g. text produced
// by expanding an already-serialized nested render.
type Text struct {
	Data       string
	PreEscaped bool
}

// Event is the three-tuple (kind, data, position) that forms the pipeline's
// single currency between parsing, compiling, rendering and serializing.
// Data holds exactly one of the typed payloads below, selected by Kind.
type Event struct {
	Kind Kind
	Pos  Position

	Start   Start
	End     QName
	TextVal Text
	Prolog  Prolog
	Doctype Doctype
	NSStart NSStart
	NSEnd   string
	PIVal   PIData
	Comment string
	Expr    Expression
	Sub     *Sub
}

// Expression is satisfied by a compiled expression ready for evaluation.
// Defined here (not in expr) so the event model never depends on the
// expression package -- expr depends on event, not the reverse.
type Expression interface {
	Position() Position
}

// Sub is the compiler's internal node: a directive chain bound to an
// inner, not-yet-expanded event range.
type Sub struct {
	Directives []Directive
	Inner      []Event
}

// Directive is implemented by directive.Directive; kept as an opaque
// interface here to avoid an import cycle between event and directive.
type Directive interface {
	DirectiveName() string
}

func NewStart(name QName, attrs *Attributes, pos Position) Event {
	return Event{Kind: START, Pos: pos, Start: Start{Name: name, Attrs: attrs}}
}

// NewStartInterp builds a START event carrying per-attribute interpolation
// event lists alongside the literal attribute values.
func NewStartInterp(name QName, attrs *Attributes, interp map[QName][]Event, pos Position) Event {
	return Event{Kind: START, Pos: pos, Start: Start{Name: name, Attrs: attrs, Interp: interp}}
}

func NewEnd(name QName, pos Position) Event {
	return Event{Kind: END, Pos: pos, End: name}
}

func NewText(s string, pos Position) Event {
	return Event{Kind: TEXT, Pos: pos, TextVal: Text{Data: s}}
}

func NewPreEscapedText(s string, pos Position) Event {
	return Event{Kind: TEXT, Pos: pos, TextVal: Text{Data: s, PreEscaped: true}}
}

func NewComment(s string, pos Position) Event {
	return Event{Kind: COMMENT, Pos: pos, Comment: s}
}

func NewProlog(version, encoding, standalone string, pos Position) Event {
	return Event{Kind: PROLOG, Pos: pos, Prolog: Prolog{Version: version, Encoding: encoding, Standalone: standalone}}
}

func NewDoctype(name, pubid, sysid string, pos Position) Event {
	return Event{Kind: DOCTYPE, Pos: pos, Doctype: Doctype{Name: name, PubID: pubid, SysID: sysid}}
}

func NewStartNS(prefix, uri string, pos Position) Event {
	return Event{Kind: START_NS, Pos: pos, NSStart: NSStart{Prefix: prefix, URI: uri}}
}

func NewEndNS(prefix string, pos Position) Event {
	return Event{Kind: END_NS, Pos: pos, NSEnd: prefix}
}

func NewPI(target, data string, pos Position) Event {
	return Event{Kind: PI, Pos: pos, PIVal: PIData{Target: target, Data: data}}
}

func NewExpr(e Expression, pos Position) Event {
	return Event{Kind: EXPR, Pos: pos, Expr: e}
}

func NewSub(directives []Directive, inner []Event, pos Position) Event {
	return Event{Kind: SUB, Pos: pos, Sub: &Sub{Directives: directives, Inner: inner}}
}
