package event

// QName is a namespace-aware name: a pair of (namespace URI, local name).
// Equality compares both parts. A QName with an empty Namespace has no
// namespace, distinct from any non-empty URI.
type QName struct {
	Namespace string
	Local     string
}

// NewQName builds a QName; ns == "" means "no namespace".
func NewQName(ns, local string) QName {
	return QName{Namespace: ns, Local: local}
}

// Name builds a namespace-less QName, for convenience in tests and
// hand-written templates.
func Name(local string) QName {
	return QName{Local: local}
}

func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// DirectiveNS is the fixed namespace URI under which directive elements
// and attributes are recognized. It is a global constant, never mutable
// state.
const DirectiveNS = "http://markup.edgewall.org/"

// XIncludeNS is the namespace URI for XInclude elements, recognized by the
// loader's include filter (an external collaborator, see markup package).
const XIncludeNS = "http://www.w3.org/2001/XInclude"
