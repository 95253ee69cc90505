package serialize

import "github.com/arturoeanton/go-markup/event"

// Whitespace coalesces adjacent TEXT events, trims trailing spaces before
// newlines, and collapses runs of two or more newlines into one. It is
// shaped like render.Filter so it composes as one of render.Generate's
// trailing filters, applied ahead of serialization.
func Whitespace(events event.Seq) event.Seq {
	return func(yield func(event.Event) bool) {
		var pending *event.Event
		stopped := false

		flush := func() bool {
			if pending == nil {
				return true
			}
			e := *pending
			pending = nil
			e.TextVal.Data = collapseWhitespace(e.TextVal.Data)
			if !yield(e) {
				stopped = true
				return false
			}
			return true
		}

		events(func(e event.Event) bool {
			if e.Kind == event.TEXT && !e.TextVal.PreEscaped {
				if pending == nil {
					cp := e
					pending = &cp
					return true
				}
				pending.TextVal.Data += e.TextVal.Data
				return true
			}
			if !flush() {
				return false
			}
			if !yield(e) {
				stopped = true
				return false
			}
			return true
		})

		if !stopped {
			flush()
		}
	}
}

func collapseWhitespace(s string) string {
	out := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '\t' {
			j := i
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && s[j] == '\n' {
				i = j
				continue
			}
			out = append(out, s[i:j]...)
			i = j
			continue
		}
		if c == '\n' {
			j := i
			for j < len(s) && s[j] == '\n' {
				j++
			}
			out = append(out, '\n')
			i = j
			continue
		}
		out = append(out, c)
		i++
	}
	return string(out)
}
