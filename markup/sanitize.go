package markup

import (
	"strings"

	"github.com/arturoeanton/go-markup/event"
)

// blockedTags are dropped entirely, tag and content, by Sanitizer.
var blockedTags = map[string]bool{"script": true, "style": true}

// Sanitizer is a minimal block-list HTML filter, shaped like
// render.Filter so it composes as one of render.Generate's trailing
// filters: it drops <script>/<style> elements outright and strips on*
// event-handler attributes and javascript: URLs from every other
// element's attributes.
func Sanitizer(events event.Seq) event.Seq {
	return func(yield func(event.Event) bool) {
		skipDepth := 0
		events(func(e event.Event) bool {
			if skipDepth > 0 {
				switch e.Kind {
				case event.START:
					skipDepth++
				case event.END:
					skipDepth--
				}
				return true
			}
			if e.Kind == event.START {
				if blockedTags[strings.ToLower(e.Start.Name.Local)] {
					skipDepth = 1
					return true
				}
				e = stripUnsafeAttrs(e)
			}
			return yield(e)
		})
	}
}

func stripUnsafeAttrs(e event.Event) event.Event {
	clean := e.Start.Attrs.Clone()
	var drop []event.QName
	clean.Each(func(n event.QName, v string) bool {
		local := strings.ToLower(n.Local)
		if strings.HasPrefix(local, "on") {
			drop = append(drop, n)
			return true
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "javascript:") {
			drop = append(drop, n)
		}
		return true
	})
	for _, n := range drop {
		clean.Remove(n)
	}
	e.Start.Attrs = clean
	return e
}
