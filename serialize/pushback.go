package serialize

import (
	"iter"

	"github.com/arturoeanton/go-markup/event"
)

// pushback adapts a push-based event.Seq into a pull iterator with one
// token of lookahead, using the standard library's iter.Pull, needed to
// collapse an empty <a></a> pair into <a/> without building a tree.
type pushback struct {
	next  func() (event.Event, bool)
	stop  func()
	ahead event.Event
	has   bool
}

func newPushback(seq event.Seq) *pushback {
	next, stop := iter.Pull(seq)
	return &pushback{next: next, stop: stop}
}

// peek returns the next event without consuming it.
func (p *pushback) peek() (event.Event, bool) {
	if !p.has {
		p.ahead, p.has = p.next()
	}
	return p.ahead, p.has
}

// take consumes and returns the next event.
func (p *pushback) take() (event.Event, bool) {
	if p.has {
		p.has = false
		return p.ahead, true
	}
	return p.next()
}

func (p *pushback) close() { p.stop() }
