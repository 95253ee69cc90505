package event

import "iter"

// Seq is the lazy, pull-based event stream type threaded through every
// pipeline stage. Consumers may stop pulling at any event boundary by
// returning false from the range-over-func yield callback (see design
// note 9's "generators/lazy iteration" guidance); no stage retains state
// past that point.
type Seq = iter.Seq[Event]

// FromSlice adapts a materialized event slice into a Seq.
func FromSlice(events []Event) Seq {
	return func(yield func(Event) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}

// Collect pulls every event from seq into a slice. Used by stages that
// must buffer a bounded sub-range (e.g. the match filter buffering up to
// a balancing END) before re-processing it.
func Collect(seq Seq) []Event {
	var out []Event
	seq(func(e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Concat yields the events of each seq in turn.
func Concat(seqs ...Seq) Seq {
	return func(yield func(Event) bool) {
		for _, s := range seqs {
			cont := true
			s(func(e Event) bool {
				if !yield(e) {
					cont = false
					return false
				}
				return true
			})
			if !cont {
				return
			}
		}
	}
}

// Empty yields no events.
func Empty() Seq {
	return func(yield func(Event) bool) {}
}

// One yields a single event.
func One(e Event) Seq {
	return func(yield func(Event) bool) { yield(e) }
}
