// internal/board/checkers.go
package board

import "github.com/tamzrod/rover-controller/internal/events"

// Transition-detect checkers: each closure keeps the last sampled pin
// level and posts only on the edge, so a held pin produces one event.

// RiseChecker posts ev to svc when in transitions low to high.
func RiseChecker(in DigitalInput, post Poster, svc events.ServiceID, ev events.Event) func() bool {
	last := in.Read()
	return func() bool {
		cur := in.Read()
		rose := cur && !last
		last = cur
		if !rose {
			return false
		}
		return post.Post(svc, ev)
	}
}

// EdgeChecker posts RisingEdge and FallingEdge events to svc, stamping
// each with the current 16-bit tick time from now.
func EdgeChecker(in DigitalInput, post Poster, svc events.ServiceID, now func() uint16) func() bool {
	last := in.Read()
	return func() bool {
		cur := in.Read()
		if cur == last {
			return false
		}
		last = cur
		ev := events.Event{Type: events.TypeFallingEdge, Param: now()}
		if cur {
			ev.Type = events.TypeRisingEdge
		}
		return post.Post(svc, ev)
	}
}
