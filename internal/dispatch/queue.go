// internal/dispatch/queue.go
package dispatch

import "github.com/tamzrod/rover-controller/internal/events"

// queue is a fixed-capacity FIFO ring of events. The dispatcher's
// mutex serializes both ends.
type queue struct {
	buf   []events.Event
	head  int
	count int
}

func newQueue(capacity int) *queue {
	return &queue{buf: make([]events.Event, capacity)}
}

// post appends ev; false means the ring is full and ev was dropped.
func (q *queue) post(ev events.Event) bool {
	if q.count == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.count)%len(q.buf)] = ev
	q.count++
	return true
}

func (q *queue) pop() (events.Event, bool) {
	if q.count == 0 {
		return events.Event{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return ev, true
}

func (q *queue) len() int { return q.count }
