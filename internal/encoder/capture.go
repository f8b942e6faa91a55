// internal/encoder/capture.go
package encoder

import (
	"sync"
	"sync/atomic"

	"github.com/tamzrod/rover-controller/internal/events"
)

// Poster is the slice of the dispatcher the capture unit posts through.
type Poster interface {
	Post(id events.ServiceID, ev events.Event) bool
}

// Capture extends the 16-bit capture values into a 32-bit logical
// clock. OnEdge and OnWrap are the interrupt-side entry points; they
// may fire from different goroutines, so both share one mutex and the
// combined timestamp crosses to the service side through an atomic.
//
// The wrap handoff keeps the invariant rollovers + pending == wraps
// seen: a wrap notice stays pending until either an edge captured
// after the wrap (raw in the low half of the range) consumes it, or
// the next wrap folds it in. An edge captured just before a late
// wrap notice (raw in the high half) leaves it pending.
type Capture struct {
	mu        sync.Mutex
	rollovers uint16
	pending   bool
	latest    atomic.Uint32
	post      Poster
	target    events.ServiceID
}

func NewCapture(post Poster, target events.ServiceID) *Capture {
	return &Capture{post: post, target: target}
}

// OnEdge records a raw capture value and signals the service.
func (c *Capture) OnEdge(raw uint16) {
	c.mu.Lock()
	if c.pending && raw < 0x8000 {
		c.rollovers++
		c.pending = false
	}
	stamp := uint32(c.rollovers)<<16 | uint32(raw)
	c.latest.Store(stamp)
	c.mu.Unlock()
	c.post.Post(c.target, events.Event{Type: events.TypeNewEdge})
}

// OnWrap records one wrap of the free-running counter.
func (c *Capture) OnWrap() {
	c.mu.Lock()
	if c.pending {
		c.rollovers++
	}
	c.pending = true
	c.mu.Unlock()
}

// Latest is the most recent combined timestamp.
func (c *Capture) Latest() uint32 {
	return c.latest.Load()
}
