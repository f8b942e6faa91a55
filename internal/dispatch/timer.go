// internal/dispatch/timer.go
package dispatch

import (
	"fmt"

	"github.com/tamzrod/rover-controller/internal/events"
)

// timerBank is the software timer service: a flat bank of countdowns
// decremented once per scheduler tick. A timer reaching zero posts
// Timeout with its id to the service bound at wiring time. Re-arming
// an active timer replaces its deadline; there is no other
// cancellation. Bind and arm run on the dispatcher goroutine (or
// before Run starts), so the bank carries no lock of its own.
type timerBank struct {
	d      *Dispatcher
	timers map[events.TimerID]*timer
	ids    []events.TimerID // bind order, keeps advance deterministic
}

type timer struct {
	target    events.ServiceID
	remaining int
	reload    int // 0 = one-shot
	active    bool
}

func newTimerBank(d *Dispatcher) *timerBank {
	return &timerBank{d: d, timers: make(map[events.TimerID]*timer)}
}

func (b *timerBank) bind(id events.TimerID, target events.ServiceID) error {
	if _, dup := b.timers[id]; dup {
		return fmt.Errorf("dispatch: timer %s already bound", id)
	}
	b.timers[id] = &timer{target: target}
	b.ids = append(b.ids, id)
	return nil
}

func (b *timerBank) arm(id events.TimerID, ticks int, repeat bool) error {
	t, ok := b.timers[id]
	if !ok {
		return fmt.Errorf("dispatch: timer %s not bound", id)
	}
	if ticks <= 0 {
		return fmt.Errorf("dispatch: timer %s: duration must be positive", id)
	}
	t.remaining = ticks
	t.active = true
	if repeat {
		t.reload = ticks
	} else {
		t.reload = 0
	}
	return nil
}

// advance moves every active timer one tick closer to expiry and posts
// a Timeout for each one that gets there.
func (b *timerBank) advance() {
	for _, id := range b.ids {
		t := b.timers[id]
		if !t.active {
			continue
		}
		t.remaining--
		if t.remaining > 0 {
			continue
		}
		if t.reload > 0 {
			t.remaining = t.reload
		} else {
			t.active = false
		}
		b.d.Post(t.target, events.Timeout(id))
	}
}
