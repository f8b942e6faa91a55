// internal/dispatch/dispatch.go
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

const DefaultQueueCap = 8

// Handler runs one service's state machine for a single event. Handlers
// execute on the dispatcher goroutine and must not block; a returned
// error is logged and the pass continues.
type Handler interface {
	HandleEvent(ev events.Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(events.Event) error

func (f HandlerFunc) HandleEvent(ev events.Event) error { return f(ev) }

// Checker polls an external condition and posts events when it finds
// one. Checkers run in registration order at the top of every pass and
// report whether they posted anything.
type Checker func() bool

type service struct {
	id       events.ServiceID
	priority int
	q        *queue
	h        Handler
}

// Dispatcher is the cooperative scheduler: services own bounded FIFO
// queues, producers post from any goroutine, and a single run loop
// drains the queues service by service in ascending priority order,
// one event per HandleEvent call, FIFO within a service.
type Dispatcher struct {
	mu       sync.Mutex
	services map[events.ServiceID]*service
	order    []*service
	checkers []Checker
	timers   *timerBank
	wake     chan struct{}
	tick     time.Duration
	ticks    atomic.Uint32
	dropped  atomic.Uint32
	started  bool
	log      zerolog.Logger
}

type Options struct {
	Tick time.Duration // scheduler tick, default 1ms
	Log  zerolog.Logger
}

func New(opts Options) *Dispatcher {
	if opts.Tick <= 0 {
		opts.Tick = time.Millisecond
	}
	d := &Dispatcher{
		services: make(map[events.ServiceID]*service),
		wake:     make(chan struct{}, 1),
		tick:     opts.Tick,
		log:      opts.Log,
	}
	d.timers = newTimerBank(d)
	return d
}

// Register adds a service. Priorities must be unique; queueCap <= 0
// selects DefaultQueueCap. Registration is wiring-time only.
func (d *Dispatcher) Register(id events.ServiceID, priority, queueCap int, h Handler) error {
	if h == nil {
		return fmt.Errorf("dispatch: service %s: handler required", id)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return fmt.Errorf("dispatch: service %s: register after start", id)
	}
	if _, dup := d.services[id]; dup {
		return fmt.Errorf("dispatch: service %s already registered", id)
	}
	for _, s := range d.order {
		if s.priority == priority {
			return fmt.Errorf("dispatch: priority %d already taken by %s", priority, s.id)
		}
	}
	if queueCap <= 0 {
		queueCap = DefaultQueueCap
	}
	s := &service{id: id, priority: priority, q: newQueue(queueCap), h: h}
	d.services[id] = s
	d.order = append(d.order, s)
	sort.Slice(d.order, func(i, j int) bool { return d.order[i].priority < d.order[j].priority })
	return nil
}

// AddChecker appends an event checker; order of registration is the
// order of execution.
func (d *Dispatcher) AddChecker(c Checker) {
	d.checkers = append(d.checkers, c)
}

// Post enqueues ev for the target service. It is safe from any
// goroutine and never blocks; false means the queue was full (the
// event is dropped) or the id is unknown.
func (d *Dispatcher) Post(id events.ServiceID, ev events.Event) bool {
	d.mu.Lock()
	s, ok := d.services[id]
	if ok {
		ok = s.q.post(ev)
	}
	d.mu.Unlock()
	if !ok {
		d.dropped.Add(1)
		d.log.Warn().
			Str("service", id.String()).
			Str("event", ev.Type.String()).
			Msg("event dropped")
		return false
	}
	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

// Dropped reports how many posts have been discarded since start.
func (d *Dispatcher) Dropped() uint32 { return d.dropped.Load() }

// Time is the scheduler tick counter truncated to 16 bits, the time
// base carried in edge event params.
func (d *Dispatcher) Time() uint16 { return uint16(d.ticks.Load()) }

// TicksFor converts a wall duration to scheduler ticks, minimum one.
func (d *Dispatcher) TicksFor(dur time.Duration) int {
	n := int(dur / d.tick)
	if n < 1 {
		n = 1
	}
	return n
}

// BindTimer fixes the service a timer's Timeout events go to. Wiring
// time only.
func (d *Dispatcher) BindTimer(id events.TimerID, target events.ServiceID) error {
	return d.timers.bind(id, target)
}

// ArmTimer starts (or restarts) a one-shot timer. Re-arming before
// expiry cancels the earlier deadline entirely.
func (d *Dispatcher) ArmTimer(id events.TimerID, ticks int) error {
	return d.timers.arm(id, ticks, false)
}

// ArmRepeating starts a timer that re-loads itself on every expiry.
func (d *Dispatcher) ArmRepeating(id events.TimerID, ticks int) error {
	return d.timers.arm(id, ticks, true)
}

// Start delivers Init to every service in priority order. Any handler
// error aborts startup.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	d.started = true
	order := make([]*service, len(d.order))
	copy(order, d.order)
	d.mu.Unlock()
	for _, s := range order {
		if err := s.h.HandleEvent(events.Event{Type: events.TypeInit}); err != nil {
			return fmt.Errorf("dispatch: init %s: %w", s.id, err)
		}
	}
	return nil
}

// RunOnce executes one scheduler pass: every checker in order, then a
// full drain of every queue in priority order.
func (d *Dispatcher) RunOnce() {
	for _, c := range d.checkers {
		c()
	}
	d.drain()
}

// Tick advances the time base and the timer bank by one tick, then
// runs a full pass. The run loop calls this once per tick interval;
// tests drive it directly.
func (d *Dispatcher) Tick() {
	d.ticks.Add(1)
	d.timers.advance()
	d.RunOnce()
}

// Run blocks until ctx is done, ticking at the configured interval.
// Posts from other goroutines wake the loop early so queued events
// drain without waiting out the tick.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		case <-d.wake:
			d.drain()
		}
	}
}

// drain empties every queue, highest priority (lowest value) first.
// Self-posts and posts to services not yet drained are picked up in
// the same pass; posts to an already-drained service wait for the
// next one.
func (d *Dispatcher) drain() {
	for _, s := range d.order {
		for {
			d.mu.Lock()
			ev, ok := s.q.pop()
			d.mu.Unlock()
			if !ok {
				break
			}
			if err := s.h.HandleEvent(ev); err != nil {
				d.log.Error().
					Err(err).
					Str("service", s.id.String()).
					Str("event", ev.Type.String()).
					Msg("handler failed")
			}
		}
	}
}
