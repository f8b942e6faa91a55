// internal/dispatch/dispatch_test.go
package dispatch

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

type recorder struct {
	name string
	sink *[]trace
}

type trace struct {
	name string
	ev   events.Event
}

func (r *recorder) HandleEvent(ev events.Event) error {
	*r.sink = append(*r.sink, trace{name: r.name, ev: ev})
	return nil
}

func newTestDispatcher() *Dispatcher {
	return New(Options{Log: zerolog.Nop()})
}

func TestPostPreservesFIFO(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	if err := d.Register(events.ServiceMainLogic, 0, 8, &recorder{name: "a", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for i := uint16(1); i <= 3; i++ {
		if !d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand, Param: i}) {
			t.Fatalf("post %d rejected", i)
		}
	}
	d.RunOnce()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, tr := range got {
		if tr.ev.Param != uint16(i+1) {
			t.Fatalf("event %d: expected param %d, got %d", i, i+1, tr.ev.Param)
		}
	}
}

func TestFullQueueDropsEvent(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	if err := d.Register(events.ServiceMainLogic, 0, 2, &recorder{name: "a", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand, Param: 1})
	d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand, Param: 2})
	if d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand, Param: 3}) {
		t.Fatalf("post into full queue reported success")
	}
	if d.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", d.Dropped())
	}
	d.RunOnce()
	if len(got) != 2 {
		t.Fatalf("expected 2 delivered, got %d", len(got))
	}
	if got[0].ev.Param != 1 || got[1].ev.Param != 2 {
		t.Fatalf("survivors reordered: %+v", got)
	}
}

func TestDrainFollowsPriorityNotRegistration(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	// registered low-priority first: drain must still run priority 0 first
	if err := d.Register(events.ServiceMorse, 5, 8, &recorder{name: "late", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Register(events.ServiceMainLogic, 0, 8, &recorder{name: "first", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	d.Post(events.ServiceMorse, events.Event{Type: events.TypeRisingEdge})
	d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand})
	d.RunOnce()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].name != "first" || got[1].name != "late" {
		t.Fatalf("wrong drain order: %s then %s", got[0].name, got[1].name)
	}
}

func TestCheckersRunInOrderBeforeDrain(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	if err := d.Register(events.ServiceMainLogic, 0, 8, &recorder{name: "a", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	var marks []int
	d.AddChecker(func() bool {
		marks = append(marks, 1)
		return d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeTapeDetected})
	})
	d.AddChecker(func() bool {
		marks = append(marks, 2)
		return false
	})
	d.RunOnce()
	if len(marks) != 2 || marks[0] != 1 || marks[1] != 2 {
		t.Fatalf("checker order wrong: %v", marks)
	}
	if len(got) != 1 || got[0].ev.Type != events.TypeTapeDetected {
		t.Fatalf("checker event not drained in same pass: %+v", got)
	}
}

type selfPoster struct {
	d    *Dispatcher
	id   events.ServiceID
	got  []events.Event
	once bool
}

func (s *selfPoster) HandleEvent(ev events.Event) error {
	s.got = append(s.got, ev)
	if !s.once {
		s.once = true
		s.d.Post(s.id, events.Event{Type: events.TypeBeaconDetected})
	}
	return nil
}

func TestSelfPostDrainsInSamePass(t *testing.T) {
	d := newTestDispatcher()
	sp := &selfPoster{d: d, id: events.ServiceMainLogic}
	if err := d.Register(events.ServiceMainLogic, 0, 8, sp); err != nil {
		t.Fatalf("register: %v", err)
	}
	d.Post(events.ServiceMainLogic, events.Event{Type: events.TypeCommand})
	d.RunOnce()
	if len(sp.got) != 2 {
		t.Fatalf("expected 2 events in one pass, got %d", len(sp.got))
	}
	if sp.got[1].Type != events.TypeBeaconDetected {
		t.Fatalf("self-posted event not delivered second: %+v", sp.got)
	}
}

func TestStartDeliversInitByPriority(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	if err := d.Register(events.ServiceEncoder, 2, 8, &recorder{name: "b", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Register(events.ServiceMainLogic, 0, 8, &recorder{name: "a", sink: &got}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 init events, got %d", len(got))
	}
	if got[0].name != "a" || got[1].name != "b" {
		t.Fatalf("init order wrong: %s then %s", got[0].name, got[1].name)
	}
	for _, tr := range got {
		if tr.ev.Type != events.TypeInit {
			t.Fatalf("expected init event, got %s", tr.ev.Type)
		}
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	d := newTestDispatcher()
	var got []trace
	r := &recorder{name: "a", sink: &got}
	if err := d.Register(events.ServiceMainLogic, 0, 8, r); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Register(events.ServiceMainLogic, 1, 8, r); err == nil {
		t.Fatalf("duplicate id accepted")
	}
	if err := d.Register(events.ServiceDrive, 0, 8, r); err == nil {
		t.Fatalf("duplicate priority accepted")
	}
	if err := d.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.Register(events.ServiceDrive, 1, 8, r); err == nil {
		t.Fatalf("register after start accepted")
	}
}

func TestPostUnknownServiceFails(t *testing.T) {
	d := newTestDispatcher()
	if d.Post(events.ServiceDrive, events.Event{Type: events.TypeSpeedChange}) {
		t.Fatalf("post to unknown service reported success")
	}
}
