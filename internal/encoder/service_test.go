// internal/encoder/service_test.go
package encoder

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

type nullPoster struct{}

func (nullPoster) Post(events.ServiceID, events.Event) bool { return true }

type fakeBar struct {
	patterns []uint8
}

func (b *fakeBar) Set(p uint8) { b.patterns = append(b.patterns, p) }

func testConfig() Config {
	return Config{
		TimerClockHz: 78125,
		EdgesPerRev:  190,
		MinLapse:     500,
		MaxLapse:     41015,
		ReportTimer:  events.TimerRPMReport,
	}
}

func newTestService() (*Service, *Capture, *fakeBar) {
	cu := NewCapture(nullPoster{}, events.ServiceEncoder)
	bar := &fakeBar{}
	svc := NewService(cu, bar, testConfig(), zerolog.Nop())
	return svc, cu, bar
}

func feedEdge(t *testing.T, svc *Service, cu *Capture, raw uint16) {
	t.Helper()
	cu.OnEdge(raw)
	if err := svc.HandleEvent(events.Event{Type: events.TypeNewEdge}); err != nil {
		t.Fatalf("handle edge: %v", err)
	}
}

func TestWrapDelta(t *testing.T) {
	cases := []struct {
		prev, cur, want uint32
	}{
		{5, 10, 5},
		{7, 7, 0},
		{0xFFFFFFF0, 0x00000005, 0x15},
		{0xFFFFFFFF, 0x00000000, 1},
	}
	for _, c := range cases {
		if got := wrapDelta(c.prev, c.cur); got != c.want {
			t.Errorf("wrapDelta(0x%X, 0x%X) = 0x%X, want 0x%X", c.prev, c.cur, got, c.want)
		}
	}
}

func TestFirstSampleSeedsSmoothing(t *testing.T) {
	svc, cu, _ := newTestService()
	feedEdge(t, svc, cu, 600)
	if got := svc.SmoothedLapse(); got != 600 {
		t.Fatalf("seeded lapse = %d, want 600", got)
	}
}

func TestSmoothingBlendsFiveToOne(t *testing.T) {
	svc, cu, _ := newTestService()
	feedEdge(t, svc, cu, 600)  // seed 600
	feedEdge(t, svc, cu, 1800) // delta 1200
	if got := svc.SmoothedLapse(); got != 700 {
		t.Fatalf("smoothed = %d, want (1200+5*600)/6 = 700", got)
	}
}

func TestReportComputesRPM(t *testing.T) {
	svc, cu, _ := newTestService()
	feedEdge(t, svc, cu, 500) // seeds smoothed = 500
	var hook []uint32
	svc.OnReport(func(r uint32) { hook = append(hook, r) })
	if err := svc.HandleEvent(events.Timeout(events.TimerRPMReport)); err != nil {
		t.Fatalf("handle timeout: %v", err)
	}
	// 78125 * 60 * 100 / (500 * 190)
	const want = 4934
	if got := svc.RPMx100(); got != want {
		t.Fatalf("rpm x100 = %d, want %d", got, want)
	}
	if len(hook) != 1 || hook[0] != want {
		t.Fatalf("report hook got %v, want [%d]", hook, want)
	}
}

func TestNoEdgesMeansZeroRPM(t *testing.T) {
	svc, _, _ := newTestService()
	if err := svc.HandleEvent(events.Timeout(events.TimerRPMReport)); err != nil {
		t.Fatalf("handle timeout: %v", err)
	}
	if got := svc.RPMx100(); got != 0 {
		t.Fatalf("rpm with no edges = %d, want 0", got)
	}
}

func TestReportIgnoresForeignTimers(t *testing.T) {
	svc, cu, _ := newTestService()
	feedEdge(t, svc, cu, 500)
	called := false
	svc.OnReport(func(uint32) { called = true })
	if err := svc.HandleEvent(events.Timeout(events.TimerSimpleMove)); err != nil {
		t.Fatalf("handle timeout: %v", err)
	}
	if called || svc.RPMx100() != 0 {
		t.Fatalf("foreign timer triggered a report")
	}
}

func TestEdgeUpdatesBar(t *testing.T) {
	svc, cu, bar := newTestService()
	feedEdge(t, svc, cu, 600)
	if len(bar.patterns) == 0 {
		t.Fatalf("bar not updated on edge")
	}
	// lapse 600 sits in the first bin of [500, 41015]
	if got := bar.patterns[len(bar.patterns)-1]; got != 0x01 {
		t.Fatalf("bar pattern = 0x%02X, want 0x01", got)
	}
}

func TestPatternBins(t *testing.T) {
	cases := []struct {
		lapse uint32
		want  uint8
	}{
		{0, 0x01},   // clamped up to min
		{99, 0x01},  // below first threshold (100)
		{100, 0x03}, // at first threshold, next bin
		{400, 0x1F},
		{699, 0x7F},
		{700, 0xFF},
		{5000, 0xFF}, // clamped down to max
	}
	for _, c := range cases {
		if got := PatternFor(c.lapse, 0, 800); got != c.want {
			t.Errorf("PatternFor(%d, 0, 800) = 0x%02X, want 0x%02X", c.lapse, got, c.want)
		}
	}
}
