// internal/encoder/service.go
package encoder

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/board"
	"github.com/tamzrod/rover-controller/internal/events"
)

// Config fixes the pipeline constants. Defaults in the config package
// match the original drivetrain: a 78125 Hz capture clock, 190 edges
// per wheel revolution, smoothing window clamped to [500, 41015].
type Config struct {
	TimerClockHz uint32
	EdgesPerRev  uint32
	MinLapse     uint32
	MaxLapse     uint32
	ReportTimer  events.TimerID
}

// Service consumes edge events: wraparound-safe deltas between
// consecutive capture timestamps, an integer EWMA over the deltas, the
// LED bar bin, and the RPM readout on the report timer.
type Service struct {
	cap *Capture
	bar board.BarGraph
	cfg Config
	log zerolog.Logger

	prev     uint32
	seeded   bool
	smoothed atomic.Uint32
	rpm100   atomic.Uint32
	onReport func(rpm100 uint32)
}

func NewService(c *Capture, bar board.BarGraph, cfg Config, log zerolog.Logger) *Service {
	return &Service{cap: c, bar: bar, cfg: cfg, log: log}
}

// OnReport registers a hook called with each RPM reading. Wiring time
// only.
func (s *Service) OnReport(fn func(rpm100 uint32)) { s.onReport = fn }

func (s *Service) HandleEvent(ev events.Event) error {
	switch ev.Type {
	case events.TypeInit:
		s.bar.Set(0)
	case events.TypeNewEdge:
		s.onEdge()
	case events.TypeTimeout:
		if events.TimerID(ev.Param) != s.cfg.ReportTimer {
			return nil
		}
		s.report()
	}
	return nil
}

func (s *Service) onEdge() {
	cur := s.cap.Latest()
	delta := wrapDelta(s.prev, cur)
	s.prev = cur
	var sm uint32
	if !s.seeded {
		sm = delta
		s.seeded = true
	} else {
		sm = uint32((uint64(delta) + 5*uint64(s.smoothed.Load())) / 6)
	}
	s.smoothed.Store(sm)
	s.bar.Set(PatternFor(sm, s.cfg.MinLapse, s.cfg.MaxLapse))
}

func (s *Service) report() {
	r := s.computeRPM()
	s.rpm100.Store(r)
	s.log.Debug().
		Uint32("rpm_x100", r).
		Uint32("lapse", s.smoothed.Load()).
		Msg("rpm report")
	if s.onReport != nil {
		s.onReport(r)
	}
}

func (s *Service) computeRPM() uint32 {
	sm := uint64(s.smoothed.Load())
	if sm == 0 {
		return 0
	}
	return uint32(uint64(s.cfg.TimerClockHz) * 60 * 100 / (sm * uint64(s.cfg.EdgesPerRev)))
}

// SmoothedLapse is the current EWMA of inter-edge lapses.
func (s *Service) SmoothedLapse() uint32 { return s.smoothed.Load() }

// RPMx100 is the value computed at the last report.
func (s *Service) RPMx100() uint32 { return s.rpm100.Load() }

// wrapDelta is the distance from prev to cur on the 32-bit circular
// clock.
func wrapDelta(prev, cur uint32) uint32 {
	if cur >= prev {
		return cur - prev
	}
	return (math.MaxUint32 - prev) + cur + 1
}
