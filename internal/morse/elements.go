// internal/morse/elements.go
package morse

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

type State uint8

const (
	StateInit State = iota
	StateCalWaitRise
	StateCalWaitFall
	StateEOCWaitRise
	StateEOCWaitFall
	StateDecodeWaitFall
	StateDecodeWaitRise
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCalWaitRise:
		return "cal_wait_rise"
	case StateCalWaitFall:
		return "cal_wait_fall"
	case StateEOCWaitRise:
		return "eoc_wait_rise"
	case StateEOCWaitFall:
		return "eoc_wait_fall"
	case StateDecodeWaitFall:
		return "decode_wait_fall"
	case StateDecodeWaitRise:
		return "decode_wait_rise"
	}
	return "unknown"
}

// Poster is the slice of the dispatcher the machine posts through.
type Poster interface {
	Post(id events.ServiceID, ev events.Event) bool
}

type Config struct {
	Self events.ServiceID // for calibration/EOC self-posts
	Out  events.ServiceID // element consumer (the decoder)
}

// Elements measures pulse and space widths on the morse input and
// classifies them against the calibrated dot length. Edge events carry
// 16-bit tick times; widths are uint16 differences, so they survive
// the tick counter wrapping.
//
// Calibration watches consecutive pulse widths until one pair differs
// by the dot/dash ratio; the shorter of the pair becomes the dot.
// After that the machine syncs on a character boundary, then decodes
// pulses into dots and dashes and spaces into character/word breaks.
type Elements struct {
	cfg  Config
	post Poster
	log  zerolog.Logger

	mu    sync.Mutex
	state State

	firstDelta uint16
	dot        uint16
	lastRise   uint16
	lastFall   uint16
}

func NewElements(cfg Config, post Poster, log zerolog.Logger) *Elements {
	return &Elements{cfg: cfg, post: post, log: log}
}

// State is a snapshot accessor, safe from any goroutine.
func (e *Elements) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// DotLength is the calibrated dot width in ticks, zero before
// calibration completes.
func (e *Elements) DotLength() uint16 { return e.dot }

func (e *Elements) HandleEvent(ev events.Event) error {
	if ev.Type == events.TypeCharReset && e.State() != StateInit {
		e.resetCalibration()
		e.post.Post(e.cfg.Out, events.Event{Type: events.TypeCharReset})
		return nil
	}
	switch e.State() {
	case StateInit:
		if ev.Type == events.TypeInit {
			e.setState(StateCalWaitRise)
		}

	case StateCalWaitRise:
		switch ev.Type {
		case events.TypeRisingEdge:
			e.lastRise = ev.Param
			e.setState(StateCalWaitFall)
		case events.TypeCalComplete:
			e.log.Info().Uint16("dot_ticks", e.dot).Msg("calibration complete")
			e.setState(StateEOCWaitRise)
		}

	case StateCalWaitFall:
		if ev.Type == events.TypeFallingEdge {
			e.lastFall = ev.Param
			e.testCalibration(ev.Param - e.lastRise)
			e.setState(StateCalWaitRise)
		}

	case StateEOCWaitRise:
		if ev.Type == events.TypeRisingEdge {
			space := ev.Param - e.lastFall
			e.lastRise = ev.Param
			switch classifySpace(space, e.dot) {
			case spaceEOC:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeEOCDetected})
				e.post.Post(e.cfg.Self, events.Event{Type: events.TypeEOCDetected})
			case spaceEOW:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeEOWDetected})
				e.post.Post(e.cfg.Self, events.Event{Type: events.TypeEOCDetected})
			case spaceBad:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeBadSpace})
			}
			e.setState(StateEOCWaitFall)
		}

	case StateEOCWaitFall:
		switch ev.Type {
		case events.TypeFallingEdge:
			e.lastFall = ev.Param
			e.setState(StateEOCWaitRise)
		case events.TypeEOCDetected:
			// boundary found: the rise already seen starts a character
			e.setState(StateDecodeWaitFall)
		}

	case StateDecodeWaitFall:
		if ev.Type == events.TypeFallingEdge {
			width := ev.Param - e.lastRise
			e.lastFall = ev.Param
			e.post.Post(e.cfg.Out, events.Event{Type: classifyPulse(width, e.dot)})
			e.setState(StateDecodeWaitRise)
		}

	case StateDecodeWaitRise:
		if ev.Type == events.TypeRisingEdge {
			space := ev.Param - e.lastFall
			e.lastRise = ev.Param
			switch classifySpace(space, e.dot) {
			case spaceEOC:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeEOCDetected})
			case spaceEOW:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeEOWDetected})
			case spaceBad:
				e.post.Post(e.cfg.Out, events.Event{Type: events.TypeBadSpace})
			}
			e.setState(StateDecodeWaitFall)
		}
	}
	return nil
}

// testCalibration feeds one pulse width into the dot estimate. The
// first width becomes the baseline; each later width is compared as
// ratio = 100*first/second. A ratio at or under 33 means the first was
// a dot against a dash; over 300 means the dash came first. Anything
// between slides the baseline forward.
func (e *Elements) testCalibration(width uint16) {
	if width == 0 {
		return
	}
	if e.firstDelta == 0 {
		e.firstDelta = width
		return
	}
	ratio := 100 * uint32(e.firstDelta) / uint32(width)
	switch {
	case ratio <= 33:
		e.dot = e.firstDelta
		e.post.Post(e.cfg.Self, events.Event{Type: events.TypeCalComplete})
	case ratio > 300:
		e.dot = width
		e.post.Post(e.cfg.Self, events.Event{Type: events.TypeCalComplete})
	default:
		e.firstDelta = width
	}
}

func (e *Elements) resetCalibration() {
	e.firstDelta = 0
	e.dot = 0
	e.setState(StateCalWaitRise)
	e.log.Info().Msg("calibration reset")
}

func (e *Elements) setState(st State) {
	e.mu.Lock()
	e.state = st
	e.mu.Unlock()
}

type spaceClass uint8

const (
	spaceIntra spaceClass = iota
	spaceEOC
	spaceEOW
	spaceBad
)

// classifySpace buckets a space width as a fraction of the dot length:
// up to 150% separates pulses inside a character, 250-350% ends a
// character, 650% and up ends a word.
func classifySpace(space, dot uint16) spaceClass {
	s := 100 * uint32(space)
	d := uint32(dot)
	switch {
	case s <= 150*d:
		return spaceIntra
	case s >= 250*d && s <= 350*d:
		return spaceEOC
	case s >= 650*d:
		return spaceEOW
	}
	return spaceBad
}

// classifyPulse buckets a pulse width: up to 150% of the dot is a dot,
// 250% and up is a dash.
func classifyPulse(width, dot uint16) events.Type {
	w := 100 * uint32(width)
	d := uint32(dot)
	switch {
	case w <= 150*d:
		return events.TypeDotDetected
	case w >= 250*d:
		return events.TypeDashDetected
	}
	return events.TypeBadPulse
}
