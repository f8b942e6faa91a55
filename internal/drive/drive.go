// internal/drive/drive.go
package drive

import (
	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/board"
	"github.com/tamzrod/rover-controller/internal/events"
)

// Output-compare geometry the wheel controllers are tuned for: a
// 2000-tick PWM period, with commanded speeds on a 0..1023 scale.
const (
	PeriodTicks uint16 = 2000
	MaxSpeed    uint16 = 1023
	maxRawDuty  uint16 = PeriodTicks
)

type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Service drives both wheels. Queue events adjust duty without
// touching direction; Command is the synchronous wrapper the main
// logic uses to set everything at once.
type Service struct {
	left  wheel
	right wheel
	log   zerolog.Logger
}

type wheel struct {
	out  board.MotorOutput
	duty uint16
	dir  Direction
}

func New(left, right board.MotorOutput, log zerolog.Logger) *Service {
	return &Service{
		left:  wheel{out: left},
		right: wheel{out: right},
		log:   log,
	}
}

func (s *Service) HandleEvent(ev events.Event) error {
	switch ev.Type {
	case events.TypeInit:
		s.Command(0, 0, Forward, Forward)
	case events.TypeSpeedChange:
		d := DutyForSpeed(ev.Param)
		s.setDuty(d)
	case events.TypeDutyCycleChange:
		d := ev.Param
		if d > maxRawDuty {
			d = maxRawDuty
		}
		s.setDuty(d)
	}
	return nil
}

// Command sets both wheels from 0..1023 speeds and per-wheel
// directions in one call.
func (s *Service) Command(leftSpeed, rightSpeed uint16, leftDir, rightDir Direction) {
	s.left.duty = DutyForSpeed(leftSpeed)
	s.left.dir = leftDir
	s.right.duty = DutyForSpeed(rightSpeed)
	s.right.dir = rightDir
	s.left.apply()
	s.right.apply()
	s.log.Debug().
		Uint16("left", leftSpeed).
		Uint16("right", rightSpeed).
		Str("left_dir", leftDir.String()).
		Str("right_dir", rightDir.String()).
		Msg("motor command")
}

func (s *Service) setDuty(d uint16) {
	s.left.duty = d
	s.right.duty = d
	s.left.apply()
	s.right.apply()
}

// apply writes the sign-magnitude pair: a forward wheel gets the duty
// directly, a reversed wheel gets the inverted compare value with the
// reverse pin asserted.
func (w *wheel) apply() {
	if w.dir == Reverse {
		w.out.SetReverse(true)
		w.out.SetDuty(PeriodTicks - w.duty + 1)
		return
	}
	w.out.SetReverse(false)
	w.out.SetDuty(w.duty)
}

// DutyForSpeed maps a 0..1023 speed onto 0..1999 compare ticks.
func DutyForSpeed(speed uint16) uint16 {
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	return uint16(uint32(speed) * 1999 / uint32(MaxSpeed))
}
