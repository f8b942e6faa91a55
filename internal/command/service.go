// internal/command/service.go
package command

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

// flagByte precedes every command on the link; the follower pads the
// stream with repeats of the last response otherwise.
const flagByte = 0xFF

// Link is the byte transport the retrieve cycle polls, one response
// byte per poll.
type Link interface {
	ReadByte() (byte, error)
}

// Poster is the slice of the dispatcher the service posts through.
type Poster interface {
	Post(id events.ServiceID, ev events.Event) bool
}

// Service polls the command link on its poll timer and runs the
// two-byte framing: a flag byte latches, the next byte is either a
// valid command (forwarded to the target service) or logged and
// discarded. The latch clears on every data byte.
type Service struct {
	link      Link
	post      Poster
	target    events.ServiceID
	pollTimer events.TimerID
	log       zerolog.Logger

	pending bool
	up      atomic.Bool
}

func New(l Link, post Poster, target events.ServiceID, pollTimer events.TimerID, log zerolog.Logger) (*Service, error) {
	if l == nil {
		return nil, errors.New("command: link required")
	}
	if post == nil {
		return nil, errors.New("command: poster required")
	}
	return &Service{
		link:      l,
		post:      post,
		target:    target,
		pollTimer: pollTimer,
		log:       log,
	}, nil
}

func (s *Service) HandleEvent(ev events.Event) error {
	if ev.Type != events.TypeTimeout || events.TimerID(ev.Param) != s.pollTimer {
		return nil
	}
	s.poll()
	return nil
}

func (s *Service) poll() {
	b, err := s.link.ReadByte()
	if err != nil {
		s.up.Store(false)
		s.log.Debug().Err(err).Msg("link read failed")
		return
	}
	s.up.Store(true)
	if s.pending {
		s.pending = false
		cmd := events.Command(b)
		if !cmd.IsValid() {
			s.log.Warn().Msgf("invalid command byte: 0x%02X", b)
			return
		}
		s.log.Info().Str("command", cmd.String()).Msg("command received")
		s.post.Post(s.target, events.CommandEvent(cmd))
		return
	}
	if b == flagByte {
		s.pending = true
	}
}

// Up reports whether the last poll reached the link.
func (s *Service) Up() bool { return s.up.Load() }
