// internal/mainlogic/fsm.go
package mainlogic

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/board"
	"github.com/tamzrod/rover-controller/internal/drive"
	"github.com/tamzrod/rover-controller/internal/events"
)

type State uint8

const (
	Stopped State = iota
	SimpleMoving
	SearchingForTape
	AligningWithBeacon
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case SimpleMoving:
		return "simple_moving"
	case SearchingForTape:
		return "searching_for_tape"
	case AligningWithBeacon:
		return "aligning_with_beacon"
	}
	return "unknown"
}

// Motor is the synchronous drive surface the state machine steers.
type Motor interface {
	Command(left, right uint16, leftDir, rightDir drive.Direction)
}

// Timers arms the move/search/align countdowns.
type Timers interface {
	ArmTimer(id events.TimerID, ticks int) error
}

// Poster is used for the beacon-already-visible self-post.
type Poster interface {
	Post(id events.ServiceID, ev events.Event) bool
}

// Timing holds the move durations in scheduler ticks.
type Timing struct {
	Rotate90    int
	Rotate45    int
	Drive       int
	TapeSearch  int
	BeaconAlign int
}

// Speeds are the two commanded speed levels on the 0..1023 scale.
type Speeds struct {
	Full uint16
	Half uint16
}

type Config struct {
	Self       events.ServiceID
	MoveTimer  events.TimerID
	TapeTimer  events.TimerID
	AlignTimer events.TimerID
	Timing     Timing
	Speeds     Speeds
}

// Service is the top-level state machine: Stopped until a command
// arrives, then one of the three active states until its terminating
// event or a stop command.
type Service struct {
	cfg    Config
	motor  Motor
	timers Timers
	post   Poster
	beacon board.DigitalInput
	log    zerolog.Logger

	mu      sync.Mutex
	state   State
	lastCmd events.Command
}

func New(cfg Config, motor Motor, timers Timers, post Poster, beacon board.DigitalInput, log zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		motor:  motor,
		timers: timers,
		post:   post,
		beacon: beacon,
		log:    log,
	}
}

// State is a snapshot accessor, safe from any goroutine.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastCommand is the most recent valid command byte received.
func (s *Service) LastCommand() events.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCmd
}

func (s *Service) HandleEvent(ev events.Event) error {
	switch ev.Type {
	case events.TypeInit:
		s.stop()
	case events.TypeCommand:
		s.onCommand(events.Command(ev.Param))
	case events.TypeTimeout:
		s.onTimeout(events.TimerID(ev.Param))
	case events.TypeTapeDetected:
		if s.State() == SearchingForTape {
			s.log.Info().Msg("tape found")
			s.stop()
		}
	case events.TypeBeaconDetected:
		if s.State() == AligningWithBeacon {
			s.log.Info().Msg("beacon found")
			s.stop()
		}
	}
	return nil
}

func (s *Service) onCommand(cmd events.Command) {
	if !cmd.IsValid() {
		return
	}
	s.mu.Lock()
	s.lastCmd = cmd
	s.mu.Unlock()

	if cmd == events.CmdStop {
		s.stop()
		return
	}
	// active states accept only a stop: new motion waits for Stopped
	if s.State() != Stopped {
		return
	}

	full := s.cfg.Speeds.Full
	half := s.cfg.Speeds.Half
	switch cmd {
	case events.CmdRotateCW90:
		s.move(full, full, drive.Forward, drive.Reverse, s.cfg.Timing.Rotate90)
	case events.CmdRotateCW45:
		s.move(full, full, drive.Forward, drive.Reverse, s.cfg.Timing.Rotate45)
	case events.CmdRotateCCW90:
		s.move(full, full, drive.Reverse, drive.Forward, s.cfg.Timing.Rotate90)
	case events.CmdRotateCCW45:
		s.move(full, full, drive.Reverse, drive.Forward, s.cfg.Timing.Rotate45)
	case events.CmdDriveFwdHalf:
		s.move(half, half, drive.Forward, drive.Forward, s.cfg.Timing.Drive)
	case events.CmdDriveFwdFull:
		s.move(full, full, drive.Forward, drive.Forward, s.cfg.Timing.Drive)
	case events.CmdDriveRevHalf:
		s.move(half, half, drive.Reverse, drive.Reverse, s.cfg.Timing.Drive)
	case events.CmdDriveRevFull:
		s.move(full, full, drive.Reverse, drive.Reverse, s.cfg.Timing.Drive)
	case events.CmdSearchTape:
		s.motor.Command(full, full, drive.Forward, drive.Forward)
		s.armTimer(s.cfg.TapeTimer, s.cfg.Timing.TapeSearch)
		s.setState(SearchingForTape)
	case events.CmdAlignBeacon:
		if s.beacon.Read() {
			// already facing it: skip the spin, settle via our own queue
			s.post.Post(s.cfg.Self, events.Event{Type: events.TypeBeaconDetected})
		} else {
			s.motor.Command(full, full, drive.Forward, drive.Reverse)
			s.armTimer(s.cfg.AlignTimer, s.cfg.Timing.BeaconAlign)
		}
		s.setState(AligningWithBeacon)
	}
}

func (s *Service) onTimeout(id events.TimerID) {
	switch {
	case id == s.cfg.MoveTimer && s.State() == SimpleMoving:
		s.stop()
	case id == s.cfg.TapeTimer && s.State() == SearchingForTape:
		s.log.Warn().Msg("tape search failed: timeout")
		s.stop()
	case id == s.cfg.AlignTimer && s.State() == AligningWithBeacon:
		s.log.Warn().Msg("beacon search failed: timeout")
		s.stop()
	}
}

// move starts a timed open-loop motion.
func (s *Service) move(left, right uint16, leftDir, rightDir drive.Direction, ticks int) {
	s.motor.Command(left, right, leftDir, rightDir)
	s.armTimer(s.cfg.MoveTimer, ticks)
	s.setState(SimpleMoving)
}

func (s *Service) armTimer(id events.TimerID, ticks int) {
	if err := s.timers.ArmTimer(id, ticks); err != nil {
		s.log.Error().Err(err).Str("timer", id.String()).Msg("arm failed")
	}
}

func (s *Service) stop() {
	s.motor.Command(0, 0, drive.Forward, drive.Forward)
	s.setState(Stopped)
}

func (s *Service) setState(st State) {
	s.mu.Lock()
	prev := s.state
	s.state = st
	s.mu.Unlock()
	if prev != st {
		s.log.Info().
			Str("from", prev.String()).
			Str("to", st.String()).
			Msg("state change")
	}
}
