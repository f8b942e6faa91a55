// internal/events/events.go
package events

// Event is the unit of work moving through the dispatcher. Param is
// event-specific: a timer id for Timeout, a command byte for Command,
// a 16-bit tick time for edge events, a raw value for speed/duty.
type Event struct {
	Type  Type
	Param uint16
}

type Type uint8

const (
	TypeNone Type = iota
	TypeInit
	TypeTimeout
	TypeNewEdge
	TypeCommand
	TypeBeaconDetected
	TypeTapeDetected
	TypeRisingEdge
	TypeFallingEdge
	TypeCalComplete
	TypeEOCDetected
	TypeEOWDetected
	TypeDotDetected
	TypeDashDetected
	TypeBadPulse
	TypeBadSpace
	TypeCharReset
	TypeSpeedChange
	TypeDutyCycleChange
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInit:
		return "init"
	case TypeTimeout:
		return "timeout"
	case TypeNewEdge:
		return "new_edge"
	case TypeCommand:
		return "command"
	case TypeBeaconDetected:
		return "beacon_detected"
	case TypeTapeDetected:
		return "tape_detected"
	case TypeRisingEdge:
		return "rising_edge"
	case TypeFallingEdge:
		return "falling_edge"
	case TypeCalComplete:
		return "cal_complete"
	case TypeEOCDetected:
		return "eoc_detected"
	case TypeEOWDetected:
		return "eow_detected"
	case TypeDotDetected:
		return "dot_detected"
	case TypeDashDetected:
		return "dash_detected"
	case TypeBadPulse:
		return "bad_pulse"
	case TypeBadSpace:
		return "bad_space"
	case TypeCharReset:
		return "char_reset"
	case TypeSpeedChange:
		return "speed_change"
	case TypeDutyCycleChange:
		return "duty_cycle_change"
	}
	return "unknown"
}

// Timeout builds the expiry event a timer posts to its target.
func Timeout(id TimerID) Event {
	return Event{Type: TypeTimeout, Param: uint16(id)}
}

// CommandEvent wraps a validated command byte for the main logic queue.
func CommandEvent(c Command) Event {
	return Event{Type: TypeCommand, Param: uint16(c)}
}
