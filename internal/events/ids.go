// internal/events/ids.go
package events

// ServiceID names the services registered with the dispatcher.
type ServiceID uint8

const (
	ServiceMainLogic ServiceID = iota
	ServiceDrive
	ServiceEncoder
	ServiceCommand
	ServiceMorse
	ServiceDecoder
)

func (s ServiceID) String() string {
	switch s {
	case ServiceMainLogic:
		return "mainlogic"
	case ServiceDrive:
		return "drive"
	case ServiceEncoder:
		return "encoder"
	case ServiceCommand:
		return "command"
	case ServiceMorse:
		return "morse"
	case ServiceDecoder:
		return "decoder"
	}
	return "unknown"
}

// TimerID names the software timers. The id space is global and flat:
// a Timeout event carries only the id, so consumers must match Param
// against the ids they armed and ignore the rest.
type TimerID uint8

const (
	TimerSimpleMove TimerID = iota
	TimerTapeSearch
	TimerBeaconAlign
	TimerCommandPoll
	TimerRPMReport
)

func (t TimerID) String() string {
	switch t {
	case TimerSimpleMove:
		return "simple_move"
	case TimerTapeSearch:
		return "tape_search"
	case TimerBeaconAlign:
		return "beacon_align"
	case TimerCommandPoll:
		return "command_poll"
	case TimerRPMReport:
		return "rpm_report"
	}
	return "unknown"
}
