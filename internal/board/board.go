// internal/board/board.go
package board

import "github.com/tamzrod/rover-controller/internal/events"

// Small interfaces over the rover's I/O. Register-level access stays
// out of tree behind these; Sim covers the binary and the tests.

type DigitalInput interface {
	Read() bool
}

// MotorOutput is one wheel's PWM channel plus its direction pin. Duty
// is an output-compare value against the drive service's fixed period.
type MotorOutput interface {
	SetDuty(ticks uint16)
	SetReverse(on bool)
}

// BarGraph is the 8-segment LED bar, one bit per segment.
type BarGraph interface {
	Set(pattern uint8)
}

type Board interface {
	Beacon() DigitalInput
	Tape() DigitalInput
	MorseIn() DigitalInput
	ResetButton() DigitalInput
	LeftMotor() MotorOutput
	RightMotor() MotorOutput
	Bar() BarGraph
}

// Poster is the slice of the dispatcher the checkers need.
type Poster interface {
	Post(id events.ServiceID, ev events.Event) bool
}
