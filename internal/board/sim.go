// internal/board/sim.go
package board

import (
	"context"
	"sync"
	"time"
)

// PWM geometry mirrored by the sim so it can turn a commanded duty
// back into a speed fraction.
const (
	simPWMPeriod = 2000
)

// Sim is an in-memory Board. Inputs are toggled by tests or a demo
// driver; outputs record the last written value.
type Sim struct {
	mu     sync.Mutex
	beacon bool
	tape   bool
	morse  bool
	button bool
	bar    uint8
	left   SimMotor
	right  SimMotor
}

func NewSim() *Sim { return &Sim{} }

type simInput struct{ read func() bool }

func (i simInput) Read() bool { return i.read() }

func (s *Sim) Beacon() DigitalInput      { return simInput{s.beaconLevel} }
func (s *Sim) Tape() DigitalInput        { return simInput{s.tapeLevel} }
func (s *Sim) MorseIn() DigitalInput     { return simInput{s.morseLevel} }
func (s *Sim) ResetButton() DigitalInput { return simInput{s.buttonLevel} }
func (s *Sim) LeftMotor() MotorOutput    { return &s.left }
func (s *Sim) RightMotor() MotorOutput   { return &s.right }

func (s *Sim) beaconLevel() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.beacon }
func (s *Sim) tapeLevel() bool   { s.mu.Lock(); defer s.mu.Unlock(); return s.tape }
func (s *Sim) morseLevel() bool  { s.mu.Lock(); defer s.mu.Unlock(); return s.morse }
func (s *Sim) buttonLevel() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.button }

func (s *Sim) SetBeacon(v bool)  { s.mu.Lock(); s.beacon = v; s.mu.Unlock() }
func (s *Sim) SetTape(v bool)    { s.mu.Lock(); s.tape = v; s.mu.Unlock() }
func (s *Sim) SetMorseIn(v bool) { s.mu.Lock(); s.morse = v; s.mu.Unlock() }
func (s *Sim) SetButton(v bool)  { s.mu.Lock(); s.button = v; s.mu.Unlock() }

type simBar struct{ s *Sim }

func (b simBar) Set(pattern uint8) {
	b.s.mu.Lock()
	b.s.bar = pattern
	b.s.mu.Unlock()
}

func (s *Sim) Bar() BarGraph { return simBar{s} }

// LastBar reports the most recent bar-graph pattern.
func (s *Sim) LastBar() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bar
}

// SimMotor records the last duty and direction written to one wheel.
type SimMotor struct {
	mu      sync.Mutex
	duty    uint16
	reverse bool
}

func (m *SimMotor) SetDuty(ticks uint16) {
	m.mu.Lock()
	m.duty = ticks
	m.mu.Unlock()
}

func (m *SimMotor) SetReverse(on bool) {
	m.mu.Lock()
	m.reverse = on
	m.mu.Unlock()
}

func (m *SimMotor) Duty() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duty
}

func (m *SimMotor) Reversed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reverse
}

// speedFraction undoes the sign-magnitude duty encoding: a reversed
// wheel carries period-duty+1, so invert before normalizing.
func (m *SimMotor) speedFraction() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := float64(m.duty)
	if m.reverse {
		d = float64(simPWMPeriod+1) - d
	}
	if d < 0 {
		d = 0
	}
	if d > simPWMPeriod {
		d = simPWMPeriod
	}
	return d / simPWMPeriod
}

// RunEncoder emulates the capture hardware: a free-running counter
// advancing at clockHz whose wraps invoke onWrap, and shaft edges
// firing at up to maxEdgeHz scaled by the commanded left wheel speed.
// Blocks until ctx is done.
func (s *Sim) RunEncoder(ctx context.Context, clockHz, maxEdgeHz int, onEdge func(raw uint16), onWrap func()) {
	const step = time.Millisecond
	start := time.Now()
	var wrapsSeen uint64
	var acc float64
	t := time.NewTicker(step)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			elapsed := now.Sub(start)
			count := uint64(elapsed) * uint64(clockHz) / uint64(time.Second)
			for ; wrapsSeen < count>>16; wrapsSeen++ {
				onWrap()
			}
			acc += s.left.speedFraction() * float64(maxEdgeHz) * (float64(step) / float64(time.Second))
			for acc >= 1 {
				acc--
				onEdge(uint16(count & 0xFFFF))
			}
		}
	}
}
