// internal/telemetry/source.go
package telemetry

import (
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// rpmWindow is the number of samples in the rolling RPM average.
const rpmWindow = 6

// Probes are read-only hooks into the live services. A nil probe
// leaves its slot at zero.
type Probes struct {
	Health      func() uint16
	LogicState  func() uint16
	LastCommand func() uint16
	MorseState  func() uint16
}

// Source assembles snapshots from the service probes and the RPM feed.
// ObserveRPM is called from the controller goroutine and Take from the
// publisher goroutine.
type Source struct {
	probes Probes
	start  time.Time

	mu  sync.Mutex
	avg *movingaverage.MovingAverage
	fed bool
	rpm uint16
}

func NewSource(p Probes) *Source {
	return &Source{
		probes: p,
		start:  time.Now(),
		avg:    movingaverage.New(rpmWindow),
	}
}

// ObserveRPM records one wheel speed sample in hundredths of RPM.
func (s *Source) ObserveRPM(rpm100 uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rpm = clampU16(rpm100)
	s.avg.Add(float64(rpm100))
	s.fed = true
}

// Take builds a point-in-time snapshot.
func (s *Source) Take() Snapshot {
	s.mu.Lock()
	rpm := s.rpm
	var avg uint16
	if s.fed {
		avg = clampU16(uint32(s.avg.Avg()))
	}
	s.mu.Unlock()

	snap := Snapshot{
		RPMx100:    rpm,
		AvgRPMx100: avg,
		UptimeSec:  clampU16(uint32(time.Since(s.start) / time.Second)),
	}
	if s.probes.Health != nil {
		snap.Health = s.probes.Health()
	}
	if s.probes.LogicState != nil {
		snap.LogicState = s.probes.LogicState()
	}
	if s.probes.LastCommand != nil {
		snap.LastCommand = s.probes.LastCommand()
	}
	if s.probes.MorseState != nil {
		snap.MorseState = s.probes.MorseState()
	}
	return snap
}

func clampU16(v uint32) uint16 {
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
