// internal/telemetry/snapshot.go
package telemetry

// Snapshot represents exactly what the publisher is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health      uint16
	LogicState  uint16
	LastCommand uint16
	RPMx100     uint16
	AvgRPMx100  uint16
	MorseState  uint16
	UptimeSec   uint16
}
