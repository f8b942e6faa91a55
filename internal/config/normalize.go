// internal/config/normalize.go
package config

// Normalize fills defaults for every field left at its zero value.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// CONTROLLER
	// ------------------------------------------------------------

	if cfg.Controller.TickMs == 0 {
		cfg.Controller.TickMs = 1
	}
	if cfg.Controller.QueueDepth == 0 {
		cfg.Controller.QueueDepth = 8
	}
	if cfg.Controller.LogLevel == "" {
		cfg.Controller.LogLevel = "info"
	}

	// ------------------------------------------------------------
	// COMMAND LINK
	// ------------------------------------------------------------

	if cfg.Command.Link == "" {
		cfg.Command.Link = LinkNone
	}
	if cfg.Command.Baud == 0 {
		cfg.Command.Baud = 115200
	}
	if cfg.Command.PollIntervalMs == 0 {
		cfg.Command.PollIntervalMs = 10
	}

	// ------------------------------------------------------------
	// MOTION
	// ------------------------------------------------------------

	if cfg.Motion.FullSpeed == 0 {
		cfg.Motion.FullSpeed = 1023
	}
	if cfg.Motion.HalfSpeed == 0 {
		cfg.Motion.HalfSpeed = 512
	}
	if cfg.Motion.Rotate90Ms == 0 {
		cfg.Motion.Rotate90Ms = 6000
	}
	if cfg.Motion.Rotate45Ms == 0 {
		cfg.Motion.Rotate45Ms = 3000
	}
	if cfg.Motion.DriveMs == 0 {
		cfg.Motion.DriveMs = 5000
	}
	if cfg.Motion.TapeSearchMs == 0 {
		cfg.Motion.TapeSearchMs = 20000
	}
	if cfg.Motion.BeaconAlignMs == 0 {
		cfg.Motion.BeaconAlignMs = 10000
	}

	// ------------------------------------------------------------
	// ENCODER
	// ------------------------------------------------------------

	if cfg.Encoder.TimerClockHz == 0 {
		cfg.Encoder.TimerClockHz = 78125
	}
	if cfg.Encoder.EdgesPerRev == 0 {
		cfg.Encoder.EdgesPerRev = 190
	}
	if cfg.Encoder.MinLapse == 0 {
		cfg.Encoder.MinLapse = 500
	}
	if cfg.Encoder.MaxLapse == 0 {
		cfg.Encoder.MaxLapse = 41015
	}
	if cfg.Encoder.ReportIntervalMs == 0 {
		cfg.Encoder.ReportIntervalMs = 100
	}

	// ------------------------------------------------------------
	// TELEMETRY
	// ------------------------------------------------------------

	if cfg.Telemetry.Sink == "" {
		cfg.Telemetry.Sink = SinkNone
	}
	if cfg.Telemetry.IntervalMs == 0 {
		cfg.Telemetry.IntervalMs = 1000
	}

	// Normalize device_name:
	// - ASCII already validated
	// - Truncate to max 16 characters
	if len(cfg.Telemetry.DeviceName) > 16 {
		cfg.Telemetry.DeviceName = cfg.Telemetry.DeviceName[:16]
	}
}
