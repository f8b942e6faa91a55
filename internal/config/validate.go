// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// CONTROLLER
	// ------------------------------------------------------------

	if cfg.Controller.TickMs < 0 {
		return fmt.Errorf("controller: tick_ms must not be negative, got %d", cfg.Controller.TickMs)
	}
	if cfg.Controller.QueueDepth < 0 {
		return fmt.Errorf("controller: queue_depth must not be negative, got %d", cfg.Controller.QueueDepth)
	}
	switch cfg.Controller.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("controller: unknown log_level %q", cfg.Controller.LogLevel)
	}

	// ------------------------------------------------------------
	// COMMAND LINK
	// ------------------------------------------------------------

	switch cfg.Command.Link {
	case "", LinkNone:
		// no link, no endpoint needed
	case LinkSerial, LinkModbus:
		if cfg.Command.Endpoint == "" {
			return fmt.Errorf("command: link %q requires an endpoint", cfg.Command.Link)
		}
	default:
		return fmt.Errorf("command: unknown link %q", cfg.Command.Link)
	}

	if cfg.Command.Baud < 0 {
		return fmt.Errorf("command: baud must not be negative, got %d", cfg.Command.Baud)
	}
	if cfg.Command.PollIntervalMs < 0 {
		return fmt.Errorf("command: poll_interval_ms must not be negative, got %d", cfg.Command.PollIntervalMs)
	}

	// ------------------------------------------------------------
	// MOTION
	// ------------------------------------------------------------

	if cfg.Motion.FullSpeed > 1023 {
		return fmt.Errorf("motion: full_speed %d exceeds 1023", cfg.Motion.FullSpeed)
	}
	if cfg.Motion.HalfSpeed > 1023 {
		return fmt.Errorf("motion: half_speed %d exceeds 1023", cfg.Motion.HalfSpeed)
	}

	durations := []struct {
		name string
		ms   int
	}{
		{"rotate_90_ms", cfg.Motion.Rotate90Ms},
		{"rotate_45_ms", cfg.Motion.Rotate45Ms},
		{"drive_ms", cfg.Motion.DriveMs},
		{"tape_search_ms", cfg.Motion.TapeSearchMs},
		{"beacon_align_ms", cfg.Motion.BeaconAlignMs},
	}
	for _, d := range durations {
		if d.ms < 0 {
			return fmt.Errorf("motion: %s must not be negative, got %d", d.name, d.ms)
		}
	}

	// ------------------------------------------------------------
	// ENCODER
	// ------------------------------------------------------------

	if cfg.Encoder.MinLapse != 0 && cfg.Encoder.MaxLapse != 0 &&
		cfg.Encoder.MinLapse > cfg.Encoder.MaxLapse {
		return fmt.Errorf(
			"encoder: min_lapse %d exceeds max_lapse %d",
			cfg.Encoder.MinLapse,
			cfg.Encoder.MaxLapse,
		)
	}
	if cfg.Encoder.ReportIntervalMs < 0 {
		return fmt.Errorf("encoder: report_interval_ms must not be negative, got %d", cfg.Encoder.ReportIntervalMs)
	}

	// ------------------------------------------------------------
	// TELEMETRY
	// ------------------------------------------------------------

	switch cfg.Telemetry.Sink {
	case "", SinkNone:
		// telemetry disabled
	case SinkModbus, SinkIngest:
		if cfg.Telemetry.Endpoint == "" {
			return fmt.Errorf("telemetry: sink %q requires an endpoint", cfg.Telemetry.Sink)
		}
	default:
		return fmt.Errorf("telemetry: unknown sink %q", cfg.Telemetry.Sink)
	}

	if cfg.Telemetry.IntervalMs < 0 {
		return fmt.Errorf("telemetry: interval_ms must not be negative, got %d", cfg.Telemetry.IntervalMs)
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(cfg.Telemetry.DeviceName); i++ {
		if cfg.Telemetry.DeviceName[i] > 0x7F {
			return fmt.Errorf("telemetry: device_name must contain ASCII characters only")
		}
	}

	return nil
}
