// internal/config/validate_test.go
package config

import "testing"

// helper to build a config that passes validation
func valid() *Config {
	return &Config{
		Controller: ControllerConfig{
			TickMs:     1,
			QueueDepth: 8,
			LogLevel:   "info",
		},
		Command: CommandConfig{
			Link:           LinkModbus,
			Endpoint:       "127.0.0.1:1502",
			UnitID:         1,
			Register:       100,
			PollIntervalMs: 10,
		},
		Motion: MotionConfig{
			FullSpeed:     1023,
			HalfSpeed:     512,
			Rotate90Ms:    6000,
			Rotate45Ms:    3000,
			DriveMs:       5000,
			TapeSearchMs:  20000,
			BeaconAlignMs: 10000,
		},
		Encoder: EncoderConfig{
			TimerClockHz:     78125,
			EdgesPerRev:      190,
			MinLapse:         500,
			MaxLapse:         41015,
			ReportIntervalMs: 100,
		},
		Telemetry: TelemetryConfig{
			Sink:       SinkModbus,
			Endpoint:   "127.0.0.1:1502",
			UnitID:     2,
			BaseSlot:   0,
			DeviceName: "rover-01",
			IntervalMs: 1000,
		},
	}
}

// ---- tests ----

func TestValidate_FullConfigOK(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyConfigOK(t *testing.T) {
	// an empty config is valid; Normalize fills the defaults
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownLogLevelRejected(t *testing.T) {
	cfg := valid()
	cfg.Controller.LogLevel = "loud"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log_level error, got nil")
	}
}

func TestValidate_UnknownLinkRejected(t *testing.T) {
	cfg := valid()
	cfg.Command.Link = "carrier-pigeon"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected link error, got nil")
	}
}

func TestValidate_LinkRequiresEndpoint(t *testing.T) {
	cfg := valid()
	cfg.Command.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

func TestValidate_NoLinkNeedsNoEndpoint(t *testing.T) {
	cfg := valid()
	cfg.Command.Link = LinkNone
	cfg.Command.Endpoint = ""

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SpeedAboveRangeRejected(t *testing.T) {
	cfg := valid()
	cfg.Motion.FullSpeed = 1024

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected speed range error, got nil")
	}
}

func TestValidate_NegativeDurationRejected(t *testing.T) {
	cfg := valid()
	cfg.Motion.TapeSearchMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duration error, got nil")
	}
}

func TestValidate_LapseWindowMustBeOrdered(t *testing.T) {
	cfg := valid()
	cfg.Encoder.MinLapse = 50000
	cfg.Encoder.MaxLapse = 500

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected lapse window error, got nil")
	}
}

func TestValidate_UnknownSinkRejected(t *testing.T) {
	cfg := valid()
	cfg.Telemetry.Sink = "carrier-pigeon"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected sink error, got nil")
	}
}

func TestValidate_SinkRequiresEndpoint(t *testing.T) {
	cfg := valid()
	cfg.Telemetry.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

func TestValidate_DeviceNameMustBeASCII(t *testing.T) {
	cfg := valid()
	cfg.Telemetry.DeviceName = "rovér"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}
