// internal/config/normalize_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg := &Config{}
	Normalize(cfg)

	if cfg.Controller.TickMs != 1 {
		t.Errorf("tick_ms = %d, want 1", cfg.Controller.TickMs)
	}
	if cfg.Controller.QueueDepth != 8 {
		t.Errorf("queue_depth = %d, want 8", cfg.Controller.QueueDepth)
	}
	if cfg.Controller.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", cfg.Controller.LogLevel)
	}
	if cfg.Command.Link != LinkNone {
		t.Errorf("link = %q, want %q", cfg.Command.Link, LinkNone)
	}
	if cfg.Command.Baud != 115200 {
		t.Errorf("baud = %d, want 115200", cfg.Command.Baud)
	}
	if cfg.Command.PollIntervalMs != 10 {
		t.Errorf("poll_interval_ms = %d, want 10", cfg.Command.PollIntervalMs)
	}
	if cfg.Motion.FullSpeed != 1023 || cfg.Motion.HalfSpeed != 512 {
		t.Errorf("speeds = %d/%d, want 1023/512", cfg.Motion.FullSpeed, cfg.Motion.HalfSpeed)
	}
	if cfg.Motion.Rotate90Ms != 6000 || cfg.Motion.Rotate45Ms != 3000 {
		t.Errorf("rotate durations = %d/%d, want 6000/3000", cfg.Motion.Rotate90Ms, cfg.Motion.Rotate45Ms)
	}
	if cfg.Motion.DriveMs != 5000 {
		t.Errorf("drive_ms = %d, want 5000", cfg.Motion.DriveMs)
	}
	if cfg.Motion.TapeSearchMs != 20000 || cfg.Motion.BeaconAlignMs != 10000 {
		t.Errorf("search durations = %d/%d, want 20000/10000", cfg.Motion.TapeSearchMs, cfg.Motion.BeaconAlignMs)
	}
	if cfg.Encoder.TimerClockHz != 78125 || cfg.Encoder.EdgesPerRev != 190 {
		t.Errorf("encoder geometry = %d/%d, want 78125/190", cfg.Encoder.TimerClockHz, cfg.Encoder.EdgesPerRev)
	}
	if cfg.Encoder.MinLapse != 500 || cfg.Encoder.MaxLapse != 41015 {
		t.Errorf("lapse window = %d/%d, want 500/41015", cfg.Encoder.MinLapse, cfg.Encoder.MaxLapse)
	}
	if cfg.Encoder.ReportIntervalMs != 100 {
		t.Errorf("report_interval_ms = %d, want 100", cfg.Encoder.ReportIntervalMs)
	}
	if cfg.Telemetry.Sink != SinkNone {
		t.Errorf("sink = %q, want %q", cfg.Telemetry.Sink, SinkNone)
	}
	if cfg.Telemetry.IntervalMs != 1000 {
		t.Errorf("interval_ms = %d, want 1000", cfg.Telemetry.IntervalMs)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := valid()
	cfg.Controller.TickMs = 5
	cfg.Command.Baud = 9600
	Normalize(cfg)

	if cfg.Controller.TickMs != 5 {
		t.Errorf("tick_ms = %d, want 5", cfg.Controller.TickMs)
	}
	if cfg.Command.Baud != 9600 {
		t.Errorf("baud = %d, want 9600", cfg.Command.Baud)
	}
}

func TestNormalize_TruncatesDeviceName(t *testing.T) {
	cfg := valid()
	cfg.Telemetry.DeviceName = "a-very-long-rover-name"
	Normalize(cfg)

	if got := cfg.Telemetry.DeviceName; got != "a-very-long-rove" {
		t.Errorf("device_name = %q, want 16-char prefix", got)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rover.yaml")
	doc := `
controller:
  tick_ms: 2
  log_level: debug
command:
  link: serial
  endpoint: /dev/ttyUSB0
  baud: 57600
motion:
  half_speed: 400
telemetry:
  sink: ingest
  endpoint: 127.0.0.1:9000
  device_name: bench-rover
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Controller.TickMs != 2 || cfg.Controller.LogLevel != "debug" {
		t.Errorf("controller = %+v", cfg.Controller)
	}
	if cfg.Command.Link != LinkSerial || cfg.Command.Endpoint != "/dev/ttyUSB0" || cfg.Command.Baud != 57600 {
		t.Errorf("command = %+v", cfg.Command)
	}
	if cfg.Motion.HalfSpeed != 400 {
		t.Errorf("half_speed = %d, want 400", cfg.Motion.HalfSpeed)
	}
	if cfg.Telemetry.Sink != SinkIngest || cfg.Telemetry.DeviceName != "bench-rover" {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}
