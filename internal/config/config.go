// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Command link transports.
const (
	LinkNone   = "none"
	LinkSerial = "serial"
	LinkModbus = "modbus"
)

// Telemetry sinks.
const (
	SinkNone   = "none"
	SinkModbus = "modbus"
	SinkIngest = "ingest"
)

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Command    CommandConfig    `yaml:"command"`
	Motion     MotionConfig     `yaml:"motion"`
	Encoder    EncoderConfig    `yaml:"encoder"`
	Morse      MorseConfig      `yaml:"morse"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// ---- CONTROLLER ----

type ControllerConfig struct {
	TickMs     int    `yaml:"tick_ms"`
	QueueDepth int    `yaml:"queue_depth"`
	LogLevel   string `yaml:"log_level"`
}

// ---- COMMAND LINK ----

type CommandConfig struct {
	Link           string `yaml:"link"` // none | serial | modbus
	Endpoint       string `yaml:"endpoint"`
	Baud           int    `yaml:"baud"`
	UnitID         uint8  `yaml:"unit_id"`
	Register       uint16 `yaml:"register"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// ---- MOTION ----

type MotionConfig struct {
	FullSpeed     uint16 `yaml:"full_speed"`
	HalfSpeed     uint16 `yaml:"half_speed"`
	Rotate90Ms    int    `yaml:"rotate_90_ms"`
	Rotate45Ms    int    `yaml:"rotate_45_ms"`
	DriveMs       int    `yaml:"drive_ms"`
	TapeSearchMs  int    `yaml:"tape_search_ms"`
	BeaconAlignMs int    `yaml:"beacon_align_ms"`
}

// ---- ENCODER ----

type EncoderConfig struct {
	TimerClockHz     uint32 `yaml:"timer_clock_hz"`
	EdgesPerRev      uint32 `yaml:"edges_per_rev"`
	MinLapse         uint32 `yaml:"min_lapse"`
	MaxLapse         uint32 `yaml:"max_lapse"`
	ReportIntervalMs int    `yaml:"report_interval_ms"`
}

// ---- MORSE ----

type MorseConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ---- TELEMETRY ----

type TelemetryConfig struct {
	Sink       string `yaml:"sink"` // none | modbus | ingest
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	DeviceName string `yaml:"device_name"`
	IntervalMs int    `yaml:"interval_ms"`
}

// Load reads and parses a configuration file. The result has not been
// validated or normalized; callers run Validate then Normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
