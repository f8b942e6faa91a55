// internal/telemetry/builder.go
package telemetry

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/rover-controller/internal/config"
	tingest "github.com/tamzrod/rover-controller/internal/telemetry/ingest"
	tmodbus "github.com/tamzrod/rover-controller/internal/telemetry/modbus"
)

// Build constructs the publisher over the configured sink and returns
// a closer for it. Callers skip telemetry entirely when the sink is
// "none".
func Build(c cfg.TelemetryConfig, src *Source, log zerolog.Logger) (*Publisher, func() error, error) {
	interval := time.Duration(c.IntervalMs) * time.Millisecond

	var (
		sink    Sink
		closeFn func() error
	)
	switch c.Sink {
	case cfg.SinkModbus:
		mc, err := tmodbus.NewClient(tmodbus.Config{
			Endpoint: c.Endpoint,
			Timeout:  interval,
		})
		if err != nil {
			return nil, nil, err
		}
		sink, closeFn = mc, mc.Close
	case cfg.SinkIngest:
		ic, err := tingest.NewClient(tingest.Config{
			Endpoint: c.Endpoint,
			Timeout:  interval,
		})
		if err != nil {
			return nil, nil, err
		}
		sink, closeFn = ic, ic.Close
	default:
		return nil, nil, fmt.Errorf("telemetry: unknown sink %q", c.Sink)
	}

	pub := NewPublisher(Config{
		UnitID:     c.UnitID,
		BaseSlot:   c.BaseSlot,
		DeviceName: c.DeviceName,
		Interval:   interval,
	}, src, sink, log)

	return pub, closeFn, nil
}
