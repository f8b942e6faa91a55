// internal/command/builder.go
package command

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	cmodbus "github.com/tamzrod/rover-controller/internal/command/modbus"
	cserial "github.com/tamzrod/rover-controller/internal/command/serial"
	cfg "github.com/tamzrod/rover-controller/internal/config"
	"github.com/tamzrod/rover-controller/internal/events"
)

// Build constructs the retrieve service over the configured link and
// returns a closer for it. Commands go to the main logic queue.
func Build(c cfg.CommandConfig, post Poster, log zerolog.Logger) (*Service, func() error, error) {
	interval := time.Duration(c.PollIntervalMs) * time.Millisecond

	var (
		l       Link
		closeFn func() error
	)
	switch c.Link {
	case cfg.LinkSerial:
		sc, err := cserial.NewClient(cserial.Config{
			Device:      c.Endpoint,
			Baud:        c.Baud,
			ReadTimeout: interval,
		})
		if err != nil {
			return nil, nil, err
		}
		l, closeFn = sc, sc.Close
	case cfg.LinkModbus:
		mc, err := cmodbus.NewClient(cmodbus.Config{
			Endpoint: c.Endpoint,
			UnitID:   c.UnitID,
			Register: c.Register,
			Baud:     c.Baud,
			Timeout:  interval,
		})
		if err != nil {
			return nil, nil, err
		}
		l, closeFn = mc, mc.Close
	default:
		return nil, nil, fmt.Errorf("command: unknown link %q", c.Link)
	}

	svc, err := New(l, post, events.ServiceMainLogic, events.TimerCommandPoll, log)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}
