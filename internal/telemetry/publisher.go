// internal/telemetry/publisher.go
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sink delivers register blocks into the rover status memory.
type Sink interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type Config struct {
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
	Interval   time.Duration
}

// Publisher delivers snapshots into the status block. The first write
// asserts the full block including the rover name; later writes send
// only the live slots that changed. On any write failure the next
// attempt re-asserts the full block.
type Publisher struct {
	cfg  Config
	src  *Source
	sink Sink
	log  zerolog.Logger

	needFull bool
	lastRegs []uint16
	nameRegs []uint16
}

func NewPublisher(cfg Config, src *Source, sink Sink, log zerolog.Logger) *Publisher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &Publisher{
		cfg:      cfg,
		src:      src,
		sink:     sink,
		log:      log,
		needFull: true, // full assert on first successful write
		nameRegs: EncodeName(cfg.DeviceName),
	}
}

// Run publishes on the configured interval until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := p.Publish(p.src.Take()); err != nil {
				p.log.Warn().Err(err).Msg("telemetry publish failed")
			}
		}
	}
}

// Publish delivers one snapshot.
func (p *Publisher) Publish(s Snapshot) error {
	base := p.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if p.needFull {
		regs := Encode(s, p.nameRegs)

		if err := p.sink.WriteRegisters(p.cfg.UnitID, base, regs); err != nil {
			p.needFull = true
			return fmt.Errorf("telemetry: full block write failed: %w", err)
		}

		p.needFull = false
		p.lastRegs = regs
		return nil
	}

	cur := make([]uint16, liveSlots)
	fillLive(cur, s)

	var errs []string

	for i := 0; i < liveSlots; i++ {
		if p.lastRegs[i] == cur[i] {
			continue
		}
		if err := p.sink.WriteRegisters(p.cfg.UnitID, base+uint16(i), []uint16{cur[i]}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", i, err))
		} else {
			p.lastRegs[i] = cur[i]
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt. Re-assert on next attempt.
		p.needFull = true
		return errors.New("telemetry: " + strings.Join(errs, " | "))
	}

	return nil
}

func (p *Publisher) baseAddr() uint16 {
	// Each rover owns a fixed SlotsPerRover block.
	return p.cfg.BaseSlot * SlotsPerRover
}
