// internal/telemetry/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gomodbus "github.com/goburrow/modbus"
)

// Client is a single connection to the rover status memory.
// It serializes requests because it mutates the slave id per write.
type Client struct {
	mu       sync.Mutex
	closer   interface{ Close() error }
	client   gomodbus.Client
	setSlave func(uint8)
}

type Config struct {
	Endpoint string // host:port, or rtu://device
	Baud     int
	Timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("telemetry modbus: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	c := &Client{}
	if dev, ok := strings.CutPrefix(cfg.Endpoint, "rtu://"); ok {
		h := gomodbus.NewRTUClientHandler(dev)
		h.Timeout = cfg.Timeout
		if cfg.Baud > 0 {
			h.BaudRate = cfg.Baud
		}
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("telemetry modbus: connect %s: %w", cfg.Endpoint, err)
		}
		c.closer = h
		c.client = gomodbus.NewClient(h)
		c.setSlave = func(id uint8) { h.SlaveId = id }
	} else {
		h := gomodbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("telemetry modbus: connect %s: %w", cfg.Endpoint, err)
		}
		c.closer = h
		c.client = gomodbus.NewClient(h)
		c.setSlave = func(id uint8) { h.SlaveId = id }
	}

	return c, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closer.Close()
}

func (c *Client) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(unitID)

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
