// internal/command/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gomodbus "github.com/goburrow/modbus"
)

// Client polls the command bridge: one holding register whose low byte
// mirrors the follower's response stream. Requests serialize on the
// shared handler.
type Client struct {
	mu       sync.Mutex
	closer   interface{ Close() error }
	client   gomodbus.Client
	register uint16
}

type Config struct {
	Endpoint string // host:port, or rtu://device
	UnitID   uint8
	Register uint16
	Baud     int
	Timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("command modbus: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 500 * time.Millisecond
	}

	var (
		handler gomodbus.ClientHandler
		closer  interface{ Close() error }
	)
	if dev, ok := strings.CutPrefix(cfg.Endpoint, "rtu://"); ok {
		h := gomodbus.NewRTUClientHandler(dev)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if cfg.Baud > 0 {
			h.BaudRate = cfg.Baud
		}
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("command modbus: connect %s: %w", cfg.Endpoint, err)
		}
		handler, closer = h, h
	} else {
		h := gomodbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("command modbus: connect %s: %w", cfg.Endpoint, err)
		}
		handler, closer = h, h
	}

	return &Client{
		closer:   closer,
		client:   gomodbus.NewClient(handler),
		register: cfg.Register,
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closer.Close()
}

// ReadByte fetches the register and returns its low byte.
func (c *Client) ReadByte() (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.client.ReadHoldingRegisters(c.register, 1)
	if err != nil {
		return 0, fmt.Errorf("command modbus: read register %d: %w", c.register, err)
	}
	if len(res) < 2 {
		return 0, errors.New("command modbus: short register payload")
	}
	return res[1], nil
}
