// internal/command/serial/client.go
package serial

import (
	"errors"
	"fmt"
	"time"

	bserial "go.bug.st/serial"
)

type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// Client reads the follower's response stream over a UART.
type Client struct {
	port bserial.Port
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("command serial: device required")
	}
	if cfg.Baud <= 0 {
		cfg.Baud = 115200
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Millisecond
	}
	port, err := bserial.Open(cfg.Device, &bserial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("command serial: open %s: %w", cfg.Device, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("command serial: set read timeout: %w", err)
	}
	return &Client{port: port}, nil
}

func (c *Client) Close() error { return c.port.Close() }

var errNoByte = errors.New("command serial: no byte within timeout")

// ReadByte returns the next byte, or errNoByte when the poll window
// passes silently.
func (c *Client) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := c.port.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("command serial: read: %w", err)
	}
	if n == 0 {
		return 0, errNoByte
	}
	return buf[0], nil
}
