// internal/telemetry/ingest/client.go
package ingest

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	magicHi byte = 0x52 // 'R'
	magicLo byte = 0x53 // 'S'

	versionV1 byte = 0x01

	respOK       byte = 0x00
	respRejected byte = 0x01
)

// Raw status ingest v1 client (stateless, 1 packet = 1 connection)
type Client struct {
	endpoint string
	timeout  time.Duration
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("telemetry ingest: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}, nil
}

func (c *Client) Close() error { return nil }

func (c *Client) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	payload := packRegisters(regs)
	return c.send(unitID, addr, uint16(len(regs)), payload)
}

//
// ---- Raw status ingest v1 sender ----
// Header is EXACTLY 10 bytes
//

func (c *Client) send(unitID uint8, addr uint16, count uint16, payload []byte) error {
	pkt := buildPacketV1(unitID, addr, count, payload)

	conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
	if err != nil {
		return fmt.Errorf("telemetry ingest: dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := writeAll(conn, pkt); err != nil {
		return fmt.Errorf("telemetry ingest: write: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.timeout))
	var resp [1]byte
	if _, err := io.ReadFull(conn, resp[:]); err != nil {
		return fmt.Errorf("telemetry ingest: read status: %w", err)
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return errors.New("telemetry ingest: rejected")
	default:
		return fmt.Errorf("telemetry ingest: unknown status 0x%02x", resp[0])
	}
}

//
// ---- Raw status ingest v1 packet builder (LOCKED) ----
//
// Layout (10 bytes header):
// 0-1  Magic "RS"
// 2    Version (0x01)
// 3    Reserved (0x00)
// 4-5  UnitID
// 6-7  Address
// 8-9  Count
// 10+  Payload (registers, big-endian)
//

func buildPacketV1(unitID uint8, addr uint16, count uint16, payload []byte) []byte {
	header := make([]byte, 10)

	header[0] = magicHi
	header[1] = magicLo
	header[2] = versionV1
	header[3] = 0x00

	putU16(header[4:6], uint16(unitID))
	putU16(header[6:8], addr)
	putU16(header[8:10], count)

	return append(header, payload...)
}

//
// ---- helpers ----
//

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func putU16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
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
