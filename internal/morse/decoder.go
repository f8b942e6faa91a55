// internal/morse/decoder.go
package morse

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

// Decoder collects classified elements into a dot/dash run, translates
// the run to a character at each end-of-character, and accumulates the
// characters into a bounded message.
type Decoder struct {
	log zerolog.Logger

	mu      sync.Mutex
	run     []byte
	message []byte
}

// maxMessage bounds the assembled text; a full buffer starts over.
const maxMessage = 80

// maxRun exceeds the longest code in the table; a run past it cannot
// match anything and is discarded early.
const maxRun = 8

func NewDecoder(log zerolog.Logger) *Decoder {
	return &Decoder{log: log}
}

func (d *Decoder) HandleEvent(ev events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch ev.Type {
	case events.TypeInit:
		d.run = d.run[:0]
		d.message = d.message[:0]
	case events.TypeDotDetected:
		d.push('.')
	case events.TypeDashDetected:
		d.push('-')
	case events.TypeEOCDetected:
		d.closeChar()
	case events.TypeEOWDetected:
		d.closeChar()
		d.append(' ')
	case events.TypeBadPulse, events.TypeBadSpace:
		d.run = d.run[:0]
	case events.TypeCharReset:
		d.run = d.run[:0]
		d.message = d.message[:0]
	}
	return nil
}

// Message is a snapshot of the text decoded so far.
func (d *Decoder) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return string(d.message)
}

func (d *Decoder) push(el byte) {
	if len(d.run) >= maxRun {
		d.run = d.run[:0]
		return
	}
	d.run = append(d.run, el)
}

func (d *Decoder) closeChar() {
	if len(d.run) == 0 {
		return
	}
	ch := charFor(string(d.run))
	d.run = d.run[:0]
	d.append(ch)
	d.log.Info().Str("char", string(ch)).Str("message", string(d.message)).Msg("decoded")
}

func (d *Decoder) append(ch byte) {
	if len(d.message) >= maxMessage {
		d.message = d.message[:0]
	}
	d.message = append(d.message, ch)
}
