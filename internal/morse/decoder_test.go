// internal/morse/decoder_test.go
package morse

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/events"
)

func feed(t *testing.T, d *Decoder, types ...events.Type) {
	t.Helper()
	for _, ty := range types {
		if err := d.HandleEvent(events.Event{Type: ty}); err != nil {
			t.Fatalf("handle %v: %v", ty, err)
		}
	}
}

func TestDecodesCharactersAndWords(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	feed(t, d,
		events.TypeDotDetected, events.TypeDashDetected, events.TypeEOCDetected,
		events.TypeDotDetected, events.TypeDotDetected, events.TypeDotDetected, events.TypeEOWDetected,
	)
	if got := d.Message(); got != "AS " {
		t.Fatalf("message = %q, want %q", got, "AS ")
	}
}

func TestUnknownRunYieldsPlaceholder(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	feed(t, d,
		events.TypeDotDetected, events.TypeDashDetected,
		events.TypeDotDetected, events.TypeDashDetected,
		events.TypeDotDetected, events.TypeDashDetected,
		events.TypeDotDetected, events.TypeDashDetected,
		events.TypeEOCDetected,
	)
	if got := d.Message(); got != "#" {
		t.Fatalf("message = %q, want %q", got, "#")
	}
}

func TestBadElementClearsRun(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	feed(t, d,
		events.TypeDotDetected, events.TypeDashDetected,
		events.TypeBadPulse,
		events.TypeDotDetected, events.TypeEOCDetected,
	)
	if got := d.Message(); got != "E" {
		t.Fatalf("message = %q, want %q", got, "E")
	}
}

func TestEmptyRunProducesNothing(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	feed(t, d, events.TypeEOCDetected)
	if got := d.Message(); got != "" {
		t.Fatalf("message = %q, want empty", got)
	}
}

func TestOverlongRunDiscarded(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	for i := 0; i < maxRun+1; i++ {
		feed(t, d, events.TypeDotDetected)
	}
	feed(t, d, events.TypeEOCDetected)
	if got := d.Message(); got != "" {
		t.Fatalf("message = %q, want empty", got)
	}
}

func TestFullMessageStartsOver(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	for i := 0; i < maxMessage; i++ {
		feed(t, d, events.TypeDotDetected, events.TypeEOCDetected)
	}
	if got := d.Message(); got != strings.Repeat("E", maxMessage) {
		t.Fatalf("message length = %d, want %d", len(got), maxMessage)
	}
	feed(t, d, events.TypeDotDetected, events.TypeEOCDetected)
	if got := d.Message(); got != "E" {
		t.Fatalf("message = %q after rollover, want %q", got, "E")
	}
}

func TestResetClearsEverything(t *testing.T) {
	d := NewDecoder(zerolog.Nop())
	feed(t, d, events.TypeDotDetected, events.TypeDashDetected, events.TypeEOCDetected)
	feed(t, d, events.TypeCharReset)
	if got := d.Message(); got != "" {
		t.Fatalf("message = %q after reset, want empty", got)
	}
}
