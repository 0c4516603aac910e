package pa1010d

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeBus plays back a scripted byte stream and records writes. Reads past
// the end of the script return idle bytes, like a module with nothing to
// say, unless tailErr is set.
type fakeBus struct {
	stream   []byte
	pos      int
	tailErr  error
	writes   []byte
	writeErr error
}

func (b *fakeBus) ReadByte(addr uint16, reg byte) (byte, error) {
	if b.pos < len(b.stream) {
		c := b.stream[b.pos]
		b.pos++
		return c, nil
	}
	if b.tailErr != nil {
		return 0, b.tailErr
	}
	return 0x00, nil
}

func (b *fakeBus) WriteByte(addr uint16, value byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, value)
	return nil
}

// fakeParser lets dispatch tests script classification without a real
// NMEA library.
type fakeParser struct {
	mtk bool
	fn  func(line string) (Sentence, error)
}

func (p *fakeParser) Parse(line string) (Sentence, error) { return p.fn(line) }
func (p *fakeParser) SupportsProprietary() bool           { return p.mtk }

func nmeaLine(payload string) string {
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X", payload, ck)
}

func frames(lines ...string) []byte {
	var out []byte
	for _, l := range lines {
		out = append(out, l...)
		out = append(out, '\r', '\n')
	}
	return out
}

func TestReadSentence_ResyncsOnDollar(t *testing.T) {
	b := &fakeBus{stream: append([]byte{0x00, 'j', 'u', 'n', 'k', 0xFF}, frames("$GNGGA,hello")...)}
	d := New(b, &Opts{Parser: &fakeParser{}})

	line, err := d.ReadSentence(time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if line != "$GNGGA,hello" {
		t.Fatalf("expected resynced line, got %q", line)
	}
}

func TestReadSentence_StripsSpuriousNewlines(t *testing.T) {
	b := &fakeBus{stream: frames("$GPGGA,123\n456")}
	d := New(b, &Opts{Parser: &fakeParser{}})

	line, err := d.ReadSentence(time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if line != "$GPGGA,123456" {
		t.Fatalf("expected embedded newline stripped, got %q", line)
	}
}

func TestReadSentence_LoneLFDoesNotTerminate(t *testing.T) {
	// Only the full CR LF pair ends a sentence.
	b := &fakeBus{stream: frames("$GPRMC,a\nb")}
	d := New(b, &Opts{Parser: &fakeParser{}})

	line, err := d.ReadSentence(time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if line != "$GPRMC,ab" {
		t.Fatalf("got %q", line)
	}
}

func TestReadSentence_Timeout(t *testing.T) {
	b := &fakeBus{} // nothing but idle bytes
	d := New(b, &Opts{Parser: &fakeParser{}})

	start := time.Now()
	_, err := d.ReadSentence(20 * time.Millisecond)
	elapsed := time.Since(start)

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if elapsed < 20*time.Millisecond {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}
}

func TestReadSentence_TransportErrorPropagates(t *testing.T) {
	busErr := errors.New("i2c: remote I/O error")
	b := &fakeBus{tailErr: busErr}
	d := New(b, &Opts{Parser: &fakeParser{}})

	_, err := d.ReadSentence(time.Second)
	if !errors.Is(err, busErr) {
		t.Fatalf("expected bus error, got %v", err)
	}
}

func TestReadSentence_NonASCIIInsideFrame(t *testing.T) {
	b := &fakeBus{stream: append([]byte("$GP"), append([]byte{0xFF}, frames("GA,x")...)...)}
	d := New(b, &Opts{Parser: &fakeParser{}})

	_, err := d.ReadSentence(time.Second)
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FramingError, got %v", err)
	}
	if fe.Byte != 0xFF {
		t.Fatalf("expected offending byte 0xFF, got 0x%02X", fe.Byte)
	}
}

func TestSendCommand_FramesAndChecksums(t *testing.T) {
	b := &fakeBus{}
	d := New(b, &Opts{Parser: &fakeParser{}})

	if err := d.SendCommand("PMTK285,4,100", true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := string(b.writes); got != "$PMTK285,4,100*38\r\n" {
		t.Fatalf("wire bytes %q", got)
	}
}

func TestSendCommand_NormalizesDelimiters(t *testing.T) {
	bare := &fakeBus{}
	wrapped := &fakeBus{}

	if err := New(bare, &Opts{Parser: &fakeParser{}}).SendCommand("PMTK220,1000", true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := New(wrapped, &Opts{Parser: &fakeParser{}}).SendCommand("$PMTK220,1000*", true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(bare.writes) != string(wrapped.writes) {
		t.Fatalf("bare %q != wrapped %q", bare.writes, wrapped.writes)
	}
}

func TestSendCommand_WithoutChecksum(t *testing.T) {
	b := &fakeBus{}
	d := New(b, &Opts{Parser: &fakeParser{}})

	if err := d.SendCommand("PMTK414", false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := string(b.writes); got != "$PMTK414\r\n" {
		t.Fatalf("wire bytes %q", got)
	}
}

func TestSendCommand_WriteErrorPropagates(t *testing.T) {
	busErr := errors.New("i2c: write failed")
	b := &fakeBus{writeErr: busErr}
	d := New(b, &Opts{Parser: &fakeParser{}})

	if err := d.SendCommand("PMTK285,4,100", true); !errors.Is(err, busErr) {
		t.Fatalf("expected bus error, got %v", err)
	}
}

func TestSetPPS_BuildsCommand(t *testing.T) {
	b := &fakeBus{}
	d := New(b, &Opts{Parser: &fakeParser{}})

	if err := d.SetPPS(PPSAlways, 100); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := string(b.writes); got != "$PMTK285,4,100*38\r\n" {
		t.Fatalf("wire bytes %q", got)
	}
}

func TestSetPPS_RejectsBadMode(t *testing.T) {
	b := &fakeBus{}
	d := New(b, &Opts{Parser: &fakeParser{}})

	if err := d.SetPPS(PPSMode(9), 100); !errors.Is(err, ErrInvalidPPSMode) {
		t.Fatalf("expected ErrInvalidPPSMode, got %v", err)
	}
	if len(b.writes) != 0 {
		t.Fatalf("expected no bus traffic, wrote %q", b.writes)
	}
}

func TestSetPPS_RejectsBadPulseWidth(t *testing.T) {
	b := &fakeBus{}
	d := New(b, &Opts{Parser: &fakeParser{}})

	for _, width := range []int{0, -5, 1000} {
		if err := d.SetPPS(PPSAlways, width); !errors.Is(err, ErrInvalidPulseWidth) {
			t.Fatalf("width %d: expected ErrInvalidPulseWidth, got %v", width, err)
		}
	}
	if len(b.writes) != 0 {
		t.Fatalf("expected no bus traffic, wrote %q", b.writes)
	}
}
