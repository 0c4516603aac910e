package pa1010d

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPPSMode is returned by SetPPS for a mode outside the enum.
var ErrInvalidPPSMode = errors.New("pa1010d: pps mode out of range")

// ErrInvalidPulseWidth is returned by SetPPS for a pulse width outside 1..999 ms.
var ErrInvalidPulseWidth = errors.New("pa1010d: pps pulse width must be 1..999 ms")

// TimeoutError reports that no qualifying sentence arrived within the
// deadline. Callers may retry with a fresh deadline.
type TimeoutError struct {
	Waiting string // awaited sentence kind; empty for a raw read
	After   time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Waiting != "" {
		return fmt.Sprintf("pa1010d: timeout waiting for %s message after %s", e.Waiting, e.After)
	}
	return fmt.Sprintf("pa1010d: timeout waiting for sentence after %s", e.After)
}

// UnsupportedError reports a well-formed sentence of a kind the driver
// does not handle. It is not retried internally.
type UnsupportedError struct {
	Type string // NMEA data type tag, e.g. "ZDA"
	Raw  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("pa1010d: unsupported message type %s (%s)", e.Type, e.Raw)
}

// FramingError reports a non-ASCII byte inside a framed sentence. The
// frame is discarded; the stream stays usable.
type FramingError struct {
	Byte byte
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("pa1010d: non-ascii byte 0x%02X inside sentence", e.Byte)
}
