// Package pa1010d drives a PA1010D GNSS module over a byte-oriented bus.
//
// The module streams NMEA sentences one byte at a time from a single
// register and accepts PMTK commands written back the same way. The driver
// recovers framed sentences from that stream, folds them into a last-known
// fix model, and encodes outbound configuration commands.
package pa1010d

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// DefaultAddr is the module's fixed 7-bit I2C address.
const DefaultAddr uint16 = 0x10

// dataReg is the register the module streams NMEA bytes from.
const dataReg byte = 0x00

// DefaultTimeout bounds ReadSentence and Update when callers have no
// better budget.
const DefaultTimeout = 5 * time.Second

// Bus is the byte transport the driver runs on. Reads and writes block;
// the driver assumes exclusive single-owner use of one address.
type Bus interface {
	WriteByte(addr uint16, value byte) error
	ReadByte(addr uint16, reg byte) (byte, error)
}

// Opts holds device options.
type Opts struct {
	Addr   uint16 // bus address; DefaultAddr when zero
	Parser Parser // sentence parser; go-nmea backed when nil
	Debug  bool   // log skipped lines, parse errors and notices
}

// Device is a PA1010D handle. It is not safe for concurrent use.
type Device struct {
	bus    Bus
	addr   uint16
	parser Parser
	debug  bool
	state  fixState
}

// New returns a device on the given bus. A nil opts selects the default
// address and the production NMEA parser.
func New(bus Bus, opts *Opts) *Device {
	d := &Device{bus: bus, addr: DefaultAddr}
	if opts != nil {
		if opts.Addr != 0 {
			d.addr = opts.Addr
		}
		d.parser = opts.Parser
		d.debug = opts.Debug
	}
	if d.parser == nil {
		d.parser = NewParser()
	}
	return d
}

// Fix returns a snapshot of the last known fix.
func (d *Device) Fix() Fix { return d.state.snapshot() }

// ReadSentence reads one framed NMEA sentence from the device.
//
// Bytes before the leading '$' are discarded, including garbage left over
// from a previous partial frame. The sentence ends at CR LF; the module
// emits spurious bare newlines mid-sentence, so a lone LF never terminates
// a read and is stripped from the returned text.
func (d *Device) ReadSentence(timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, 84) // NMEA caps a sentence at 82 characters

	for time.Now().Before(deadline) {
		b, err := d.bus.ReadByte(d.addr, dataReg)
		if err != nil {
			return "", err
		}
		if len(buf) == 0 && b != '$' {
			continue
		}
		if b > 0x7F {
			return "", &FramingError{Byte: b}
		}
		buf = append(buf, b)
		if n := len(buf); n >= 2 && buf[n-2] == '\r' && buf[n-1] == '\n' {
			return strings.ReplaceAll(string(buf[:n-2]), "\n", ""), nil
		}
	}
	return "", &TimeoutError{After: timeout}
}

// SendCommand writes one framed command to the device.
//
// The command may be passed bare or already wrapped in '$'/'*'; both forms
// produce the same wire bytes. When addChecksum is set, the NMEA XOR
// checksum of the payload is appended as two uppercase hex digits. The bus
// primitive carries no burst guarantee, so every byte is its own write.
func (d *Device) SendCommand(command string, addChecksum bool) error {
	command = strings.TrimPrefix(command, "$")
	command = strings.TrimSuffix(command, "*")

	frame := make([]byte, 0, len(command)+6)
	frame = append(frame, '$')
	frame = append(frame, command...)
	if addChecksum {
		var sum byte
		for i := 0; i < len(command); i++ {
			sum ^= command[i]
		}
		frame = append(frame, fmt.Sprintf("*%02X", sum)...)
	}
	frame = append(frame, '\r', '\n')

	for _, b := range frame {
		if err := d.bus.WriteByte(d.addr, b); err != nil {
			return fmt.Errorf("pa1010d: write command: %w", err)
		}
	}
	return nil
}

// Update drives the read loop until a sentence of kind waitFor has been
// folded into the fix model, a device notice arrives, or the deadline
// expires.
//
// Partial frames and parse failures are absorbed and retried within the
// deadline. A qualifying sentence satisfies the call even when it reports
// no fix; the zeroed fix fields are the caller's signal. A well-formed
// sentence of an unhandled kind fails immediately with *UnsupportedError,
// and bus faults propagate untouched.
func (d *Device) Update(waitFor Kind, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		line, err := d.ReadSentence(time.Until(deadline))
		if err != nil {
			var te *TimeoutError
			var fe *FramingError
			if errors.As(err, &te) || errors.As(err, &fe) {
				// Bad or absent frame; the overall deadline governs retries.
				continue
			}
			return err
		}

		sent, err := d.parser.Parse(line)
		if err != nil {
			if d.debug {
				log.Printf("pa1010d: parse error: %v (%q)", err, line)
			}
			continue
		}

		switch m := sent.(type) {
		case PositionFix:
			d.state.applyGGA(m)
			if waitFor == KindGGA {
				return nil
			}
		case GeographicPosition:
			// Nothing useful to fold.
		case ActiveSatellites:
			d.state.applyGSA(m)
			if waitFor == KindGSA {
				return nil
			}
		case VelocityTime:
			d.state.applyRMC(m)
			if waitFor == KindRMC {
				return nil
			}
		case TrackAndSpeed:
			if waitFor == KindVTG {
				return nil
			}
		case SatellitesInView:
			if waitFor == KindGSV {
				return nil
			}
		case DeviceNotice:
			// Boot and acknowledge output such as "$PMTK011,MTKGPS*08" is
			// informational regardless of what the caller awaits.
			if d.debug {
				log.Printf("pa1010d: notice: %s", m.Raw())
			}
			return nil
		case Unrecognized:
			// Parsers without native MTK support surface boot/ack messages here.
			if !d.parser.SupportsProprietary() && strings.HasPrefix(m.Raw(), "$PMTK") {
				return nil
			}
			return &UnsupportedError{Type: m.Type, Raw: m.Raw()}
		}
	}
	return &TimeoutError{Waiting: waitFor.String(), After: timeout}
}
