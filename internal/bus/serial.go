package bus

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// Serial adapts a UART-wired module to the same one-byte primitives. The
// address and register arguments are meaningless on a point-to-point
// serial line and are ignored.
type Serial struct {
	port io.ReadWriteCloser
}

// OpenSerial opens the module's UART, 8N1.
func OpenSerial(portName string, baudRate uint) (*Serial, error) {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	})
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", portName, err)
	}
	return &Serial{port: port}, nil
}

func (s *Serial) WriteByte(_ uint16, value byte) error {
	_, err := s.port.Write([]byte{value})
	return err
}

func (s *Serial) ReadByte(_ uint16, _ byte) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.port, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *Serial) Close() error { return s.port.Close() }
