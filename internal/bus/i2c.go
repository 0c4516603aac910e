// Package bus provides the byte transports the GNSS driver runs on.
package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// I2C adapts a periph.io I2C bus to the driver's one-byte primitives.
type I2C struct {
	bus i2c.BusCloser
}

// OpenI2C initializes the periph host and opens the named I2C bus. An
// empty name selects the first available bus; "1" is the Pi default.
func OpenI2C(name string) (*I2C, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("i2c open %q: %w", name, err)
	}
	return &I2C{bus: b}, nil
}

func (b *I2C) WriteByte(addr uint16, value byte) error {
	return b.bus.Tx(addr, []byte{value}, nil)
}

func (b *I2C) ReadByte(addr uint16, reg byte) (byte, error) {
	var buf [1]byte
	if err := b.bus.Tx(addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b *I2C) Close() error { return b.bus.Close() }
