package i2cdev

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Periph runs transactions on a periph.io bus.
type Periph struct {
	bus    i2c.Bus
	closer io.Closer
}

func NewPeriph(bus i2c.Bus) *Periph {
	return &Periph{bus: bus}
}

// OpenPeriph initializes periph host drivers and opens a bus by name or
// number. Empty name selects the first available bus.
func OpenPeriph(name string) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	lg.Debugf("opened periph bus %s", b)
	return &Periph{bus: b, closer: b}, nil
}

func (p *Periph) Write(addr uint8, w []byte) error {
	return p.bus.Tx(uint16(addr), w, nil)
}

func (p *Periph) WriteRead(addr uint8, w, r []byte) error {
	return p.bus.Tx(uint16(addr), w, r)
}

func (p *Periph) Read(addr uint8, r []byte) error {
	return p.bus.Tx(uint16(addr), nil, r)
}

func (p *Periph) String() string {
	return p.bus.String()
}

// Close closes the bus if it was opened by OpenPeriph.
func (p *Periph) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
