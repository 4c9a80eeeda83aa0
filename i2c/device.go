package i2cdev

import (
	"errors"
	"fmt"

	i2c "github.com/aliher1911/go-i2c"
	logger "github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("i2cdev", logger.InfoLevel)

// Linux is a bus on /dev/i2c-N.
// Handles are bound to a single slave address at open time, parts that
// borrow address bits answer on several addresses so a handle is opened
// per address on first use.
// Combined transactions are a write followed by a separate read, which is
// the random read sequence of 24x parts.
type Linux struct {
	bus  int
	devs map[uint8]*i2c.I2C
}

func NewLinux(bus int) *Linux {
	return &Linux{
		bus:  bus,
		devs: make(map[uint8]*i2c.I2C),
	}
}

func (l *Linux) dev(addr uint8) (*i2c.I2C, error) {
	if l.devs == nil {
		return nil, errors.New("bus is closed")
	}
	if d, ok := l.devs[addr]; ok {
		return d, nil
	}
	lg.Debugf("opening bus %d at %#02x", l.bus, addr)
	d, err := i2c.NewI2C(addr, l.bus)
	if err != nil {
		return nil, err
	}
	l.devs[addr] = d
	return d, nil
}

func (l *Linux) Write(addr uint8, w []byte) error {
	d, err := l.dev(addr)
	if err != nil {
		return err
	}
	return writeAll(d, w)
}

func (l *Linux) WriteRead(addr uint8, w, r []byte) error {
	d, err := l.dev(addr)
	if err != nil {
		return err
	}
	if len(w) > 0 {
		if err := writeAll(d, w); err != nil {
			return err
		}
	}
	return readAll(d, r)
}

func (l *Linux) Read(addr uint8, r []byte) error {
	d, err := l.dev(addr)
	if err != nil {
		return err
	}
	return readAll(d, r)
}

// Close releases all opened handles.
func (l *Linux) Close() error {
	var errs []error
	for a, d := range l.devs {
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %#02x: %w", a, err))
		}
	}
	l.devs = nil
	return errors.Join(errs...)
}

func writeAll(d *i2c.I2C, b []byte) error {
	c, err := d.WriteBytes(b)
	if err != nil {
		return err
	}
	if exp := len(b); exp != c {
		return fmt.Errorf("expected to write %d bytes, wrote %d", exp, c)
	}
	return nil
}

func readAll(d *i2c.I2C, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	c, err := d.ReadBytes(b)
	if err != nil {
		return err
	}
	if exp := len(b); exp != c {
		return fmt.Errorf("expected to read %d bytes, read %d", exp, c)
	}
	return nil
}
