package cli

import (
	"fmt"

	i2cdev "github.com/aliher1911/eeprom24x/i2c"
	"github.com/aliher1911/eeprom24x/eeprom"

	"github.com/stianeikeland/go-rpio/v4"
)

// Bus is a bus that owns OS resources.
type Bus interface {
	eeprom.Bus
	Close() error
}

// OpenBus opens the configured backend.
func OpenBus(c Config) (Bus, error) {
	switch c.Backend {
	case BackendI2CDev:
		return i2cdev.NewLinux(c.Dev.Bus), nil
	case BackendRDWR:
		b, err := i2cdev.OpenRDWR(c.Dev.Bus)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendPeriph:
		b, err := i2cdev.OpenPeriph(c.PeriphBus)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.Backend)
}

// Session holds an opened EEPROM and everything it needs.
type Session struct {
	Storage *eeprom.Storage
	bus     Bus
	gpio    bool
}

// Open opens the bus and GPIO and creates the device.
func Open(c Config) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bus, err := OpenBus(c)
	if err != nil {
		return nil, err
	}
	dev, err := eeprom.NewPart(bus, eeprom.SlaveAddr(c.Dev.Addr), eeprom.Part(c.Part))
	if err != nil {
		bus.Close()
		return nil, err
	}
	s := &Session{bus: bus}
	opts := []eeprom.Option{eeprom.WithWriteDelay(c.WriteDelay)}
	if c.WPPin >= 0 {
		if err := rpio.Open(); err != nil {
			bus.Close()
			return nil, fmt.Errorf("failed to open GPIO: %w", err)
		}
		s.gpio = true
		opts = append(opts, eeprom.WithWriteProtect(i2cdev.NewWPPin(c.WPPin)))
	}
	s.Storage = eeprom.NewStorage(dev, opts...)
	return s, nil
}

// Close releases the bus and GPIO.
func (s *Session) Close() error {
	s.Storage.Destroy()
	err := s.bus.Close()
	if s.gpio {
		if gerr := rpio.Close(); err == nil {
			err = gerr
		}
	}
	return err
}
