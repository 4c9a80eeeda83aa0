package i2cdev

import "github.com/stianeikeland/go-rpio/v4"

// WPPin drives the write protect pin of an EEPROM. The part ignores writes
// while the pin is high. Zero value is a no-op pin for boards that tie WP
// to ground.
//
// rpio.Open must be called before creating the pin.
type WPPin struct {
	set bool
	pin rpio.Pin
}

// NewWPPin configures the pin as output and enables protection.
func NewWPPin(pinNum int) WPPin {
	pin := rpio.Pin(pinNum)
	pin.Output()
	pin.High()
	return WPPin{
		set: true,
		pin: pin,
	}
}

func (p WPPin) Protect() error {
	if p.set {
		p.pin.High()
	}
	return nil
}

func (p WPPin) Unprotect() error {
	if p.set {
		p.pin.Low()
	}
	return nil
}

// Protected reads back the pin state.
func (p WPPin) Protected() bool {
	return p.set && p.pin.Read() == rpio.High
}
