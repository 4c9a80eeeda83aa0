package i2cdev

import (
	"tinygo.org/x/drivers"
)

// TinyGo runs transactions on a TinyGo bus such as machine.I2C0.
type TinyGo struct {
	bus drivers.I2C
}

func NewTinyGo(bus drivers.I2C) *TinyGo {
	return &TinyGo{bus: bus}
}

func (t *TinyGo) Write(addr uint8, w []byte) error {
	return t.bus.Tx(uint16(addr), w, nil)
}

func (t *TinyGo) WriteRead(addr uint8, w, r []byte) error {
	return t.bus.Tx(uint16(addr), w, r)
}

func (t *TinyGo) Read(addr uint8, r []byte) error {
	return t.bus.Tx(uint16(addr), nil, r)
}
