//go:build !linux

package i2cdev

import "errors"

var errNoRDWR = errors.New("I2C_RDWR transfers are only available on linux")

type RDWR struct{}

func OpenRDWR(bus int) (*RDWR, error) {
	return nil, errNoRDWR
}

func (b *RDWR) Write(addr uint8, w []byte) error         { return errNoRDWR }
func (b *RDWR) WriteRead(addr uint8, w, r []byte) error { return errNoRDWR }
func (b *RDWR) Read(addr uint8, r []byte) error         { return errNoRDWR }
func (b *RDWR) Close() error                            { return nil }
