// Package eeprom drives 24x series I2C serial EEPROMs.
//
// A Device computes slave addresses and on-wire memory addresses for a part
// geometry and issues bus transactions. It never waits for the internally
// timed write cycle; after any write the part won't respond until the cycle
// completes (typically 5ms). Storage adds that delay and splits long writes
// into pages.
package eeprom

import (
	logger "github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("eeprom", logger.InfoLevel)

// Bus is a two-wire bus able to run write and combined write-then-read
// transactions.
type Bus interface {
	Write(addr uint8, w []byte) error
	WriteRead(addr uint8, w, r []byte) error
}

// Reader is implemented by buses that can run a bare read transaction.
type Reader interface {
	Read(addr uint8, r []byte) error
}

// Device is a single EEPROM on a bus.
type Device struct {
	bus  Bus
	addr SlaveAddr
	geo  Geometry
}

// New creates a device with an explicit geometry.
func New(bus Bus, addr SlaveAddr, geo Geometry) (*Device, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &Device{
		bus:  bus,
		addr: addr & 0x7f,
		geo:  geo,
	}, nil
}

// NewPart creates a device for a known part.
func NewPart(bus Bus, addr SlaveAddr, part Part) (*Device, error) {
	geo, err := LookupPart(string(part))
	if err != nil {
		return nil, err
	}
	return New(bus, addr, geo)
}

func (d *Device) Geometry() Geometry {
	return d.geo
}

func (d *Device) Addr() SlaveAddr {
	return d.addr
}

func (d *Device) Capacity() int {
	return int(d.geo.Capacity())
}

// Destroy releases the bus. Device can't be used afterwards.
func (d *Device) Destroy() Bus {
	bus := d.bus
	d.bus = nil
	return bus
}

func (d *Device) deviceAddr(addr uint32) (uint8, error) {
	if d.bus == nil {
		return 0, ErrDestroyed
	}
	if !d.geo.ValidAddr(addr) {
		return 0, ErrInvalidAddr
	}
	return d.geo.DeviceAddr(d.addr, addr), nil
}

// WriteByte writes a single byte.
//
// The part enters an internally timed write cycle afterwards and ignores
// the bus until it is complete.
func (d *Device) WriteByte(addr uint32, b byte) error {
	devAddr, err := d.deviceAddr(addr)
	if err != nil {
		return err
	}
	payload := make([]byte, 0, 3)
	payload = d.geo.AddrWidth.Encode(payload, addr)
	payload = append(payload, b)
	return d.write(devAddr, payload)
}

// ReadByte reads a single byte.
func (d *Device) ReadByte(addr uint32) (byte, error) {
	var b [1]byte
	if err := d.ReadData(addr, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadData reads len(buf) bytes starting at addr. The part increments its
// address pointer internally so there is no length limit.
func (d *Device) ReadData(addr uint32, buf []byte) error {
	devAddr, err := d.deviceAddr(addr)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	memAddr := d.geo.AddrWidth.Encode(make([]byte, 0, 2), addr)
	lg.Debugf("read %d bytes at %#06x from %#02x", len(buf), addr, devAddr)
	if err := d.bus.WriteRead(devAddr, memAddr, buf); err != nil {
		return &BusError{Addr: devAddr, Op: "write-read", Err: err}
	}
	return nil
}

// WritePage writes up to a page starting at addr. Data must not cross a
// page boundary, since the part would wrap around to the page start and
// overwrite data written in the same transaction.
//
// The part enters an internally timed write cycle afterwards and ignores
// the bus until it is complete.
func (d *Device) WritePage(addr uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	ps := d.geo.PageSize
	if ps == 0 {
		return ErrUnsupported
	}
	if uint64(len(data)) > uint64(ps) {
		return ErrTooMuchData
	}
	pageEnd := uint64(addr|(ps-1)) + 1
	if pageEnd < uint64(addr)+uint64(len(data)) {
		return ErrTooMuchData
	}
	devAddr, err := d.deviceAddr(addr)
	if err != nil {
		return err
	}
	payload := make([]byte, 0, int(d.geo.AddrWidth)+len(data))
	payload = d.geo.AddrWidth.Encode(payload, addr)
	payload = append(payload, data...)
	return d.write(devAddr, payload)
}

// ReadCurrentAddress reads the byte after the one accessed by the last
// read or write operation. Needs a bus that implements Reader.
func (d *Device) ReadCurrentAddress() (byte, error) {
	if d.bus == nil {
		return 0, ErrDestroyed
	}
	r, ok := d.bus.(Reader)
	if !ok {
		return 0, ErrUnsupported
	}
	var b [1]byte
	if err := r.Read(uint8(d.addr), b[:]); err != nil {
		return 0, &BusError{Addr: uint8(d.addr), Op: "read", Err: err}
	}
	return b[0], nil
}

// ReadUniqueSerial reads the factory programmed 128-bit serial of 24CS
// parts.
func (d *Device) ReadUniqueSerial() ([16]byte, error) {
	var serial [16]byte
	if d.bus == nil {
		return serial, ErrDestroyed
	}
	if !d.geo.UniqueSerial {
		return serial, ErrUnsupported
	}
	addr := secureRegionAddr(d.geo.AddressBits, d.addr)
	if err := d.bus.WriteRead(addr, secureRegionSelector(d.geo.AddrWidth), serial[:]); err != nil {
		return serial, &BusError{Addr: addr, Op: "write-read", Err: err}
	}
	return serial, nil
}

func (d *Device) write(devAddr uint8, payload []byte) error {
	lg.Debugf("write %d bytes to %#02x", len(payload), devAddr)
	if err := d.bus.Write(devAddr, payload); err != nil {
		return &BusError{Addr: devAddr, Op: "write", Err: err}
	}
	return nil
}
