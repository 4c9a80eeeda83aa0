package eeprom

// SlaveAddr is a 7-bit bus address of the device.
type SlaveAddr uint8

// DefaultAddr is the address with A2, A1 and A0 strapped low.
const DefaultAddr SlaveAddr = 0b101_0000

// Secure region base address of 24CS parts.
const secureRegionBase = 0b101_1000

// AltAddr returns the address for the given strap pin values.
//
// Parts that use slave address bits for memory addressing ignore the
// corresponding pins. Consult the device addressing section of the
// datasheet.
func AltAddr(a2, a1, a0 bool) SlaveAddr {
	a := DefaultAddr
	if a2 {
		a |= 1 << 2
	}
	if a1 {
		a |= 1 << 1
	}
	if a0 {
		a |= 1
	}
	return a
}

// ValidAddr reports whether addr is inside the memory array.
func (g Geometry) ValidAddr(addr uint32) bool {
	return addr < g.Capacity()
}

// DeviceAddr returns the slave address that has to be used to access
// memory at addr. Memory address bits that don't fit into the on-wire
// address replace the low bits of base.
func (g Geometry) DeviceAddr(base SlaveAddr, addr uint32) uint8 {
	b := g.BorrowedBits()
	if b == 0 {
		return uint8(base) & 0x7f
	}
	mask := uint32(1)<<b - 1
	hi := (addr >> g.AddrWidth.bits()) & mask
	return (uint8(base) &^ uint8(mask) & 0x7f) | uint8(hi)
}

// Encode appends the on-wire memory address to dst.
func (w AddrWidth) Encode(dst []byte, addr uint32) []byte {
	if w == TwoBytes {
		return append(dst, byte(addr>>8), byte(addr))
	}
	return append(dst, byte(addr))
}

// secureRegionAddr returns the slave address of the secure region. Pins
// shared with memory addressing are not part of the address.
func secureRegionAddr(addressBits uint8, base SlaveAddr) uint8 {
	var keep uint8
	switch addressBits {
	case 7, 8, 12, 13:
		keep = 0b111
	case 9:
		keep = 0b110
	case 10:
		keep = 0b100
	}
	return secureRegionBase | uint8(base)&keep
}

// secureRegionSelector returns the offset of the serial inside the secure
// region.
func secureRegionSelector(w AddrWidth) []byte {
	if w == TwoBytes {
		return []byte{0x08, 0x00}
	}
	return []byte{0x80}
}
