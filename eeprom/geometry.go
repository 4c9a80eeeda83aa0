package eeprom

import (
	"fmt"
	"sort"
	"strings"
)

// AddrWidth is the number of bytes used to send a memory address on the wire.
type AddrWidth uint8

const (
	// OneByte parts: 24x00 up to 24x16.
	OneByte AddrWidth = 1
	// TwoBytes parts: 24x32 and larger.
	TwoBytes AddrWidth = 2
)

func (w AddrWidth) bits() uint8 {
	return 8 * uint8(w)
}

// Max number of slave address bits a part can use for memory addressing.
const maxBorrowedBits = 3

// Geometry describes the addressing layout of a single part.
type Geometry struct {
	// Number of bits needed to address every byte of memory.
	AddressBits uint8
	// Width of the memory address sent on the wire.
	AddrWidth AddrWidth
	// Max bytes per page write. Zero for parts that only support byte
	// writes.
	PageSize uint32
	// Part has a factory programmed 128-bit serial in a secure region.
	UniqueSerial bool
}

// BorrowedBits returns how many low bits of the slave address carry high
// memory address bits.
func (g Geometry) BorrowedBits() uint8 {
	shift := g.AddrWidth.bits()
	if g.AddressBits <= shift {
		return 0
	}
	b := g.AddressBits - shift
	if b > maxBorrowedBits {
		b = maxBorrowedBits
	}
	return b
}

// Capacity is the size of the memory in bytes.
func (g Geometry) Capacity() uint32 {
	return 1 << g.AddressBits
}

// Validate checks that the combination of parameters describes a part
// the driver can address.
func (g Geometry) Validate() error {
	if g.AddrWidth != OneByte && g.AddrWidth != TwoBytes {
		return fmt.Errorf("%w: address width %d", ErrInvalidGeometry, g.AddrWidth)
	}
	if g.AddressBits == 0 || g.AddressBits > 24 {
		return fmt.Errorf("%w: %d address bits", ErrInvalidGeometry, g.AddressBits)
	}
	if shift := g.AddrWidth.bits(); g.AddressBits > shift+maxBorrowedBits {
		return fmt.Errorf("%w: %d address bits can't be reached with %d byte addresses",
			ErrInvalidGeometry, g.AddressBits, g.AddrWidth)
	}
	if ps := g.PageSize; ps != 0 {
		if ps&(ps-1) != 0 || ps > 256 || ps > g.Capacity() {
			return fmt.Errorf("%w: page size %d", ErrInvalidGeometry, ps)
		}
	}
	if g.UniqueSerial && (g.AddressBits < 7 || g.AddressBits > 13) {
		return fmt.Errorf("%w: no secure region layout for %d address bits",
			ErrInvalidGeometry, g.AddressBits)
	}
	return nil
}

func (g Geometry) String() string {
	page := "none"
	if g.PageSize > 0 {
		page = fmt.Sprintf("%d bytes", g.PageSize)
	}
	return fmt.Sprintf("capacity=%d bytes, page=%s, address=%d byte(s), borrowed bits=%d, serial=%t",
		g.Capacity(), page, g.AddrWidth, g.BorrowedBits(), g.UniqueSerial)
}

// Part is a known part family name.
type Part string

const (
	P24x00   Part = "24x00"   // 128 bits, no page write. e.g. 24C00
	P24x01   Part = "24x01"   // 1 Kbit. e.g. AT24C01
	P24x02   Part = "24x02"   // 2 Kbit. e.g. AT24C02
	P24x04   Part = "24x04"   // 4 Kbit. e.g. AT24C04
	P24x08   Part = "24x08"   // 8 Kbit. e.g. AT24C08
	P24x16   Part = "24x16"   // 16 Kbit. e.g. AT24C16
	P24x32   Part = "24x32"   // 32 Kbit. e.g. AT24C32
	P24x64   Part = "24x64"   // 64 Kbit. e.g. AT24C64
	P24x128  Part = "24x128"  // 128 Kbit. e.g. AT24C128
	P24x256  Part = "24x256"  // 256 Kbit. e.g. AT24C256
	P24x512  Part = "24x512"  // 512 Kbit. e.g. AT24C512
	P24xM01  Part = "24xM01"  // 1 Mbit. e.g. AT24CM01
	P24xM02  Part = "24xM02"  // 2 Mbit. e.g. AT24CM02
	PM24C01  Part = "M24C01"  // ST 1 Kbit with 16 byte pages
	PM24C02  Part = "M24C02"  // ST 2 Kbit with 16 byte pages
	P24CSx01 Part = "24CSx01" // 1 Kbit with unique serial
	P24CSx02 Part = "24CSx02" // 2 Kbit with unique serial
	P24CSx04 Part = "24CSx04" // 4 Kbit with unique serial
	P24CSx08 Part = "24CSx08" // 8 Kbit with unique serial
	P24CSx16 Part = "24CSx16" // 16 Kbit with unique serial
	P24CSx32 Part = "24CSx32" // 32 Kbit with unique serial
	P24CSx64 Part = "24CSx64" // 64 Kbit with unique serial
)

var parts = map[Part]Geometry{
	P24x00:   {AddressBits: 4, AddrWidth: OneByte},
	P24x01:   {AddressBits: 7, AddrWidth: OneByte, PageSize: 8},
	P24x02:   {AddressBits: 8, AddrWidth: OneByte, PageSize: 8},
	P24x04:   {AddressBits: 9, AddrWidth: OneByte, PageSize: 16},
	P24x08:   {AddressBits: 10, AddrWidth: OneByte, PageSize: 16},
	P24x16:   {AddressBits: 11, AddrWidth: OneByte, PageSize: 16},
	P24x32:   {AddressBits: 12, AddrWidth: TwoBytes, PageSize: 32},
	P24x64:   {AddressBits: 13, AddrWidth: TwoBytes, PageSize: 32},
	P24x128:  {AddressBits: 14, AddrWidth: TwoBytes, PageSize: 64},
	P24x256:  {AddressBits: 15, AddrWidth: TwoBytes, PageSize: 64},
	P24x512:  {AddressBits: 16, AddrWidth: TwoBytes, PageSize: 128},
	P24xM01:  {AddressBits: 17, AddrWidth: TwoBytes, PageSize: 256},
	P24xM02:  {AddressBits: 18, AddrWidth: TwoBytes, PageSize: 256},
	PM24C01:  {AddressBits: 7, AddrWidth: OneByte, PageSize: 16},
	PM24C02:  {AddressBits: 8, AddrWidth: OneByte, PageSize: 16},
	P24CSx01: {AddressBits: 7, AddrWidth: OneByte, PageSize: 8, UniqueSerial: true},
	P24CSx02: {AddressBits: 8, AddrWidth: OneByte, PageSize: 8, UniqueSerial: true},
	P24CSx04: {AddressBits: 9, AddrWidth: OneByte, PageSize: 16, UniqueSerial: true},
	P24CSx08: {AddressBits: 10, AddrWidth: OneByte, PageSize: 16, UniqueSerial: true},
	P24CSx16: {AddressBits: 11, AddrWidth: OneByte, PageSize: 16, UniqueSerial: true},
	P24CSx32: {AddressBits: 12, AddrWidth: TwoBytes, PageSize: 32, UniqueSerial: true},
	P24CSx64: {AddressBits: 13, AddrWidth: TwoBytes, PageSize: 32, UniqueSerial: true},
}

// LookupPart returns geometry of a known part. Names are case insensitive.
func LookupPart(name string) (Geometry, error) {
	for p, g := range parts {
		if strings.EqualFold(string(p), name) {
			return g, nil
		}
	}
	return Geometry{}, fmt.Errorf("%w: %q", ErrUnknownPart, name)
}

// Parts returns names of all known parts.
func Parts() []Part {
	ps := make([]Part, 0, len(parts))
	for p := range parts {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		gi, gj := parts[ps[i]], parts[ps[j]]
		if gi.AddressBits != gj.AddressBits {
			return gi.AddressBits < gj.AddressBits
		}
		return ps[i] < ps[j]
	})
	return ps
}
