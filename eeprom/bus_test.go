package eeprom

import (
	"testing"
	"time"
)

// Tx is a transaction seen by recordBus.
type Tx struct {
	Op   string
	Addr uint8
	W    []byte
	R    int
}

// recordBus logs all transactions and answers reads with canned data.
type recordBus struct {
	txs  []Tx
	data []byte
	err  error
}

func (b *recordBus) Write(addr uint8, w []byte) error {
	b.txs = append(b.txs, Tx{Op: "write", Addr: addr, W: append([]byte(nil), w...)})
	return b.err
}

func (b *recordBus) WriteRead(addr uint8, w, r []byte) error {
	b.txs = append(b.txs, Tx{Op: "write-read", Addr: addr, W: append([]byte(nil), w...), R: len(r)})
	if b.err != nil {
		return b.err
	}
	copy(r, b.data)
	return nil
}

// readerBus also supports bare reads.
type readerBus struct {
	recordBus
}

func (b *readerBus) Read(addr uint8, r []byte) error {
	b.txs = append(b.txs, Tx{Op: "read", Addr: addr, R: len(r)})
	if b.err != nil {
		return b.err
	}
	copy(r, b.data)
	return nil
}

// simBus emulates a single part and fails the test when a write crosses a
// page.
type simBus struct {
	t    *testing.T
	geo  Geometry
	base SlaveAddr
	mem  []byte

	writes int
}

func newSimBus(t *testing.T, geo Geometry) *simBus {
	mem := make([]byte, geo.Capacity())
	for i := range mem {
		mem[i] = 0xff
	}
	return &simBus{t: t, geo: geo, base: DefaultAddr, mem: mem}
}

func (s *simBus) memAddr(addr uint8, w []byte) (uint32, []byte) {
	n := int(s.geo.AddrWidth)
	if len(w) < n {
		s.t.Fatalf("transaction to %#02x is shorter than memory address: % x", addr, w)
	}
	var a uint32
	for _, b := range w[:n] {
		a = a<<8 | uint32(b)
	}
	mask := uint8(1)<<s.geo.BorrowedBits() - 1
	if addr&^mask != uint8(s.base)&^mask {
		s.t.Errorf("transaction to foreign slave address %#02x", addr)
	}
	a |= uint32(addr&mask) << (8 * n)
	return a, w[n:]
}

func (s *simBus) Write(addr uint8, w []byte) error {
	a, data := s.memAddr(addr, w)
	s.writes++
	ps := s.geo.PageSize
	if ps == 0 {
		if len(data) != 1 {
			s.t.Errorf("byte write with %d bytes", len(data))
		}
		for _, b := range data {
			s.mem[a] = b
		}
		return nil
	}
	if uint32(len(data)) > ps {
		s.t.Errorf("write of %d bytes exceeds page size %d", len(data), ps)
	}
	page := a &^ (ps - 1)
	for i, b := range data {
		next := a + uint32(i)
		if next&^(ps-1) != page {
			s.t.Errorf("write started in page %#06x continued to page %#06x", page, next&^(ps-1))
		}
		s.mem[page|next&(ps-1)] = b
	}
	return nil
}

func (s *simBus) WriteRead(addr uint8, w, r []byte) error {
	a, rest := s.memAddr(addr, w)
	if len(rest) != 0 {
		s.t.Errorf("random read with extra data % x", rest)
	}
	for i := range r {
		r[i] = s.mem[(a+uint32(i))%s.geo.Capacity()]
	}
	return nil
}

type countDelay struct {
	n     int
	total time.Duration
}

func (d *countDelay) Delay(t time.Duration) {
	d.n++
	d.total += t
}

func mustPart(t *testing.T, bus Bus, addr SlaveAddr, p Part) *Device {
	t.Helper()
	d, err := NewPart(bus, addr, p)
	if err != nil {
		t.Fatalf("failed to create %s: %s", p, err)
	}
	return d
}
