package eeprom

import (
	"errors"
	"io"
	"time"

	"golang.org/x/exp/constraints"
)

// DefaultWriteDelay covers the internal write cycle of all supported parts.
const DefaultWriteDelay = 5 * time.Millisecond

// Delayer blocks for a given time.
type Delayer interface {
	Delay(d time.Duration)
}

// SleepDelay waits on a timer.
type SleepDelay struct{}

func (SleepDelay) Delay(d time.Duration) {
	<-time.After(d)
}

// WriteProtect controls the WP pin of a part.
type WriteProtect interface {
	Protect() error
	Unprotect() error
}

// Storage provides reads and writes of arbitrary length on top of a
// Device. Writes are split on page boundaries and each page write is
// followed by a delay covering the write cycle.
type Storage struct {
	dev        *Device
	delay      Delayer
	writeDelay time.Duration
	wp         WriteProtect
}

type Option func(s *Storage)

// WithDelay replaces the default timer based delay.
func WithDelay(d Delayer) Option {
	return func(s *Storage) {
		s.delay = d
	}
}

// WithWriteDelay sets the time to wait after each page write.
func WithWriteDelay(d time.Duration) Option {
	return func(s *Storage) {
		s.writeDelay = d
	}
}

// WithWriteProtect makes Storage release write protection for the duration
// of every write.
func WithWriteProtect(wp WriteProtect) Option {
	return func(s *Storage) {
		s.wp = wp
	}
}

func NewStorage(dev *Device, opts ...Option) *Storage {
	s := &Storage{
		dev:        dev,
		delay:      SleepDelay{},
		writeDelay: DefaultWriteDelay,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Storage) Device() *Device {
	return s.dev
}

func (s *Storage) Capacity() int {
	return s.dev.Capacity()
}

// Destroy releases the bus and the delay.
func (s *Storage) Destroy() (Bus, Delayer) {
	return s.dev.Destroy(), s.delay
}

func (s *Storage) checkRange(off uint32, n int) error {
	if uint64(off)+uint64(n) > uint64(s.Capacity()) {
		return ErrTooMuchData
	}
	return nil
}

// Read fills buf with data starting at off.
func (s *Storage) Read(off uint32, buf []byte) error {
	if err := s.checkRange(off, len(buf)); err != nil {
		return err
	}
	return s.dev.ReadData(off, buf)
}

// Write stores data starting at off. Nothing is written if data doesn't
// fit into the memory array.
func (s *Storage) Write(off uint32, data []byte) (err error) {
	if err := s.checkRange(off, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if s.wp != nil {
		if err := s.wp.Unprotect(); err != nil {
			return err
		}
		defer func() {
			if perr := s.wp.Protect(); err == nil {
				err = perr
			}
		}()
	}
	ps := int(s.dev.Geometry().PageSize)
	for len(data) > 0 {
		var n int
		if ps == 0 {
			n = 1
			err = s.dev.WriteByte(off, data[0])
		} else {
			n = minOf(len(data), ps-int(off)%ps)
			lg.Debugf("page write of %d bytes at %#06x", n, off)
			err = s.dev.WritePage(off, data[:n])
		}
		if err != nil {
			return err
		}
		off += uint32(n)
		data = data[n:]
		// Delay after the last page too so the next call can write at once.
		s.delay.Delay(s.writeDelay)
	}
	return nil
}

// ReadAt implements io.ReaderAt.
func (s *Storage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("eeprom: negative offset")
	}
	capacity := int64(s.Capacity())
	if off >= capacity {
		return 0, io.EOF
	}
	n := int(minOf(int64(len(p)), capacity-off))
	if err := s.Read(uint32(off), p[:n]); err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. Data past the end of the memory array is
// not written.
func (s *Storage) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("eeprom: negative offset")
	}
	capacity := int64(s.Capacity())
	if off >= capacity {
		return 0, io.EOF
	}
	n := int(minOf(int64(len(p)), capacity-off))
	if err := s.Write(uint32(off), p[:n]); err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func minOf[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}
