package eeprom

import (
	"errors"
	"fmt"
)

var (
	// ErrTooMuchData is returned when a write doesn't fit into a page or
	// into the memory array.
	ErrTooMuchData = errors.New("too much data")
	// ErrInvalidAddr is returned when a memory address is out of range.
	ErrInvalidAddr = errors.New("memory address out of range")
	// ErrUnsupported is returned when the part or the bus lacks a capability.
	ErrUnsupported = errors.New("operation not supported")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownPart     = errors.New("unknown part")
	ErrDestroyed       = errors.New("device destroyed")
)

// BusError wraps a failed bus transaction.
type BusError struct {
	// Slave address of the transaction.
	Addr uint8
	// write, write-read or read.
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("i2c %s at %#02x: %s", e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
