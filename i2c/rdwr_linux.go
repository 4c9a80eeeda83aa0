//go:build linux

package i2cdev

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	ioctlRDWR = 0x0707
	msgRead   = 0x0001
)

type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	_     uint16
	buf   uintptr
}

type rdwrData struct {
	msgs  uintptr
	nmsgs uint32
}

// RDWR is a bus on /dev/i2c-N using I2C_RDWR transfers. Unlike Linux,
// write-then-read is a single transaction with a repeated start.
type RDWR struct {
	bus int
	fd  int
}

func OpenRDWR(bus int) (*RDWR, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &RDWR{bus: bus, fd: fd}, nil
}

func (b *RDWR) Write(addr uint8, w []byte) error {
	return b.transfer(addr, w, nil)
}

func (b *RDWR) WriteRead(addr uint8, w, r []byte) error {
	return b.transfer(addr, w, r)
}

func (b *RDWR) Read(addr uint8, r []byte) error {
	return b.transfer(addr, nil, r)
}

func (b *RDWR) Close() error {
	if b.fd < 0 {
		return nil
	}
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}

// Max length of a single message accepted by i2c-dev.
const maxMsgLen = 8192

// buildMsgs prepares a write message, a read message or both. Empty parts
// are skipped. Both parts must fit into maxMsgLen.
func buildMsgs(addr uint8, w, r []byte) []i2cMsg {
	var msgs []i2cMsg
	if len(w) > 0 {
		msgs = append(msgs, i2cMsg{
			addr: uint16(addr),
			len:  uint16(len(w)),
			buf:  uintptr(unsafe.Pointer(&w[0])),
		})
	}
	if len(r) > 0 {
		msgs = append(msgs, i2cMsg{
			addr:  uint16(addr),
			flags: msgRead,
			len:   uint16(len(r)),
			buf:   uintptr(unsafe.Pointer(&r[0])),
		})
	}
	return msgs
}

// buildTransfers splits a transaction into ioctl calls. Reads longer than
// maxMsgLen continue in separate transfers, the part keeps incrementing its
// address pointer between them.
func buildTransfers(addr uint8, w, r []byte) ([][]i2cMsg, error) {
	if len(w) > maxMsgLen {
		return nil, fmt.Errorf("write of %d bytes exceeds %d byte message limit", len(w), maxMsgLen)
	}
	var xfers [][]i2cMsg
	for len(w) > 0 || len(r) > 0 {
		n := len(r)
		if n > maxMsgLen {
			n = maxMsgLen
		}
		xfers = append(xfers, buildMsgs(addr, w, r[:n]))
		w, r = nil, r[n:]
	}
	return xfers, nil
}

func (b *RDWR) transfer(addr uint8, w, r []byte) error {
	if b.fd < 0 {
		return fmt.Errorf("bus %d is closed", b.bus)
	}
	lg.Debugf("rdwr on bus %d at %#02x: write %d, read %d", b.bus, addr, len(w), len(r))
	xfers, err := buildTransfers(addr, w, r)
	if err != nil {
		return err
	}
	for _, msgs := range xfers {
		data := rdwrData{
			msgs:  uintptr(unsafe.Pointer(&msgs[0])),
			nmsgs: uint32(len(msgs)),
		}
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), ioctlRDWR, uintptr(unsafe.Pointer(&data)))
		// Buffers are only referenced through uintptr in msgs.
		runtime.KeepAlive(msgs)
		if errno != 0 {
			return errno
		}
	}
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	return nil
}
