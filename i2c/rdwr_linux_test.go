//go:build linux

package i2cdev

import (
	"testing"
	"unsafe"
)

func TestBuildMsgs(t *testing.T) {
	w := []byte{0x12, 0x34}
	r := make([]byte, 16)

	msgs := buildMsgs(0x50, w, r)
	if len(msgs) != 2 {
		t.Fatalf("expected write and read messages, got %d", len(msgs))
	}
	if m := msgs[0]; m.addr != 0x50 || m.flags != 0 || m.len != 2 || m.buf != uintptr(unsafe.Pointer(&w[0])) {
		t.Errorf("bad write message %+v", m)
	}
	if m := msgs[1]; m.addr != 0x50 || m.flags != msgRead || m.len != 16 || m.buf != uintptr(unsafe.Pointer(&r[0])) {
		t.Errorf("bad read message %+v", m)
	}

	if msgs := buildMsgs(0x50, w, nil); len(msgs) != 1 || msgs[0].flags != 0 {
		t.Errorf("write only transfer: %+v", msgs)
	}
	if msgs := buildMsgs(0x50, nil, r); len(msgs) != 1 || msgs[0].flags != msgRead {
		t.Errorf("read only transfer: %+v", msgs)
	}
	if msgs := buildMsgs(0x50, nil, nil); len(msgs) != 0 {
		t.Errorf("empty transfer: %+v", msgs)
	}
}

func TestMsgLayout(t *testing.T) {
	// Must match struct i2c_msg from linux/i2c.h.
	var m i2cMsg
	if off := unsafe.Offsetof(m.buf); off != 8 {
		t.Errorf("buf at offset %d", off)
	}
}

func TestClosedRDWR(t *testing.T) {
	b := &RDWR{bus: 7, fd: -1}
	if err := b.Write(0x50, []byte{1}); err == nil {
		t.Errorf("write on closed bus succeeded")
	}
	if err := b.Close(); err != nil {
		t.Errorf("closing twice failed: %s", err)
	}
}

func TestBuildTransfersLongRead(t *testing.T) {
	w := []byte{0x00, 0x00}
	r := make([]byte, 65537)

	xfers, err := buildTransfers(0x50, w, r)
	if err != nil {
		t.Fatal(err)
	}
	// 8 full messages and a single byte tail.
	if len(xfers) != 9 {
		t.Fatalf("expected 9 transfers, got %d", len(xfers))
	}
	if first := xfers[0]; len(first) != 2 || first[0].flags != 0 || first[0].len != 2 {
		t.Fatalf("first transfer must carry the memory address: %+v", first)
	}
	next := uintptr(unsafe.Pointer(&r[0]))
	total := 0
	for i, msgs := range xfers {
		m := msgs[len(msgs)-1]
		if i > 0 && len(msgs) != 1 {
			t.Errorf("transfer %d repeats the address write: %+v", i, msgs)
		}
		if m.flags != msgRead || m.len == 0 || m.len > maxMsgLen {
			t.Errorf("transfer %d has bad read message %+v", i, m)
		}
		if m.buf != next {
			t.Errorf("transfer %d doesn't continue the buffer", i)
		}
		next += uintptr(m.len)
		total += int(m.len)
	}
	if total != len(r) {
		t.Errorf("transfers read %d bytes, expected %d", total, len(r))
	}
}

func TestBuildTransfersShort(t *testing.T) {
	xfers, err := buildTransfers(0x50, []byte{0x12}, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if len(xfers) != 1 || len(xfers[0]) != 2 {
		t.Errorf("expected a single combined transfer: %+v", xfers)
	}
	if xfers, err := buildTransfers(0x50, nil, nil); err != nil || len(xfers) != 0 {
		t.Errorf("empty transaction produced %+v, %v", xfers, err)
	}
}

func TestBuildTransfersLongWrite(t *testing.T) {
	if _, err := buildTransfers(0x50, make([]byte, maxMsgLen+1), nil); err == nil {
		t.Errorf("oversized write accepted")
	}
}
