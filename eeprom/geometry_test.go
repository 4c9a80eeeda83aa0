package eeprom

import (
	"errors"
	"testing"
)

func TestKnownPartsAreValid(t *testing.T) {
	for p, geo := range parts {
		if err := geo.Validate(); err != nil {
			t.Errorf("%s: %s", p, err)
		}
	}
}

func TestLookupPart(t *testing.T) {
	geo, err := LookupPart("24XM01")
	if err != nil {
		t.Fatalf("lookup failed: %s", err)
	}
	if geo != parts[P24xM01] {
		t.Errorf("got %v for 24xM01", geo)
	}
	if _, err := LookupPart("24x03"); !errors.Is(err, ErrUnknownPart) {
		t.Errorf("expected unknown part error, got %v", err)
	}
}

func TestParts(t *testing.T) {
	ps := Parts()
	if len(ps) != len(parts) {
		t.Fatalf("expected %d parts, got %d", len(parts), len(ps))
	}
	if ps[0] != P24x00 || ps[len(ps)-1] != P24xM02 {
		t.Errorf("parts not ordered by capacity: %v", ps)
	}
}

func TestBorrowedBits(t *testing.T) {
	for p, exp := range map[Part]uint8{
		P24x00:  0,
		P24x02:  0,
		P24x04:  1,
		P24x08:  2,
		P24x16:  3,
		P24x32:  0,
		P24x512: 0,
		P24xM01: 1,
		P24xM02: 2,
	} {
		if got := parts[p].BorrowedBits(); got != exp {
			t.Errorf("%s borrows %d bits, expected %d", p, got, exp)
		}
	}
	// Clamped even if geometry wasn't validated.
	if got := (Geometry{AddressBits: 14, AddrWidth: OneByte}).BorrowedBits(); got != 3 {
		t.Errorf("borrowed bits not clamped: %d", got)
	}
}

func TestValidateRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		geo  Geometry
	}{
		{"no width", Geometry{AddressBits: 8}},
		{"bad width", Geometry{AddressBits: 8, AddrWidth: 3}},
		{"no address bits", Geometry{AddrWidth: OneByte}},
		{"too many bits", Geometry{AddressBits: 25, AddrWidth: TwoBytes}},
		{"unreachable", Geometry{AddressBits: 12, AddrWidth: OneByte}},
		{"page not power of two", Geometry{AddressBits: 8, AddrWidth: OneByte, PageSize: 12}},
		{"page too big", Geometry{AddressBits: 18, AddrWidth: TwoBytes, PageSize: 512}},
		{"page over capacity", Geometry{AddressBits: 4, AddrWidth: OneByte, PageSize: 32}},
		{"serial without layout", Geometry{AddressBits: 15, AddrWidth: TwoBytes, PageSize: 64, UniqueSerial: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.geo.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected invalid geometry, got %v", err)
			}
			if _, err := New(&recordBus{}, DefaultAddr, tc.geo); err == nil {
				t.Errorf("device created with invalid geometry")
			}
		})
	}
}
