package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aliher1911/eeprom24x/eeprom"
)

// Usage lists commands accepted by Run.
const Usage = `commands:
  info                  show device geometry
  read <offset> <len>   dump memory contents
  write <offset> <hex>  write hex encoded bytes
  serial                read 128-bit unique serial number
  current               read byte at the internal address pointer
  parts                 list supported parts`

// ErrUsage is returned when command arguments are malformed.
var ErrUsage = errors.New("bad arguments")

// Run executes a single command against the storage.
func Run(w io.Writer, s *eeprom.Storage, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "info":
		Info(w, s.Device())
		return nil
	case "read":
		if len(args) != 2 {
			return ErrUsage
		}
		off, err := parseOffset(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid length %q: %w", args[1], err)
		}
		return Read(w, s, off, int(n))
	case "write":
		if len(args) != 2 {
			return ErrUsage
		}
		off, err := parseOffset(args[0])
		if err != nil {
			return err
		}
		return Write(w, s, off, args[1])
	case "serial":
		return Serial(w, s.Device())
	case "current":
		return Current(w, s.Device())
	case "parts":
		Parts(w)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func parseOffset(v string) (uint32, error) {
	off, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", v, err)
	}
	return uint32(off), nil
}

func Info(w io.Writer, d *eeprom.Device) {
	g := d.Geometry()
	fmt.Fprintf(w, "address:  0x%02x\n", uint8(d.Addr()))
	fmt.Fprintf(w, "geometry: %s\n", g)
	fmt.Fprintf(w, "capacity: %d bytes\n", d.Capacity())
	if g.PageSize > 0 {
		fmt.Fprintf(w, "pages:    %d x %d bytes\n", d.Capacity()/int(g.PageSize), g.PageSize)
	} else {
		fmt.Fprintf(w, "pages:    none\n")
	}
	fmt.Fprintf(w, "serial:   %t\n", g.UniqueSerial)
}

// Read prints a hex dump of n bytes starting at off.
func Read(w io.Writer, s *eeprom.Storage, off uint32, n int) error {
	if uint64(off)+uint64(n) > uint64(s.Capacity()) {
		return eeprom.ErrTooMuchData
	}
	buf := make([]byte, n)
	if err := s.Read(off, buf); err != nil {
		return err
	}
	for i := 0; i < len(buf); i += 16 {
		line := buf[i:minInt(i+16, len(buf))]
		fmt.Fprintf(w, "%06x  % x\n", off+uint32(i), line)
	}
	return nil
}

// Write stores hex encoded data at off.
func Write(w io.Writer, s *eeprom.Storage, off uint32, data string) error {
	b, err := hex.DecodeString(data)
	if err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	if err := s.Write(off, b); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %d bytes at 0x%04x\n", len(b), off)
	return nil
}

func Serial(w io.Writer, d *eeprom.Device) error {
	sn, err := d.ReadUniqueSerial()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, hex.EncodeToString(sn[:]))
	return nil
}

func Current(w io.Writer, d *eeprom.Device) error {
	b, err := d.ReadCurrentAddress()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "0x%02x\n", b)
	return nil
}

func Parts(w io.Writer) {
	for _, p := range eeprom.Parts() {
		g, _ := eeprom.LookupPart(string(p))
		fmt.Fprintf(w, "%-10s %s\n", p, g)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
