package cli

import (
	"fmt"
	"os"
	"time"

	i2cdev "github.com/aliher1911/eeprom24x/i2c"
	"github.com/aliher1911/eeprom24x/eeprom"

	"gopkg.in/yaml.v3"
)

// Bus backends.
const (
	BackendI2CDev = "i2cdev"
	BackendRDWR   = "rdwr"
	BackendPeriph = "periph"
)

// Config describes where the EEPROM is and what it is.
type Config struct {
	Backend string      `yaml:"backend"`
	Dev     i2cdev.Conf `yaml:",inline"`
	// Bus name for the periph backend, e.g. "1" or "I2C1".
	PeriphBus string `yaml:"periph_bus"`
	Part      string `yaml:"part"`

	// Strap pins. Only used when addr is not set.
	A2 bool `yaml:"a2"`
	A1 bool `yaml:"a1"`
	A0 bool `yaml:"a0"`

	// GPIO connected to the WP pin, -1 if WP is tied low.
	WPPin      int           `yaml:"wp_pin"`
	WriteDelay time.Duration `yaml:"write_delay"`
}

// Default is the 24x256 at the default address of /dev/i2c-1, driven with
// combined I2C_RDWR transfers.
func Default() Config {
	return Config{
		Backend:    BackendRDWR,
		Dev:        i2cdev.Conf{Bus: 1},
		Part:       string(eeprom.P24x256),
		WPPin:      -1,
		WriteDelay: eeprom.DefaultWriteDelay,
	}
}

// LoadConfig reads a YAML config on top of defaults.
func LoadConfig(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing %s: %w", path, err)
	}
	err = c.Validate()
	return c, err
}

// Validate fills in the slave address and checks values.
func (c *Config) Validate() error {
	c.Dev.Default(uint8(eeprom.AltAddr(c.A2, c.A1, c.A0)))
	if c.Dev.Addr > 0x7f {
		return fmt.Errorf("slave address %#02x doesn't fit into 7 bits", c.Dev.Addr)
	}
	switch c.Backend {
	case BackendI2CDev, BackendRDWR, BackendPeriph:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := eeprom.LookupPart(c.Part); err != nil {
		return err
	}
	if c.WriteDelay < 0 {
		return fmt.Errorf("negative write delay %s", c.WriteDelay)
	}
	return nil
}
