package i2cdev

// Conf selects a bus and a device address on it.
type Conf struct {
	Bus  int   `yaml:"bus"`
	Addr uint8 `yaml:"addr"`
}

func (c *Conf) Default(a uint8) {
	if c.Addr == 0 {
		c.Addr = a
	}
}
