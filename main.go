package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/aliher1911/eeprom24x/cli"

	logger "github.com/d2r2/go-logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file")
	backend := flag.String("backend", "", "bus backend: i2cdev, rdwr or periph")
	bus := flag.Int("bus", 0, "I2C bus number")
	part := flag.String("part", "", "part name, see parts command")
	addr := flag.Uint("addr", 0, "7-bit slave address")
	wp := flag.Int("wp", -1, "GPIO of the write protect pin")
	verbose := flag.Bool("v", false, "log bus transactions")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] command [args]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), cli.Usage)
	}
	flag.Parse()

	level := logger.InfoLevel
	if *verbose {
		level = logger.DebugLevel
	}
	logger.ChangePackageLogLevel("eeprom", level)
	logger.ChangePackageLogLevel("i2cdev", level)
	logger.ChangePackageLogLevel("i2c", level)
	defer logger.FinalizeLogger()

	args := flag.Args()
	if len(args) > 0 && args[0] == "parts" {
		cli.Parts(os.Stdout)
		return 0
	}

	c := cli.Default()
	if *configPath != "" {
		var err error
		if c, err = cli.LoadConfig(*configPath); err != nil {
			fmt.Printf("failed to load config: %s\n", err)
			return 1
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			c.Backend = *backend
		case "bus":
			c.Dev.Bus = *bus
			c.PeriphBus = strconv.Itoa(*bus)
		case "part":
			c.Part = *part
		case "addr":
			c.Dev.Addr = uint8(*addr)
		case "wp":
			c.WPPin = *wp
		}
	})
	if *addr > 0x7f {
		fmt.Printf("slave address %#x doesn't fit into 7 bits\n", *addr)
		return 1
	}

	s, err := cli.Open(c)
	if err != nil {
		fmt.Printf("failed to open eeprom: %s\n", err)
		return 1
	}
	defer s.Close()

	if err := cli.Run(os.Stdout, s.Storage, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			flag.Usage()
			return 2
		}
		fmt.Printf("%s failed: %s\n", args[0], err)
		return 1
	}
	return 0
}
