// lora-reg: Read or write a single SX1278 register
//
// Usage:
//
//	lora-reg [flags] read <addr>
//	lora-reg [flags] write <addr> <value>
//
// Addresses and values take Go numeric literals (0x12 or 18). A write
// prints the value the register held before the write, which the chip
// shifts out while the new value is still arriving.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ucsd-cubesat/LoRa-Development/pkg/sx1278"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	spiName := flag.String("spi", "", "SPI port name (default: first available)")
	rstName := flag.String("rst", "GPIO17", "reset GPIO name, empty to skip")
	var speed physic.Frequency
	flag.Var(&speed, "speed", "SPI clock, e.g. 3800Hz (default: bring-up clock)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	op := ""
	if len(args) > 0 {
		op = args[0]
	}
	switch {
	case op == "read" && len(args) == 2:
	case op == "write" && len(args) == 3:
	default:
		usage()
		os.Exit(2)
	}

	reg, err := parseRegister(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var value byte
	if op == "write" {
		value, err = parseByte(args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	if err := run(*spiName, *rstName, speed, op, reg, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(spiName, rstName string, speed physic.Frequency, op string, reg sx1278.Register, value byte) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	port, err := spireg.Open(spiName)
	if err != nil {
		return fmt.Errorf("failed to open SPI port (not running as root?): %w", err)
	}
	defer port.Close()

	var rst gpio.PinOut
	if rstName != "" {
		pin := gpioreg.ByName(rstName)
		if pin == nil {
			return fmt.Errorf("no GPIO named %q", rstName)
		}
		rst = pin
	}

	radio, err := sx1278.New(port, sx1278.Opts{Speed: speed, Reset: rst})
	if err != nil {
		return err
	}

	switch op {
	case "read":
		got, err := radio.ReadRegister(reg)
		if err != nil {
			return err
		}
		fmt.Printf("%s = 0x%02X\n", reg, got)
	case "write":
		prior, err := radio.WriteRegister(reg, value)
		if err != nil {
			return err
		}
		fmt.Printf("%s = 0x%02X (was 0x%02X)\n", reg, value, prior)
	}

	return nil
}

func parseRegister(s string) (sx1278.Register, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad register address %q: %w", s, err)
	}
	if n > 0x7F {
		return 0, fmt.Errorf("register address 0x%02X out of range (max 0x7F)", n)
	}
	return sx1278.Register(n), nil
}

func parseByte(s string) (byte, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", s, err)
	}
	return byte(n), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: lora-reg [flags] read <addr>\n")
	fmt.Fprintf(os.Stderr, "       lora-reg [flags] write <addr> <value>\n\nFlags:\n")
	flag.PrintDefaults()
}
