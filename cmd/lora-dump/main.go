// lora-dump: Dump SX1278 registers to a table, JSON, or a file
//
// This tool puts the radio into LoRa standby and reads back every
// diagnostic register. Dumps can be printed, emitted as JSON, or saved for
// comparing modules and tracking a board over time.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ucsd-cubesat/LoRa-Development/pkg/regdump"
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
	outputFile := flag.String("o", "", "output file path (default: print to stdout)")
	jsonOutput := flag.Bool("json", false, "print JSON to stdout instead of a table")
	verbose := flag.Bool("v", false, "print every register access")
	var speed physic.Frequency
	flag.Var(&speed, "speed", "SPI clock, e.g. 3800Hz (default: bring-up clock)")
	flag.Parse()

	if err := run(*spiName, *rstName, speed, *outputFile, *jsonOutput, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(spiName, rstName string, speed physic.Frequency, outputFile string, jsonOutput, verbose bool) error {
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

	opts := sx1278.Opts{Speed: speed, Reset: rst}
	if verbose {
		opts.Logger = func(format string, v ...interface{}) {
			fmt.Printf(format+"\n", v...)
		}
	}

	radio, err := sx1278.New(port, opts)
	if err != nil {
		return err
	}

	snapshot, err := regdump.Collect(radio, port.String())
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if outputFile != "" {
		if err := regdump.SaveToFile(snapshot, outputFile); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Printf("Register dump saved to: %s\n", outputFile)
		return nil
	}

	snapshot.WriteText(os.Stdout)
	return nil
}
