// Package sx1278 drives a Semtech SX1278 LoRa transceiver over SPI at the
// register level. It covers bring-up work: raw register access, forcing the
// chip into LoRa standby, a read-only diagnostic dump, and a one-byte
// transmit check. Packet framing and modem configuration are out of scope.
package sx1278

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// LogPrintf is the logging hook used for per-access status lines. It follows
// log.Printf semantics: no trailing newline in the format string.
type LogPrintf func(format string, v ...interface{})

// Bus defaults matching the bring-up wiring: SPI mode 0, 8-bit words,
// MSB first, hardware CS0, and a clock slow enough to survive jumper wires.
const (
	// DefaultSpeed is the default SPI clock. Bring-up runs happen over
	// jumper wires, so the clock is a conservative 3.8 kHz; correctness
	// of the register exchange must not depend on going faster.
	DefaultSpeed = 3800 * physic.Hertz

	// DefaultTXSettle is the default wait between commanding a transmit
	// and reading the IRQ flags back. It exceeds the worst-case burst
	// airtime of a one-byte payload at reset modem settings plus the
	// mode-transition latency.
	DefaultTXSettle = 500 * time.Millisecond
)

// Opts configures a Radio. The zero value selects the bring-up defaults.
type Opts struct {
	// Speed is the SPI clock frequency. Zero selects DefaultSpeed.
	Speed physic.Frequency

	// Reset, when set, is driven high once before the bus is touched so
	// the chip is held out of reset.
	Reset gpio.PinOut

	// Logger receives one line per register access. Nil discards them.
	Logger LogPrintf

	// TXSettle is the wait between the TX mode write and the IRQ flag
	// readback in TransmitTest. Zero selects DefaultTXSettle.
	TXSettle time.Duration
}

// Radio is a register-level handle on an SX1278 connected to an SPI port.
type Radio struct {
	conn     spi.Conn
	log      LogPrintf
	txSettle time.Duration
}

// New configures the SPI port for the SX1278 and returns a handle on the
// chip. The port is configured for mode 0 (CPOL=0, CPHA=0) with 8-bit words;
// chip select is asserted by the port driver around each transfer.
func New(port spi.Port, opts Opts) (*Radio, error) {
	if opts.Reset != nil {
		if err := opts.Reset.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("failed to drive reset high: %w", err)
		}
	}

	speed := opts.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}

	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to configure SPI port: %w", err)
	}
	if c.Duplex() != conn.Full {
		return nil, fmt.Errorf("%w: %s reports %s", ErrNotFullDuplex, c, c.Duplex())
	}

	logger := opts.Logger
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}

	settle := opts.TXSettle
	if settle == 0 {
		settle = DefaultTXSettle
	}

	return &Radio{conn: c, log: logger, txSettle: settle}, nil
}

// ReadRegister reads one register in a single two-byte full-duplex exchange.
// The byte the chip shifts out while the address is still going over the
// wire carries nothing; the register value is always the second byte in.
func (r *Radio) ReadRegister(reg Register) (byte, error) {
	tx := [2]byte{byte(reg) & addrMask, 0x00}
	var rx [2]byte
	if err := r.conn.Tx(tx[:], rx[:]); err != nil {
		return 0, fmt.Errorf("read failed at register 0x%02X: %w", tx[0], err)
	}
	r.log("Read value 0x%02X from register 0x%02X.", rx[1], tx[0])
	return rx[1], nil
}

// WriteRegister writes value to one register and returns the byte the chip
// shifted back in the data slot. The chip puts the register's current
// contents on the wire while the new value is still arriving, so the
// returned byte is the value the register held just before the write.
func (r *Radio) WriteRegister(reg Register, value byte) (byte, error) {
	tx := [2]byte{byte(reg)&addrMask | writeFlag, value}
	var rx [2]byte
	if err := r.conn.Tx(tx[:], rx[:]); err != nil {
		return 0, fmt.Errorf("write failed at register 0x%02X: %w", byte(reg)&addrMask, err)
	}
	r.log("Wrote value 0x%02X to register 0x%02X.", value, byte(reg)&addrMask)
	return rx[1], nil
}
