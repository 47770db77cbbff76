package sx1278

import (
	"fmt"
	"testing"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// garbageByte is what the simulated chip shifts out while the address byte
// is still arriving. It deliberately looks nothing like a register default
// so a transport that returns the wrong byte fails loudly.
const garbageByte = 0xA5

// busAccess is one decoded two-byte exchange seen by the simulated chip.
type busAccess struct {
	write bool
	reg   Register
	value byte
}

// chipSim is a simulated SX1278 behind a full-duplex SPI connection. It
// keeps a register file plus enough mode and FIFO behavior to exercise the
// sequencer: writes answer with the register's prior contents, FIFO port
// accesses move the FIFO pointer, a mode family flip is only honored from a
// sleep mode, and a commanded transmit completes instantly.
type chipSim struct {
	regs     [128]byte
	fifo     [256]byte
	duplex   conn.Duplex
	frames   [][2]byte
	accesses []busAccess

	txErr            error // forced transport failure, when set
	ignoreModeWrites bool  // a wedged chip that never leaves its boot mode
	txHangs          bool  // transmit never completes, chip stays in TX
}

func newChipSim(bootMode byte) *chipSim {
	c := &chipSim{duplex: conn.Full}
	c.regs[RegOpMode] = bootMode
	c.regs[RegFifoTxBaseAddr] = 0x80
	c.regs[RegFifoRxBaseAddr] = 0x00
	c.regs[RegPreambleLsb] = 0x08
	c.regs[RegMaxPayloadLength] = 0xFF
	c.regs[RegSyncWord] = 0x12
	return c
}

func (c *chipSim) String() string {
	return "chipsim"
}

func (c *chipSim) Duplex() conn.Duplex {
	return c.duplex
}

func (c *chipSim) Tx(w, r []byte) error {
	if c.txErr != nil {
		return c.txErr
	}
	if len(w) != 2 || len(r) != 2 {
		return fmt.Errorf("chipsim expects two-byte frames, got %d out / %d in", len(w), len(r))
	}
	c.frames = append(c.frames, [2]byte{w[0], w[1]})

	reg := Register(w[0] & 0x7F)
	write := w[0]&0x80 != 0
	c.accesses = append(c.accesses, busAccess{write: write, reg: reg, value: w[1]})

	r[0] = garbageByte
	r[1] = c.readBack(reg)
	if write {
		c.store(reg, w[1])
	} else if reg == RegFifo {
		c.regs[RegFifoAddrPtr]++ // FIFO reads advance the pointer
	}
	return nil
}

func (c *chipSim) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := c.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

// readBack is what the chip puts in the data slot of the exchange: the
// register's current contents, before any write takes effect.
func (c *chipSim) readBack(reg Register) byte {
	if reg == RegFifo {
		return c.fifo[c.regs[RegFifoAddrPtr]]
	}
	return c.regs[reg]
}

func (c *chipSim) store(reg Register, v byte) {
	switch reg {
	case RegFifo:
		ptr := c.regs[RegFifoAddrPtr]
		c.fifo[ptr] = v
		c.regs[RegFifoAddrPtr] = ptr + 1
	case RegOpMode:
		c.storeOpMode(v)
	default:
		c.regs[reg] = v
	}
}

func (c *chipSim) storeOpMode(v byte) {
	if c.ignoreModeWrites {
		return
	}
	cur := c.regs[RegOpMode]
	if (v^cur)&LongRangeModeMask != 0 && cur&0x07 != 0 {
		return // family change refused outside sleep
	}
	if v == ModeLoRaTX && !c.txHangs {
		c.regs[RegOpMode] = ModeLoRaStandby
		c.regs[RegIrqFlags] |= IRQTXDoneMask
		return
	}
	c.regs[RegOpMode] = v
}

// modeWrites returns every value written to RegOpMode, in order.
func (c *chipSim) modeWrites() []byte {
	return c.writesTo(RegOpMode)
}

// writesTo returns every value written to reg, in order.
func (c *chipSim) writesTo(reg Register) []byte {
	var values []byte
	for _, a := range c.accesses {
		if a.write && a.reg == reg {
			values = append(values, a.value)
		}
	}
	return values
}

// readOrder returns the registers read, in order.
func (c *chipSim) readOrder() []Register {
	var regs []Register
	for _, a := range c.accesses {
		if !a.write {
			regs = append(regs, a.reg)
		}
	}
	return regs
}

// writeCount returns the number of write accesses seen.
func (c *chipSim) writeCount() int {
	n := 0
	for _, a := range c.accesses {
		if a.write {
			n++
		}
	}
	return n
}

// simPort hands out a chipSim as its connection and records the parameters
// it was configured with.
type simPort struct {
	chip *chipSim

	freq physic.Frequency
	mode spi.Mode
	bits int
}

func (p *simPort) String() string {
	return "simport"
}

func (p *simPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.freq = f
	p.mode = mode
	p.bits = bits
	return p.chip, nil
}

// newTestRadio wires a fresh chip sim to a Radio with a negligible TX
// settle wait.
func newTestRadio(t *testing.T, bootMode byte) (*Radio, *chipSim) {
	t.Helper()
	chip := newChipSim(bootMode)
	r, err := New(&simPort{chip: chip}, Opts{TXSettle: time.Nanosecond})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, chip
}
