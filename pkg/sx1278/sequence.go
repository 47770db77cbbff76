package sx1278

import (
	"fmt"
	"time"
)

// Reading is one register observation from a diagnostic pass.
type Reading struct {
	Reg   Register `json:"register"`
	Name  string   `json:"name"`
	Value byte     `json:"value"`
}

// TXReport carries the observations from a one-byte transmit test. The test
// reports what the chip said, it does not judge: a dead antenna and a clean
// burst both come back as a report, never as an error.
type TXReport struct {
	InitialPtr byte // RegFifoAddrPtr before staging
	IRQFlags   byte // RegIrqFlags after the settle wait
	OpMode     byte // RegOpMode after the settle wait
}

// TxDone reports whether the TxDone interrupt bit is set.
func (t *TXReport) TxDone() bool {
	return t.IRQFlags&IRQTXDoneMask != 0
}

// InStandby reports whether the chip fell back to standby after the burst.
func (t *TXReport) InStandby() bool {
	return t.OpMode == ModeLoRaStandby
}

// EnterStandby drives the chip from whatever mode it booted in into LoRa
// standby and verifies the transition by reading the mode back.
//
// The LoRa mode family flag can only be changed from a sleep mode, so the
// sequence steps down first: a chip still in the legacy FSK/OOK family
// (RegOpMode bit 7 clear) gets a legacy sleep write before the LoRa-family
// writes. A mismatched readback wraps ErrStandbyNotReached.
func (r *Radio) EnterStandby() error {
	mode, err := r.ReadRegister(RegOpMode)
	if err != nil {
		return fmt.Errorf("failed to read boot mode: %w", err)
	}
	if mode&LongRangeModeMask == 0 {
		if _, err := r.WriteRegister(RegOpMode, ModeFSKSleep); err != nil {
			return fmt.Errorf("failed to enter FSK sleep: %w", err)
		}
	}
	if _, err := r.WriteRegister(RegOpMode, ModeLoRaSleep); err != nil {
		return fmt.Errorf("failed to enter LoRa sleep: %w", err)
	}
	if _, err := r.WriteRegister(RegOpMode, ModeLoRaStandby); err != nil {
		return fmt.Errorf("failed to enter LoRa standby: %w", err)
	}

	mode, err = r.ReadRegister(RegOpMode)
	if err != nil {
		return fmt.Errorf("failed to verify standby: %w", err)
	}
	if mode != ModeLoRaStandby {
		return fmt.Errorf("%w: RegOpMode=0x%02X (expected 0x%02X)", ErrStandbyNotReached, mode, ModeLoRaStandby)
	}
	return nil
}

// Diagnose reads every defined register except the FIFO port, in address
// order, and returns the readings. The pass never writes and never judges
// the values it finds; only a transport failure aborts it.
func (r *Radio) Diagnose() ([]Reading, error) {
	readings := make([]Reading, 0, len(diagnosticRegisters))
	for _, reg := range diagnosticRegisters {
		value, err := r.ReadRegister(reg)
		if err != nil {
			return nil, fmt.Errorf("diagnostic read of %s failed: %w", reg, err)
		}
		readings = append(readings, Reading{Reg: reg, Name: reg.Name(), Value: value})
	}
	return readings, nil
}

// TransmitTest stages one payload byte at the TX base address, commands a
// transmit, waits out the settle bound, and reports what the chip says
// happened.
//
// The burst and the fall back to standby run on the chip's own clock, so
// the IRQ and mode readbacks must not happen before the settle wait; reads
// issued earlier race the transmission.
func (r *Radio) TransmitTest(payload byte) (*TXReport, error) {
	ptr, err := r.ReadRegister(RegFifoAddrPtr)
	if err != nil {
		return nil, fmt.Errorf("failed to read FIFO pointer: %w", err)
	}
	if _, err := r.WriteRegister(RegFifoAddrPtr, FIFOTXBaseAddr); err != nil {
		return nil, fmt.Errorf("failed to point FIFO at TX base: %w", err)
	}
	if _, err := r.WriteRegister(RegFifo, payload); err != nil {
		return nil, fmt.Errorf("failed to stage payload: %w", err)
	}
	if _, err := r.WriteRegister(RegOpMode, ModeLoRaTX); err != nil {
		return nil, fmt.Errorf("failed to enter LoRa TX: %w", err)
	}

	time.Sleep(r.txSettle)

	irq, err := r.ReadRegister(RegIrqFlags)
	if err != nil {
		return nil, fmt.Errorf("failed to read IRQ flags: %w", err)
	}
	mode, err := r.ReadRegister(RegOpMode)
	if err != nil {
		return nil, fmt.Errorf("failed to read post-TX mode: %w", err)
	}

	return &TXReport{InitialPtr: ptr, IRQFlags: irq, OpMode: mode}, nil
}
