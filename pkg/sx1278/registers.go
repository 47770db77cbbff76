package sx1278

import "fmt"

// Register is a 7-bit SX1278 register address. Bit 7 of the address byte on
// the wire selects write access and belongs to the transport, never to the
// address value itself.
type Register byte

// SX1278 register addresses, LoRa page (RegOpMode bit 7 set)
const (
	RegFifo               Register = 0x00 // FIFO read/write port
	RegOpMode             Register = 0x01 // Operating mode and LoRa/FSK selection
	RegFrfMsb             Register = 0x06 // RF carrier frequency, high byte
	RegFrfMid             Register = 0x07 // RF carrier frequency, middle byte
	RegFrfLsb             Register = 0x08 // RF carrier frequency, low byte
	RegPaConfig           Register = 0x09 // PA selection and output power
	RegPaRamp             Register = 0x0A // PA ramp time
	RegOcp                Register = 0x0B // Overcurrent protection
	RegLna                Register = 0x0C // LNA gain and boost
	RegFifoAddrPtr        Register = 0x0D // SPI-side FIFO access pointer
	RegFifoTxBaseAddr     Register = 0x0E // FIFO base address for TX data
	RegFifoRxBaseAddr     Register = 0x0F // FIFO base address for RX data
	RegFifoRxCurrentAddr  Register = 0x10 // Start of the last packet received
	RegIrqFlagsMask       Register = 0x11 // Interrupt mask
	RegIrqFlags           Register = 0x12 // Interrupt flags
	RegRxNbBytes          Register = 0x13 // Number of bytes in last RX payload
	RegRxPacketCntMsb     Register = 0x16 // Received packet counter, high byte
	RegRxPacketCntLsb     Register = 0x17 // Received packet counter, low byte
	RegModemStat          Register = 0x18 // Modem status
	RegPktSnrValue        Register = 0x19 // SNR of last packet
	RegPktRssiValue       Register = 0x1A // RSSI of last packet
	RegRssiValue          Register = 0x1B // Current RSSI
	RegHopChannel         Register = 0x1C // FHSS start channel
	RegModemConfig1       Register = 0x1D // Bandwidth, coding rate, header mode
	RegModemConfig2       Register = 0x1E // Spreading factor, CRC
	RegPreambleMsb        Register = 0x20 // Preamble length, high byte
	RegPreambleLsb        Register = 0x21 // Preamble length, low byte
	RegPayloadLength      Register = 0x22 // TX payload length
	RegMaxPayloadLength   Register = 0x23 // Maximum RX payload length
	RegHopPeriod          Register = 0x24 // Symbol periods between hops
	RegModemConfig3       Register = 0x26 // Low data rate optimize, AGC
	RegDetectOptimize     Register = 0x31 // LoRa detection optimize
	RegDetectionThreshold Register = 0x37 // LoRa detection threshold
	RegSyncWord           Register = 0x39 // LoRa sync word
)

// RegOpMode values. Bits 2:0 select the mode, bit 7 selects the LoRa mode
// family; the chip only honors a family change written from a sleep mode.
const (
	ModeFSKSleep     = 0x08 // FSK/OOK sleep
	ModeFSKCAD       = 0x0F // FSK/OOK channel activity detection
	ModeLoRaSleep    = 0x88 // LoRa sleep
	ModeLoRaStandby  = 0x89 // LoRa standby
	ModeLoRaTX       = 0x8B // LoRa transmit
	ModeLoRaRXCont   = 0x8D // LoRa continuous receive
	ModeLoRaRXSingle = 0x8E // LoRa single receive
	ModeLoRaCAD      = 0x8F // LoRa channel activity detection
)

// LongRangeModeMask selects bit 7 of RegOpMode, the LoRa mode family flag.
const LongRangeModeMask = 0x80

// FIFOTXBaseAddr is the chip default TX base address in FIFO memory, the
// value the SPI-side pointer must be set to before staging TX data.
const FIFOTXBaseAddr = 0x80

// IRQTXDoneMask is the TxDone bit in RegIrqFlags.
const IRQTXDoneMask = 0x08

// Wire encoding of the address byte. Read access is the address with the
// flag clear, write access is the address with the flag set.
const (
	writeFlag = 0x80
	addrMask  = 0x7F
)

// regNames maps every defined register to its datasheet name. The whole
// register set lives in this one literal so that two constants sharing an
// address fail to compile as a duplicate map key.
var regNames = map[Register]string{
	RegFifo:               "RegFifo",
	RegOpMode:             "RegOpMode",
	RegFrfMsb:             "RegFrfMsb",
	RegFrfMid:             "RegFrfMid",
	RegFrfLsb:             "RegFrfLsb",
	RegPaConfig:           "RegPaConfig",
	RegPaRamp:             "RegPaRamp",
	RegOcp:                "RegOcp",
	RegLna:                "RegLna",
	RegFifoAddrPtr:        "RegFifoAddrPtr",
	RegFifoTxBaseAddr:     "RegFifoTxBaseAddr",
	RegFifoRxBaseAddr:     "RegFifoRxBaseAddr",
	RegFifoRxCurrentAddr:  "RegFifoRxCurrentAddr",
	RegIrqFlagsMask:       "RegIrqFlagsMask",
	RegIrqFlags:           "RegIrqFlags",
	RegRxNbBytes:          "RegRxNbBytes",
	RegRxPacketCntMsb:     "RegRxPacketCntMsb",
	RegRxPacketCntLsb:     "RegRxPacketCntLsb",
	RegModemStat:          "RegModemStat",
	RegPktSnrValue:        "RegPktSnrValue",
	RegPktRssiValue:       "RegPktRssiValue",
	RegRssiValue:          "RegRssiValue",
	RegHopChannel:         "RegHopChannel",
	RegModemConfig1:       "RegModemConfig1",
	RegModemConfig2:       "RegModemConfig2",
	RegPreambleMsb:        "RegPreambleMsb",
	RegPreambleLsb:        "RegPreambleLsb",
	RegPayloadLength:      "RegPayloadLength",
	RegMaxPayloadLength:   "RegMaxPayloadLength",
	RegHopPeriod:          "RegHopPeriod",
	RegModemConfig3:       "RegModemConfig3",
	RegDetectOptimize:     "RegDetectOptimize",
	RegDetectionThreshold: "RegDetectionThreshold",
	RegSyncWord:           "RegSyncWord",
}

// String returns the register's datasheet name and address, e.g.
// "RegOpMode (0x01)".
func (r Register) String() string {
	if name, ok := regNames[r]; ok {
		return fmt.Sprintf("%s (0x%02X)", name, byte(r))
	}
	return fmt.Sprintf("unknown register (0x%02X)", byte(r))
}

// Name returns the register's bare datasheet name.
func (r Register) Name() string {
	return regNames[r]
}

// diagnosticRegisters is every defined register except RegFifo, in address
// order. RegFifo stays out of the diagnostic pass: reading the FIFO port
// advances the chip's FIFO pointer, so dumping it would not be read-only.
var diagnosticRegisters = []Register{
	RegOpMode,
	RegFrfMsb,
	RegFrfMid,
	RegFrfLsb,
	RegPaConfig,
	RegPaRamp,
	RegOcp,
	RegLna,
	RegFifoAddrPtr,
	RegFifoTxBaseAddr,
	RegFifoRxBaseAddr,
	RegFifoRxCurrentAddr,
	RegIrqFlagsMask,
	RegIrqFlags,
	RegRxNbBytes,
	RegRxPacketCntMsb,
	RegRxPacketCntLsb,
	RegModemStat,
	RegPktSnrValue,
	RegPktRssiValue,
	RegRssiValue,
	RegHopChannel,
	RegModemConfig1,
	RegModemConfig2,
	RegPreambleMsb,
	RegPreambleLsb,
	RegPayloadLength,
	RegMaxPayloadLength,
	RegHopPeriod,
	RegModemConfig3,
	RegDetectOptimize,
	RegDetectionThreshold,
	RegSyncWord,
}
