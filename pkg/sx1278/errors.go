package sx1278

import "errors"

// Radio errors
var (
	// ErrStandbyNotReached indicates the mode readback after the standby
	// sequence did not come back as LoRa standby
	ErrStandbyNotReached = errors.New("radio did not enter LoRa standby")

	// ErrNotFullDuplex indicates the SPI connection cannot shift bytes in
	// and out simultaneously, which the two-byte register exchange requires
	ErrNotFullDuplex = errors.New("SPI connection is not full-duplex")
)
