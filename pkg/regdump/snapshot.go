// Package regdump captures SX1278 diagnostic register dumps and persists
// them as JSON, so module batches can be compared and a flaky radio's
// history kept.
package regdump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ucsd-cubesat/LoRa-Development/pkg/sx1278"
)

// Device is the slice of the radio API a dump needs.
type Device interface {
	EnterStandby() error
	Diagnose() ([]sx1278.Reading, error)
}

// Snapshot is one diagnostic register dump with its provenance.
type Snapshot struct {
	Timestamp time.Time        `json:"timestamp"`
	Port      string           `json:"port"`
	Readings  []sx1278.Reading `json:"readings"`
}

// Collect puts the radio into standby and takes a register dump. Dumping
// from a known mode keeps snapshots comparable between runs.
func Collect(dev Device, port string) (*Snapshot, error) {
	if err := dev.EnterStandby(); err != nil {
		return nil, fmt.Errorf("failed to reach standby before dump: %w", err)
	}

	readings, err := dev.Diagnose()
	if err != nil {
		return nil, fmt.Errorf("failed to dump registers: %w", err)
	}

	return &Snapshot{
		Timestamp: time.Now().UTC(),
		Port:      port,
		Readings:  readings,
	}, nil
}

// SaveToFile writes the snapshot as indented JSON, creating parent
// directories as needed.
func SaveToFile(snapshot *Snapshot, path string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadFromFile reads a snapshot previously written by SaveToFile.
func LoadFromFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// WriteText renders the snapshot as a human-readable table.
func (s *Snapshot) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Register dump from %s taken %s\n", s.Port, s.Timestamp.Format(time.RFC3339))
	for _, rd := range s.Readings {
		fmt.Fprintf(w, "  %-22s 0x%02X = 0x%02X\n", rd.Name, byte(rd.Reg), rd.Value)
	}
}
