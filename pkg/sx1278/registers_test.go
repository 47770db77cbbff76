package sx1278

import "testing"

func TestRegisterString(t *testing.T) {
	tests := []struct {
		name string
		reg  Register
		want string
	}{
		{"fifo", RegFifo, "RegFifo (0x00)"},
		{"op mode", RegOpMode, "RegOpMode (0x01)"},
		{"sync word", RegSyncWord, "RegSyncWord (0x39)"},
		{"undefined address", Register(0x50), "unknown register (0x50)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterNameTableComplete(t *testing.T) {
	// Every register in the diagnostic list plus the FIFO port, and
	// nothing else, carries a name.
	if want := len(diagnosticRegisters) + 1; len(regNames) != want {
		t.Errorf("name table has %d entries, want %d", len(regNames), want)
	}
	if _, ok := regNames[RegFifo]; !ok {
		t.Error("RegFifo has no name")
	}
	for _, reg := range diagnosticRegisters {
		if regNames[reg] == "" {
			t.Errorf("register 0x%02X has no name", byte(reg))
		}
	}
}

func TestDiagnosticRegistersWellFormed(t *testing.T) {
	if len(diagnosticRegisters) != 33 {
		t.Errorf("diagnostic list has %d registers, want 33", len(diagnosticRegisters))
	}
	prev := Register(0)
	for i, reg := range diagnosticRegisters {
		if reg == RegFifo {
			t.Error("diagnostic list contains the FIFO port")
		}
		if reg&0x80 != 0 {
			t.Errorf("register 0x%02X is not a 7-bit address", byte(reg))
		}
		if i > 0 && reg <= prev {
			t.Errorf("diagnostic list not in ascending order at 0x%02X", byte(reg))
		}
		prev = reg
	}
}
