package emu

import (
	"fmt"
	"strings"
	"testing"
)

// TestBus_Framebuffers tests the four framebuffer windows.
func TestBus_Framebuffers(t *testing.T) {
	v := NewVIP()

	tests := []struct {
		addr uint32
		eye  Eye
		idx  int
	}{
		{0x00000, EyeLeft, 0},
		{0x08000, EyeLeft, 1},
		{0x10000, EyeRight, 0},
		{0x18000, EyeRight, 1},
	}

	for i, tt := range tests {
		data := uint16(0x1100 * (i + 1))
		v.Write16(tt.addr+0x20, data)

		if got := v.Read16(tt.addr + 0x20); got != data {
			t.Errorf("FB read at 0x%05X: expected 0x%04X, got 0x%04X", tt.addr, data, got)
		}

		fb := v.FrameBuffer(tt.eye, tt.idx)
		if fb[0x20] != uint8(data) || fb[0x21] != uint8(data>>8) {
			t.Errorf("FB bytes at 0x%05X: got %02X %02X", tt.addr, fb[0x20], fb[0x21])
		}
	}
}

// TestBus_CharacterBanks tests that the four interleaved character windows
// land on the right character numbers.
func TestBus_CharacterBanks(t *testing.T) {
	v := NewVIP()

	tests := []struct {
		addr uint32
		code uint16
	}{
		{0x06000, 0},
		{0x0E000, 512},
		{0x16000, 1024},
		{0x1E000, 1536},
	}

	for _, tt := range tests {
		v.Write16(tt.addr, 0x00FF)
		if got := v.chars.Row(tt.code, 0); got != 0x00FF {
			t.Errorf("Character %d row 0: expected 0x00FF, got 0x%04X", tt.code, got)
		}
	}

	// The mirror window at 0x78000 reads the canonical store linearly.
	if got := v.Read16(0x78000 + 512*16); got != 0x00FF {
		t.Errorf("Character mirror: expected 0x00FF, got 0x%04X", got)
	}
}

// TestBus_MapMemory tests the map memory window.
func TestBus_MapMemory(t *testing.T) {
	v := NewVIP()

	v.Write16(0x20000, 0xABCD)
	v.Write16(0x3FFFE, 0x1234)

	if got := v.vram.Word(0); got != 0xABCD {
		t.Errorf("Map word 0: expected 0xABCD, got 0x%04X", got)
	}
	if got := v.Read16(0x3FFFE); got != 0x1234 {
		t.Errorf("Last map word: expected 0x1234, got 0x%04X", got)
	}
}

// TestBus_Registers tests register access through the memory window.
func TestBus_Registers(t *testing.T) {
	v := NewVIP()

	v.Write16(0x5F870, 2) // BKCOL
	if got := v.Read16(0x5F870); got != 2 {
		t.Errorf("BKCOL via bus: expected 2, got 0x%04X", got)
	}
	if got := v.Read16(0x5F844); got != 2 { // VER
		t.Errorf("VER via bus: expected 2, got 0x%04X", got)
	}
}

// TestBus_ByteAccess tests 8-bit access via read-modify-write of the
// containing word.
func TestBus_ByteAccess(t *testing.T) {
	v := NewVIP()

	v.Write16(0x20000, 0x1122)
	v.Write8(0x20000, 0x33)
	v.Write8(0x20001, 0x44)

	if got := v.Read16(0x20000); got != 0x4433 {
		t.Errorf("Word after byte writes: expected 0x4433, got 0x%04X", got)
	}
	if got := v.Read8(0x20001); got != 0x44 {
		t.Errorf("High byte: expected 0x44, got 0x%02X", got)
	}
}

// TestBus_AddressWrap tests the address mask and the unmapped-hole
// diagnostics.
func TestBus_AddressWrap(t *testing.T) {
	v := NewVIP()

	// Bit 19 and above fall off the decoded range.
	v.Write16(0x80000, 0x5A5A)
	if got := v.Read16(0x00000); got != 0x5A5A {
		t.Errorf("Wrapped write: expected 0x5A5A at 0, got 0x%04X", got)
	}

	var logged strings.Builder
	v.SetLogger(func(format string, args ...any) {
		fmt.Fprintf(&logged, format, args...)
	})

	if got := v.Read16(0x40000); got != 0 {
		t.Errorf("Unmapped read: expected 0, got 0x%04X", got)
	}
	if !strings.Contains(logged.String(), "unmapped") {
		t.Errorf("Unmapped access not logged: %q", logged.String())
	}
}
