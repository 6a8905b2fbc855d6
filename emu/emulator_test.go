package emu

import "testing"

// TestEmulator_RunFrame tests one frame of the assembled device: interrupt
// checkpoints reach the shared line and both eyes composite.
func TestEmulator_RunFrame(t *testing.T) {
	s := NewSystem()

	events := make(map[int]int)
	s.SetIRQHandler(func(line int, asserted bool) {
		if asserted {
			events[line]++
		}
	})

	s.vip.Write16(0x5F802, IntFrameStart) // INTENB
	s.RunFrame()

	if events[IRQLineVIP] == 0 {
		t.Error("VIP line never asserted across a frame")
	}
	if events[IRQLinePad] != 0 {
		t.Error("Pad line pulsed while gated")
	}
	if s.vip.DisplayBuffer() != 1 {
		t.Errorf("Display buffer after one frame: expected 1, got %d", s.vip.DisplayBuffer())
	}

	pending := s.vip.ReadReg(0x00)
	for _, bit := range []uint16{IntFrameStart, IntGameStart, IntXPEnd, IntLFBEnd, IntRFBEnd} {
		if pending&bit == 0 {
			t.Errorf("Pending bit 0x%04X missing after a frame", bit)
		}
	}
}

// TestEmulator_PadInterrupt tests the per-frame pad-ready pulse behind the
// KCR gate.
func TestEmulator_PadInterrupt(t *testing.T) {
	s := NewSystem()

	pulses := 0
	s.SetIRQHandler(func(line int, asserted bool) {
		if line == IRQLinePad && asserted {
			pulses++
		}
	})

	s.hc.Write(regKCR, 0x00) // ungate
	s.RunFrame()
	s.RunFrame()

	if pulses != 2 {
		t.Errorf("Pad pulses over two frames: expected 2, got %d", pulses)
	}
}

// TestEmulator_TimerOverFrames tests that the scanline loop delivers timer
// ticks at the configured rate.
func TestEmulator_TimerOverFrames(t *testing.T) {
	s := NewSystem()

	fired := 0
	s.SetIRQHandler(func(line int, asserted bool) {
		if line == IRQLineTimer && asserted {
			fired++
		}
	})

	// 90 slow ticks per expiry; the slow rate delivers just under 200
	// ticks per 20ms frame.
	s.hc.Write(regTLB, 90)
	s.hc.Write(regTHB, 0)
	s.hc.Write(regTCR, 0x09)

	s.RunFrame()

	if fired != 2 {
		t.Errorf("Timer expiries in one frame: expected 2, got %d", fired)
	}
}

// TestEmulator_SaveStateRoundTrip tests that device state survives a
// serialize/deserialize cycle into a fresh system.
func TestEmulator_SaveStateRoundTrip(t *testing.T) {
	s := NewSystem()

	s.vip.Write16(0x06000, 0x1234) // character data
	s.vip.Write16(0x20000, 0x5678) // map data
	s.vip.Write16(0x00010, 0x9ABC) // framebuffer
	s.vip.Write16(0x5F870, 3)      // BKCOL
	s.vip.Write16(0x5F824, 0x40)   // BRTA
	s.SetInput(PadA)
	s.hc.Write(regTLB, 0x42)
	s.hc.Write(regTCR, 0x01)
	s.RunFrame()

	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if len(data) != SerializeSize() {
		t.Fatalf("State size: expected %d, got %d", SerializeSize(), len(data))
	}

	r := NewSystem()
	if err := r.Deserialize(data); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got := r.vip.Read16(0x06000); got != 0x1234 {
		t.Errorf("Character word: expected 0x1234, got 0x%04X", got)
	}
	// Flip aliases are serialized with the store, not recomputed.
	if got := r.vip.chars.Row(0x2000, 0); got != mirrorRow(0x1234) {
		t.Errorf("Flip alias: expected 0x%04X, got 0x%04X", mirrorRow(0x1234), got)
	}
	if got := r.vip.Read16(0x20000); got != 0x5678 {
		t.Errorf("Map word: expected 0x5678, got 0x%04X", got)
	}
	if got := r.vip.Read16(0x00010); got != 0x9ABC {
		t.Errorf("Framebuffer word: expected 0x9ABC, got 0x%04X", got)
	}
	if got := r.vip.ReadReg(0x70); got != 3 {
		t.Errorf("BKCOL: expected 3, got %d", got)
	}
	if r.vip.Palette() != s.vip.Palette() {
		t.Error("Brightness palette not rederived on load")
	}
	if r.vip.DisplayBuffer() != s.vip.DisplayBuffer() {
		t.Error("Display buffer mismatch after load")
	}
	if !r.hc.TimerRunning() {
		t.Error("Timer not running after load")
	}
	if r.hc.timer.latch != 0x42 {
		t.Errorf("Timer latch: expected 0x42, got 0x%04X", r.hc.timer.latch)
	}
}

// TestEmulator_VerifyState tests the save state validation failure modes.
func TestEmulator_VerifyState(t *testing.T) {
	s := NewSystem()

	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if err := s.VerifyState(data); err != nil {
		t.Errorf("Valid state rejected: %v", err)
	}

	if err := s.VerifyState(data[:100]); err == nil {
		t.Error("Truncated state accepted")
	}

	bad := make([]byte, len(data))
	copy(bad, data)
	bad[0] ^= 0xFF
	if err := s.VerifyState(bad); err == nil {
		t.Error("Bad magic accepted")
	}

	copy(bad, data)
	bad[len(bad)-1] ^= 0xFF
	if err := s.VerifyState(bad); err == nil {
		t.Error("Corrupted payload accepted")
	}
	if err := s.Deserialize(bad); err == nil {
		t.Error("Deserialize loaded a corrupted state")
	}
}

// TestEmulator_Reset tests that Reset restores register defaults without
// touching RAM, like the hardware.
func TestEmulator_Reset(t *testing.T) {
	s := NewSystem()

	s.vip.Write16(0x20000, 0xDEAD)
	s.vip.Write16(0x5F870, 3)
	s.RunFrame()
	s.Reset()

	if got := s.vip.ReadReg(0x70); got != 0 {
		t.Errorf("BKCOL after reset: expected 0, got %d", got)
	}
	if got := s.vip.Read16(0x20000); got != 0xDEAD {
		t.Errorf("Map word after reset: expected 0xDEAD, got 0x%04X", got)
	}
	if s.vip.DisplayBuffer() != 0 {
		t.Errorf("Display buffer after reset: expected 0, got %d", s.vip.DisplayBuffer())
	}
}
