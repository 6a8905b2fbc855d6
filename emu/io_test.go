package emu

import "testing"

// TestIO_ResetDefaults tests the documented power-on values of the hardware
// control registers.
func TestIO_ResetDefaults(t *testing.T) {
	h := NewHardwareControl()

	tests := []struct {
		off  uint32
		want uint32
	}{
		{regKLB, 0x00},
		{regKHB, 0x00},
		{regTLB, 0xFF},
		{regTHB, 0xFF},
		{regTCR, 0xE4},
		{regWCR, 0xFC},
		{regKCR, 0xCC},
	}

	for _, tt := range tests {
		if got := h.Read(tt.off); got != tt.want {
			t.Errorf("Register 0x%02X at reset: expected 0x%02X, got 0x%02X", tt.off, tt.want, got)
		}
	}
}

// TestIO_KeypadLatch tests the KCR strobe: live input latches into KLB/KHB
// on bit 2, clears on bit 0.
func TestIO_KeypadLatch(t *testing.T) {
	h := NewHardwareControl()

	h.SetInput(PadA | PadStart)
	if h.Read(regKLB) != 0 {
		t.Error("KLB changed without a strobe")
	}

	h.Write(regKCR, 0x04)
	if got := h.Read(regKLB); got != 0x06 { // PadA plus the always-set bit 1
		t.Errorf("KLB after latch: expected 0x06, got 0x%02X", got)
	}
	if got := h.Read(regKHB); got != 0x10 {
		t.Errorf("KHB after latch: expected 0x10, got 0x%02X", got)
	}

	h.Write(regKCR, 0x01)
	if h.Read(regKLB) != 0 || h.Read(regKHB) != 0 {
		t.Error("KLB/KHB not cleared by KCR bit 0")
	}
}

// TestIO_PadInterruptGate tests the pad-ready interrupt gate on KCR bit 7.
func TestIO_PadInterruptGate(t *testing.T) {
	h := NewHardwareControl()

	if h.PadInterruptEnabled() {
		t.Error("Pad interrupt enabled at reset")
	}

	h.Write(regKCR, 0x00)
	if !h.PadInterruptEnabled() {
		t.Error("Pad interrupt still gated after clearing bit 7")
	}

	h.Write(regKCR, 0x80)
	if h.PadInterruptEnabled() {
		t.Error("Pad interrupt enabled with bit 7 set")
	}
}

// TestIO_WaitControl tests that the unused WCR bits read back as set.
func TestIO_WaitControl(t *testing.T) {
	h := NewHardwareControl()

	h.Write(regWCR, 0x01)
	if got := h.Read(regWCR); got != 0xFD {
		t.Errorf("WCR: expected 0xFD, got 0x%02X", got)
	}
}

// TestIO_TimerArm tests arming the countdown through TLB/THB/TCR.
func TestIO_TimerArm(t *testing.T) {
	h := NewHardwareControl()

	h.Write(regTLB, 0x00)
	h.Write(regTHB, 0x01) // latch = 0x0100
	if h.TimerRunning() {
		t.Error("Timer running before the enable bit")
	}

	h.Write(regTCR, 0x01)
	if !h.TimerRunning() {
		t.Error("Timer not armed by TCR bit 0")
	}
	if got := h.Read(regTLB); got != 0x00 {
		t.Errorf("TLB after arm: expected 0x00, got 0x%02X", got)
	}
	if got := h.Read(regTHB); got != 0x01 {
		t.Errorf("THB after arm: expected 0x01, got 0x%02X", got)
	}

	h.TimerTick()
	if got := h.Read(regTLB); got != 0xFF {
		t.Errorf("TLB after tick: expected 0xFF, got 0x%02X", got)
	}
	if got := h.Read(regTHB); got != 0x00 {
		t.Errorf("THB after tick: expected 0x00, got 0x%02X", got)
	}

	h.Write(regTCR, 0x00)
	if h.TimerRunning() {
		t.Error("Timer still running after clearing the enable bit")
	}
}

// TestIO_TimerExpiry tests the zero flag, the interrupt line and the reload
// from the latch.
func TestIO_TimerExpiry(t *testing.T) {
	h := NewHardwareControl()

	var line bool
	h.SetTimerIRQHandler(func(asserted bool) { line = asserted })

	h.Write(regTLB, 0x02)
	h.Write(regTHB, 0x00)
	h.Write(regTCR, 0x09) // enable + interrupt enable

	h.TimerTick()
	if line {
		t.Error("Interrupt before expiry")
	}

	h.TimerTick()
	if !line {
		t.Error("Interrupt missing at expiry")
	}
	if h.Read(regTCR)&0x02 == 0 {
		t.Error("Zero flag not set at expiry")
	}
	// Count reloaded from the latch.
	if got := h.Read(regTLB); got != 0x02 {
		t.Errorf("TLB after reload: expected 0x02, got 0x%02X", got)
	}

	// Acknowledging: clear the zero flag, keep the timer configured.
	h.Write(regTCR, 0x0D)
	if h.Read(regTCR)&0x02 != 0 {
		t.Error("Zero flag survived the acknowledge")
	}

	// Disabling the interrupt drops the line.
	h.Write(regTCR, 0x01)
	if line {
		t.Error("Line still asserted with the interrupt disabled")
	}
}

// TestIO_TimerRate tests the TCR rate select bit.
func TestIO_TimerRate(t *testing.T) {
	h := NewHardwareControl()

	if got := h.TimerRate(); got != TimerRateSlow {
		t.Errorf("Rate at reset: expected %d, got %d", TimerRateSlow, got)
	}

	h.Write(regTCR, 0x10)
	if got := h.TimerRate(); got != TimerRateFast {
		t.Errorf("Rate with bit 4: expected %d, got %d", TimerRateFast, got)
	}
}
