package emu

// Programmable timer rates in Hz (TCR bit 4 selects 20us or 100us ticks).
const (
	TimerRateFast = 50000
	TimerRateSlow = 10000
)

// Timer is the 16-bit countdown timer behind TLB/THB/TCR. The TCR enable
// bit arms and stops it; the interrupt enable bit only gates the line.
type Timer struct {
	count   uint16
	latch   uint16
	running bool
}

// TimerRunning reports whether the countdown has been armed.
func (h *HardwareControl) TimerRunning() bool {
	return h.timer.running
}

// TimerRate returns the configured tick rate in Hz.
func (h *HardwareControl) TimerRate() int {
	if h.tcr&0x10 != 0 {
		return TimerRateFast
	}
	return TimerRateSlow
}

// TimerTick advances the countdown by one tick: decrement, mirror the count
// into TLB/THB, and on reaching zero reload from the latch, set the zero
// flag and raise the timer interrupt when enabled.
func (h *HardwareControl) TimerTick() {
	if h.timer.count > 0 {
		h.timer.count--
		h.tlb = uint8(h.timer.count)
		h.thb = uint8(h.timer.count >> 8)
	}

	if h.timer.count == 0 {
		h.timer.count = h.timer.latch
		h.tlb = uint8(h.timer.count)
		h.thb = uint8(h.timer.count >> 8)
		h.tcr |= 0x02
		if h.tcr&0x08 != 0 {
			h.irqTimer(true)
		}
	}
}
