package emu

// Hardware control register offsets (byte offsets at 4-byte stride within
// the 0x02000000 window).
const (
	regLPC  = 0x00 // link port control
	regLPC2 = 0x04
	regLPT  = 0x08 // link port transmit
	regLPR  = 0x0C // link port receive
	regKLB  = 0x10 // keypad low byte
	regKHB  = 0x14 // keypad high byte
	regTLB  = 0x18 // timer low byte
	regTHB  = 0x1C // timer high byte
	regTCR  = 0x20 // timer control
	regWCR  = 0x24 // wait state control
	regKCR  = 0x28 // keypad control
)

// Keypad bits as latched into KLB/KHB.
const (
	PadLowBattery = 0x0001
	PadA          = 0x0004
	PadB          = 0x0008
	PadR          = 0x0010
	PadL          = 0x0020
	PadRightUp    = 0x0040
	PadRightRight = 0x0080
	PadLeftRight  = 0x0100
	PadLeftLeft   = 0x0200
	PadLeftDown   = 0x0400
	PadLeftUp     = 0x0800
	PadStart      = 0x1000
	PadSelect     = 0x2000
	PadRightLeft  = 0x4000
	PadRightDown  = 0x8000
)

// HardwareControl models the keypad/timer/wait-state register file. The
// link port is unemulated; accesses to it go to the diagnostic hook.
type HardwareControl struct {
	klb, khb uint8 // latched keypad state
	tlb, thb uint8 // timer count as visible to the host
	tcr      uint8
	wcr      uint8
	kcr      uint8

	timer Timer

	// Live pad state, latched into KLB/KHB by a KCR strobe.
	input uint16

	irqTimer func(asserted bool)
	logf     func(format string, args ...any)
}

// NewHardwareControl creates the register file with power-on defaults.
func NewHardwareControl() *HardwareControl {
	h := &HardwareControl{
		irqTimer: func(bool) {},
		logf:     func(string, ...any) {},
	}
	h.Reset()
	return h
}

// SetTimerIRQHandler installs the programmable timer interrupt line sink.
func (h *HardwareControl) SetTimerIRQHandler(fn func(asserted bool)) {
	if fn == nil {
		fn = func(bool) {}
	}
	h.irqTimer = fn
}

// SetLogger installs the diagnostic hook.
func (h *HardwareControl) SetLogger(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	h.logf = fn
}

// Reset restores the documented power-on register values.
func (h *HardwareControl) Reset() {
	h.klb = 0
	h.khb = 0
	h.tlb = 0xFF
	h.thb = 0xFF
	h.tcr = 0xE4
	h.wcr = 0xFC
	h.kcr = 0x4C | 0x80
	h.timer = Timer{}
}

// SetInput updates the live pad state. Bit 1 reads as always set on real
// hardware.
func (h *HardwareControl) SetInput(buttons uint16) {
	h.input = buttons | 0x0002
}

// PadInterruptEnabled reports whether the per-frame pad-ready interrupt is
// ungated (KCR bit 7 clear).
func (h *HardwareControl) PadInterruptEnabled() bool {
	return h.kcr&0x80 == 0
}

// Read reads a hardware control register by byte offset.
func (h *HardwareControl) Read(off uint32) uint32 {
	switch off & 0x3C {
	case regKLB:
		return uint32(h.klb)
	case regKHB:
		return uint32(h.khb)
	case regTLB:
		return uint32(h.tlb)
	case regTHB:
		return uint32(h.thb)
	case regTCR:
		return uint32(h.tcr)
	case regWCR:
		return uint32(h.wcr)
	case regKCR:
		return uint32(h.kcr) | 0x4C
	default:
		h.logf("io: unemulated read at offset 0x%02X", off&0x3C)
		return 0
	}
}

// Write writes a hardware control register by byte offset.
func (h *HardwareControl) Write(off uint32, data uint32) {
	switch off & 0x3C {
	case regLPR, regKLB, regKHB:
		// Read-only; silently ignored like the hardware.

	case regTLB:
		h.tlb = uint8(data)
		h.timer.latch = uint16(h.tlb) | (h.timer.latch & 0xFF00)

	case regTHB:
		h.thb = uint8(data)
		h.timer.latch = uint16(h.thb)<<8 | (h.timer.latch & 0x00FF)

	case regTCR:
		h.writeTCR(uint8(data))

	case regWCR:
		// Bits 2-7 unused, read back as 1.
		h.wcr = uint8(data) | 0xFC

	case regKCR:
		if data&0x04 != 0 {
			h.klb = uint8(h.input)
			h.khb = uint8(h.input >> 8)
		}
		if data&0x01 != 0 {
			h.klb = 0
			h.khb = 0
		}
		// Bits 6 and 3 unused and set, bit 1 read-only.
		h.kcr = (uint8(data) | 0x48) & 0xFD

	default:
		h.logf("io: unemulated write at offset 0x%02X, data %04X", off&0x3C, data)
	}
}

/*
TCR:

	111- ----  always 1
	---x ----  timer rate select (1 = 20us, 0 = 100us)
	---- x---  timer interrupt enable
	---- -x--  clears the timer zero flag
	---- --x-  timer zero flag (read-only)
	---- ---x  enables the timer
*/
func (h *HardwareControl) writeTCR(data uint8) {
	if data&0x08 == 0 {
		h.irqTimer(false)
	}

	if data&0x01 != 0 {
		h.tlb = uint8(h.timer.latch)
		h.thb = uint8(h.timer.latch >> 8)
		h.timer.count = h.timer.latch

		if h.tcr&0x01 == 0 {
			h.timer.running = true
		}
	} else {
		h.timer.running = false
	}

	h.tcr = (data & 0xFD) | 0xE4 | (h.tcr & 0x02)
	if data&0x04 != 0 {
		h.tcr &^= 0x02
	}
}
