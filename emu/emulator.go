package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

const (
	Name    = "eVUE"
	Version = "0.1.0"

	// Frame rate of the display servo. The real unit runs at 50.2 Hz;
	// the integer rate keeps the frame loop and the timer fixed-point
	// arithmetic simple.
	FPS = 50
)

// Interrupt request lines as seen by the host CPU.
const (
	IRQLinePad   = 0
	IRQLineTimer = 1
	IRQLineVIP   = 4
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eVUESavState"
	stateHeaderSize = 18 // magic(12) + version(2) + dataCRC(4)
)

// System aggregates the VIP, the hardware control register file and the
// programmable timer into one host-programmable device. The host CPU is
// external: it sees the device through Read/Write on the two memory-mapped
// windows and through the interrupt line callback.
type System struct {
	vip *VIP
	hc  *HardwareControl

	irq func(line int, asserted bool)

	// Fixed-point (16 fractional bits) accumulator distributing timer
	// ticks across scanlines.
	timerAccumFP int

	present screenPresenter
}

// NewSystem creates and wires the device aggregate.
func NewSystem() *System {
	s := &System{
		vip: NewVIP(),
		hc:  NewHardwareControl(),
		irq: func(int, bool) {},
	}
	s.vip.SetIRQHandler(func(asserted bool) { s.irq(IRQLineVIP, asserted) })
	s.hc.SetTimerIRQHandler(func(asserted bool) { s.irq(IRQLineTimer, asserted) })
	return s
}

// SetIRQHandler installs the interrupt sink shared by all device lines.
func (s *System) SetIRQHandler(fn func(line int, asserted bool)) {
	if fn == nil {
		fn = func(int, bool) {}
	}
	s.irq = fn
}

// SetLogger installs the diagnostic hook on every component.
func (s *System) SetLogger(fn func(format string, args ...any)) {
	s.vip.SetLogger(fn)
	s.hc.SetLogger(fn)
}

// Reset restores power-on defaults. RAM contents survive, as on hardware.
func (s *System) Reset() {
	s.vip.Reset()
	s.hc.Reset()
	s.timerAccumFP = 0
}

// VIP returns the video processor.
func (s *System) VIP() *VIP {
	return s.vip
}

// Hardware returns the keypad/timer/wait-state register file.
func (s *System) Hardware() *HardwareControl {
	return s.hc
}

// SetInput updates the live pad state (a PadXXX bitmask).
func (s *System) SetInput(buttons uint16) {
	s.hc.SetInput(buttons)
}

// RunFrame advances the device by one video frame: 260 scanline ticks with
// programmable timer ticks interleaved, the per-frame pad-ready interrupt,
// then composition of both eye images.
func (s *System) RunFrame() {
	for line := 0; line < TotalScanlines; line++ {
		s.vip.ScanlineTick(line)
		s.runTimer()
	}

	// Pad ready fires once per frame when ungated; the line is pulsed
	// rather than latched.
	if s.hc.PadInterruptEnabled() {
		s.irq(IRQLinePad, true)
		s.irq(IRQLinePad, false)
	}

	s.vip.RenderEye(EyeLeft)
	s.vip.RenderEye(EyeRight)
}

// runTimer distributes timer ticks over scanlines at the configured rate.
func (s *System) runTimer() {
	if !s.hc.TimerRunning() {
		return
	}

	s.timerAccumFP += (s.hc.TimerRate() << 16) / (FPS * TotalScanlines)
	for s.timerAccumFP >= 1<<16 {
		s.hc.TimerTick()
		s.timerAccumFP -= 1 << 16
	}
}

// =============================================================================
// Save State Serialization
// =============================================================================

// SerializeSize returns the total size in bytes needed for a save state.
func SerializeSize() int {
	return stateHeaderSize +
		charWords*2 + // character store, flip variants included
		mapWords*2 + // map memory
		4*frameBytes + // both framebuffer pairs
		25*2 + // VIP register bank
		2 + // frame counter
		3 + // displayFB, drawFB, rowNum
		7 + // hardware control registers
		2 + // live input
		4 + // timer count + latch
		1 // timer running
}

// Serialize creates a save state and returns it as a byte slice.
func (s *System) Serialize() ([]byte, error) {
	data := make([]byte, SerializeSize())

	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	// Data CRC is written last.

	offset := stateHeaderSize
	offset = s.serializeVIP(data, offset)
	offset = s.serializeHardware(data, offset)
	_ = offset

	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[14:18], dataCRC)

	return data, nil
}

// Deserialize restores device state from a save state byte slice.
func (s *System) Deserialize(data []byte) error {
	if err := s.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize
	offset = s.deserializeVIP(data, offset)
	s.deserializeHardware(data, offset)

	// Derived state: pen palette and the interrupt line both follow from
	// the restored registers.
	s.vip.setBrightness()
	s.vip.raiseIRQ(0)

	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (s *System) VerifyState(data []byte) error {
	if len(data) < SerializeSize() {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[14:18])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}

func (s *System) serializeVIP(data []byte, offset int) int {
	v := s.vip

	for _, w := range v.chars.words {
		binary.LittleEndian.PutUint16(data[offset:], w)
		offset += 2
	}
	for _, w := range v.vram.words {
		binary.LittleEndian.PutUint16(data[offset:], w)
		offset += 2
	}
	for i := 0; i < 2; i++ {
		offset += copy(data[offset:], v.lfb[i][:])
		offset += copy(data[offset:], v.rfb[i][:])
	}

	for _, w := range v.regWords() {
		binary.LittleEndian.PutUint16(data[offset:], *w)
		offset += 2
	}

	binary.LittleEndian.PutUint16(data[offset:], v.frameCount)
	offset += 2
	data[offset] = v.displayFB
	offset++
	data[offset] = v.drawFB
	offset++
	data[offset] = v.rowNum
	offset++

	return offset
}

func (s *System) deserializeVIP(data []byte, offset int) int {
	v := s.vip

	for i := range v.chars.words {
		v.chars.words[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}
	for i := range v.vram.words {
		v.vram.words[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}
	for i := 0; i < 2; i++ {
		offset += copy(v.lfb[i][:], data[offset:offset+frameBytes])
		offset += copy(v.rfb[i][:], data[offset:offset+frameBytes])
	}

	regs := v.regWords()
	for _, w := range regs {
		*w = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}

	v.frameCount = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	v.displayFB = data[offset]
	offset++
	v.drawFB = data[offset]
	offset++
	v.rowNum = data[offset]
	offset++

	return offset
}

// regWords lists the register bank fields in serialization order.
func (v *VIP) regWords() []*uint16 {
	r := &v.regs
	out := []*uint16{
		&r.INTPND, &r.INTENB, &r.DPCTRL,
		&r.BRTA, &r.BRTB, &r.BRTC, &r.REST,
		&r.FRMCYC, &r.CTA, &r.XPSTTS, &r.XPCTRL, &r.VER,
	}
	for i := range r.SPT {
		out = append(out, &r.SPT[i])
	}
	for i := range r.GPLT {
		out = append(out, &r.GPLT[i])
	}
	for i := range r.JPLT {
		out = append(out, &r.JPLT[i])
	}
	return append(out, &r.BKCOL)
}

func (s *System) serializeHardware(data []byte, offset int) int {
	h := s.hc

	for _, b := range []uint8{h.klb, h.khb, h.tlb, h.thb, h.tcr, h.wcr, h.kcr} {
		data[offset] = b
		offset++
	}

	binary.LittleEndian.PutUint16(data[offset:], h.input)
	offset += 2
	binary.LittleEndian.PutUint16(data[offset:], h.timer.count)
	offset += 2
	binary.LittleEndian.PutUint16(data[offset:], h.timer.latch)
	offset += 2
	if h.timer.running {
		data[offset] = 1
	} else {
		data[offset] = 0
	}
	offset++

	return offset
}

func (s *System) deserializeHardware(data []byte, offset int) int {
	h := s.hc

	for _, b := range []*uint8{&h.klb, &h.khb, &h.tlb, &h.thb, &h.tcr, &h.wcr, &h.kcr} {
		*b = data[offset]
		offset++
	}

	h.input = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	h.timer.count = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	h.timer.latch = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	h.timer.running = data[offset] != 0
	offset++

	return offset
}
