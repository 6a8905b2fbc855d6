package emu

import "image"

const (
	ScreenWidth  = 384
	ScreenHeight = 224

	// Scanlines per frame. The visible area covers lines 0-223; the
	// interrupt checkpoints at 224/232/240 fall in the blanking tail.
	TotalScanlines = 260

	frameBytes = 0x6000 // one framebuffer: 384 columns * 64 bytes
)

// Interrupt pending/enable bits (INTPND/INTENB).
const (
	IntScanErr    = 0x0001
	IntLFBEnd     = 0x0002
	IntRFBEnd     = 0x0004
	IntGameStart  = 0x0008
	IntFrameStart = 0x0010
	IntSBHit      = 0x2000
	IntXPEnd      = 0x4000
	IntTimeErr    = 0x8000
)

// DPCTRL bits.
const (
	dpctrlDPRST = 0x0001 // resets the VIP internal display counter
	dpctrlDISP  = 0x0002 // master display enable
)

// Eye selects one of the two output views.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

func (e Eye) String() string {
	if e == EyeRight {
		return "right"
	}
	return "left"
}

type vipRegs struct {
	INTPND uint16
	INTENB uint16
	DPCTRL uint16
	BRTA   uint16
	BRTB   uint16
	BRTC   uint16
	REST   uint16
	FRMCYC uint16
	CTA    uint16
	XPSTTS uint16
	XPCTRL uint16
	VER    uint16
	SPT    [4]uint16
	GPLT   [4]uint16
	JPLT   [4]uint16
	BKCOL  uint16
}

// VIP models the video/image processor: character and map stores, the four
// host-visible framebuffers, the register bank and the scanline-driven
// display state machine. Rendering composites the 32-entry world list into a
// per-eye pen bitmap once per frame.
type VIP struct {
	chars CharacterRAM
	vram  MapRAM
	lfb   [2][frameBytes]uint8
	rfb   [2][frameBytes]uint8

	regs vipRegs

	// Pen intensities derived from the brightness registers. Pen 0 is
	// always black; pens 1-3 drive the red channel of the displays.
	palette [4]uint8

	// Display sequencing state.
	frameCount uint16
	displayFB  uint8
	drawFB     uint8
	rowNum     uint8

	// Palette-resolved overflow character, -1 marks transparency.
	ovrDraw [64]int8

	// Per-eye pen bitmaps and their RGBA renditions.
	pens   [2][ScreenWidth * ScreenHeight]uint8
	frames [2]*image.RGBA

	// Legacy path: display the host-written framebuffers directly instead
	// of compositing the world list.
	directFB bool

	irq  func(asserted bool)
	logf func(format string, args ...any)
}

// NewVIP creates a zeroed VIP. The irq hook is invoked with the state of the
// output interrupt line after every pending/enable change; either hook may
// be nil.
func NewVIP() *VIP {
	v := &VIP{
		frames: [2]*image.RGBA{
			image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
			image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		},
		irq:  func(bool) {},
		logf: func(string, ...any) {},
	}
	v.Reset()
	return v
}

// SetIRQHandler installs the interrupt line sink.
func (v *VIP) SetIRQHandler(fn func(asserted bool)) {
	if fn == nil {
		fn = func(bool) {}
	}
	v.irq = fn
}

// SetLogger installs the diagnostic hook used for unmapped accesses and
// configuration inconsistencies. A nil fn silences diagnostics.
func (v *VIP) SetLogger(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	v.logf = fn
}

// Reset restores the documented power-on defaults. RAM contents are
// preserved, matching the hardware (only the register file resets).
func (v *VIP) Reset() {
	v.regs = vipRegs{
		// Games rely on the display being enabled at boot or the first
		// FRAME_START interrupt never fires.
		DPCTRL: dpctrlDISP,
		VER:    2,
	}
	v.frameCount = 0
	v.displayFB = 0
	v.drawFB = 0
	v.rowNum = 0
	v.setBrightness()
}

// SetDirectFramebuffer toggles the legacy display path that decodes the
// host-written framebuffers instead of running the world compositor.
func (v *VIP) SetDirectFramebuffer(on bool) {
	v.directFB = on
}

// InterruptAsserted reports the state of the output interrupt line.
func (v *VIP) InterruptAsserted() bool {
	return v.regs.INTPND&v.regs.INTENB != 0
}

// raiseIRQ ORs bits into the pending state and re-evaluates the line. It is
// also called with 0 after host writes to INTENB/INTCLR so the line always
// tracks (pending & enabled).
func (v *VIP) raiseIRQ(bits uint16) {
	v.regs.INTPND |= bits
	v.irq(v.regs.INTPND&v.regs.INTENB != 0)
}

// CharacterStore exposes the character RAM, primarily for tests and tools.
func (v *VIP) CharacterStore() *CharacterRAM {
	return &v.chars
}

// MapMemory exposes the map RAM, primarily for tests and tools.
func (v *VIP) MapMemory() *MapRAM {
	return &v.vram
}

// PenAt returns the composited 2-bit pen value at (x, y) for an eye.
func (v *VIP) PenAt(eye Eye, x, y int) uint8 {
	return v.pens[eye][y*ScreenWidth+x]
}

// EyeImage returns the RGBA rendition of the last composited frame for an
// eye. The image is reused between frames.
func (v *VIP) EyeImage(eye Eye) *image.RGBA {
	return v.frames[eye]
}

// Palette returns the current pen intensity table.
func (v *VIP) Palette() [4]uint8 {
	return v.palette
}

// FrameBuffer returns one of the four host-visible framebuffers.
func (v *VIP) FrameBuffer(eye Eye, index int) *[frameBytes]uint8 {
	if eye == EyeRight {
		return &v.rfb[index&1]
	}
	return &v.lfb[index&1]
}
