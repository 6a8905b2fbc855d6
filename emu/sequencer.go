package emu

// ScanlineTick advances the display state machine by one scanline. The
// caller drives scanline from 0 through TotalScanlines-1 each frame.
// Checkpoints: FRAME_START and the display buffer swap at line 0 (plus
// GAME_START every FRMCYC+1 frames), XP_END when drawing hands off at 224,
// LFB_END at 232, RFB_END at 240, and SB_HIT whenever the 8-line row
// counter matches the comparison value programmed in XPCTRL.
func (v *VIP) ScanlineTick(scanline int) {
	v.rowNum = uint8(scanline/8) & 0x1F

	if scanline == 0 {
		if v.regs.DPCTRL&dpctrlDISP != 0 {
			v.raiseIRQ(IntFrameStart)
		}

		v.frameCount++
		if v.frameCount > v.regs.FRMCYC {
			v.raiseIRQ(IntGameStart)
			v.frameCount = 0
		}

		if v.regs.DPCTRL&dpctrlDISP != 0 {
			v.displayFB ^= 1
		}
	}

	if scanline == 224 {
		if v.displayFB != 0 {
			v.drawFB = 1
		} else {
			v.drawFB = 2
		}
		v.raiseIRQ(IntXPEnd)
	}

	if scanline == 232 {
		v.drawFB = 0
		v.raiseIRQ(IntLFBEnd)
	}

	if scanline == 240 {
		v.raiseIRQ(IntRFBEnd)
	}

	if v.rowNum == uint8((v.regs.XPCTRL&0x1F00)>>8) {
		v.raiseIRQ(IntSBHit)
	}
}

// DisplayBuffer reports which framebuffer of each pair is being displayed.
func (v *VIP) DisplayBuffer() int {
	return int(v.displayFB)
}

// DrawBuffer reports the draw buffer indicator: 0 when the pixel processor
// is idle, else 1 or 2 naming the buffer being drawn into.
func (v *VIP) DrawBuffer() int {
	return int(v.drawFB)
}

// FrameCounter returns the frame-cycle counter compared against FRMCYC.
func (v *VIP) FrameCounter() int {
	return int(v.frameCount)
}
