package emu

import "image/color"

// RenderEye composites one complete frame for the given eye: background
// fill, then the 32-entry world list from 31 down to 0, sharing one sprite
// pointer cursor across all object-mode worlds of the frame. The result
// lands in the per-eye pen bitmap and its RGBA rendition.
func (v *VIP) RenderEye(eye Eye) {
	bm := &v.pens[eye]

	bkcol := uint8(v.regs.BKCOL & 3)
	for i := range bm {
		bm[i] = bkcol
	}

	// Don't bother walking the world list if the display is off.
	if v.regs.DPCTRL&dpctrlDISP != 0 {
		if v.directFB {
			v.drawDirectFrameBuffer(bm, eye)
		} else {
			right := eye == EyeRight
			curSPT := 3
			for i := worldCount - 1; i >= 0; i-- {
				if v.displayWorld(i, bm, right, &curSPT) {
					break
				}
			}
		}
	}

	v.resolveFrame(eye)
}

// drawDirectFrameBuffer decodes the host-written framebuffer for an eye:
// 2-bit pens packed four to a byte, column major (each column is 64 bytes).
func (v *VIP) drawDirectFrameBuffer(bm *[ScreenWidth * ScreenHeight]uint8, eye Eye) {
	fb := &v.lfb[1]
	if eye == EyeRight {
		fb = &v.rfb[1]
	}

	for y := 0; y < ScreenHeight; y++ {
		yi := (y & 3) * 2
		for x := 0; x < ScreenWidth; x++ {
			pen := fb[x*0x40+(y>>2)]
			bm[y*ScreenWidth+x] = (pen >> yi) & 3
		}
	}
}

// resolveFrame converts the pen bitmap to RGBA through the brightness
// palette. The displays are red on black.
func (v *VIP) resolveFrame(eye Eye) {
	img := v.frames[eye]
	bm := &v.pens[eye]

	for i, pen := range bm {
		o := i * 4
		img.Pix[o+0] = v.palette[pen]
		img.Pix[o+1] = 0
		img.Pix[o+2] = 0
		img.Pix[o+3] = 0xFF
	}
}

// PenColor returns the display color of a pen under the current brightness
// settings.
func (v *VIP) PenColor(pen uint8) color.RGBA {
	return color.RGBA{R: v.palette[pen&3], A: 0xFF}
}
