package emu

// World render modes.
const (
	worldModeTile   = 0
	worldModeHBias  = 1
	worldModeAffine = 2
	worldModeObj    = 3
)

/*
World descriptor word 0:

	x--- ---- ---- ----  LON (world visible on the left display)
	-x-- ---- ---- ----  RON (world visible on the right display)
	--xx ---- ---- ----  BGM (render mode)
	---- xx-- ---- ----  SCX (background width, 1/2/4/8 component maps)
	---- --xx ---- ----  SCY (background height)
	---- ---- x--- ----  OVR (overflow character enable)
	---- ---- -x-- ----  END (terminate world list processing)
	---- ---- ---- xxxx  first background map number

Words 1-10: GX, GP, GY, MX, MP, MY, W, H, affine/h-bias parameter base,
overflow character pointer. The remaining five words are unused.
*/
type worldAttr struct {
	lon, ron bool
	mode     int
	ovr      bool
	end      bool

	gx, gp, gy int // destination origin and parallax
	mx, mp, my int // background source origin and parallax
	w, h       int

	xMask, yMask int // background extent in pixels, minus one
	mapBase      int
	paramBase    uint32
	ovrCharPtr   uint16
}

func (v *VIP) readWorld(num int) worldAttr {
	def := v.vram.WorldWord(num, 0)

	scx := 64 << ((def >> 10) & 3)
	scy := 64 << ((def >> 8) & 3)

	return worldAttr{
		lon:        def&0x8000 != 0,
		ron:        def&0x4000 != 0,
		mode:       int(def>>12) & 3,
		ovr:        def&0x0080 != 0,
		end:        def&0x0040 != 0,
		gx:         int(int16(v.vram.WorldWord(num, 1))),
		gp:         int(int16(v.vram.WorldWord(num, 2))),
		gy:         int(int16(v.vram.WorldWord(num, 3))),
		mx:         int(int16(v.vram.WorldWord(num, 4))),
		mp:         int(int16(v.vram.WorldWord(num, 5))),
		my:         int(int16(v.vram.WorldWord(num, 6))),
		w:          int(v.vram.WorldWord(num, 7)),
		h:          int(v.vram.WorldWord(num, 8)),
		xMask:      scx*8 - 1,
		yMask:      scy*8 - 1,
		mapBase:    int(def & 0x0F),
		paramBase:  uint32(v.vram.WorldWord(num, 9) & 0xFFF0),
		ovrCharPtr: v.vram.WorldWord(num, 10),
	}
}

// getBGMapPixel samples one background pixel in map space. Backgrounds are
// built from up to a 4x4 arrangement of 64x64-tile component maps starting
// at mapBase; the step arithmetic picks the component holding (xpos, ypos).
// Returns -1 for transparent pixels, else the resolved pen (0-3).
func (v *VIP) getBGMapPixel(mapBase, xpos, ypos int) int {
	x := xpos >> 3
	y := ypos >> 3

	stepx := (x & 0x1C0) >> 6
	stepy := ((y & 0x1C0) >> 6) * (stepx + 1)
	val := v.vram.Word(uint32((x & 0x3F) + 64*(y&0x3F) + (mapBase+stepx+stepy)*0x1000))

	pal := v.regs.GPLT[(val>>14)&3]
	dat := v.chars.Pixel(val&0x3FFF, xpos&7, ypos&7)
	if dat == 0 {
		return -1
	}
	return int((pal >> (dat * 2)) & 3)
}

// fillOverflowChar resolves the designated overflow character into a
// temporary 8x8 pen buffer consulted for out-of-bounds samples. ref is a
// tile reference word (palette select in the top bits).
func (v *VIP) fillOverflowChar(ref uint16) {
	pal := v.regs.GPLT[(ref>>14)&3]
	code := ref & 0x3FFF

	for yi := 0; yi < 8; yi++ {
		row := v.chars.Row(code, yi)
		for xi := 0; xi < 8; xi++ {
			dat := (row >> (xi << 1)) & 3
			if dat == 0 {
				v.ovrDraw[yi*8+xi] = -1
			} else {
				v.ovrDraw[yi*8+xi] = int8((pal >> (dat * 2)) & 3)
			}
		}
	}
}

// samplePixel applies the overflow-versus-wrap policy shared by the tile and
// affine paths.
func (v *VIP) samplePixel(a *worldAttr, srcX, srcY int) int {
	if a.ovr && (srcX > a.xMask || srcY > a.yMask || srcX < 0 || srcY < 0) {
		return int(v.ovrDraw[(srcY&7)*8+(srcX&7)])
	}
	return v.getBGMapPixel(a.mapBase, srcX&a.xMask, srcY&a.yMask)
}

// drawBGMap renders a tile-mode or h-bias-mode world into the pen bitmap.
// The left eye shifts right by the parallax values, the right eye left.
func (v *VIP) drawBGMap(bm *[ScreenWidth * ScreenHeight]uint8, a *worldAttr, right bool) {
	for y := 0; y <= a.h; y++ {
		y1 := y + a.gy
		if y1 < 0 || y1 > ScreenHeight-1 {
			continue
		}

		srcY := y + a.my

		for x := 0; x <= a.w; x++ {
			x1 := x + a.gx
			if right {
				x1 -= a.gp
			} else {
				x1 += a.gp
			}
			if x1 < 0 || x1 > ScreenWidth-1 {
				continue
			}

			srcX := x + a.mx
			if a.mode == worldModeHBias {
				// Per-row horizontal bias; the left eye reads the odd
				// word of each parameter pair, the right eye the even.
				off := uint32(y * 2)
				if !right {
					off++
				}
				srcX += int(int16(v.vram.Word(a.paramBase + off)))
			}
			if right {
				srcX -= a.mp
			} else {
				srcX += a.mp
			}

			if pix := v.samplePixel(a, srcX, srcY); pix != -1 {
				bm[y1*ScreenWidth+x1] = uint8(pix & 3)
			}
		}
	}
}

// drawAffineMap renders an affine-mode world. Each output row carries five
// fixed-point coefficients in the parameter block: horizontal skew and
// parallax and vertical skew in 1/8 pixel units, horizontal and vertical
// scale in 1/512 units.
func (v *VIP) drawAffineMap(bm *[ScreenWidth * ScreenHeight]uint8, a *worldAttr, right bool) {
	for y := 0; y <= a.h; y++ {
		base := a.paramBase + uint32(y*8)
		hSkw := float64(int16(v.vram.Word(base+0))) / 8.0
		prlx := float64(int16(v.vram.Word(base+1))) / 8.0
		vSkw := float64(int16(v.vram.Word(base+2))) / 8.0
		hScl := float64(int16(v.vram.Word(base+3))) / 512.0
		vScl := float64(int16(v.vram.Word(base+4))) / 512.0

		if right {
			hSkw -= prlx
		} else {
			hSkw += prlx
		}

		y1 := y + a.gy
		if y1 < 0 || y1 > ScreenHeight-1 {
			continue
		}

		for x := 0; x <= a.w; x++ {
			x1 := x + a.gx
			if right {
				x1 -= a.gp
			} else {
				x1 += a.gp
			}
			if x1 < 0 || x1 > ScreenWidth-1 {
				continue
			}

			srcX := int(hSkw + hScl*float64(x))
			srcY := int(vSkw + vScl*float64(x))

			if pix := v.samplePixel(a, srcX, srcY); pix != -1 {
				bm[y1*ScreenWidth+x1] = uint8(pix & 3)
			}
		}
	}
}

// putObj plots one 8x8 object cell at (x, y). Pen 0 is transparent; the
// remaining pens resolve through the given object palette register value.
func (v *VIP) putObj(bm *[ScreenWidth * ScreenHeight]uint8, x, y int, code uint16, pal uint8) {
	for yi := 0; yi < 8; yi++ {
		row := v.chars.Row(code, yi)

		for xi := 0; xi < 8; xi++ {
			dat := (row >> (xi << 1)) & 3
			if dat == 0 {
				continue
			}

			resX := x + xi
			resY := y + yi
			if resX < 0 || resX > ScreenWidth-1 || resY < 0 || resY > ScreenHeight-1 {
				continue
			}

			bm[resY*ScreenWidth+resX] = (pal >> (dat * 2)) & 3
		}
	}
}

/*
Object attribute entry (4 words):

	word 0:  JX, signed x position
	word 1:  JLON | JRON | 14-bit parallax
	word 2:  9-bit y position
	word 3:  palette select | tile reference
*/
func (v *VIP) drawObjects(bm *[ScreenWidth * ScreenHeight]uint8, a *worldAttr, right bool, curSPT *int) {
	if *curSPT < 0 {
		// More object-mode worlds this frame than sprite pointer slots.
		// The hardware tolerates this; the world just contributes nothing.
		v.logf("vip: object world processed with exhausted sprite pointer")
		return
	}

	start := int(v.regs.SPT[*curSPT])
	end := objectCount - 1
	if *curSPT != 0 {
		end = int(v.regs.SPT[*curSPT-1])
	}

	i := start
	for {
		jx := int(int16(v.vram.ObjectWord(i, 0)))
		w1 := v.vram.ObjectWord(i, 1)
		jp := int(w1 & 0x3FFF)
		jy := int(v.vram.ObjectWord(i, 2) & 0x1FF)
		val := v.vram.ObjectWord(i, 3)
		jlon := w1&0x8000 != 0
		jron := w1&0x4000 != 0

		if !right && jlon {
			v.putObj(bm, (jx-jp)&0x1FF, jy, val&0x3FFF, uint8(v.regs.JPLT[(val>>14)&3]))
		}
		if right && jron {
			v.putObj(bm, (jx+jp)&0x1FF, jy, val&0x3FFF, uint8(v.regs.JPLT[(val>>14)&3]))
		}

		i = (i - 1) & (objectCount - 1)
		if i == end {
			break
		}
	}

	if (a.lon && !right) || (a.ron && right) {
		*curSPT--
	}
}

// displayWorld renders one world into the pen bitmap for one eye. Returns
// true when the world's end flag terminates list processing.
func (v *VIP) displayWorld(num int, bm *[ScreenWidth * ScreenHeight]uint8, right bool, curSPT *int) bool {
	a := v.readWorld(num)

	if a.end {
		return true
	}

	switch a.mode {
	case worldModeTile, worldModeHBias:
		if a.ovr {
			v.fillOverflowChar(v.vram.Word(uint32(a.ovrCharPtr)))
		}
		if (a.lon && !right) || (a.ron && right) {
			v.drawBGMap(bm, &a, right)
		}

	case worldModeAffine:
		if a.ovr {
			v.fillOverflowChar(v.vram.Word(uint32(a.ovrCharPtr)))
		}
		if (a.lon && !right) || (a.ron && right) {
			v.drawAffineMap(bm, &a, right)
		}

	case worldModeObj:
		v.drawObjects(bm, &a, right, curSPT)
	}

	return false
}
