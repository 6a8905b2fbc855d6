package emu

// Register bank decode. Each mapped word offset carries an explicit
// getter/setter pair so the per-register contracts (reserved-bit masks,
// write side effects, derived read-only composites) are testable in
// isolation. Unmapped offsets fall through to the diagnostic hook.

type regOp struct {
	name  string
	read  func(v *VIP) uint16       // nil: write-only
	write func(v *VIP, data uint16) // nil: read-only
}

var vipRegOps [0x40]*regOp

func init() {
	reg := func(byteOff uint32, op regOp) {
		vipRegOps[byteOff>>1] = &op
	}

	reg(0x00, regOp{
		name: "INTPND",
		read: func(v *VIP) uint16 { return v.regs.INTPND },
	})
	reg(0x02, regOp{
		name: "INTENB",
		read: func(v *VIP) uint16 { return v.regs.INTENB },
		write: func(v *VIP, data uint16) {
			v.regs.INTENB = data
			v.raiseIRQ(0)
		},
	})
	reg(0x04, regOp{
		name: "INTCLR",
		write: func(v *VIP, data uint16) {
			v.regs.INTPND &^= data
			v.raiseIRQ(0)
		},
	})
	reg(0x20, regOp{
		name: "DPSTTS",
		read: (*VIP).readDPSTTS,
	})
	reg(0x22, regOp{
		name: "DPCTRL",
		read: func(v *VIP) uint16 { return v.regs.DPCTRL },
		write: func(v *VIP, data uint16) {
			v.regs.DPCTRL = data & 0x0702
			if data&dpctrlDPRST != 0 {
				// Display reset clears the frame-side interrupts.
				v.regs.INTPND &= 0xE000
				v.raiseIRQ(0)
			}
		},
	})
	brt := func(byteOff uint32, name string, field func(v *VIP) *uint16) {
		reg(byteOff, regOp{
			name: name,
			read: func(v *VIP) uint16 { return *field(v) },
			write: func(v *VIP, data uint16) {
				*field(v) = data
				v.setBrightness()
			},
		})
	}
	brt(0x24, "BRTA", func(v *VIP) *uint16 { return &v.regs.BRTA })
	brt(0x26, "BRTB", func(v *VIP) *uint16 { return &v.regs.BRTB })
	brt(0x28, "BRTC", func(v *VIP) *uint16 { return &v.regs.BRTC })
	brt(0x2A, "REST", func(v *VIP) *uint16 { return &v.regs.REST })
	reg(0x2E, regOp{
		name:  "FRMCYC",
		read:  func(v *VIP) uint16 { return v.regs.FRMCYC },
		write: func(v *VIP, data uint16) { v.regs.FRMCYC = data },
	})
	reg(0x30, regOp{
		name:  "CTA",
		read:  func(v *VIP) uint16 { return v.regs.CTA },
		write: func(v *VIP, data uint16) { v.regs.CTA = data },
	})
	reg(0x40, regOp{
		name: "XPSTTS",
		read: (*VIP).readXPSTTS,
	})
	reg(0x42, regOp{
		name: "XPCTRL",
		read: func(v *VIP) uint16 { return v.regs.XPCTRL },
		write: func(v *VIP, data uint16) {
			v.regs.XPCTRL = data & 0x1F02
			if data&1 != 0 {
				// Pixel processor reset clears the drawing-side interrupts.
				v.regs.INTPND &= 0x1FFF
				v.raiseIRQ(0)
			}
		},
	})
	reg(0x44, regOp{
		name: "VER",
		read: func(v *VIP) uint16 { return v.regs.VER },
	})
	for i := 0; i < 4; i++ {
		i := i
		reg(0x48+uint32(i)*2, regOp{
			name:  "SPT",
			read:  func(v *VIP) uint16 { return v.regs.SPT[i] },
			write: func(v *VIP, data uint16) { v.regs.SPT[i] = data & 0x3FF },
		})
		reg(0x60+uint32(i)*2, regOp{
			name:  "GPLT",
			read:  func(v *VIP) uint16 { return v.regs.GPLT[i] },
			write: func(v *VIP, data uint16) { v.regs.GPLT[i] = data },
		})
		reg(0x68+uint32(i)*2, regOp{
			name:  "JPLT",
			read:  func(v *VIP) uint16 { return v.regs.JPLT[i] },
			write: func(v *VIP, data uint16) { v.regs.JPLT[i] = data & 0xFC },
		})
	}
	reg(0x70, regOp{
		name:  "BKCOL",
		read:  func(v *VIP) uint16 { return v.regs.BKCOL },
		write: func(v *VIP, data uint16) { v.regs.BKCOL = data & 3 },
	})
}

// ReadReg reads the VIP register at the given byte offset within the
// register window. Unmapped or write-only offsets are logged and read as
// 0xFFFF, never faulted.
func (v *VIP) ReadReg(byteOff uint32) uint16 {
	op := vipRegOps[(byteOff&0x7F)>>1]
	if op == nil || op.read == nil {
		v.logf("vip: unemulated register read at +0x%02X", byteOff&0x7F)
		return 0xFFFF
	}
	return op.read(v)
}

// WriteReg writes the VIP register at the given byte offset within the
// register window. Unmapped or read-only offsets are logged and ignored.
func (v *VIP) WriteReg(byteOff uint32, data uint16) {
	op := vipRegOps[(byteOff&0x7F)>>1]
	if op == nil || op.write == nil {
		v.logf("vip: unemulated register write at +0x%02X, data %04X", byteOff&0x7F, data)
		return
	}
	op.write(v, data)
}

/*
DPSTTS:

	---- -x-- ---- ----  LOCK (column table address lock)
	---- --x- ---- ----  SYNCE (sync signal enable)
	---- ---x ---- ----  RE (memory refresh cycle)
	---- ---- -x-- ----  SCANRDY (active low)
	---- ---- --xx xx--  DPBSY (which framebuffer pair is being displayed)
	---- ---- ---- --x-  DISP
*/
func (v *VIP) readDPSTTS() uint16 {
	res := v.regs.DPCTRL & 0x0702

	if v.regs.DPCTRL&dpctrlDISP != 0 && v.rowNum < ScreenHeight/8 {
		if v.displayFB == 0 {
			res |= 0x0C
		} else {
			res |= 0x30
		}
	}

	res |= 0x40
	return res
}

/*
XPSTTS:

	x--- ---- ---- ----  SBOUT (a row is being transferred)
	---x xxxx ---- ----  SBCOUNT (row currently being processed)
	---- ---- ---x ----  OVERTIME
	---- ---- ---- x---  XPBSY1
	---- ---- ---- -x--  XPBSY0
	---- ---- ---- --x-  XPEN
	---- ---- ---- ---x  XPRST
*/
func (v *VIP) readXPSTTS() uint16 {
	res := v.regs.XPSTTS & 0x00F3
	res |= uint16(v.drawFB) << 2

	if v.rowNum < ScreenHeight/8 {
		res |= 0x8000
		res |= uint16(v.rowNum) << 8
	}

	return res
}

// setBrightness recomputes the pen palette from the brightness registers.
// The three channels accumulate: pen 2 adds BRTB on top of BRTA, pen 3 adds
// BRTC on top of both, each scaled into 0-255 and saturated. The curve is
// not bit-exact to hardware; REST is currently ignored, as the measured
// behavior is undocumented.
func (v *VIP) setBrightness() {
	clamp := func(n int) uint8 {
		if n < 0 {
			return 0
		}
		if n > 0xFF {
			return 0xFF
		}
		return uint8(n)
	}
	a := int(v.regs.BRTA)
	b := int(v.regs.BRTA) + int(v.regs.BRTB)
	c := int(v.regs.BRTA) + int(v.regs.BRTB) + int(v.regs.BRTC)

	v.palette[0] = 0
	v.palette[1] = clamp(0xFF * a / 0x80)
	v.palette[2] = clamp(0xFF * b / 0x80)
	v.palette[3] = clamp(0xFF * c / 0x80)
}
