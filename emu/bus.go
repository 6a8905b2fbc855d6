package emu

/*
Host-facing VIP address map (byte offsets):

    0x00000-0x05FFF  left framebuffer 0
    0x06000-0x07FFF  characters 0-511
    0x08000-0x0DFFF  left framebuffer 1
    0x0E000-0x0FFFF  characters 512-1023
    0x10000-0x15FFF  right framebuffer 0
    0x16000-0x17FFF  characters 1024-1535
    0x18000-0x1DFFF  right framebuffer 1
    0x1E000-0x1FFFF  characters 1536-2047
    0x20000-0x3FFFF  map memory (64K words)
    0x5F800-0x5F87F  register bank
    0x78000-0x7FFFF  characters mirror
*/

// Read16 reads a 16-bit word from the VIP address space. Unrecognized
// addresses are logged and read as zero.
func (v *VIP) Read16(addr uint32) uint16 {
	addr &= 0x0007FFFE

	switch {
	case addr < 0x06000:
		return fbRead16(&v.lfb[0], addr)
	case addr < 0x08000:
		return v.chars.ReadWord((addr - 0x06000) >> 1)
	case addr < 0x0E000:
		return fbRead16(&v.lfb[1], addr-0x08000)
	case addr < 0x10000:
		return v.chars.ReadWord(0x1000 + (addr-0x0E000)>>1)
	case addr < 0x16000:
		return fbRead16(&v.rfb[0], addr-0x10000)
	case addr < 0x18000:
		return v.chars.ReadWord(0x2000 + (addr-0x16000)>>1)
	case addr < 0x1E000:
		return fbRead16(&v.rfb[1], addr-0x18000)
	case addr < 0x20000:
		return v.chars.ReadWord(0x3000 + (addr-0x1E000)>>1)
	case addr < 0x40000:
		return v.vram.Word((addr - 0x20000) >> 1)
	case addr >= 0x5F800 && addr < 0x5F880:
		return v.ReadReg(addr - 0x5F800)
	case addr >= 0x78000:
		return v.chars.ReadWord((addr - 0x78000) >> 1)
	default:
		v.logf("vip: unmapped read at 0x%05X", addr)
		return 0
	}
}

// Write16 writes a 16-bit word into the VIP address space. Unrecognized
// addresses are logged and ignored.
func (v *VIP) Write16(addr uint32, data uint16) {
	addr &= 0x0007FFFE

	switch {
	case addr < 0x06000:
		fbWrite16(&v.lfb[0], addr, data)
	case addr < 0x08000:
		v.chars.WriteWord((addr-0x06000)>>1, data)
	case addr < 0x0E000:
		fbWrite16(&v.lfb[1], addr-0x08000, data)
	case addr < 0x10000:
		v.chars.WriteWord(0x1000+(addr-0x0E000)>>1, data)
	case addr < 0x16000:
		fbWrite16(&v.rfb[0], addr-0x10000, data)
	case addr < 0x18000:
		v.chars.WriteWord(0x2000+(addr-0x16000)>>1, data)
	case addr < 0x1E000:
		fbWrite16(&v.rfb[1], addr-0x18000, data)
	case addr < 0x20000:
		v.chars.WriteWord(0x3000+(addr-0x1E000)>>1, data)
	case addr < 0x40000:
		v.vram.SetWord((addr-0x20000)>>1, data)
	case addr >= 0x5F800 && addr < 0x5F880:
		v.WriteReg(addr-0x5F800, data)
	case addr >= 0x78000:
		v.chars.WriteWord((addr-0x78000)>>1, data)
	default:
		v.logf("vip: unmapped write at 0x%05X, data %04X", addr, data)
	}
}

// Read8 reads a single byte from the VIP address space.
func (v *VIP) Read8(addr uint32) uint8 {
	w := v.Read16(addr)
	if addr&1 != 0 {
		return uint8(w >> 8)
	}
	return uint8(w)
}

// Write8 writes a single byte into the VIP address space using a
// read-modify-write of the containing word.
func (v *VIP) Write8(addr uint32, data uint8) {
	w := v.Read16(addr)
	if addr&1 != 0 {
		w = uint16(data)<<8 | (w & 0x00FF)
	} else {
		w = (w & 0xFF00) | uint16(data)
	}
	v.Write16(addr, w)
}

func fbRead16(fb *[frameBytes]uint8, off uint32) uint16 {
	return uint16(fb[off]) | uint16(fb[off+1])<<8
}

func fbWrite16(fb *[frameBytes]uint8, off uint32, data uint16) {
	fb[off] = uint8(data)
	fb[off+1] = uint8(data >> 8)
}
