package emu

// Character RAM layout (word offsets). The canonical character data lives in
// the first 0x4000 words (2048 characters, 8 rows of 16 bits each). On every
// write the store also regenerates pre-flipped copies of the row in the upper
// regions, so a reader can treat the flip bits of a tile reference as extra
// character-number bits and fetch the correct row with a single lookup.
//
// Tile references are laid out as ccxy -ttt tttt tttt: bits 15-14 select a
// palette register, bit 13 requests horizontal flip, bit 12 vertical flip,
// bit 11 is unused and bits 10-0 are the character number. Multiplying the
// low 14 bits by 8 lands in exactly the right region below.
const (
	charNormalDup = 0x04000 // bit 11 set, unused: plain duplicate
	charFlipY     = 0x08000
	charFlipX     = 0x10000
	charFlipXY    = 0x18000

	charWords = 0x20000
)

// CharacterRAM holds the decoded character (tile) store: 2048 8x8 cells at
// 2 bits per pixel, plus the three pre-baked flip variants of every row.
type CharacterRAM struct {
	words [charWords]uint16
}

// mirrorRow reverses the eight 2-bit pixel slots of a packed character row.
func mirrorRow(row uint16) uint16 {
	var out uint16
	for i := 0; i < 8; i++ {
		out |= ((row >> (2 * i)) & 3) << (2 * (7 - i))
	}
	return out
}

// WriteWord stores one canonical character row word and regenerates the
// corresponding word in all alias regions. offs is the word offset within
// the canonical 0x4000-word window; out-of-range offsets wrap.
func (c *CharacterRAM) WriteWord(offs uint32, data uint16) {
	offs &= 0x3FFF
	c.words[offs] = data
	c.words[offs+charNormalDup] = data
	// Vertical flip swaps row r with row 7-r, which is the same as XORing
	// the low three offset bits.
	c.words[(offs+charFlipY)^7] = data
	c.words[(offs+charFlipY+charNormalDup)^7] = data
	m := mirrorRow(data)
	c.words[offs+charFlipX] = m
	c.words[offs+charFlipX+charNormalDup] = m
	c.words[(offs+charFlipXY)^7] = m
	c.words[(offs+charFlipXY+charNormalDup)^7] = m
}

// ReadWord returns the stored word at offs. The full store, flip regions
// included, is readable; addresses wrap across the 0x20000-word space.
func (c *CharacterRAM) ReadWord(offs uint32) uint16 {
	return c.words[offs&(charWords-1)]
}

// Row returns the packed 16-bit row for a tile reference. code carries the
// flip bits (bit 13 horizontal, bit 12 vertical) on top of the character
// number; row is 0-7. Pixel i of the result is (row >> (2*i)) & 3.
func (c *CharacterRAM) Row(code uint16, row int) uint16 {
	return c.words[(uint32(code)*8+uint32(row))&(charWords-1)]
}

// WriteRow stores one row of the canonical orientation of a character.
// code is masked to the 2048-character space.
func (c *CharacterRAM) WriteRow(code uint16, row int, data uint16) {
	c.WriteWord(uint32(code&0x7FF)*8+uint32(row&7), data)
}

// Pixel decodes one pixel (0-3) from a tile reference, flip bits included.
func (c *CharacterRAM) Pixel(code uint16, x, y int) uint8 {
	return uint8((c.Row(code, y&7) >> ((x & 7) << 1)) & 3)
}
