package emu

// Fixed windows inside map memory, in word offsets. The world descriptor
// table, the two palette-override tables and the object attribute table all
// live near the top of the 64K-word space; everything below is background
// map data.
const (
	mapWords = 0x10000

	worldTableBase = 0x1D800 >> 1
	colTable1Base  = 0x1DC00 >> 1
	colTable2Base  = 0x1DE00 >> 1
	objectBase     = 0x1E000 >> 1

	worldCount  = 32
	objectCount = 0x400
)

// MapRAM is the flat word-addressable store backing background maps, world
// descriptors, affine parameter blocks and the object table. Addresses mask
// to the space size: the hardware mirrors rather than faulting.
type MapRAM struct {
	words [mapWords]uint16
}

// Word returns the word at offs, wrapping across the 64K-word space.
func (m *MapRAM) Word(offs uint32) uint16 {
	return m.words[offs&(mapWords-1)]
}

// SetWord stores a word at offs, wrapping across the 64K-word space.
func (m *MapRAM) SetWord(offs uint32, data uint16) {
	m.words[offs&(mapWords-1)] = data
}

// WorldWord returns field word number f of world descriptor w.
func (m *MapRAM) WorldWord(w, f int) uint16 {
	return m.Word(worldTableBase + uint32(w)*16 + uint32(f))
}

// ObjectWord returns field word number f of object table entry i.
func (m *MapRAM) ObjectWord(i, f int) uint16 {
	return m.Word(objectBase + uint32(i&(objectCount-1))*4 + uint32(f))
}
