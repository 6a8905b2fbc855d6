// Package demo programs a built-in test scene into the VIP through its
// host-facing bus, standing in for a CPU when the viewer runs without a
// memory image. The scene exercises all three world types: a scrolling
// tile background, an affine-rotated layer and a ring of objects.
package demo

import (
	"math"

	"github.com/user-none/evue/emu"
)

const (
	vipRegBase = 0x5F800

	regINTENB = 0x02
	regDPCTRL = 0x22
	regBRTA   = 0x24
	regBRTB   = 0x26
	regBRTC   = 0x28
	regGPLT0  = 0x60
	regJPLT0  = 0x68
	regSPT0   = 0x48

	charBase   = 0x06000
	mapBase    = 0x20000
	worldBase  = 0x3D800
	objectBase = 0x3E000

	// Affine parameter block, placed in otherwise unused map memory.
	affineParams = 0x8000 // word offset within map memory
)

// Scene owns the demo state advanced once per frame.
type Scene struct {
	sys   *emu.System
	frame int
}

// Install writes the static parts of the scene and returns it.
func Install(sys *emu.System) *Scene {
	s := &Scene{sys: sys}
	v := sys.VIP()

	reg := func(off, data uint32) { v.Write16(vipRegBase+off, uint16(data)) }

	reg(regBRTA, 0x20)
	reg(regBRTB, 0x20)
	reg(regBRTC, 0x40)
	reg(regGPLT0, 0xE4) // identity pen mapping
	reg(regJPLT0, 0xE4)
	reg(regDPCTRL, 0x0002)

	s.writeChars()
	s.writeMap()
	s.writeWorlds()
	s.writeObjects()

	return s
}

// writeChars defines three characters: a frame, a diamond and a ramp.
func (s *Scene) writeChars() {
	v := s.sys.VIP()

	packRow := func(pix [8]uint16) uint16 {
		var row uint16
		for i, p := range pix {
			row |= (p & 3) << (2 * i)
		}
		return row
	}

	for y := 0; y < 8; y++ {
		// Character 1: single-pen border frame.
		var frame [8]uint16
		for x := 0; x < 8; x++ {
			if x == 0 || x == 7 || y == 0 || y == 7 {
				frame[x] = 3
			}
		}
		v.Write16(charBase+uint32(1*16+y*2), packRow(frame))

		// Character 2: filled diamond, brighter towards the center.
		var diamond [8]uint16
		for x := 0; x < 8; x++ {
			d := abs(x*2-7) + abs(y*2-7)
			switch {
			case d <= 4:
				diamond[x] = 3
			case d <= 7:
				diamond[x] = 2
			case d <= 10:
				diamond[x] = 1
			}
		}
		v.Write16(charBase+uint32(2*16+y*2), packRow(diamond))

		// Character 3: vertical intensity ramp.
		var ramp [8]uint16
		for x := 0; x < 8; x++ {
			ramp[x] = uint16(y/2) & 3
		}
		v.Write16(charBase+uint32(3*16+y*2), packRow(ramp))
	}
}

// writeMap fills background map 0 with a checkerboard of the three
// characters, flipping every other diamond for variety.
func (s *Scene) writeMap() {
	v := s.sys.VIP()

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			var ref uint16
			switch {
			case (x+y)%2 == 0:
				ref = 2
				if x%4 == 0 {
					ref |= 0x2000 // horizontal flip
				}
			case y%8 == 0:
				ref = 3
			default:
				ref = 1
			}
			v.Write16(mapBase+uint32((y*64+x)*2), ref)
		}
	}
}

func (s *Scene) writeWorlds() {
	v := s.sys.VIP()

	world := func(num int, words []uint16) {
		base := uint32(worldBase + num*32)
		for i, w := range words {
			v.Write16(base+uint32(i*2), w)
		}
	}

	// World 31: full-screen tile background with a small parallax split.
	world(31, []uint16{
		0xC000,  // LON | RON, tile mode, 64x64 map 0
		0, 2, 0, // GX, GP, GY
		0, 1, 0, // MX, MP, MY
		383, 223, // W, H
		0, 0,
	})

	// World 30: affine layer, updated per frame.
	world(30, []uint16{
		0xE000,    // LON | RON, affine mode
		96, 4, 48, // GX, GP, GY
		0, 0, 0,
		191, 127, // W, H
		affineParams, 0,
	})

	// World 29: object ring.
	world(29, []uint16{0xF000})

	// World 28: end of list; nothing below is processed.
	world(28, []uint16{0x0040})

	// Sprite pointers: the ring occupies object entries 1-15.
	v.Write16(vipRegBase+regSPT0+6, 15) // SPT3
}

func (s *Scene) writeObjects() {
	v := s.sys.VIP()

	for i := 1; i <= 15; i++ {
		angle := float64(i) / 15 * 2 * math.Pi
		x := 184 + int(math.Cos(angle)*80)
		y := 104 + int(math.Sin(angle)*60)

		base := uint32(objectBase + i*8)
		v.Write16(base+0, uint16(int16(x)))
		v.Write16(base+2, 0xC000|uint16(i%4)) // both eyes, small parallax
		v.Write16(base+4, uint16(y)&0x1FF)
		v.Write16(base+6, 2) // diamond character
	}
}

// Advance animates the scene: scrolls the tile layer, spins the affine
// layer and strobes the keypad latch the way game code does each frame.
func (s *Scene) Advance() {
	s.frame++
	v := s.sys.VIP()

	// Scroll the backdrop.
	v.Write16(worldBase+31*32+8, uint16(s.frame/2)) // world 31 MX

	// Rotate and breathe the affine layer around the map origin.
	angle := float64(s.frame) / 120 * 2 * math.Pi
	zoom := 1.2 + 0.5*math.Sin(float64(s.frame)/90)
	cos := math.Cos(angle) * zoom
	sin := math.Sin(angle) * zoom

	for row := 0; row < 128; row++ {
		base := uint32(0x20000 + affineParams*2 + uint32(row*16))
		fy := float64(row) - 64

		v.Write16(base+0, uint16(int16((-96*cos+fy*sin+256)*8))) // h skew
		v.Write16(base+2, 0)                                     // parallax
		v.Write16(base+4, uint16(int16((-96*sin-fy*cos+256)*8))) // v skew
		v.Write16(base+6, uint16(int16(cos*512)))                // h scale
		v.Write16(base+8, uint16(int16(sin*512)))                // v scale
	}

	// Latch the pad so KLB/KHB reflect the viewer's input.
	s.sys.Hardware().Write(0x28, 0x04)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
