package emu

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// DisplayMode selects how the two eye images are combined for presentation.
type DisplayMode int

const (
	// DisplaySideBySide places the left and right eye images next to each
	// other at native resolution.
	DisplaySideBySide DisplayMode = iota
	// DisplayAnaglyph overlays the eyes for red/cyan glasses: the left eye
	// drives the red channel, the right eye green and blue.
	DisplayAnaglyph
)

// ParseDisplayMode maps a mode name used by front-end flags.
func ParseDisplayMode(name string) (DisplayMode, error) {
	switch name {
	case "sbs", "side-by-side":
		return DisplaySideBySide, nil
	case "anaglyph":
		return DisplayAnaglyph, nil
	default:
		return 0, fmt.Errorf("unknown display mode %q", name)
	}
}

// StereoSize returns the combined image dimensions for a display mode.
func StereoSize(mode DisplayMode) (int, int) {
	if mode == DisplaySideBySide {
		return ScreenWidth * 2, ScreenHeight
	}
	return ScreenWidth, ScreenHeight
}

// StereoImage combines the last composited eye images into dst according to
// the display mode. dst must have the StereoSize dimensions; a nil dst
// allocates a fresh image. Returns dst.
func (s *System) StereoImage(dst *image.RGBA, mode DisplayMode) *image.RGBA {
	w, h := StereoSize(mode)
	if dst == nil {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	left := s.vip.frames[EyeLeft]
	right := s.vip.frames[EyeRight]

	switch mode {
	case DisplaySideBySide:
		draw.Draw(dst, image.Rect(0, 0, ScreenWidth, ScreenHeight), left, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(ScreenWidth, 0, 2*ScreenWidth, ScreenHeight), right, image.Point{}, draw.Src)

	case DisplayAnaglyph:
		for i := 0; i < ScreenWidth*ScreenHeight; i++ {
			o := i * 4
			cyan := right.Pix[o] // right eye red channel becomes G+B
			dst.Pix[o+0] = left.Pix[o]
			dst.Pix[o+1] = cyan
			dst.Pix[o+2] = cyan
			dst.Pix[o+3] = 0xFF
		}
	}

	return dst
}

// WritePNG renders the current stereo frame as a PNG, upscaled by the given
// integer factor with nearest-neighbor sampling.
func (s *System) WritePNG(w io.Writer, mode DisplayMode, scale int) error {
	if scale < 1 {
		scale = 1
	}

	src := s.StereoImage(nil, mode)

	out := src
	if scale > 1 {
		b := src.Bounds()
		out = image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(out, out.Bounds(), src, b, draw.Src, nil)
	}

	return png.Encode(w, out)
}
