package emu

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen presentation helpers for ebiten front ends. The System composites
// into plain RGBA images; these methods move the combined stereo frame onto
// an ebiten screen with aspect-preserving scaling.

type screenPresenter struct {
	offscreen *ebiten.Image
	combined  *image.RGBA
	drawOpts  ebiten.DrawImageOptions
}

// DrawToScreen renders the current stereo frame to the given screen,
// scaled and centered.
func (s *System) DrawToScreen(screen *ebiten.Image, mode DisplayMode) {
	w, h := StereoSize(mode)

	if s.present.offscreen == nil || s.present.offscreen.Bounds().Dx() != w {
		s.present.offscreen = ebiten.NewImage(w, h)
		s.present.combined = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	s.StereoImage(s.present.combined, mode)
	s.present.offscreen.WritePixels(s.present.combined.Pix)

	// Scale to fit the window while preserving aspect ratio.
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(screenW) / float64(w)
	scaleY := float64(screenH) / float64(h)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX := (float64(screenW) - float64(w)*scale) / 2
	offsetY := (float64(screenH) - float64(h)*scale) / 2

	s.present.drawOpts = ebiten.DrawImageOptions{}
	s.present.drawOpts.GeoM.Scale(scale, scale)
	s.present.drawOpts.GeoM.Translate(offsetX, offsetY)
	s.present.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(s.present.offscreen, &s.present.drawOpts)
}

// Layout implements the ebiten.Game layout contract for front ends that
// delegate to the System: returning the window size keeps scaling under
// DrawToScreen's control.
func (s *System) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
