// Package cli provides a command-line runner for the emulator.
// It handles input polling and runs the emulator in a window without any
// further UI chrome.
package cli

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/evue/demo"
	"github.com/user-none/evue/emu"
)

// Runner wraps a system for command-line mode. It polls input each frame
// and passes it to the emulator via SetInput(); the emulator never reads
// the host's devices itself.
type Runner struct {
	sys   *emu.System
	scene *demo.Scene
	mode  emu.DisplayMode
}

// NewRunner creates a Runner driving the given system. scene may be nil
// when a memory image supplies the display lists instead.
func NewRunner(sys *emu.System, scene *demo.Scene, mode emu.DisplayMode) *Runner {
	return &Runner{
		sys:   sys,
		scene: scene,
		mode:  mode,
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	r.sys.SetInput(r.pollInput())

	if r.scene != nil {
		r.scene.Advance()
	}

	r.sys.RunFrame()
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.sys.DrawToScreen(screen, r.mode)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.sys.Layout(outsideWidth, outsideHeight)
}

// pollInput reads keyboard and gamepad state into a pad bitmask. The left
// control pad sits on WASD/arrows, the right on IJKL; Z/X are B/A.
func (r *Runner) pollInput() uint16 {
	var buttons uint16

	key := func(mask uint16, keys ...ebiten.Key) {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				buttons |= mask
				return
			}
		}
	}

	key(emu.PadLeftUp, ebiten.KeyW, ebiten.KeyArrowUp)
	key(emu.PadLeftDown, ebiten.KeyS, ebiten.KeyArrowDown)
	key(emu.PadLeftLeft, ebiten.KeyA, ebiten.KeyArrowLeft)
	key(emu.PadLeftRight, ebiten.KeyD, ebiten.KeyArrowRight)
	key(emu.PadRightUp, ebiten.KeyI)
	key(emu.PadRightDown, ebiten.KeyK)
	key(emu.PadRightLeft, ebiten.KeyJ)
	key(emu.PadRightRight, ebiten.KeyL)
	key(emu.PadA, ebiten.KeyX)
	key(emu.PadB, ebiten.KeyZ)
	key(emu.PadL, ebiten.KeyQ)
	key(emu.PadR, ebiten.KeyE)
	key(emu.PadStart, ebiten.KeyEnter)
	key(emu.PadSelect, ebiten.KeyShiftRight, ebiten.KeyShiftLeft)

	// Gamepad support (all connected gamepads)
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		pad := func(mask uint16, btn ebiten.StandardGamepadButton) {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				buttons |= mask
			}
		}

		pad(emu.PadLeftUp, ebiten.StandardGamepadButtonLeftTop)
		pad(emu.PadLeftDown, ebiten.StandardGamepadButtonLeftBottom)
		pad(emu.PadLeftLeft, ebiten.StandardGamepadButtonLeftLeft)
		pad(emu.PadLeftRight, ebiten.StandardGamepadButtonLeftRight)
		pad(emu.PadA, ebiten.StandardGamepadButtonRightBottom)
		pad(emu.PadB, ebiten.StandardGamepadButtonRightRight)
		pad(emu.PadL, ebiten.StandardGamepadButtonFrontTopLeft)
		pad(emu.PadR, ebiten.StandardGamepadButtonFrontTopRight)
		pad(emu.PadStart, ebiten.StandardGamepadButtonCenterRight)
		pad(emu.PadSelect, ebiten.StandardGamepadButtonCenterLeft)

		// Sticks act as the two control pads (with deadzone).
		const deadzone = 0.5
		stick := func(up, down, left, right uint16, hAxis, vAxis ebiten.StandardGamepadAxis) {
			h := ebiten.StandardGamepadAxisValue(id, hAxis)
			v := ebiten.StandardGamepadAxisValue(id, vAxis)
			if h < -deadzone {
				buttons |= left
			}
			if h > deadzone {
				buttons |= right
			}
			if v < -deadzone {
				buttons |= up
			}
			if v > deadzone {
				buttons |= down
			}
		}

		stick(emu.PadLeftUp, emu.PadLeftDown, emu.PadLeftLeft, emu.PadLeftRight,
			ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical)
		stick(emu.PadRightUp, emu.PadRightDown, emu.PadRightLeft, emu.PadRightRight,
			ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical)
	}

	return buttons
}
