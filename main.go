package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/evue/cli"
	"github.com/user-none/evue/demo"
	"github.com/user-none/evue/emu"
)

func main() {
	memPath := flag.String("mem", "", "path to raw video memory image (built-in demo scene when omitted)")
	viewFlag := flag.String("view", "sbs", "display mode: sbs or anaglyph")
	scale := flag.Int("scale", 2, "window/snapshot scale factor")
	snapPath := flag.String("snapshot", "", "render one frame to a PNG file and exit")
	snapFrames := flag.Int("frames", 1, "frames to run before taking the snapshot")
	flag.Parse()

	mode, err := emu.ParseDisplayMode(*viewFlag)
	if err != nil {
		log.Fatalf("Invalid view mode: %v", err)
	}

	sys := emu.NewSystem()
	sys.SetLogger(log.Printf)

	var scene *demo.Scene
	if *memPath != "" {
		if err := loadMemoryImage(sys, *memPath); err != nil {
			log.Fatalf("Failed to load memory image: %v", err)
		}
	} else {
		scene = demo.Install(sys)
	}

	if *snapPath != "" {
		for i := 0; i < *snapFrames; i++ {
			if scene != nil {
				scene.Advance()
			}
			sys.RunFrame()
		}
		if err := writeSnapshot(sys, *snapPath, mode, *scale); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	}

	w, h := emu.StereoSize(mode)
	ebiten.SetWindowSize(w*(*scale), h*(*scale))
	ebiten.SetWindowTitle(emu.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(emu.FPS)

	if err := ebiten.RunGame(cli.NewRunner(sys, scene, mode)); err != nil {
		log.Fatal(err)
	}
}

// loadMemoryImage copies a raw binary dump into the start of the video
// address space: framebuffers, character memory and map memory in their
// native layout.
func loadMemoryImage(sys *emu.System, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	v := sys.VIP()
	for i, b := range data {
		v.Write8(uint32(i), b)
	}
	return nil
}

func writeSnapshot(sys *emu.System, path string, mode emu.DisplayMode, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return sys.WritePNG(f, mode, scale)
}
