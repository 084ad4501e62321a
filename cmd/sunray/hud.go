package main

import (
	"fmt"
	"io"
	"time"
)

// HUD renders an overlay with scene info and controls
type HUD struct {
	name       string
	primitives int
	fps        float64
	fpsFrames  int
	fpsTime    time.Time
}

// hudInfo is the per-frame state shown by the HUD.
type hudInfo struct {
	Phase       string
	Ambient     float64
	Paused      bool
	FaceNormals bool
	Scale       float64
}

// NewHUD creates a new HUD
func NewHUD(name string, primitives int) *HUD {
	return &HUD{
		name:       name,
		primitives: primitives,
		fpsTime:    time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(w io.Writer, width, height int, show bool, info hudInfo) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)

	if !show {
		return
	}

	// Top left: FPS
	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: scene name
	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.name, reset)

	// Top right: primitive count
	prims := fmt.Sprintf("%d prims", h.primitives)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, max(width-len(prims)-1, 1)), bgBlack, fgCyan, bold, prims, reset)

	// Bottom left: time of day and toggles
	phase := info.Phase
	if info.Paused {
		phase += " (paused)"
	}
	check := "[ ]"
	if info.FaceNormals {
		check = "[✓]"
	}
	fmt.Fprintf(w, "%s%s%s %s  ambient %.2f  %s face normals  scale %.2f %s",
		moveTo(height, 1), bgBlack, fgYellow, phase, info.Ambient, check, info.Scale, reset)

	// Bottom right: hint
	hint := "P: pause  F: normals"
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(height, max(width-len(hint)-1, 1)), bgBlack, dim, fgWhite, hint, reset)
}
