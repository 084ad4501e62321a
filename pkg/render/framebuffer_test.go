package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestFramebufferSetPacked(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPacked(1, 2, 0x102030)

	if got, want := fb.GetPixel(1, 2), (color.RGBA{0x10, 0x20, 0x30, 255}); got != want {
		t.Errorf("GetPixel = %v, want %v", got, want)
	}

	// Out of bounds writes are ignored.
	fb.SetPacked(-1, 0, 0xffffff)
	fb.SetPacked(4, 4, 0xffffff)
	if got := fb.GetPixel(4, 4); got != (color.RGBA{}) {
		t.Errorf("out of bounds GetPixel = %v, want zero", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	c := color.RGBA{1, 2, 3, 255}
	fb.Clear(c)
	for i, p := range fb.Pixels {
		if p != c {
			t.Fatalf("pixel %d = %v, want %v", i, p, c)
		}
	}
}

func TestFramebufferSave(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPacked(0, 0, 0xff0000)
	fb.SetPacked(2, 1, 0x00ff00)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("saved size = %v, want 3x2", b)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r>>8 != 0xff || g != 0 {
		t.Errorf("pixel (0,0) = %v", img.At(0, 0))
	}
}

func TestFramebufferSaveUnknownFormat(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.Save(filepath.Join(t.TempDir(), "frame.xyz")); err == nil {
		t.Error("expected error for unknown extension")
	}
}
