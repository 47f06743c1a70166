package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := range 3 {
		for x := range 2 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 100), G: uint8(y * 80), B: 7, A: 255})
		}
	}
	return img
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v, want 2x3", img.Bounds())
	}
	if got := img.RGBAAt(1, 2); got != (color.RGBA{R: 100, G: 160, B: 7, A: 255}) {
		t.Errorf("pixel (1,2) = %v", got)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if _, err := Decode(buf.Bytes()); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "images.bmp")

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err != nil {
		t.Errorf("Load(%s) error: %v", path, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.bmp")); err == nil {
		t.Error("expected error for missing file")
	}

	img, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if img.Bounds().Dx() != CheckerSize {
		t.Errorf("checkerboard width = %d, want %d", img.Bounds().Dx(), CheckerSize)
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(16, 4)
	if img.RGBAAt(0, 0) != checkerLight || img.RGBAAt(4, 0) != checkerDark || img.RGBAAt(4, 4) != checkerLight {
		t.Error("checker cells do not alternate")
	}
}

func TestFlipVertical(t *testing.T) {
	img := testImage()
	flipped := FlipVertical(img)
	for y := range 3 {
		for x := range 2 {
			if img.RGBAAt(x, y) != flipped.RGBAAt(x, 2-y) {
				t.Fatalf("pixel (%d,%d) not mirrored", x, y)
			}
		}
	}
}

func TestToRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.SetRGBA(5, 5, color.RGBA{R: 1, A: 255})
	got := ToRGBA(src)
	if got.Bounds().Min != (image.Point{}) {
		t.Errorf("origin = %v, want (0,0)", got.Bounds().Min)
	}
	if got.RGBAAt(0, 0).R != 1 {
		t.Error("pixel not moved to origin")
	}
}
