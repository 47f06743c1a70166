package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestSaveWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "scene")
	s.now = fixedClock

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	path, err := s.Save(img)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if want := filepath.Join(dir, "scene_2024-03-01_12-30-45.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, _, _, _ := got.At(1, 1).RGBA()
	if r>>8 != 200 {
		t.Errorf("pixel R = %d, want 200", r>>8)
	}
}

func TestSaveSameSecondDoesNotOverwrite(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "")
	s.now = fixedClock
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	first, err := s.Save(img)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(img)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("second capture reused path %q", first)
	}
	if filepath.Base(second) != "lodscene_2024-03-01_12-30-45_1.png" {
		t.Errorf("second = %q", filepath.Base(second))
	}
}

func TestSaveRejectsEmptyImage(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Error("expected error for empty image")
	}
	if _, err := s.Save(nil); err == nil {
		t.Error("expected error for nil image")
	}
}
