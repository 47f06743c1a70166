package framebuffer

import "testing"

func TestFlipRows(t *testing.T) {
	// Two rows, bottom row first as GL returns them.
	pixels := []byte{
		1, 1, 1, 255, 2, 2, 2, 255, // bottom
		3, 3, 3, 255, 4, 4, 4, 255, // top
	}
	img := FlipRows(pixels, 2, 2)
	if got := img.RGBAAt(0, 0).R; got != 3 {
		t.Errorf("top-left R = %d, want 3", got)
	}
	if got := img.RGBAAt(1, 1).R; got != 2 {
		t.Errorf("bottom-right R = %d, want 2", got)
	}
}
