// Package texture decodes cube textures and uploads them to OpenGL.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Checker pattern used when no texture path is configured.
const (
	CheckerSize  = 64
	CheckerCells = 8
)

var (
	checkerLight = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	checkerDark  = color.RGBA{R: 90, G: 110, B: 140, A: 255}
)

// Load reads and decodes an image file. An empty path returns the
// generated checkerboard.
func Load(path string) (*image.RGBA, error) {
	if path == "" {
		return Checkerboard(CheckerSize, CheckerCells), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes BMP, PNG or JPEG data into RGBA.
func Decode(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	rgba := ToRGBA(img)
	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}
	return rgba, nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy with rows reversed. OpenGL expects the
// bottom row first.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	h := b.Dy()
	for y := range h {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		dst := out.Pix[(h-1-y)*out.Stride:]
		copy(dst, src)
	}
	return out
}

// Checkerboard generates a size x size image of cells x cells squares.
func Checkerboard(size, cells int) *image.RGBA {
	if cells < 1 {
		cells = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/cells, 1)
	for y := range size {
		for x := range size {
			c := checkerDark
			if (x/cell+y/cell)%2 == 0 {
				c = checkerLight
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
