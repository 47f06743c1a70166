package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Upload creates a mipmapped, repeating GL texture from img and returns
// its handle. A GL context must be current.
func Upload(img *image.RGBA) (uint32, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, errors.New("upload: empty image")
	}
	flipped := FlipVertical(img)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("upload: GL error 0x%x", e)
	}
	return id, nil
}

// Delete releases a texture handle.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
