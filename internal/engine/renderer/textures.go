package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/stilllife/internal/engine/texture"
)

// TextureStore creates, binds and deletes 2D textures.
type TextureStore struct{}

// NewTextureStore returns a store for the current GL context.
func NewTextureStore() *TextureStore {
	return &TextureStore{}
}

// Upload creates a texture with repeat wrapping, linear filtering and
// mipmaps. Only RGB and RGBA images are accepted.
func (s *TextureStore) Upload(img *texture.Image) (uint32, error) {
	var internal int32
	var format uint32
	switch img.Channels {
	case 3:
		internal, format = gl.RGB8, gl.RGB
	case 4:
		internal, format = gl.RGBA8, gl.RGBA
	default:
		return 0, fmt.Errorf("cannot upload %d channel image", img.Channels)
	}
	if len(img.Pix) < img.Width*img.Height*img.Channels {
		return 0, fmt.Errorf("pixel buffer too short: %d bytes for %dx%dx%d",
			len(img.Pix), img.Width, img.Height, img.Channels)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return id, nil
}

// Bind binds handle to texture unit.
func (s *TextureStore) Bind(unit int, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

// Delete releases textures.
func (s *TextureStore) Delete(handles ...uint32) {
	if len(handles) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(handles)), &handles[0])
}
