// Package texture decodes image files into tightly packed pixel buffers
// ready for GPU upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"github.com/disintegration/gift"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrDecode is returned when a file cannot be read or parsed as an image.
var ErrDecode = errors.New("texture decode failed")

// Image is a decoded image. Channels is the channel count of the source
// file (1 gray, 2 gray+alpha, 3 RGB, 4 RGBA) and Pix holds Width*Height
// pixels of exactly that many bytes each, rows bottom-up when flipped.
type Image struct {
	Width    int
	Height   int
	Channels int
	Format   string
	Pix      []byte
}

// Release drops the pixel buffer once it has been uploaded.
func (img *Image) Release() {
	if img != nil {
		img.Pix = nil
	}
}

// Decoder reads image files from disk.
type Decoder struct {
	// FlipVertical puts the first row of the file at the bottom, which is
	// where OpenGL expects texture coordinate v=0.
	FlipVertical bool
}

// NewDecoder returns a decoder that flips images for OpenGL.
func NewDecoder() *Decoder {
	return &Decoder{FlipVertical: true}
}

// Decode reads and decodes the image at path.
func (d *Decoder) Decode(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := d.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image file.
func (d *Decoder) DecodeBytes(data []byte) (*Image, error) {
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, fmt.Errorf("%w: unrecognized image data", ErrDecode)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, kind.Extension, err)
	}

	channels, ok := pngChannels(data)
	if !ok {
		channels = Channels(src)
	}

	g := gift.New()
	if d.FlipVertical {
		g.Add(gift.FlipVertical())
	}
	nrgba := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(nrgba, src)

	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	return &Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		Format:   format,
		Pix:      pack(nrgba, channels),
	}, nil
}

// Channels reports how many channels the source image carries.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return 4
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// pngChannels reads the channel count from a PNG header. image/png widens
// gray+alpha to NRGBA, so the decoded type alone cannot tell it from RGBA.
// Palette images report false and are judged by their palette.
func pngChannels(data []byte) (int, bool) {
	if len(data) < 26 || !bytes.HasPrefix(data, pngSignature) || string(data[12:16]) != "IHDR" {
		return 0, false
	}
	switch data[25] {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 4:
		return 2, true
	case 6:
		return 4, true
	}
	return 0, false
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pack copies channels bytes per pixel out of an NRGBA image.
// One channel keeps red, two keep red and alpha.
func pack(src *image.NRGBA, channels int) []byte {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := make([]byte, 0, w*h*channels)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			switch channels {
			case 1:
				out = append(out, p[0])
			case 2:
				out = append(out, p[0], p[3])
			case 3:
				out = append(out, p[0], p[1], p[2])
			default:
				out = append(out, p...)
			}
		}
	}
	return out
}
