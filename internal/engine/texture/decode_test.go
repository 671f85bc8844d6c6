package texture

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// twoRows is 2x2 with a red top row and a blue bottom row.
func twoRows(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: alpha})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: alpha})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNGWithAlpha(t *testing.T) {
	img, err := NewDecoder().DecodeBytes(encodePNG(t, twoRows(128)))
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, 4, img.Channels)
	assert.Equal(t, "png", img.Format)
	require.Len(t, img.Pix, 2*2*4)
}

func TestDecodeFlipsRows(t *testing.T) {
	data := encodePNG(t, twoRows(255))

	flipped, err := NewDecoder().DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, 3, flipped.Channels)
	// First row in memory is the bottom row of the file.
	assert.Equal(t, []byte{0, 0, 255}, flipped.Pix[0:3])

	upright, err := (&Decoder{}).DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0}, upright.Pix[0:3])
}

func TestDecodeGrayscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.SetGray(0, 0, color.Gray{Y: 10})
	gray.SetGray(1, 0, color.Gray{Y: 20})
	gray.SetGray(2, 0, color.Gray{Y: 30})

	img, err := NewDecoder().DecodeBytes(encodePNG(t, gray))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Channels)
	assert.Equal(t, []byte{10, 20, 30}, img.Pix)
}

// grayAlphaPNG builds a one-row 8-bit gray+alpha PNG (colour type 4), which
// image/png can read but never writes.
func grayAlphaPNG(t *testing.T, pixels ...[2]byte) []byte {
	t.Helper()
	chunk := func(buf *bytes.Buffer, name string, body []byte) {
		require.NoError(t, binary.Write(buf, binary.BigEndian, uint32(len(body))))
		buf.WriteString(name)
		buf.Write(body)
		crc := crc32.NewIEEE()
		crc.Write([]byte(name))
		crc.Write(body)
		require.NoError(t, binary.Write(buf, binary.BigEndian, crc.Sum32()))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(len(pixels)))
	binary.BigEndian.PutUint32(ihdr[4:], 1)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 4 // gray+alpha

	var raw bytes.Buffer
	raw.WriteByte(0) // filter: none
	for _, p := range pixels {
		raw.Write(p[:])
	}
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var out bytes.Buffer
	out.Write(pngSignature)
	chunk(&out, "IHDR", ihdr)
	chunk(&out, "IDAT", idat.Bytes())
	chunk(&out, "IEND", nil)
	return out.Bytes()
}

func TestDecodeGrayAlphaReportsTwoChannels(t *testing.T) {
	img, err := NewDecoder().DecodeBytes(grayAlphaPNG(t, [2]byte{40, 200}, [2]byte{80, 100}))
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 2, img.Channels)
	assert.Equal(t, []byte{40, 200, 80, 100}, img.Pix)
}

func TestPNGHeaderChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	opaque := twoRows(255)
	translucent := twoRows(128)

	tests := []struct {
		name string
		data []byte
		want int
		ok   bool
	}{
		{"gray", encodePNG(t, gray), 1, true},
		{"gray+alpha", grayAlphaPNG(t, [2]byte{1, 2}), 2, true},
		{"rgb", encodePNG(t, opaque), 3, true},
		{"rgba", encodePNG(t, translucent), 4, true},
		{"paletted", encodePNG(t, image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black})), 0, false},
		{"not png", []byte("GIF89a............................"), 0, false},
		{"short", pngSignature, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pngChannels(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, twoRows(255), nil))

	img, err := NewDecoder().DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", img.Format)
	assert.Equal(t, 3, img.Channels)
	assert.Len(t, img.Pix, 2*2*3)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, twoRows(255)))

	img, err := NewDecoder().DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, 2, img.Width)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := NewDecoder().DecodeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = NewDecoder().DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeTruncatedPNG(t *testing.T) {
	data := encodePNG(t, twoRows(255))
	_, err := NewDecoder().DecodeBytes(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wood.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRows(255)), 0o644))

	img, err := NewDecoder().Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Channels)

	img.Release()
	assert.Nil(t, img.Pix)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := NewDecoder().Decode(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestChannels(t *testing.T) {
	r := image.Rect(0, 0, 1, 1)
	opaque := color.Palette{color.RGBA{A: 255}}
	translucent := color.Palette{color.RGBA{A: 255}, color.RGBA{}}

	assert.Equal(t, 1, Channels(image.NewGray(r)))
	assert.Equal(t, 1, Channels(image.NewAlpha(r)))
	assert.Equal(t, 3, Channels(image.NewYCbCr(r, image.YCbCrSubsampleRatio444)))
	assert.Equal(t, 3, Channels(image.NewPaletted(r, opaque)))
	assert.Equal(t, 4, Channels(image.NewPaletted(r, translucent)))
	assert.Equal(t, 4, Channels(image.NewNRGBA(r)))
}
