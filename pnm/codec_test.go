package pnm_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/lmittmann/ppm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KairosJK/ductr/pnm"
)

func TestToImage_Bitmap(t *testing.T) {
	img, err := pnm.NewBitmap([]byte{1, 0, 0, 1}, 2, 2)
	require.NoError(t, err)

	gray, ok := img.ToImage().(*image.Gray)
	require.True(t, ok, "bitmaps convert to *image.Gray")
	assert.Equal(t, image.Rect(0, 0, 2, 2), gray.Bounds())
	assert.Equal(t, color.Gray{Y: 0}, gray.GrayAt(0, 0), "set pixels are black")
	assert.Equal(t, color.Gray{Y: 255}, gray.GrayAt(1, 0), "clear pixels are white")
}

func TestToImage_ScalesBySaturation(t *testing.T) {
	img, err := pnm.NewGreymap([]byte{0, 5, 15, 20}, 15, 1, 4)
	require.NoError(t, err)

	gray := img.ToImage().(*image.Gray)
	assert.Equal(t, []uint8{0, 85, 255, 255}, gray.Pix)
}

func TestToImage_Pixmap(t *testing.T) {
	img, err := pnm.NewPixmap([]byte{255, 0, 0, 0, 128, 255}, 255, 1, 2)
	require.NoError(t, err)

	rgba := img.ToImage().(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 128, B: 255, A: 255}, rgba.RGBAAt(1, 0))
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 250, G: 250, B: 250, A: 255})

	pixmap, err := pnm.FromImage(src, pnm.Pixmap)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 250, 250, 250}, pixmap.Buffer())
	assert.Equal(t, 255, pixmap.Saturation())

	bitmap, err := pnm.FromImage(src, pnm.Bitmap)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0}, bitmap.Buffer(), "dark pixels are set")

	greymap, err := pnm.FromImage(src, pnm.Greymap)
	require.NoError(t, err)
	assert.Equal(t, pnm.Greymap, greymap.Format())
	assert.Equal(t, 2, greymap.Len())

	_, err = pnm.FromImage(src, pnm.Format(9))
	assert.ErrorIs(t, err, pnm.ErrUnsupportedFormat)
}

func TestFromImage_RoundTrip(t *testing.T) {
	img, err := pnm.NewGreymap([]byte{0, 1, 2, 3, 100, 200, 254, 255}, 255, 2, 4)
	require.NoError(t, err)

	back, err := pnm.FromImage(img.ToImage(), pnm.Greymap)
	require.NoError(t, err)
	assert.Equal(t, img.Buffer(), back.Buffer())

	bits, err := pnm.NewBitmap([]byte{1, 0, 1, 1, 0, 0}, 3, 2)
	require.NoError(t, err)
	backBits, err := pnm.FromImage(bits.ToImage(), pnm.Bitmap)
	require.NoError(t, err)
	assert.Equal(t, bits.Buffer(), backBits.Buffer())
}

func TestImageDecode_Registered(t *testing.T) {
	tests := []struct {
		data   string
		format string
		width  int
	}{
		{"P1\n2 1\n1 0", "pbm", 2},
		{"P4\n2 1\n\x80", "pbm", 2},
		{"P2\n2 1\n255\n3 4", "pgm", 2},
		{"P5\n2 1\n255\n\x03\x04", "pgm", 2},
	}
	for _, tt := range tests {
		t.Run(tt.data[:2], func(t *testing.T) {
			img, format, err := image.Decode(bytes.NewReader([]byte(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.width, img.Bounds().Dx())

			cfg, cfgFormat, err := image.DecodeConfig(bytes.NewReader([]byte(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.format, cfgFormat)
			assert.Equal(t, tt.width, cfg.Width)
			assert.Equal(t, 1, cfg.Height)
		})
	}
}

func TestWriteBinary_ReadableByOtherDecoders(t *testing.T) {
	pix := []byte{
		255, 0, 0, 0, 255, 0, 0, 0, 255,
		10, 20, 30, 40, 50, 60, 70, 80, 90,
	}
	img, err := pnm.NewPixmap(pix, 255, 2, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pnm.WriteBinary(&buf, img))

	decoded, err := ppm.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 2), decoded.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, _ := decoded.At(x, y).RGBA()
			i := (y*3 + x) * 3
			assert.Equal(t, []byte{pix[i], pix[i+1], pix[i+2]}, []byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)},
				"pixel %d,%d", x, y)
		}
	}
}

func TestReadBinary_ReadsOtherEncoders(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})
	src.SetRGBA(0, 1, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	src.SetRGBA(1, 1, color.RGBA{R: 10, G: 11, B: 12, A: 255})

	var buf bytes.Buffer
	require.NoError(t, ppm.Encode(&buf, src))

	img, err := pnm.ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, pnm.Pixmap, img.Format())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, img.Buffer())
}
