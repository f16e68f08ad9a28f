package convert

import (
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		src           image.Rectangle
		width, height int
		crop, fill    bool
		want          layout
	}{
		{
			name: "same aspect",
			src:  image.Rect(0, 0, 200, 100), width: 100, height: 50,
			want: layout{canvas: image.Rect(0, 0, 100, 50), dest: image.Rect(0, 0, 100, 50), src: image.Rect(0, 0, 200, 100)},
		},
		{
			name: "width only",
			src:  image.Rect(0, 0, 200, 100), width: 100,
			want: layout{canvas: image.Rect(0, 0, 100, 50), dest: image.Rect(0, 0, 100, 50), src: image.Rect(0, 0, 200, 100)},
		},
		{
			name: "crop wide source",
			src:  image.Rect(0, 0, 200, 100), width: 50, height: 50, crop: true,
			want: layout{canvas: image.Rect(0, 0, 50, 50), dest: image.Rect(0, 0, 50, 50), src: image.Rect(50, 0, 150, 100)},
		},
		{
			name: "crop tall source",
			src:  image.Rect(0, 0, 100, 200), width: 50, height: 50, crop: true,
			want: layout{canvas: image.Rect(0, 0, 50, 50), dest: image.Rect(0, 0, 50, 50), src: image.Rect(0, 50, 100, 150)},
		},
		{
			name: "letterbox wide source",
			src:  image.Rect(0, 0, 200, 100), width: 100, height: 100, fill: true,
			want: layout{canvas: image.Rect(0, 0, 100, 100), dest: image.Rect(0, 25, 100, 75), src: image.Rect(0, 0, 200, 100), fill: true},
		},
		{
			name: "shrink canvas for tall source",
			src:  image.Rect(0, 0, 100, 200), width: 100, height: 100,
			want: layout{canvas: image.Rect(0, 0, 50, 100), dest: image.Rect(0, 0, 50, 100), src: image.Rect(0, 0, 100, 200)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fit(tt.src, tt.width, tt.height, tt.crop, tt.fill))
		})
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	same := resize(slog.Default(), src, 4, 2, false, nil)
	assert.Same(t, src, same, "nothing to do")

	boxed := resize(slog.Default(), src, 4, 4, false, color.NRGBA{R: 0xff, A: 0xff})
	require.Equal(t, image.Rect(0, 0, 4, 4), boxed.Bounds())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, boxed.(*image.RGBA).RGBAAt(0, 0), "background filled")
	inner := boxed.(*image.RGBA).RGBAAt(2, 2)
	assert.GreaterOrEqual(t, inner.G, uint8(0xf0), "source scaled into the box")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#1234", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{"#10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#12345", "#gggggg"} {
		_, err := parseHexColor(bad)
		assert.ErrorContains(t, err, "invalid color", bad)
	}
}

func TestRepalette(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.Pix = []uint8{10, 240}
	pal := color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}

	out := repalette(slog.Default(), src, pal, false).(*image.Paletted)
	assert.Equal(t, []uint8{0, 1}, out.Pix)

	dithered := repalette(slog.Default(), src, pal, true).(*image.Paletted)
	assert.Equal(t, image.Rect(0, 0, 2, 1), dithered.Bounds())
}
