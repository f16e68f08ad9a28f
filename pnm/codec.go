package pnm

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	for _, magic := range []string{"P1", "P4"} {
		image.RegisterFormat("pbm", magic, Decode, DecodeConfig)
	}
	for _, magic := range []string{"P2", "P5"} {
		image.RegisterFormat("pgm", magic, Decode, DecodeConfig)
	}
	for _, magic := range []string{"P3", "P6"} {
		image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
	}
}

// Decode reads an anymap and returns it as an image.Image, see ToImage.
func Decode(r io.Reader) (image.Image, error) {
	img, err := Read(r)
	if err != nil {
		return nil, err
	}
	return img.ToImage(), nil
}

// DecodeConfig returns the colour model and dimensions of an anymap without
// decoding its samples.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}

	model := color.GrayModel
	if h.Format == Pixmap {
		model = color.RGBAModel
	}
	return image.Config{ColorModel: model, Width: h.Width, Height: h.Height}, nil
}

// ToImage converts img to a standard library image.
//
// Bitmaps become *image.Gray with set pixels black and clear pixels white.
// Greymaps become *image.Gray and pixmaps *image.RGBA, with samples scaled
// from 0..Saturation to 0..255; samples above the saturation are clamped.
func (img *Image) ToImage() image.Image {
	r := image.Rect(0, 0, img.width, img.height)

	switch img.format {
	case Bitmap:
		dst := image.NewGray(r)
		for i, s := range img.pix {
			if s == 0 {
				dst.Pix[i] = 0xff
			}
		}
		return dst
	case Greymap:
		dst := image.NewGray(r)
		for i, s := range img.pix {
			dst.Pix[i] = img.scale(s)
		}
		return dst
	default:
		dst := image.NewRGBA(r)
		for p := 0; p < len(img.pix)/3; p++ {
			dst.Pix[p*4] = img.scale(img.pix[p*3])
			dst.Pix[p*4+1] = img.scale(img.pix[p*3+1])
			dst.Pix[p*4+2] = img.scale(img.pix[p*3+2])
			dst.Pix[p*4+3] = 0xff
		}
		return dst
	}
}

func (img *Image) scale(s uint8) uint8 {
	switch {
	case img.saturation == MaxSaturation:
		return s
	case img.saturation == 0 || int(s) >= img.saturation:
		if s == 0 {
			return 0
		}
		return 0xff
	default:
		return uint8(int(s) * 0xff / img.saturation)
	}
}

// FromImage converts src to an anymap of format f. Greymaps and pixmaps use a
// saturation of 255. Bitmap pixels are set where the luminance is below half.
func FromImage(src image.Image, f Format) (*Image, error) {
	switch f {
	case Bitmap, Greymap, Pixmap:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	img := &Image{
		format: f,
		pix:    make([]uint8, 0, w*h*f.SamplesPerPixel()),
		height: h,
		width:  w,
	}
	if f != Bitmap {
		img.saturation = MaxSaturation
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			switch f {
			case Bitmap:
				var s uint8
				if color.GrayModel.Convert(c).(color.Gray).Y < 0x80 {
					s = 1
				}
				img.pix = append(img.pix, s)
			case Greymap:
				img.pix = append(img.pix, color.GrayModel.Convert(c).(color.Gray).Y)
			default:
				rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
				img.pix = append(img.pix, rgba.R, rgba.G, rgba.B)
			}
		}
	}
	return img, nil
}
