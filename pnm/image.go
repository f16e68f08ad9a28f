package pnm

import (
	"fmt"
	"math"
	"slices"
)

// MaxSaturation is the largest sample value a greymap or pixmap may declare.
const MaxSaturation = 255

// Image is an anymap held as one byte per sample, rows top to bottom.
//
// Pixmap samples are stored as consecutive R, G, B triples. The zero value is
// not a valid image; use one of the constructors.
type Image struct {
	format     Format
	pix        []uint8
	saturation int
	height     int
	width      int
}

// NewBitmap builds a bitmap from one 0/1 byte per pixel. The buffer is copied.
func NewBitmap(buffer []byte, height, width int) (*Image, error) {
	return newBitmap(slices.Clone(buffer), height, width)
}

// NewGreymap builds a greymap from one byte per pixel. The buffer is copied.
func NewGreymap(buffer []byte, saturation, height, width int) (*Image, error) {
	return newGreymap(slices.Clone(buffer), saturation, height, width)
}

// NewPixmap builds a pixmap from R, G, B bytes per pixel. The buffer is copied.
func NewPixmap(buffer []byte, saturation, height, width int) (*Image, error) {
	return newPixmap(slices.Clone(buffer), saturation, height, width)
}

// newBitmap and friends take ownership of buffer.
func newBitmap(buffer []byte, height, width int) (*Image, error) {
	if err := checkDimensions(Bitmap, len(buffer), height, width); err != nil {
		return nil, err
	}
	for i, s := range buffer {
		if s > 1 {
			return nil, fmt.Errorf("%w: sample %d is %d", ErrInvalidSample, i, s)
		}
	}
	return &Image{format: Bitmap, pix: buffer, height: height, width: width}, nil
}

func newGreymap(buffer []byte, saturation, height, width int) (*Image, error) {
	return newSaturated(Greymap, buffer, saturation, height, width)
}

func newPixmap(buffer []byte, saturation, height, width int) (*Image, error) {
	return newSaturated(Pixmap, buffer, saturation, height, width)
}

func newSaturated(f Format, buffer []byte, saturation, height, width int) (*Image, error) {
	if err := checkDimensions(f, len(buffer), height, width); err != nil {
		return nil, err
	}
	if saturation < 0 || saturation > MaxSaturation {
		return nil, fmt.Errorf("%w: %s saturation %d, want 0..%d", ErrSaturationOutOfRange, f, saturation, MaxSaturation)
	}
	return &Image{format: f, pix: buffer, saturation: saturation, height: height, width: width}, nil
}

func checkDimensions(f Format, n, height, width int) error {
	if height < 0 || width < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrDimensionMismatch, width, height)
	}
	spp := f.SamplesPerPixel()
	if width > 0 && height > math.MaxInt/spp/width {
		return fmt.Errorf("%w: %dx%d overflows", ErrDimensionMismatch, width, height)
	}
	want := spp * height * width
	if n != want {
		return fmt.Errorf("%w: %s buffer holds %d samples, %dx%d needs %d",
			ErrDimensionMismatch, f, n, width, height, want)
	}
	return nil
}

// Format returns the anymap kind.
func (img *Image) Format() Format {
	return img.format
}

// Buffer returns a copy of the samples.
func (img *Image) Buffer() []byte {
	return slices.Clone(img.pix)
}

// Dimensions returns height and width, in that order.
func (img *Image) Dimensions() (height, width int) {
	return img.height, img.width
}

func (img *Image) Width() int {
	return img.width
}

func (img *Image) Height() int {
	return img.height
}

// Saturation is the declared maximum sample value. Always 0 for bitmaps.
func (img *Image) Saturation() int {
	return img.saturation
}

// Len is the number of samples in the buffer.
func (img *Image) Len() int {
	return len(img.pix)
}

// rowSamples is the number of samples on one row.
func (img *Image) rowSamples() int {
	return img.width * img.format.SamplesPerPixel()
}
