package pnm

import "fmt"

// Invert replaces every sample with its opposite: 1-s for bitmaps and the
// bitwise complement for greymaps and pixmaps.
func (img *Image) Invert() {
	if img.format == Bitmap {
		for i, s := range img.pix {
			img.pix[i] = 1 - s
		}
		return
	}
	for i, s := range img.pix {
		img.pix[i] = ^s
	}
}

// ApplyFilter adds the samples of filter to img, wrapping at 256. Samples past
// the end of filter are left as they are.
//
// The filter must be no larger than img and of the same format, and bitmaps
// are rejected. On error img is untouched.
func (img *Image) ApplyFilter(filter *Image) error {
	if len(filter.pix) > len(img.pix) {
		return fmt.Errorf("%w: %d samples over %d", ErrFilterTooLarge, len(filter.pix), len(img.pix))
	}
	if filter.format != img.format {
		return fmt.Errorf("%w: %s filter on %s", ErrFormatMismatch, filter.format, img.format)
	}
	if img.format == Bitmap {
		return fmt.Errorf("%w: cannot filter a %s", ErrUnsupportedFormat, img.format)
	}

	for i, s := range filter.pix {
		img.pix[i] += s
	}
	return nil
}

// GreyscaleOptions tunes Greyscale.
type GreyscaleOptions struct {
	// KeepLastPixel leaves the final pixel of the buffer in colour, matching
	// files produced by earlier releases.
	KeepLastPixel bool
}

// Greyscale sets all three channels of every pixmap pixel to the truncated
// mean of its red, green and blue samples. Bitmaps and greymaps are left
// unchanged.
func (img *Image) Greyscale(options ...func(*GreyscaleOptions)) {
	if img.format != Pixmap {
		return
	}

	var opts GreyscaleOptions
	for _, o := range options {
		o(&opts)
	}

	end := len(img.pix)
	if opts.KeepLastPixel {
		end -= 3
	}
	for i := 0; i+2 < end; i += 3 {
		mean := uint8((int(img.pix[i]) + int(img.pix[i+1]) + int(img.pix[i+2])) / 3)
		img.pix[i], img.pix[i+1], img.pix[i+2] = mean, mean, mean
	}
}

// KeepLastPixel is a Greyscale option that skips the final pixel.
func KeepLastPixel(o *GreyscaleOptions) {
	o.KeepLastPixel = true
}
