package pnm

import "errors"

// Construction errors.
var (
	ErrDimensionMismatch    = errors.New("buffer does not fit dimensions")
	ErrInvalidSample        = errors.New("bitmap sample is not 0 or 1")
	ErrSaturationOutOfRange = errors.New("saturation out of range")
)

// Decoding errors.
var (
	ErrUnknownMagicNumber = errors.New("unknown magic number")
	ErrMalformedHeader    = errors.New("malformed header")
	ErrMalformedPixelData = errors.New("malformed pixel data")
	ErrUnreadableSource   = errors.New("unreadable source")
)

// ErrWrite wraps any failure to emit an encoded image.
var ErrWrite = errors.New("could not write image")

// Transform errors.
var (
	ErrFilterTooLarge    = errors.New("filter larger than image")
	ErrFormatMismatch    = errors.New("filter format differs from image")
	ErrUnsupportedFormat = errors.New("operation not supported for format")
)
