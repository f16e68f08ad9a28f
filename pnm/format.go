package pnm

import "fmt"

// Format identifies the kind of anymap an Image holds.
type Format int

const (
	Bitmap Format = iota + 1
	Greymap
	Pixmap
)

// Encoding selects the plain or raw representation of a format.
type Encoding int

const (
	Binary Encoding = iota
	ASCII
)

func (f Format) String() string {
	switch f {
	case Bitmap:
		return "bitmap"
	case Greymap:
		return "greymap"
	case Pixmap:
		return "pixmap"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the conventional file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case Bitmap:
		return "pbm"
	case Greymap:
		return "pgm"
	case Pixmap:
		return "ppm"
	default:
		return ""
	}
}

// SamplesPerPixel is 3 for pixmaps and 1 otherwise.
func (f Format) SamplesPerPixel() int {
	if f == Pixmap {
		return 3
	}
	return 1
}

// Magic returns the two byte magic number of f in the given encoding.
func (f Format) Magic(enc Encoding) string {
	n := int(f)
	if enc == Binary {
		n += 3
	}
	return fmt.Sprintf("P%d", n)
}

// hasSaturation reports whether the header carries a maximum sample value.
func (f Format) hasSaturation() bool {
	return f != Bitmap
}

func (e Encoding) String() string {
	if e == ASCII {
		return "ascii"
	}
	return "binary"
}

// parseMagic maps a magic number to its format and encoding.
func parseMagic(magic string) (Format, Encoding, bool) {
	switch magic {
	case "P1":
		return Bitmap, ASCII, true
	case "P2":
		return Greymap, ASCII, true
	case "P3":
		return Pixmap, ASCII, true
	case "P4":
		return Bitmap, Binary, true
	case "P5":
		return Greymap, Binary, true
	case "P6":
		return Pixmap, Binary, true
	}
	return 0, 0, false
}
