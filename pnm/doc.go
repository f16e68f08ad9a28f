// Package pnm reads and writes Portable Anymap images: PBM bitmaps, PGM greymaps
// and PPM pixmaps, in both their plain (ASCII, P1-P3) and raw (binary, P4-P6)
// encodings.
//
// Images are built through the validating constructors NewBitmap, NewGreymap and
// NewPixmap, or by one of the readers. Once built, an Image keeps its format and
// dimensions; only the transforms (Invert, ApplyFilter, Greyscale) change its
// samples, and they do so in place.
//
// Header comments are not supported.
package pnm
