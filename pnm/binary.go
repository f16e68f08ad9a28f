package pnm

import (
	"bufio"
	"fmt"
	"io"
)

// WriteBinary encodes img as a raw anymap (P4, P5 or P6).
//
// Bitmaps are packed eight pixels to a byte, first pixel in the most
// significant bit. Each row starts on a fresh byte and the unused low bits of
// a row's last byte are zero.
func WriteBinary(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, img, Binary); err != nil {
		return err
	}

	var err error
	if img.format == Bitmap {
		err = writePackedRows(bw, img.pix, img.width)
	} else {
		_, err = bw.Write(img.pix)
	}
	if err != nil {
		return fmt.Errorf("%w: samples: %w", ErrWrite, err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// ReadBinary decodes a raw anymap. The whole source is read before decoding.
func ReadBinary(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return decodeBinary(data)
}

func decodeBinary(data []byte) (*Image, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: source is %d bytes long", ErrUnknownMagicNumber, len(data))
	}
	if _, enc, ok := parseMagic(string(data[:2])); !ok || enc != Binary {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMagicNumber, data[:2])
	}

	h, payload, err := splitHeader(data, newHeaderParser(Binary))
	if err != nil {
		return nil, err
	}

	switch h.Format {
	case Bitmap:
		return newBitmap(unpackRows(payload, h.Width), h.Height, h.Width)
	case Greymap:
		return newGreymap(payload, h.Saturation, h.Height, h.Width)
	default:
		return newPixmap(payload, h.Saturation, h.Height, h.Width)
	}
}

func writeHeader(w io.Writer, img *Image, enc Encoding) error {
	var err error
	if img.format.hasSaturation() {
		_, err = fmt.Fprintf(w, "%s\n%d %d\n%d\n", img.format.Magic(enc), img.width, img.height, img.saturation)
	} else {
		_, err = fmt.Fprintf(w, "%s\n%d %d\n", img.format.Magic(enc), img.width, img.height)
	}
	if err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}
	return nil
}

// packedRowLen is the number of bytes one bitmap row occupies on the wire.
func packedRowLen(width int) int {
	return (width + 7) / 8
}

func writePackedRows(w io.Writer, pix []uint8, width int) error {
	if width == 0 {
		return nil
	}

	row := make([]byte, packedRowLen(width))
	for start := 0; start < len(pix); start += width {
		packRow(row, pix[start:start+width])
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// packRow packs one row of 0/1 samples into dst, MSB first, zero padded.
func packRow(dst []byte, samples []uint8) {
	for i := range dst {
		chunk := samples[i*8 : min(i*8+8, len(samples))]
		var b byte
		for _, s := range chunk {
			b = b<<1 | s
		}
		dst[i] = b << (8 - len(chunk))
	}
}

// unpackRows expands packed bitmap rows back to one byte per pixel. A trailing
// partial row is expanded as far as it goes so the size check in the
// constructor reports it.
func unpackRows(payload []byte, width int) []uint8 {
	rowLen := packedRowLen(width)
	if rowLen == 0 {
		// Any payload is surplus for zero-width rows.
		return make([]uint8, len(payload)*8)
	}

	lastBits := width % 8
	if lastBits == 0 {
		lastBits = 8
	}

	pix := make([]uint8, 0, len(payload)/rowLen*width+8)
	for i, b := range payload {
		bits := 8
		if i%rowLen == rowLen-1 {
			bits = lastBits
		}
		for bit := 7; bit > 7-bits; bit-- {
			pix = append(pix, (b>>bit)&1)
		}
	}
	return pix
}
