package pnm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// WriteASCII encodes img as a plain anymap (P1, P2 or P3). Samples on a row
// are separated by a space and rows by a newline; nothing follows the last
// sample.
func WriteASCII(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, img, ASCII); err != nil {
		return err
	}

	rowLen := img.rowSamples()
	var buf []byte
	for i, s := range img.pix {
		buf = buf[:0]
		if i > 0 {
			if i%rowLen == 0 {
				buf = append(buf, '\n')
			} else {
				buf = append(buf, ' ')
			}
		}
		buf = strconv.AppendUint(buf, uint64(s), 10)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("%w: sample %d: %w", ErrWrite, i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// ReadASCII decodes a plain anymap. The source must be valid UTF-8 text.
//
// Header words that are not plain decimal numbers are skipped, so
// "P2 x 4 4 255" reads as a 4x4 greymap.
func ReadASCII(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return decodeASCII(data)
}

func decodeASCII(data []byte) (*Image, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not UTF-8 text", ErrUnreadableSource)
	}

	h, rest, err := splitHeader(data, newHeaderParser(ASCII))
	if err != nil {
		return nil, err
	}

	fields := bytes.FieldsFunc(rest, func(r rune) bool {
		return r < utf8.RuneSelf && isSpace(byte(r))
	})
	pix := make([]uint8, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(string(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %q", ErrMalformedPixelData, i, f)
		}
		pix[i] = uint8(v)
	}

	switch h.Format {
	case Bitmap:
		return newBitmap(pix, h.Height, h.Width)
	case Greymap:
		return newGreymap(pix, h.Saturation, h.Height, h.Width)
	default:
		return newPixmap(pix, h.Saturation, h.Height, h.Width)
	}
}
