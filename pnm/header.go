package pnm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Header is the metadata that precedes the samples of an anymap.
type Header struct {
	Format     Format
	Encoding   Encoding
	Width      int
	Height     int
	Saturation int
}

type headerState int

const (
	expectMagic headerState = iota
	expectWidth
	expectHeight
	expectSaturation
	readPayload
)

func (s headerState) String() string {
	switch s {
	case expectMagic:
		return "magic number"
	case expectWidth:
		return "width"
	case expectHeight:
		return "height"
	case expectSaturation:
		return "saturation"
	default:
		return "payload"
	}
}

// headerParser walks expectMagic -> expectWidth -> expectHeight ->
// [expectSaturation] -> readPayload, one token at a time.
type headerParser struct {
	state  headerState
	header Header

	// restrict limits accepted magic numbers to the want encoding.
	restrict bool
	want     Encoding
}

func newHeaderParser(enc Encoding) *headerParser {
	return &headerParser{restrict: true, want: enc}
}

func (p *headerParser) done() bool {
	return p.state == readPayload
}

// isDelim reports whether b ends a header token. Raw headers split on space and
// newline only; plain headers on any ASCII whitespace.
func (p *headerParser) isDelim(b byte) bool {
	if p.encoding() == ASCII {
		return isSpace(b)
	}
	return b == ' ' || b == '\n'
}

func (p *headerParser) encoding() Encoding {
	if p.state == expectMagic {
		if p.restrict {
			return p.want
		}
		return ASCII
	}
	return p.header.Encoding
}

// feed consumes one header token.
func (p *headerParser) feed(tok []byte) error {
	tok = bytes.TrimSpace(tok)

	switch p.state {
	case expectMagic:
		f, enc, ok := parseMagic(string(tok))
		if !ok || (p.restrict && enc != p.want) {
			return fmt.Errorf("%w: %q", ErrUnknownMagicNumber, tok)
		}
		p.header.Format, p.header.Encoding = f, enc
		p.state = expectWidth
		return nil
	case readPayload:
		return nil
	}

	// Plain headers tolerate stray words between the numbers.
	if p.header.Encoding == ASCII && !allDigits(tok) {
		return nil
	}

	n, err := parseHeaderValue(tok)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedHeader, p.state, err)
	}

	switch p.state {
	case expectWidth:
		p.header.Width = n
		p.state = expectHeight
	case expectHeight:
		p.header.Height = n
		if p.header.Format.hasSaturation() {
			p.state = expectSaturation
		} else {
			p.state = readPayload
		}
	case expectSaturation:
		p.header.Saturation = n
		p.state = readPayload
	}
	return nil
}

// scan feeds tokens from r until the header is complete. On success the last
// byte consumed is the delimiter that ended the final header token, or r is at
// EOF.
func (p *headerParser) scan(r io.ByteReader) error {
	var tok []byte
	for !p.done() {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			if len(tok) > 0 {
				if err := p.feed(tok); err != nil {
					return err
				}
			}
			if p.done() {
				return nil
			}
			if p.state == expectMagic {
				return fmt.Errorf("%w: empty source", ErrUnknownMagicNumber)
			}
			return fmt.Errorf("%w: source ends before %s", ErrMalformedHeader, p.state)
		} else if err != nil {
			return fmt.Errorf("%w: %w", ErrUnreadableSource, err)
		}

		if !p.isDelim(b) {
			tok = append(tok, b)
			continue
		}
		if len(tok) == 0 {
			continue
		}
		if err := p.feed(tok); err != nil {
			return err
		}
		tok = tok[:0]
	}
	return nil
}

// splitHeader parses the header at the start of data and returns the bytes
// following it.
func splitHeader(data []byte, p *headerParser) (Header, []byte, error) {
	r := bytes.NewReader(data)
	if err := p.scan(r); err != nil {
		return Header{}, nil, err
	}
	return p.header, data[len(data)-r.Len():], nil
}

// ReadHeader parses only the header of a plain or raw anymap. Reading stops
// at the delimiter that ends the header.
func ReadHeader(r io.Reader) (Header, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	p := &headerParser{}
	if err := p.scan(br); err != nil {
		return Header{}, err
	}
	return p.header, nil
}

func parseHeaderValue(tok []byte) (int, error) {
	if !allDigits(tok) {
		return 0, fmt.Errorf("%q is not a non-negative integer", tok)
	}
	n, err := strconv.ParseUint(string(tok), 10, 64)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%d is too large", n)
	}
	return int(n), nil
}

func allDigits(tok []byte) bool {
	if len(tok) == 0 {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
