package pnm

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// Read decodes a plain or raw anymap, choosing the decoder from the magic
// number.
func Read(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return decode(data)
}

func decode(data []byte) (*Image, error) {
	magic := bytes.TrimLeftFunc(data, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
	if len(magic) >= 2 && magic[0] == 'P' {
		switch magic[1] {
		case '1', '2', '3':
			return decodeASCII(data)
		case '4', '5', '6':
			return decodeBinary(data)
		}
	}
	return nil, fmt.Errorf("%w: no P1-P6 magic number", ErrUnknownMagicNumber)
}

// Write encodes img with the given encoding.
func Write(w io.Writer, img *Image, enc Encoding) error {
	if enc == ASCII {
		return WriteASCII(w, img)
	}
	return WriteBinary(w, img)
}

// ReadFile decodes the anymap stored at path.
func ReadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	return decode(data)
}

// WriteFile encodes img to path. The image is written to a temporary file in
// the same directory which replaces path once it is complete, so a failed
// write leaves any existing file in place.
func WriteFile(path string, img *Image, enc Encoding) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary file for %q: %w", ErrWrite, path, err)
	}
	closed := false
	defer func() {
		if err != nil {
			if !closed {
				err = multierr.Append(err, f.Close())
			}
			if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
				err = multierr.Append(err, rmErr)
			}
		}
	}()

	if err = Write(f, img, enc); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: could not set mode of %q: %w", ErrWrite, path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: could not flush %q: %w", ErrWrite, path, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: could not close %q: %w", ErrWrite, path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: could not rename into %q: %w", ErrWrite, path, err)
	}
	return nil
}
