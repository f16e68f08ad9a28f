package palette

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.Gray{Y: 0x00},
		color.Gray{Y: 0xff},
	},
	"gray4":  grays(4),
	"gray16": grays(16),
	"vga16": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xaa, 0xff},
		color.RGBA{0x00, 0xaa, 0x00, 0xff},
		color.RGBA{0x00, 0xaa, 0xaa, 0xff},
		color.RGBA{0xaa, 0x00, 0x00, 0xff},
		color.RGBA{0xaa, 0x00, 0xaa, 0xff},
		color.RGBA{0xaa, 0x55, 0x00, 0xff},
		color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
		color.RGBA{0x55, 0x55, 0x55, 0xff},
		color.RGBA{0x55, 0x55, 0xff, 0xff},
		color.RGBA{0x55, 0xff, 0x55, 0xff},
		color.RGBA{0x55, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x55, 0x55, 0xff},
		color.RGBA{0xff, 0x55, 0xff, 0xff},
		color.RGBA{0xff, 0xff, 0x55, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
}

// grays spreads n grey levels evenly from black to white.
func grays(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		pal[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return pal
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadPalette returns the built-in palette called name or, failing that, the
// colours of the RIFF PAL file at that path.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := builtin[strings.ToLower(name)]; ok {
		return slices.Clone(pal), nil
	}

	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-in: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return res, nil
}
