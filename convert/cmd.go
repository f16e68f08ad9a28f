package convert

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/KairosJK/ductr/palette"
	"github.com/KairosJK/ductr/parallel"
	"github.com/KairosJK/ductr/pnm"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan      string `help:"Source folder to scan" default:"."`
	Dest      string `help:"Destination folder for anymaps. Relative to scan dir if not absolute." default:"pnm"`
	Format    string `help:"Anymap kind to write. 'same' keeps the kind of PNM sources and writes everything else as pixmaps." enum:"same,pbm,pgm,ppm" default:"same"`
	Plain     bool   `help:"Write plain (ASCII) anymaps instead of raw ones" default:"false"`
	Resize    bool   `help:"Resize image" default:"false" group:"resize"`
	Width     int    `help:"Max width" group:"resize"`
	Height    int    `help:"Max height" group:"resize"`
	Crop      bool   `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill      string `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	Palette   string `help:"Palette name (bw, gray4, gray16, vga16) or PAL file in RIFF format to apply" group:"palette"`
	Dither    bool   `help:"Apply dithering. Bitmaps are dithered to black and white when no palette is given." default:"false" group:"palette"`
	Greyscale bool   `help:"Replace pixmap colors by the mean of their channels" default:"false" group:"transform"`
	Invert    bool   `help:"Invert samples" default:"false" group:"transform"`
	Filter    string `help:"Anymap whose samples are added to every converted image" type:"existingfile" group:"transform"`

	FillColor   color.Color   `kong:"-"`
	FilterImage *pnm.Image    `kong:"-"`
	Colors      color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Resize {
		switch {
		case c.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case c.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case c.Width == 0 && c.Height == 0:
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if !c.Crop && c.Fill != "" {
		if c.FillColor, err = parseHexColor(c.Fill); err != nil {
			return err
		}
	}

	if c.Palette != "" {
		if c.Colors, err = palette.LoadPalette(c.Palette); err != nil {
			return err
		}
	}

	if c.Filter != "" {
		if c.Format == "pbm" {
			return fmt.Errorf("bitmaps cannot be filtered")
		}
		if c.FilterImage, err = pnm.ReadFile(c.Filter); err != nil {
			return fmt.Errorf("could not load filter %q: %w", c.Filter, err)
		}
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var (
		processedCount, errCount atomic.Uint64
		mu                       sync.Mutex
		errs                     error
	)
	fail := func(logger *slog.Logger, msg string, err error) {
		errCount.Add(1)
		logger.Error(msg, "error", err)
		mu.Lock()
		multierr.AppendInto(&errs, err)
		mu.Unlock()
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				img, err := c.convert(logger, filePath)
				if err != nil {
					fail(logger, "could not convert image", fmt.Errorf("%s: %w", fileName, err))
					return
				}

				destPath := filepath.Join(c.Dest, outputName(fileName, img.Format()))
				if err = pnm.WriteFile(destPath, img, c.encoding()); err != nil {
					fail(logger, "could not save image", fmt.Errorf("%s: %w", fileName, err))
					return
				}
				logger.Debug("saved", "dest", destPath, "format", img.Format(), "encoding", c.encoding())
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait()

	processed := processedCount.Load()
	failed := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", failed,
		"total", processed+failed)

	if errs != nil {
		return fmt.Errorf("error processing %d files: %w", failed, errs)
	}
	return nil
}

// convert decodes one source file and turns it into the requested anymap.
func (c *CLICmd) convert(logger *slog.Logger, filePath string) (*pnm.Image, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	format := c.targetFormat(imgType)
	logger.Debug("decoded", "type", imgType, "target", format)

	if c.Resize {
		img = resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
	}

	if pal := c.paletteFor(format); pal != nil {
		img = repalette(logger.With("palette", c.Palette), img, pal, c.Dither)
	}

	out, err := pnm.FromImage(img, format)
	if err != nil {
		return nil, err
	}

	if c.Greyscale {
		out.Greyscale()
	}
	if c.Invert {
		out.Invert()
	}
	if c.FilterImage != nil {
		if err := out.ApplyFilter(c.FilterImage); err != nil {
			return nil, fmt.Errorf("could not apply filter: %w", err)
		}
	}
	return out, nil
}

// targetFormat maps the --format flag and the decoded source type to the
// anymap kind to produce.
func (c *CLICmd) targetFormat(imgType string) pnm.Format {
	name := c.Format
	if name == "same" || name == "" {
		name = imgType
	}

	switch name {
	case "pbm":
		return pnm.Bitmap
	case "pgm":
		return pnm.Greymap
	default:
		return pnm.Pixmap
	}
}

func (c *CLICmd) paletteFor(format pnm.Format) color.Palette {
	if c.Colors != nil {
		return c.Colors
	}
	if format == pnm.Bitmap && c.Dither {
		pal, _ := palette.LoadPalette("bw")
		return pal
	}
	return nil
}

func (c *CLICmd) encoding() pnm.Encoding {
	if c.Plain {
		return pnm.ASCII
	}
	return pnm.Binary
}

func outputName(srcName string, format pnm.Format) string {
	return strings.TrimSuffix(srcName, filepath.Ext(srcName)) + "." + format.Extension()
}
