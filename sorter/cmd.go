package sorter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KairosJK/ductr/pnm"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
)

type OpParams struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Bitmap  string `help:"Destination folder for bitmaps (P1, P4)" default:"pbm"`
	Greymap string `help:"Destination folder for greymaps (P2, P5)" default:"pgm"`
	Pixmap  string `help:"Destination folder for pixmaps (P3, P6)" default:"ppm"`
}

// folder returns the destination configured for format.
func (p *OpParams) folder(format pnm.Format) string {
	switch format {
	case pnm.Bitmap:
		return p.Bitmap
	case pnm.Greymap:
		return p.Greymap
	default:
		return p.Pixmap
	}
}

type CLICmd struct {
	Cp struct {
		OpParams
	} `cmd:"" help:"Copy anymaps to their respective folders"`
	Mv struct {
		OpParams
	} `cmd:"" help:"Move anymaps to their respective folders"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	conf := c.params(kctx.Selected().Name)
	if conf == nil {
		return nil
	}
	return conf.resolve()
}

func (c *CLICmd) params(subCmd string) *OpParams {
	switch subCmd {
	case "cp":
		return &c.Cp.OpParams
	case "mv":
		return &c.Mv.OpParams
	}
	return nil
}

func (p *OpParams) resolve() error {
	scanDir, err := filepath.Abs(p.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", p.Scan, err)
	}
	p.Scan = scanDir

	for _, dir := range []*string{&p.Bitmap, &p.Greymap, &p.Pixmap} {
		if !filepath.IsAbs(*dir) {
			*dir = filepath.Join(scanDir, *dir)
		}
	}
	return nil
}

func (c *CLICmd) Run(subCmd string) error {
	var fileOp func(string, string) error
	switch subCmd {
	case "cp":
		fileOp = copyFile
	case "mv":
		fileOp = moveFile
	default:
		return fmt.Errorf("unsupported operation %q", subCmd)
	}
	conf := c.params(subCmd)

	for _, dir := range []string{conf.Bitmap, conf.Greymap, conf.Pixmap} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", dir, err)
		}
	}

	files, err := os.ReadDir(conf.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Scan, err)
	}

	counts := make(map[pnm.Format]int, 3)
	var skipped int
	var errs error
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := filepath.Join(conf.Scan, file.Name())
		logger := slog.Default().With("file", name)

		hdr, err := readHeader(name)
		if err != nil {
			skipped++
			logger.Warn("skipping file", "error", err)
			continue
		}

		dest := filepath.Join(conf.folder(hdr.Format), file.Name())
		if err = fileOp(name, dest); err != nil {
			logger.Error("could not operate anymap", "to", dest, "error", err)
			multierr.AppendInto(&errs, fmt.Errorf("%s: %w", file.Name(), err))
			continue
		}
		counts[hdr.Format]++
	}

	errCount := len(multierr.Errors(errs))
	slog.Info("stats", "bitmaps", counts[pnm.Bitmap], "greymaps", counts[pnm.Greymap],
		"pixmaps", counts[pnm.Pixmap], "skipped", skipped, "errors", errCount)

	if errs != nil {
		return fmt.Errorf("error processing %d files: %w", errCount, errs)
	}
	return nil
}

func readHeader(name string) (pnm.Header, error) {
	f, err := os.Open(name)
	if err != nil {
		return pnm.Header{}, fmt.Errorf("could not open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close file", "name", name, "error", closeErr)
		}
	}()

	return pnm.ReadHeader(f)
}
