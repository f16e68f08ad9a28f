package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KairosJK/ductr/convert"
	"github.com/KairosJK/ductr/parallel"
	"github.com/KairosJK/ductr/sorter"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Workers int  `help:"Number of files converted in parallel. Defaults to the number of CPUs." short:"j"`
	Verbose bool `help:"Log every file operation" short:"v"`

	Convert convert.CLICmd `cmd:"" help:"Convert images to portable anymaps"`
	Sort    sorter.CLICmd  `cmd:"" help:"Sort anymaps into per-format folders"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ductr"),
		kong.Description("Portable anymap (PBM, PGM, PPM) tools."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	kctx.FatalIfErrorf(run(kctx.Command(), &cli))
}

func run(command string, cli *CLI) error {
	switch command {
	case "convert":
		pool := parallel.Start(cli.Workers)
		slog.Debug("starting conversion", "workers", pool.Workers())
		return cli.Convert.Run(pool.Do, pool.Wait)
	case "sort cp":
		return cli.Sort.Run("cp")
	case "sort mv":
		return cli.Sort.Run("mv")
	}
	return fmt.Errorf("unsupported command %q", command)
}
