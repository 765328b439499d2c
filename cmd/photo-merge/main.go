package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	photomerge "github.com/menta2k/photo-merge"
	"github.com/menta2k/photo-merge/internal/config"
	"github.com/menta2k/photo-merge/internal/utils"
	"github.com/menta2k/photo-merge/pkg/batch"
	"github.com/menta2k/photo-merge/pkg/codec"
	"github.com/menta2k/photo-merge/pkg/compositor"
	"github.com/menta2k/photo-merge/pkg/types"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)

	var configPath, prefix, ext, pair, outName, saveConfig string
	var count, offset, quality int
	var seed uint64
	var lossless, verbose, showVersion bool

	fs.StringVar(&configPath, "config", "", "JSON config file (default "+config.GetConfigPath()+" if present)")
	defaults := config.Default()
	fs.IntVar(&count, "n", defaults.Batch.Count, "number of composites to generate")
	fs.IntVar(&offset, "offset", 0, fmt.Sprintf("vertical offset of the first image in pixels (%d to %d)", -compositor.CanvasHeight, compositor.CanvasHeight))
	fs.Uint64Var(&seed, "seed", 0, "random seed for reproducible pairing, 0=random")
	fs.StringVar(&prefix, "prefix", defaults.Output.Prefix, "output filename prefix")
	fs.StringVar(&ext, "ext", defaults.Output.Extension, "output extension: .jpg|.png|.gif|.bmp|.tiff|.webp")
	fs.IntVar(&quality, "quality", defaults.Output.Quality, "JPEG/WebP output quality (1-100)")
	fs.BoolVar(&lossless, "lossless", false, "WebP output lossless mode")
	fs.StringVar(&pair, "pair", "", "combine two specific images instead: first,second")
	fs.StringVar(&outName, "out", photomerge.DefaultSpecificName, "output filename for -pair")
	fs.BoolVar(&verbose, "v", false, "debug logging and error stack traces")
	fs.StringVar(&saveConfig, "save-config", "", "write the effective configuration to this file")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	// Flags may appear on either side of the folder.
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	if showVersion {
		fmt.Fprintln(stderr, "photo-merge", photomerge.GetVersion())
		return nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	fail := func(err error) error {
		if verbose {
			fmt.Fprintf(stderr, "error: %+v\n", err)
		} else {
			slog.Error("photo merge failed", "error", err)
		}
		return err
	}

	if len(positional) != 1 {
		fmt.Fprintf(stderr, "usage: %s [flags] <folder> [flags]\n", fs.Name())
		fs.PrintDefaults()
		return errors.New("expected exactly one folder argument")
	}
	folder := positional[0]
	if !utils.DirExists(folder) {
		return fail(types.NewPathError("open", folder, types.ErrNotFound, nil))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fail(err)
	}

	// Flags override the config file.
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if visited["n"] {
		cfg.Batch.Count = count
	}
	if visited["offset"] {
		cfg.Batch.Offset = offset
	}
	if visited["seed"] {
		cfg.Batch.Seed = seed
	}
	if visited["prefix"] {
		cfg.Output.Prefix = prefix
	}
	if visited["ext"] {
		cfg.Output.Extension = "." + strings.TrimPrefix(ext, ".")
	}
	if visited["quality"] {
		cfg.Output.Quality = quality
	}
	if visited["lossless"] {
		cfg.Output.Lossless = lossless
	}

	if err := cfg.Validate(); err != nil {
		return fail(errors.Wrap(err, "invalid configuration"))
	}

	if saveConfig != "" {
		if err := cfg.SaveToFile(saveConfig); err != nil {
			return fail(err)
		}
		slog.Info("saved configuration", "path", saveConfig)
	}

	driverConfig := batch.Config{
		SupportedFormats: cfg.Input.SupportedFormats,
		Output:           cfg.OutputOptions(),
	}
	merger := photomerge.NewWithConfig(driverConfig, compositor.DefaultConfig())

	if pair != "" {
		names := strings.Split(pair, ",")
		if len(names) != 2 || names[0] == "" || names[1] == "" {
			return fail(errors.Errorf("-pair expects two comma separated filenames, got %q", pair))
		}
		if !codec.IsWritableFormat(outName) {
			return fail(errors.Errorf("unsupported output format for %q", outName))
		}
		result, err := merger.CombineNamed(folder, strings.TrimSpace(names[0]), strings.TrimSpace(names[1]), outName, cfg.Batch.Offset)
		if err != nil {
			return fail(err)
		}
		report(result)
		return nil
	}

	if !codec.IsWritableFormat(cfg.Output.Extension) {
		return fail(errors.Errorf("unsupported output extension %q", cfg.Output.Extension))
	}

	results, err := merger.GenerateRandom(folder, cfg.BatchOptions())
	for _, r := range results {
		report(r)
	}
	if err != nil {
		return fail(err)
	}
	slog.Info("done", "written", len(results), "output_dir", merger.OutputDir(folder))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); utils.FileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}

func report(r types.MergeResult) {
	slog.Info("wrote",
		"output", r.Output,
		"first", r.Sources.First,
		"second", r.Sources.Second,
		"size", utils.FormatFileSize(r.Size))
}
