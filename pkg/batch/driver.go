package batch

import (
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/menta2k/photo-merge/internal/utils"
	"github.com/menta2k/photo-merge/pkg/compositor"
	"github.com/menta2k/photo-merge/pkg/naming"
	"github.com/menta2k/photo-merge/pkg/selection"
	"github.com/menta2k/photo-merge/pkg/types"
)

// ImageCodec reads and writes images by path
type ImageCodec interface {
	Decode(path string) (image.Image, error)
	Encode(img image.Image, path string) error
}

// Driver runs pair selection, compositing, naming and encoding
type Driver struct {
	codec      ImageCodec
	compositor *compositor.Compositor
	config     Config
}

// Config holds configuration for a driver
type Config struct {
	SupportedFormats []string
	Output           types.OutputOptions
}

// DefaultConfig returns the stock driver configuration
func DefaultConfig() Config {
	return Config{
		SupportedFormats: utils.DefaultImageExtensions,
		Output: types.OutputOptions{
			DirName:   "output",
			Prefix:    "combined_",
			Extension: ".jpg",
			Quality:   90,
		},
	}
}

// NewDriver creates a driver
func NewDriver(codec ImageCodec, comp *compositor.Compositor, config Config) *Driver {
	return &Driver{
		codec:      codec,
		compositor: comp,
		config:     config,
	}
}

// OutputDir returns the directory composites for folder are written to
func (d *Driver) OutputDir(folder string) string {
	return filepath.Join(folder, d.config.Output.DirName)
}

// Merge decodes both sources, composites them and writes the result to outputPath.
// Nothing is written unless both sources decode.
func (d *Driver) Merge(firstPath, secondPath, outputPath string, offset int) error {
	first, err := d.codec.Decode(firstPath)
	if err != nil {
		return err
	}
	second, err := d.codec.Decode(secondPath)
	if err != nil {
		return err
	}

	combined := d.compositor.Compose(first, second, offset)
	if err := d.codec.Encode(combined, outputPath); err != nil {
		return err
	}

	slog.Info("merged images", "first", firstPath, "second", secondPath, "output", outputPath)
	return nil
}

// Generate writes up to opts.Count composites from disjoint random pairs of the images in folder.
// It stops early without error when the pool runs out. On failure the results written so far
// are returned with the error.
func (d *Driver) Generate(folder string, opts types.BatchOptions) ([]types.MergeResult, error) {
	pool, err := d.ListImages(folder)
	if err != nil {
		return nil, err
	}
	if len(pool) < 2 {
		return nil, types.NewPathError("generate", folder, types.ErrInsufficientInput,
			errors.Errorf("found %d eligible image(s), need at least 2", len(pool)))
	}

	outDir := d.OutputDir(folder)
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, types.NewPathError("mkdir", outDir, types.ErrIO, err)
	}

	pairer := selection.NewRandomPairer(pool, opts.Seed)
	var results []types.MergeResult

	for i := 0; i < opts.Count; i++ {
		pair, ok := pairer.Next()
		if !ok {
			slog.Warn("fewer than two unused images left, stopping early",
				"written", len(results), "requested", opts.Count, "unused", pairer.Remaining())
			break
		}

		outPath, err := naming.NextName(outDir, d.config.Output.Prefix, d.config.Output.Extension)
		if err != nil {
			return results, err
		}

		result, err := d.mergePair(folder, pair, outPath, opts.Offset)
		if err != nil {
			return results, errors.Wrapf(err, "composite %d of %d", i+1, opts.Count)
		}
		results = append(results, result)
	}

	return results, nil
}

// CombineNamed composites two named images from folder into outputName inside the
// output directory. The name is used as given, without sequence numbering.
func (d *Driver) CombineNamed(folder, firstName, secondName, outputName string, offset int) (types.MergeResult, error) {
	if !utils.IsBareFilename(outputName) {
		return types.MergeResult{}, types.NewPathError("combine", outputName, types.ErrIO,
			errors.New("output name must be a plain filename"))
	}

	outDir := d.OutputDir(folder)
	if err := utils.EnsureDir(outDir); err != nil {
		return types.MergeResult{}, types.NewPathError("mkdir", outDir, types.ErrIO, err)
	}

	pair := selection.ExplicitPair(firstName, secondName)
	return d.mergePair(folder, pair, filepath.Join(outDir, outputName), offset)
}

// ListImages returns the eligible source images in folder
func (d *Driver) ListImages(folder string) ([]string, error) {
	files, err := utils.ListImageFiles(folder, d.config.SupportedFormats)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewPathError("list", folder, types.ErrNotFound, err)
		}
		return nil, types.NewPathError("list", folder, types.ErrIO, err)
	}
	if len(files) == 0 {
		slog.Warn("no eligible images in folder", "folder", folder)
	}
	return files, nil
}

func (d *Driver) mergePair(folder string, pair types.Pair, outPath string, offset int) (types.MergeResult, error) {
	err := d.Merge(filepath.Join(folder, pair.First), filepath.Join(folder, pair.Second), outPath, offset)
	if err != nil {
		return types.MergeResult{}, err
	}

	result := types.MergeResult{Sources: pair, Output: outPath}
	if info, err := os.Stat(outPath); err == nil {
		result.Size = info.Size()
	}
	slog.Debug("wrote composite", "output", outPath, "size", utils.FormatFileSize(result.Size))
	return result, nil
}
