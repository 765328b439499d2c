// Package photomerge composites pairs of photos into 1200x1600 portrait collages.
//
// Each photo is letterboxed into a 1200x800 panel on a white background and the two
// panels are stacked vertically. Output files are numbered so earlier results are never
// overwritten.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		photomerge "github.com/menta2k/photo-merge"
//		"github.com/menta2k/photo-merge/pkg/types"
//	)
//
//	func main() {
//		merger := photomerge.New()
//
//		// Five collages from random, non-repeating pairs in ./photos,
//		// written to ./photos/output/combined_<N>.jpg
//		results, err := merger.GenerateRandom("photos", types.BatchOptions{Count: 5})
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, r := range results {
//			log.Printf("%s + %s -> %s", r.Sources.First, r.Sources.Second, r.Output)
//		}
//
//		// Two specific photos, first one shifted down by 40px
//		if _, err := merger.CombineNamed("photos", "a.jpg", "b.jpg", "ab.jpg", 40); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of these components:
//
//  1. Codec (pkg/codec): decodes sources by content and encodes by output extension
//  2. Compositor (pkg/compositor): letterboxes and stacks the two panels
//  3. Naming (pkg/naming): allocates the next free numbered output name
//  4. Selection (pkg/selection): random pairing without replacement, explicit pairing
//  5. Batch (pkg/batch): drives the above for a folder
package photomerge

import (
	"image"

	"github.com/menta2k/photo-merge/pkg/batch"
	"github.com/menta2k/photo-merge/pkg/codec"
	"github.com/menta2k/photo-merge/pkg/compositor"
	"github.com/menta2k/photo-merge/pkg/naming"
	"github.com/menta2k/photo-merge/pkg/types"
)

// Version of the photo merge library
const Version = "1.0.0"

// DefaultSpecificName is the output name used for explicit pairs when none is given
const DefaultSpecificName = "combined_specific.jpg"

// PhotoMerger provides a high-level interface for building collages
type PhotoMerger struct {
	codec      *codec.Codec
	compositor *compositor.Compositor
	driver     *batch.Driver
	config     batch.Config
}

// New creates a new PhotoMerger with default configuration
func New() *PhotoMerger {
	return NewWithConfig(batch.DefaultConfig(), compositor.DefaultConfig())
}

// NewWithConfig creates a new PhotoMerger with custom configuration
func NewWithConfig(config batch.Config, compositorConfig compositor.Config) *PhotoMerger {
	imgCodec := codec.NewWithConfig(codec.Config{
		Quality:  config.Output.Quality,
		Lossless: config.Output.Lossless,
	})
	comp := compositor.NewWithConfig(compositorConfig)

	return &PhotoMerger{
		codec:      imgCodec,
		compositor: comp,
		driver:     batch.NewDriver(imgCodec, comp, config),
		config:     config,
	}
}

// LoadImage loads an image from file
func (pm *PhotoMerger) LoadImage(path string) (image.Image, error) {
	return pm.codec.Decode(path)
}

// SaveImage saves an image to file in the format implied by its extension
func (pm *PhotoMerger) SaveImage(img image.Image, path string) error {
	return pm.codec.Encode(img, path)
}

// Compose stacks two decoded images into one canvas without touching the filesystem
func (pm *PhotoMerger) Compose(first, second image.Image, offset int) *image.NRGBA {
	return pm.compositor.Compose(first, second, offset)
}

// GenerateRandom writes up to opts.Count collages from disjoint random pairs in folder
func (pm *PhotoMerger) GenerateRandom(folder string, opts types.BatchOptions) ([]types.MergeResult, error) {
	return pm.driver.Generate(folder, opts)
}

// CombineNamed writes one collage of two named images in folder to outputName
// inside the output directory. An empty outputName uses DefaultSpecificName.
func (pm *PhotoMerger) CombineNamed(folder, firstName, secondName, outputName string, offset int) (types.MergeResult, error) {
	if outputName == "" {
		outputName = DefaultSpecificName
	}
	return pm.driver.CombineNamed(folder, firstName, secondName, outputName, offset)
}

// Merge composites two image files into outputPath
func (pm *PhotoMerger) Merge(firstPath, secondPath, outputPath string, offset int) error {
	return pm.driver.Merge(firstPath, secondPath, outputPath, offset)
}

// NextOutputName returns the next free numbered output path in dir
func (pm *PhotoMerger) NextOutputName(dir string) (string, error) {
	return naming.NextName(dir, pm.config.Output.Prefix, pm.config.Output.Extension)
}

// OutputDir returns where collages for folder are written
func (pm *PhotoMerger) OutputDir(folder string) string {
	return pm.driver.OutputDir(folder)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
