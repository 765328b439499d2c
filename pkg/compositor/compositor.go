// Package compositor stacks two photos into a fixed 1200x1600 portrait canvas.
//
// Each photo is letterboxed into a full-width, half-height panel on a white background.
// The first panel is placed at a caller-chosen vertical offset and the second panel
// always starts at the first panel's bottom edge, so a non-zero offset shifts both.
// Panels that extend past the canvas are clipped.
package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Canvas geometry
const (
	CanvasWidth  = 1200
	CanvasHeight = 1600
	PanelWidth   = CanvasWidth
	PanelHeight  = CanvasHeight / 2
)

// Background fills the canvas and the letterbox bars
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Compositor builds two-panel composites
type Compositor struct {
	config Config
}

// Config holds configuration for compositing
type Config struct {
	Filter imaging.ResampleFilter
}

// DefaultConfig resamples with Lanczos
func DefaultConfig() Config {
	return Config{Filter: imaging.Lanczos}
}

// New creates a Compositor with default configuration
func New() *Compositor {
	return &Compositor{config: DefaultConfig()}
}

// NewWithConfig creates a Compositor with custom configuration.
// The zero Filter is imaging.NearestNeighbor.
func NewWithConfig(config Config) *Compositor {
	return &Compositor{config: config}
}

// Layout is where the two panels land on the canvas, before clipping
type Layout struct {
	First  image.Rectangle
	Second image.Rectangle
}

// PanelLayout places the first panel at offset and the second directly beneath it.
// Offsets beyond a canvas height in either direction leave both panels off the canvas,
// so they are clamped to that range.
func PanelLayout(offset, firstHeight int) Layout {
	offset = ClampOffset(offset)
	first := image.Rect(0, offset, PanelWidth, offset+firstHeight)
	return Layout{
		First:  first,
		Second: image.Rect(0, first.Max.Y, PanelWidth, first.Max.Y+PanelHeight),
	}
}

// ClampOffset limits offset to [-CanvasHeight, CanvasHeight]
func ClampOffset(offset int) int {
	if offset > CanvasHeight {
		return CanvasHeight
	}
	if offset < -CanvasHeight {
		return -CanvasHeight
	}
	return offset
}

// Compose letterboxes a and b into panels and stacks them on a fresh canvas
func (c *Compositor) Compose(a, b image.Image, offset int) *image.NRGBA {
	first := c.Letterbox(a, PanelWidth, PanelHeight)
	second := c.Letterbox(b, PanelWidth, PanelHeight)

	layout := PanelLayout(offset, first.Bounds().Dy())

	canvas := imaging.New(CanvasWidth, CanvasHeight, Background)
	canvas = imaging.Paste(canvas, first, layout.First.Min)
	canvas = imaging.Paste(canvas, second, layout.Second.Min)
	return canvas
}

// Letterbox scales img to fit inside width x height keeping its aspect ratio,
// centers it and fills the surplus with Background. Smaller images are scaled up.
func (c *Compositor) Letterbox(img image.Image, width, height int) *image.NRGBA {
	panel := imaging.New(width, height, Background)

	src := img.Bounds()
	if src.Empty() {
		return panel
	}

	fit := FitRect(src.Dx(), src.Dy(), width, height)

	var scaled *image.NRGBA
	if fit.Dx() == src.Dx() && fit.Dy() == src.Dy() {
		scaled = imaging.Clone(img)
	} else {
		scaled = imaging.Resize(img, fit.Dx(), fit.Dy(), c.config.Filter)
	}

	// Overlay rather than Paste so transparent sources blend into the background.
	return imaging.Overlay(panel, scaled, fit.Min, 1.0)
}

// FitRect returns the rectangle an srcW x srcH image occupies when fitted and
// centered inside a boxW x boxH box.
func FitRect(srcW, srcH, boxW, boxH int) image.Rectangle {
	w, h := boxW, boxH

	srcRatio := float64(srcW) / float64(srcH)
	boxRatio := float64(boxW) / float64(boxH)
	switch {
	case srcRatio > boxRatio:
		h = maxInt(1, roundHalfEven(float64(srcH)/float64(srcW)*float64(boxW)))
	case srcRatio < boxRatio:
		w = maxInt(1, roundHalfEven(float64(srcW)/float64(srcH)*float64(boxH)))
	}

	x := roundHalfEven(float64(boxW-w) * 0.5)
	y := roundHalfEven(float64(boxH-h) * 0.5)
	return image.Rect(x, y, x+w, y+h)
}

func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
