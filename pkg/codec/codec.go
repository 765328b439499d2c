// Package codec reads source photos and writes composites.
//
// Decoding sniffs the content, so a mislabelled extension still decodes. Encoding picks
// the format from the output extension.
package codec

import (
	"bytes"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/photo-merge/pkg/types"
)

// Codec decodes and encodes images on the local filesystem
type Codec struct {
	config Config
}

// Config holds encoder settings
type Config struct {
	Quality  int
	Lossless bool
}

// New creates a Codec with default configuration
func New() *Codec {
	return &Codec{
		config: Config{
			Quality: 90,
		},
	}
}

// NewWithConfig creates a Codec with custom configuration
func NewWithConfig(config Config) *Codec {
	if config.Quality < 1 || config.Quality > 100 {
		config.Quality = 90
	}
	return &Codec{config: config}
}

// Decode opens and decodes the image at path, applying EXIF orientation.
// Missing files yield types.ErrNotFound, unreadable content types.ErrDecode.
func (c *Codec) Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewPathError("open", path, types.ErrNotFound, err)
		}
		return nil, types.NewPathError("open", path, types.ErrIO, err)
	}

	img, err := c.DecodeReader(bytes.NewReader(data))
	if err != nil {
		return nil, types.NewPathError("decode", path, types.ErrDecode, err)
	}
	return img, nil
}

// DecodeReader decodes an image from r with WebP fallback
func (c *Codec) DecodeReader(r io.ReadSeeker) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}

	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return nil, err
	}
	if wimg, werr := webp.Decode(r); werr == nil {
		return wimg, nil
	}
	return nil, err
}

// Encode writes img to path in the format implied by its extension.
// The image is written to a temporary sibling first so a failed encode leaves nothing behind.
func (c *Codec) Encode(img image.Image, path string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return types.NewPathError("create", path, types.ErrIO, err)
	}
	tmpName := tmp.Name()

	if err := c.EncodeWriter(tmp, img, GetFormat(path)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return types.NewPathError("encode", path, types.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return types.NewPathError("write", path, types.ErrIO, err)
	}
	// CreateTemp opens with 0600
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return types.NewPathError("chmod", path, types.ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return types.NewPathError("rename", path, types.ErrIO, err)
	}
	return nil
}

// EncodeWriter encodes img to w in the named format (jpg, png, gif, bmp, tiff, webp)
func (c *Codec) EncodeWriter(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		return webp.Encode(w, img, &webp.Options{Lossless: c.config.Lossless, Quality: float32(c.config.Quality)})
	case "":
		return errors.New("missing output format")
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return errors.Wrapf(err, "unsupported output format %q", format)
	}
	return imaging.Encode(w, img, f, imaging.JPEGQuality(c.config.Quality))
}

// GetFormat returns the lower-case output format for a filename
func GetFormat(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsWritableFormat reports whether files named like path can be encoded
func IsWritableFormat(path string) bool {
	switch GetFormat(path) {
	case "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp":
		return true
	}
	return false
}
