// Package output persists stamped images in the format implied by the
// destination's extension.
package output

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 95

var (
	// ErrDestinationExists is returned when Overwrite is false and the
	// destination is already there.
	ErrDestinationExists = errors.New("destination file already exists")

	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidQuality    = errors.New("quality must be within 1-100")
)

// Options configures Write.
type Options struct {
	// Quality applies to lossy formats. Zero means DefaultQuality.
	Quality int

	// Overwrite allows replacing an existing destination.
	Overwrite bool
}

// Write encodes img to dst. It creates the parent directory if needed and
// removes a partially written file on failure.
func Write(img image.Image, dst string, opts Options) error {
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(dst))
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if !opts.Overwrite {
		flags |= os.O_EXCL
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrDestinationExists
		}
		return fmt.Errorf("create destination: %w", err)
	}

	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(quality)); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("encode %s: %w", format, err)
	}

	// Ensure data is written to disk
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync: %w", err)
	}
	return f.Close()
}
