package capturedate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifLayout is the fixed EXIF DateTime format.
const exifLayout = "2006:01:02 15:04:05"

type exifExtractor struct {
	location *time.Location
}

// NewExifExtractor returns the default Extractor. It reads only
// DateTimeOriginal from the EXIF sub-IFD and parses it strictly.
func NewExifExtractor(loc *time.Location) Extractor {
	if loc == nil {
		loc = time.Local
	}
	return exifExtractor{location: loc}
}

func (e exifExtractor) CaptureTime(name string, r io.Reader) (time.Time, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("decode exif: %w", err)
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		var notPresent exif.TagNotPresentError
		if errors.As(err, &notPresent) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read %s: %w", exif.DateTimeOriginal, err)
	}

	s, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read %s: %w", exif.DateTimeOriginal, err)
	}

	loc := e.location
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(exifLayout, s, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t, true, nil
}
