package capturedate

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"time"
)

// DefaultLayout renders a capture date as e.g. "2024年01月15日".
const DefaultLayout = "2006年01月02日"

// Source describes where a capture date was derived from.
type Source string

const (
	SourceMetadata Source = "metadata"
	SourceFilename Source = "filename"
)

// ErrInvalidTimestamp is returned when a timestamp is present but does not
// match the EXIF "YYYY:MM:DD HH:MM:SS" format.
var ErrInvalidTimestamp = errors.New("invalid capture timestamp")

// Date is the calendar day a photo was captured on.
type Date struct {
	Year  int
	Month time.Month
	Day   int

	// Time is the full timestamp the date was taken from.
	Time   time.Time
	Source Source
}

func newDate(t time.Time, src Source) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d, Time: t, Source: src}
}

// Format renders the date with a Go time layout. An empty layout means
// DefaultLayout.
func (d Date) Format(layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return d.Time.Format(layout)
}

func (d Date) String() string {
	return d.Format(DefaultLayout)
}

// Extractor reads an embedded capture timestamp from an image stream.
//
// Implementations return (t, true, nil) when a timestamp is found and
// (time.Time{}, false, nil) when the image carries none. A non-nil error is a
// diagnostic; Extract still reports the file as having no date.
type Extractor interface {
	CaptureTime(name string, r io.Reader) (time.Time, bool, error)
}

// Options configures Extract.
type Options struct {
	// Location is used for timestamps that carry no zone. If nil, time.Local
	// is used.
	Location *time.Location

	// Metadata reads embedded timestamps. If nil, the EXIF extractor is used.
	Metadata Extractor

	// FilenameFallback derives a date from camera style filenames
	// (IMG_20240102_030405.jpg and friends) when the metadata has none.
	FilenameFallback bool
}

// Extract returns the capture date of the image at name.
//
// It returns an error without a date only when name cannot be opened or is
// not a regular file. Metadata problems are reported as (Date{}, false, err)
// so callers can log them and move on.
func Extract(fsys fs.FS, name string, opts Options) (Date, bool, error) {
	name = path.Clean(name)

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return Date{}, false, err
	}
	if info.IsDir() {
		return Date{}, false, fs.ErrInvalid
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	metadata := opts.Metadata
	if metadata == nil {
		metadata = exifExtractor{location: loc}
	}

	f, err := fsys.Open(name)
	if err != nil {
		return Date{}, false, err
	}
	t, ok, metaErr := metadata.CaptureTime(name, f)
	_ = f.Close()
	if metaErr == nil && ok {
		return newDate(t, SourceMetadata), true, nil
	}

	if opts.FilenameFallback {
		if t, ok := parseFromFilename(path.Base(name), loc); ok {
			return newDate(t, SourceFilename), true, nil
		}
	}

	return Date{}, false, metaErr
}

type filenamePattern struct {
	re     *regexp.Regexp
	layout string
}

// Submatches are joined with a single space before parsing with layout.
var filenamePatterns = []filenamePattern{
	{regexp.MustCompile(`(?i)^(?:IMG|VID)_(\d{8})_(\d{6})`), "20060102 150405"},
	{regexp.MustCompile(`(?i)^PXL_(\d{8})_(\d{6})\d{3,}`), "20060102 150405"},
	{regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ _](\d{2}\.\d{2}\.\d{2})`), "2006-01-02 15.04.05"},
	{regexp.MustCompile(`(?i)^IMG-(\d{8})-WA\d+`), "20060102"},
	{regexp.MustCompile(`(?i)^Screenshot_(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})`), "2006-01-02-15-04-05"},
}

func parseFromFilename(filename string, loc *time.Location) (time.Time, bool) {
	for _, p := range filenamePatterns {
		m := p.re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		t, err := time.ParseInLocation(p.layout, strings.Join(m[1:], " "), loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
