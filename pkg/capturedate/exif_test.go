package capturedate

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/quidome/photo-datestamp/internal/exiftest"
)

func TestExifExtractor_ReadsDateTimeOriginal(t *testing.T) {
	b, err := exiftest.JPEG(8, 8, "2024:01:15 10:20:30")
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}

	tm, ok, err := NewExifExtractor(time.UTC).CaptureTime("a.jpg", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := time.Date(2024, 1, 15, 10, 20, 30, 0, time.UTC)
	if !tm.Equal(want) {
		t.Fatalf("unexpected time\n got: %v\nwant: %v", tm, want)
	}
}

func TestExifExtractor_MalformedTimestamp(t *testing.T) {
	testCases := []string{
		"2024-01-15 10:20:30",
		"2024:13:15 10:20:30",
		"    :  :     :  :  ",
		"bad",
	}

	for _, value := range testCases {
		t.Run(value, func(t *testing.T) {
			b, err := exiftest.JPEG(8, 8, value)
			if err != nil {
				t.Fatalf("build fixture: %v", err)
			}

			_, ok, err := (exifExtractor{location: time.UTC}).CaptureTime("a.jpg", bytes.NewReader(b))
			if ok {
				t.Fatalf("expected ok=false")
			}
			if !errors.Is(err, ErrInvalidTimestamp) {
				t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
			}
		})
	}
}

func TestExifExtractor_NonExifDataIsNotFound(t *testing.T) {
	tm, ok, err := (exifExtractor{}).CaptureTime("a.jpg", bytes.NewReader([]byte("not a jpeg")))
	if err == nil {
		t.Fatalf("expected a decode diagnostic")
	}
	if ok {
		t.Fatalf("expected ok=false")
	}
	if !tm.IsZero() {
		t.Fatalf("expected zero time")
	}
}

func TestExifExtractor_JPEGWithoutExif(t *testing.T) {
	b, err := exiftest.JPEG(8, 8, "")
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}

	_, ok, _ := (exifExtractor{}).CaptureTime("a.jpg", bytes.NewReader(b))
	if ok {
		t.Fatalf("expected ok=false")
	}
}
