package output

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/quidome/photo-datestamp/internal/exiftest"
)

func TestWrite_FormatFollowsExtension(t *testing.T) {
	dir := t.TempDir()
	img := exiftest.Gradient(32, 16)

	testCases := []struct {
		name string
		want string
	}{
		{name: "a.jpg", want: "jpeg"},
		{name: "b.JPEG", want: "jpeg"},
		{name: "c.png", want: "png"},
		{name: "d.tiff", want: "tiff"},
		{name: "e.bmp", want: "bmp"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := filepath.Join(dir, "out", tc.name)
			if err := Write(img, dst, Options{}); err != nil {
				t.Fatalf("Write: %v", err)
			}

			f, err := os.Open(dst)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()

			cfg, format, err := image.DecodeConfig(f)
			if err != nil {
				t.Fatalf("decode config: %v", err)
			}
			if format != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, format)
			}
			if cfg.Width != 32 || cfg.Height != 16 {
				t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestWrite_DoesNotOverwrite(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatalf("write destination: %v", err)
	}

	err := Write(exiftest.Gradient(4, 4), dst, Options{Overwrite: false})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "old" {
		t.Fatalf("destination was modified: %q", got)
	}
}

func TestWrite_OverwriteReplaces(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(dst, []byte("old content that is longer than nothing"), 0o644); err != nil {
		t.Fatalf("write destination: %v", err)
	}

	if err := Write(exiftest.Gradient(4, 4), dst, Options{Overwrite: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := imaging.Open(dst); err != nil {
		t.Fatalf("expected a decodable image, got %v", err)
	}
}

func TestWrite_IsByteStable(t *testing.T) {
	dir := t.TempDir()
	img := exiftest.Gradient(40, 30)

	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.jpg")
	if err := Write(img, a, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(img, b, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ba, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	if string(ba) != string(bb) {
		t.Fatalf("expected identical encodings")
	}
}

func TestWrite_QualityAffectsJPEG(t *testing.T) {
	dir := t.TempDir()
	img := exiftest.Gradient(64, 64)

	low := filepath.Join(dir, "low.jpg")
	high := filepath.Join(dir, "high.jpg")
	if err := Write(img, low, Options{Quality: 10}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(img, high, Options{Quality: 95}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	li, _ := os.Stat(low)
	hi, _ := os.Stat(high)
	if li.Size() >= hi.Size() {
		t.Fatalf("expected quality 95 (%d bytes) to be larger than quality 10 (%d bytes)", hi.Size(), li.Size())
	}
}

func TestWrite_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := Write(exiftest.Gradient(4, 4), filepath.Join(dir, "a.webp"), Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Write(exiftest.Gradient(4, 4), filepath.Join(dir, "a.jpg"), Options{Quality: 101}); !errors.Is(err, ErrInvalidQuality) {
		t.Fatalf("expected ErrInvalidQuality, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected no file on error, got %v", err)
	}
}
