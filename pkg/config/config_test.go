package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "photo-datestamp.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
directory = "photos"
font_size = 80
color = "255,200,0"
position = "bottom-right"
date_format = "2006-01-02"
quality = 90
filename_fallback = true
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[string]string{
		"directory":         "photos",
		"font-size":         "80",
		"color":             "255,200,0",
		"position":          "bottom-right",
		"date-format":       "2006-01-02",
		"quality":           "90",
		"filename-fallback": "true",
	}
	if got := f.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected values\n got: %#v\nwant: %#v", got, want)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `fontsize = 80`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "fontsize") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `font_size = "big"`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	fallback := false
	in := File{Directory: "in", FontSize: 12, Position: "center", FilenameFallback: &fallback}
	path := filepath.Join(t.TempDir(), "c.toml")

	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(in.Values(), out.Values()) {
		t.Fatalf("unexpected values\n got: %#v\nwant: %#v", out.Values(), in.Values())
	}
}

func TestValues_EmptyFile(t *testing.T) {
	if got := (File{}).Values(); len(got) != 0 {
		t.Fatalf("expected no values, got %#v", got)
	}
}
