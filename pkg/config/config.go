// Package config loads run defaults from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File mirrors the command line flags. Zero values mean "not set".
type File struct {
	Directory        string `toml:"directory"`
	FontSize         int    `toml:"font_size"`
	Color            string `toml:"color"`
	Position         string `toml:"position"`
	Font             string `toml:"font"`
	DateFormat       string `toml:"date_format"`
	Quality          int    `toml:"quality"`
	FilenameFallback *bool  `toml:"filename_fallback"`
}

// Load parses path. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return f, nil
}

// Save writes f to path.
func Save(f File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	return out.Close()
}

// Values returns the set fields keyed by flag name, formatted the way the
// flag would parse them.
func (f File) Values() map[string]string {
	v := make(map[string]string)
	if f.Directory != "" {
		v["directory"] = f.Directory
	}
	if f.FontSize != 0 {
		v["font-size"] = fmt.Sprint(f.FontSize)
	}
	if f.Color != "" {
		v["color"] = f.Color
	}
	if f.Position != "" {
		v["position"] = f.Position
	}
	if f.Font != "" {
		v["font"] = f.Font
	}
	if f.DateFormat != "" {
		v["date-format"] = f.DateFormat
	}
	if f.Quality != 0 {
		v["quality"] = fmt.Sprint(f.Quality)
	}
	if f.FilenameFallback != nil {
		v["filename-fallback"] = fmt.Sprint(*f.FilenameFallback)
	}
	return v
}
