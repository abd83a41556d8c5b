// Package scan lists the image files directly inside a directory.
package scan

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

type Options struct {
	// Extensions are matched case-insensitively; the leading dot is optional.
	Extensions []string
}

func DefaultOptions() Options {
	return Options{
		Extensions: []string{".jpg", ".jpeg", ".png", ".tiff", ".bmp"},
	}
}

type Record struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

// Scan returns the names of matching files in root, sorted.
func Scan(fsys fs.FS, root string, opts Options) ([]string, error) {
	records, err := ScanRecords(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names, nil
}

// ScanRecords is Scan with size and mtime. Subdirectories are not entered
// and non-regular files are ignored.
func ScanRecords(fsys fs.FS, root string, opts Options) ([]Record, error) {
	exts := normalizeExts(opts.Extensions)
	if len(exts) == 0 {
		return nil, fs.ErrInvalid
	}

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var matches []Record
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !exts[strings.ToLower(path.Ext(e.Name()))] {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return nil, err
		}

		matches = append(matches, Record{
			Name:          e.Name(),
			Path:          path.Join(root, e.Name()),
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	return matches, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
