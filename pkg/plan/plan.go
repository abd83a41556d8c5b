// Package plan maps input images to their output paths.
package plan

import (
	"path/filepath"
)

// OutputSuffix is appended to the input directory's name to form the output
// directory.
const OutputSuffix = "_watermark"

// Operation represents a planned stamp from source to destination.
type Operation struct {
	Name            string
	SourcePath      string
	DestinationPath string
}

// OutputDir returns <inputDir>/<basename(inputDir)>_watermark. The basename
// is taken from the absolute path so "." and trailing separators name the
// real directory.
func OutputDir(inputDir string) (string, error) {
	abs, err := filepath.Abs(inputDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(abs, filepath.Base(abs)+OutputSuffix), nil
}

// Destination is the output path of filename inside outputDir. Output files
// keep their original name.
func Destination(outputDir string, filename string) string {
	return filepath.Join(outputDir, filepath.Base(filename))
}

// Plan computes operations for files directly inside inputDir.
func Plan(inputDir string, outputDir string, names []string) []Operation {
	operations := make([]Operation, 0, len(names))
	for _, name := range names {
		operations = append(operations, Operation{
			Name:            name,
			SourcePath:      filepath.Join(inputDir, name),
			DestinationPath: Destination(outputDir, name),
		})
	}
	return operations
}
