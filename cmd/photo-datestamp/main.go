package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quidome/photo-datestamp/pkg/batch"
	"github.com/quidome/photo-datestamp/pkg/capturedate"
	"github.com/quidome/photo-datestamp/pkg/colorspec"
	"github.com/quidome/photo-datestamp/pkg/config"
	"github.com/quidome/photo-datestamp/pkg/output"
	"github.com/quidome/photo-datestamp/pkg/scan"
	"github.com/quidome/photo-datestamp/pkg/stamp"
)

const version = "0.1.0"

type options struct {
	verbose bool
	dryRun  bool

	configPath       string
	dateFormat       string
	filenameFallback bool
}

type stampOptions struct {
	directory string
	fontSize  int
	color     string
	position  string
	font      string
	quality   int
	json      bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	stampOpts := &stampOptions{}

	rootCmd := &cobra.Command{
		Use:     "photo-datestamp [directory]",
		Short:   "Stamp the capture date onto photos",
		Long:    "Photo Datestamp reads the EXIF capture date of every photo in a directory and draws it onto the image. Results are written to <directory>/<name>_watermark.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfig(cmd, opts.configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				stampOpts.directory = args[0]
			}
			return runStamp(cmd, opts, stampOpts)
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "perform a dry run without writing images")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML file with defaults for flags not given on the command line")
	rootCmd.PersistentFlags().StringVar(&opts.dateFormat, "date-format", capturedate.DefaultLayout, "Go time layout of the stamped date")
	rootCmd.PersistentFlags().BoolVar(&opts.filenameFallback, "filename-fallback", false, "take the date from camera style filenames when EXIF has none")

	rootCmd.Flags().StringVarP(&stampOpts.directory, "directory", "d", ".", "directory containing the photos")
	rootCmd.Flags().IntVar(&stampOpts.fontSize, "font-size", batch.DefaultFontSize, "font size in pixels")
	rootCmd.Flags().StringVar(&stampOpts.color, "color", "255,255,255", "text color as r,g,b")
	rootCmd.Flags().StringVar(&stampOpts.position, "position", "center", "text position: top-left, center or bottom-right")
	rootCmd.Flags().StringVar(&stampOpts.font, "font", "", "font file tried before the platform fonts")
	rootCmd.Flags().IntVar(&stampOpts.quality, "quality", output.DefaultQuality, "JPEG output quality (1-100)")
	rootCmd.Flags().BoolVar(&stampOpts.json, "json", false, "print per-file results as JSON")

	rootCmd.AddCommand(newScanCmd(opts))

	return rootCmd
}

// applyConfig copies values from the config file into flags the user did
// not set explicitly.
func applyConfig(cmd *cobra.Command, path string) error {
	if path == "" {
		return nil
	}
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	for name, value := range f.Values() {
		fl := cmd.Flags().Lookup(name)
		if fl == nil || fl.Changed {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, name, err)
		}
	}
	return nil
}

func runStamp(cmd *cobra.Command, opts *options, stampOpts *stampOptions) error {
	// Keep stdout clean for JSON.
	log := cmd.OutOrStdout()
	if stampOpts.json {
		log = cmd.ErrOrStderr()
	}

	color := colorspec.ParseOrDefault(stampOpts.color, cmd.ErrOrStderr())
	position, ok := stamp.ParsePosition(stampOpts.position)
	if !ok {
		cmd.PrintErrf("warning: unknown position %q, using %s\n", stampOpts.position, position)
	}

	if info, err := os.Stat(stampOpts.directory); err != nil || !info.IsDir() {
		fmt.Fprintf(log, "error: directory %s does not exist\n", stampOpts.directory)
		return nil
	}

	fmt.Fprintf(log, "processing directory: %s\n", stampOpts.directory)
	fmt.Fprintf(log, "font size: %d\n", stampOpts.fontSize)
	fmt.Fprintf(log, "color: %s\n", color)
	fmt.Fprintf(log, "position: %s\n", position)
	if opts.dryRun {
		fmt.Fprintln(log, "dry run: no files will be written")
	}

	renderer := stamp.NewRenderer(stamp.DefaultProviders(stampOpts.font)...)
	defer renderer.Close()

	if opts.verbose {
		f, err := renderer.Font(stampOpts.fontSize)
		if err == nil {
			cmd.PrintErrf("font: %s (size %d)\n", f.Provider, f.Size)
		}
	}

	summary, err := batch.Run(stampOpts.directory, batch.Options{
		FontSize:   stampOpts.fontSize,
		Color:      color,
		Position:   position,
		DateLayout: opts.dateFormat,
		Quality:    stampOpts.quality,
		DryRun:     opts.dryRun,
		Renderer:   renderer,
		Date:       capturedate.Options{FilenameFallback: opts.filenameFallback},
		Log:        log,
	})
	if err != nil {
		if errors.Is(err, batch.ErrDirNotFound) {
			fmt.Fprintf(log, "error: %v\n", err)
			return nil
		}
		return err
	}

	if stampOpts.json {
		results := summary.Results
		if results == nil {
			results = []batch.Result{}
		}
		return writeJSON(cmd.OutOrStdout(), results)
	}
	return nil
}

type scanRecord struct {
	Name          string    `json:"name"`
	SourcePath    string    `json:"source_path"`
	CaptureDate   string    `json:"capture_date,omitempty"`
	DateSource    string    `json:"date_source,omitempty"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

func newScanCmd(opts *options) *cobra.Command {
	var jsonOut bool

	scanCmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "List photos and their capture dates",
		Long:  "Scan a directory and print every photo that would be considered, with its capture date or - when it has none. Nothing is written.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := args[0]
			fsys := os.DirFS(directory)

			records, err := scan.ScanRecords(fsys, ".", scan.DefaultOptions())
			if err != nil {
				return err
			}

			out := make([]scanRecord, 0, len(records))
			for _, r := range records {
				rec := scanRecord{
					Name:          r.Name,
					SourcePath:    filepath.Join(directory, r.Name),
					FileSizeBytes: r.FileSizeBytes,
					ModTime:       r.ModTime,
				}
				date, ok, metaErr := capturedate.Extract(fsys, r.Name, capturedate.Options{FilenameFallback: opts.filenameFallback})
				if ok {
					rec.CaptureDate = date.Format(opts.dateFormat)
					rec.DateSource = string(date.Source)
				} else if metaErr != nil && opts.verbose {
					cmd.PrintErrf("%s: %v\n", r.Name, metaErr)
				}
				out = append(out, rec)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			for _, rec := range out {
				date := rec.CaptureDate
				if date == "" {
					date = "-"
				}
				cmd.Printf("%s\t%s\n", rec.Name, date)
			}

			if opts.verbose {
				cmd.PrintErrf("found %d photos\n", len(out))
			}
			return nil
		},
	}

	scanCmd.Flags().BoolVar(&jsonOut, "json", false, "print records as JSON")

	return scanCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
