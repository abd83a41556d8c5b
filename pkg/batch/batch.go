// Package batch stamps the capture date onto every image in a directory.
//
// Files are handled one at a time. A file that has no capture date, cannot
// be decoded, or cannot be written is recorded in the Summary and the run
// moves on to the next file; only a missing input directory stops a run.
package batch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"

	"github.com/quidome/photo-datestamp/pkg/capturedate"
	"github.com/quidome/photo-datestamp/pkg/colorspec"
	"github.com/quidome/photo-datestamp/pkg/output"
	"github.com/quidome/photo-datestamp/pkg/plan"
	"github.com/quidome/photo-datestamp/pkg/scan"
	"github.com/quidome/photo-datestamp/pkg/stamp"
)

// DefaultFontSize is used when Options.FontSize is zero.
const DefaultFontSize = 100

// ErrDirNotFound is returned when the input directory does not exist or is
// not a directory.
var ErrDirNotFound = errors.New("directory does not exist")

// Outcome is what happened to one file.
type Outcome string

const (
	Processed     Outcome = "processed"
	SkippedNoDate Outcome = "skipped_no_date"
	Failed        Outcome = "failed"
	// Planned is reported instead of Processed in dry-run mode.
	Planned Outcome = "planned"
)

// Result is the per-file record.
type Result struct {
	Name        string  `json:"name"`
	SourcePath  string  `json:"source_path"`
	OutputPath  string  `json:"output_path,omitempty"`
	CaptureDate string  `json:"capture_date,omitempty"`
	Outcome     Outcome `json:"outcome"`
	Error       string  `json:"error,omitempty"`

	Err error `json:"-"`
}

// Summary aggregates a run.
type Summary struct {
	InputDir  string
	OutputDir string
	Results   []Result
}

// Count returns how many files ended with outcome o.
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Processed returns the number of images written.
func (s Summary) Processed() int {
	return s.Count(Processed)
}

// Options configures Run.
type Options struct {
	FontSize int
	Color    colorspec.RGB
	Position stamp.Position

	// DateLayout is the Go time layout of the stamped text. Empty means
	// capturedate.DefaultLayout.
	DateLayout string

	// Quality is the JPEG quality of the output. Zero means
	// output.DefaultQuality.
	Quality int

	// DryRun reports what would be stamped without creating or writing
	// anything.
	DryRun bool

	// Renderer draws the text. If nil, a renderer over the default font
	// chain is created for the run.
	Renderer *stamp.Renderer

	Date capturedate.Options

	// Scan selects the files to consider. The zero value means
	// scan.DefaultOptions().
	Scan scan.Options

	// Log receives one human-readable line per file plus a summary. If nil,
	// output is discarded.
	Log io.Writer
}

// Run stamps every matching image directly inside dir and writes the results
// to plan.OutputDir(dir).
func Run(dir string, opts Options) (Summary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Summary{}, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return Summary{}, err
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%w: %s is not a directory", ErrDirNotFound, dir)
	}

	log := opts.Log
	if log == nil {
		log = io.Discard
	}
	if opts.FontSize == 0 {
		opts.FontSize = DefaultFontSize
	}
	scanOpts := opts.Scan
	if len(scanOpts.Extensions) == 0 {
		scanOpts = scan.DefaultOptions()
	}

	outDir, err := plan.OutputDir(dir)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{InputDir: dir, OutputDir: outDir}

	if !opts.DryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return summary, fmt.Errorf("create output directory: %w", err)
		}
	}

	fsys := os.DirFS(dir)
	names, err := scan.Scan(fsys, ".", scanOpts)
	if err != nil {
		return summary, fmt.Errorf("scan %s: %w", dir, err)
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = stamp.NewRenderer()
		defer renderer.Close()
	}

	p := processor{fsys: fsys, opts: opts, renderer: renderer, log: log}
	for _, op := range plan.Plan(dir, outDir, names) {
		summary.Results = append(summary.Results, p.process(op))
	}

	if opts.DryRun {
		fmt.Fprintf(log, "would process %d images, output: %s\n", summary.Count(Planned), outDir)
	} else {
		fmt.Fprintf(log, "processed %d images, output: %s\n", summary.Processed(), outDir)
	}
	return summary, nil
}

type processor struct {
	fsys     fs.FS
	opts     Options
	renderer *stamp.Renderer
	log      io.Writer
}

func (p processor) process(op plan.Operation) Result {
	res := Result{Name: op.Name, SourcePath: op.SourcePath}

	date, ok, err := capturedate.Extract(p.fsys, op.Name, p.opts.Date)
	if !ok {
		if err != nil {
			fmt.Fprintf(p.log, "cannot read capture date of %s: %v\n", op.Name, err)
		}
		fmt.Fprintf(p.log, "skip %s: no capture date\n", op.Name)
		res.Outcome = SkippedNoDate
		return res
	}

	text := date.Format(p.opts.DateLayout)
	res.CaptureDate = text
	res.OutputPath = op.DestinationPath

	if p.opts.DryRun {
		fmt.Fprintf(p.log, "would stamp %s with %q -> %s\n", op.Name, text, op.DestinationPath)
		res.Outcome = Planned
		return res
	}

	if err := p.stamp(op, text); err != nil {
		fmt.Fprintf(p.log, "failed: %s: %v\n", op.Name, err)
		res.OutputPath = ""
		res.Outcome = Failed
		res.Err = err
		res.Error = err.Error()
		return res
	}

	fmt.Fprintf(p.log, "processed: %s -> %s\n", op.Name, op.DestinationPath)
	res.Outcome = Processed
	return res
}

func (p processor) stamp(op plan.Operation, text string) error {
	img, err := imaging.Open(op.SourcePath)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	stamped, err := p.renderer.Stamp(img, stamp.Spec{
		Text:     text,
		FontSize: p.opts.FontSize,
		Color:    p.opts.Color,
		Position: p.opts.Position,
	})
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	if err := output.Write(stamped, op.DestinationPath, output.Options{
		Quality:   p.opts.Quality,
		Overwrite: true,
	}); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
