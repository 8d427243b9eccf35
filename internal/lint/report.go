package lint

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report holds results in the order the files were given.
type Report struct {
	Results []Result
}

// Run checks every path, at most opts.Jobs at a time. It only returns an
// error when ctx is cancelled; per-file problems live in the report.
func Run(ctx context.Context, paths []string, opts Options) (*Report, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	log := opts.logger()

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := ProcessFile(path, opts)
			log.Debug("checked file",
				zap.String("file", path),
				zap.Stringer("schema", res.Schema),
				zap.Bool("skipped", res.Skipped),
				zap.Int("errors", len(res.Errors)))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Report{Results: results}, nil
}

// Failed returns the results that have errors.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Err combines one error per failed file, nil when every file passed.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Failed() {
		err = multierr.Append(err, fmt.Errorf("%s: %d error(s)", res.Path, len(res.Errors)))
	}
	return err
}

// Write renders the report. Verbose adds a line per passing file and a
// summary.
func (r *Report) Write(w io.Writer, verbose bool) error {
	ew := &errWriter{w: w}
	for _, res := range r.Results {
		switch {
		case !res.OK():
			ew.printf("Errors found in '%s':\n", res.Path)
			for _, e := range res.Errors {
				ew.printf("  %s\n", e)
			}
		case verbose:
			ew.printf("✓ No duplicates found in '%s'\n", res.Path)
		}
	}

	if verbose {
		ew.printf("\nProcessed %d/%d files.\n", len(r.Results), len(r.Results))
		if len(r.Failed()) == 0 {
			ew.printf("All files passed duplicate checks!\n")
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
