// Package driver checks batches of IC10 files from disk for the CLI.
package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/observ"
	"ic10lsp/internal/source"
	"ic10lsp/internal/trace"
)

// Options configures CheckFiles.
type Options struct {
	// Jobs bounds the worker pool; zero means GOMAXPROCS.
	Jobs     int
	Config   config.Configuration
	Analyzer *analysis.Analyzer
	// Cache is consulted before analysing a file when non-nil.
	Cache  *DiskCache
	Events chan<- Event
	// BaseDir is the directory paths are printed against.
	BaseDir string
}

// FileResult is the outcome for one path.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	Timings     observ.Report
	Cached      bool
	// Err is a load or parse failure; Diagnostics is empty then.
	Err error
}

// Result aggregates a CheckFiles run. Files keeps the order of the input.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings observ.Report
}

// ErrorCount counts error diagnostics plus failed files.
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
		for _, d := range f.Diagnostics {
			if d.Severity == diag.SevError {
				n++
			}
		}
	}
	return n
}

// Diagnostics returns every diagnostic in file order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

// CheckFiles loads paths and analyses them in parallel.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if opts.Analyzer == nil {
		opts.Analyzer = analysis.New(catalog.Default())
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	batch, ctx := trace.Start(ctx, trace.ScopeRequest, "check")
	batch.Set("files", strconv.Itoa(len(paths))).Set("jobs", strconv.Itoa(jobs))

	fileSet := source.NewFileSet()
	if opts.BaseDir != "" {
		fileSet.SetBaseDir(opts.BaseDir)
	}
	results := make([]FileResult, len(paths))

	// FileSet is not safe for concurrent Add, so loading stays sequential.
	for i, path := range paths {
		emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		results[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = err
			emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		results[i].FileID = id
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			// Stop early once a sibling failed.
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns results[i].
			return checkOne(gctx, fileSet.Get(results[i].FileID), &results[i], opts)
		})
	}

	if err := g.Wait(); err != nil {
		batch.Fail(err)
		return &Result{FileSet: fileSet, Files: results}, err
	}
	batch.End("")

	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		reports = append(reports, r.Timings)
	}
	return &Result{FileSet: fileSet, Files: results, Timings: observ.Merge(reports...)}, nil
}

func checkOne(ctx context.Context, file *source.File, out *FileResult, opts Options) error {
	start := time.Now()
	emit(opts.Events, Event{File: out.Path, Stage: StageAnalyze, Status: StatusWorking})

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file, opts.Config)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			out.Diagnostics = payload.diagnostics(file.ID)
			out.Cached = true
			trace.Point(ctx, "cache hit", out.Path)
			emit(opts.Events, Event{File: out.Path, Stage: StageAnalyze, Status: StatusCached, Elapsed: time.Since(start)})
			return nil
		}
	}

	res, err := opts.Analyzer.AnalyzeFile(ctx, file, opts.Config)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		out.Err = err
		emit(opts.Events, Event{File: out.Path, Stage: StageAnalyze, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return nil
	}
	out.Diagnostics = res.Diagnostics
	out.Timings = res.Timings

	if opts.Cache != nil {
		// A failed write only means a miss next time.
		_ = opts.Cache.Put(key, toDiskPayload(out.Path, res.Diagnostics))
	}
	emit(opts.Events, Event{File: out.Path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(start)})
	return nil
}
