// Package batch scores many assessment documents concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// DefaultWorkers bounds how many documents are scored at once.
const DefaultWorkers = 4

// Loader reads one assessment document.
type Loader func(path string) (*assessment.Assessment, error)

// Result is the outcome for one document.
type Result struct {
	Path       string                 `json:"path"`
	Assessment *assessment.Assessment `json:"-"`
	Scores     *scorer.Scores         `json:"scores,omitempty"`
	Duration   time.Duration          `json:"duration"`
	Error      error                  `json:"-"`
}

// CalculatorFor picks the calculator for one assessment, e.g. when the active
// set follows each document's own scope.
type CalculatorFor func(a *assessment.Assessment) (*scorer.Calculator, error)

// Runner loads and scores documents on a bounded pool of goroutines.
type Runner struct {
	calcFor CalculatorFor
	load    Loader
	workers int
}

// Option configures the Runner.
type Option func(*Runner)

// WithWorkers sets the concurrency bound. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithCalculatorFor replaces the shared calculator with a per-document one.
func WithCalculatorFor(fn CalculatorFor) Option {
	return func(r *Runner) {
		if fn != nil {
			r.calcFor = fn
		}
	}
}

// NewRunner creates a batch runner.
func NewRunner(calc *scorer.Calculator, load Loader, opts ...Option) *Runner {
	r := &Runner{
		calcFor: func(*assessment.Assessment) (*scorer.Calculator, error) { return calc, nil },
		load:    load,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads and scores every path. A document that fails to load does not
// stop the others; its Result carries the error. Results are sorted by path.
// Respects context cancellation.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*Result, error) {
	if len(paths) == 0 {
		slog.Info("no assessment documents to score")
		return nil, nil
	}

	slog.Info("starting batch", "documents", len(paths), "workers", r.workers)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, r.workers)
		results = make([]*Result, 0, len(paths))
	)

	for _, p := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			start := time.Now()
			res := &Result{Path: path}

			if err := r.scoreOne(res); err != nil {
				slog.Error("document failed", "path", path, "error", err)
				res.Error = fmt.Errorf("batch %s: %w", path, err)
			} else {
				slog.Debug("document scored", "path", path, "overall", res.Scores.Overall, "band", res.Scores.Band)
			}
			res.Duration = time.Since(start)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	var runErr error
	if err := ctx.Err(); err != nil {
		slog.Warn("batch cancelled", "scored", len(results), "error", err)
		runErr = err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, runErr
}

func (r *Runner) scoreOne(res *Result) error {
	a, err := r.load(res.Path)
	if err != nil {
		return err
	}
	res.Assessment = a
	calc, err := r.calcFor(a)
	if err != nil {
		return err
	}
	res.Scores = calc.Score(a)
	return nil
}

// ExpandPatterns resolves doublestar glob patterns (e.g. "audits/**/*.yaml")
// into a sorted, de-duplicated list of files. A pattern without glob
// metacharacters is kept as a literal path.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("batch: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
