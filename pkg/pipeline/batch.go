package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/Amjad50/Fyp/pkg/classify"
	"github.com/Amjad50/Fyp/pkg/errors"
	fypio "github.com/Amjad50/Fyp/pkg/io"
	"github.com/Amjad50/Fyp/pkg/render/latex"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Job is one input of a batch: either crops or an image file.
type Job struct {
	Name string
	// Expr is the reference LaTeX, if known.
	Expr  string
	Crops []symbols.LabeledCrop
	// Image is read and recognized when Crops is empty.
	Image string
}

// JobResult is the outcome of one job. Err is set when the job failed;
// a failed job does not stop the batch.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
}

// BatchOptions configures [Runner.Batch].
type BatchOptions struct {
	// Limit bounds the number of concurrent jobs.
	Limit int
	// Classifier labels glyphs of image jobs.
	Classifier classify.Classifier
	Recognize  RecognizeOptions
	// Progress is called after each finished job, from the job's
	// goroutine.
	Progress func(done, total int)
}

// Batch runs all jobs with bounded concurrency. Results are returned in
// job order. The returned error is only set when ctx is cancelled.
func (r *Runner) Batch(ctx context.Context, jobs []Job, opts BatchOptions) ([]JobResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultBatchLimit
	}
	results := make([]JobResult, len(jobs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.runJob(gctx, job, opts)
			results[i] = JobResult{Job: job, Result: res, Err: err}
			if n := done.Add(1); opts.Progress != nil {
				opts.Progress(int(n), len(jobs))
			}
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runJob(ctx context.Context, job Job, opts BatchOptions) (*Result, error) {
	if len(job.Crops) > 0 {
		parseOpts := opts.Recognize.Parse
		parseOpts.Crops = job.Crops
		return r.Parse(ctx, parseOpts)
	}
	if job.Image == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "job %s has neither crops nor an image", job.Name)
	}
	if opts.Classifier == nil {
		return nil, errors.New(errors.ErrCodeUnavailable, "job %s needs a classifier", job.Name)
	}
	img, err := imaging.Open(job.Image)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open image %s", job.Image)
	}
	return r.Recognize(ctx, img, opts.Classifier, opts.Recognize)
}

// Outcome is the evaluation of one dataset entry.
type Outcome struct {
	Name      string `json:"name"`
	Expected  string `json:"expected"`
	Predicted string `json:"predicted,omitempty"`
	Correct   bool   `json:"correct"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes an evaluation.
type Report struct {
	Total    int           `json:"total"`
	Correct  int           `json:"correct"`
	Failed   int           `json:"failed"`
	Accuracy float64       `json:"accuracy"`
	Duration time.Duration `json:"duration"`
	Outcomes []Outcome     `json:"outcomes"`
}

// Matches reports whether predicted equals expected once both are
// simplified.
func Matches(expected, predicted string) bool {
	return latex.SimplifyString(expected) == latex.SimplifyString(predicted)
}

// Jobs converts dataset entries to batch jobs. The second result holds,
// by entry index, the errors of crops files that could not be read.
func Jobs(ds *fypio.Dataset) ([]Job, map[int]error) {
	jobs := make([]Job, 0, len(ds.Entries))
	failed := make(map[int]error)
	for i, e := range ds.Entries {
		job := Job{Name: e.Name, Expr: e.Expr, Image: e.Image}
		if e.Crops != "" {
			crops, err := fypio.ImportCrops(e.Crops)
			if err != nil {
				failed[i] = err
			}
			job.Crops = crops
		}
		jobs = append(jobs, job)
	}
	return jobs, failed
}

// Evaluate runs every dataset entry and compares the prediction with the
// reference expression.
func (r *Runner) Evaluate(ctx context.Context, ds *fypio.Dataset, opts BatchOptions) (*Report, error) {
	start := time.Now()
	jobs, loadErrs := Jobs(ds)

	var runnable []Job
	var index []int
	for i, j := range jobs {
		if _, bad := loadErrs[i]; !bad {
			runnable = append(runnable, j)
			index = append(index, i)
		}
	}
	results, err := r.Batch(ctx, runnable, opts)
	if err != nil {
		return nil, err
	}
	ran := make(map[int]JobResult, len(results))
	for k, res := range results {
		ran[index[k]] = res
	}

	report := &Report{Total: len(jobs)}
	for i, j := range jobs {
		o := Outcome{Name: j.Name, Expected: j.Expr}
		res, ok := ran[i]
		switch {
		case !ok:
			o.Error = loadErrs[i].Error()
		case res.Err != nil:
			o.Error = res.Err.Error()
		default:
			o.Predicted = res.Result.Simplified
			o.Correct = Matches(j.Expr, o.Predicted)
		}
		if o.Error != "" {
			report.Failed++
		}
		if o.Correct {
			report.Correct++
		}
		report.Outcomes = append(report.Outcomes, o)
	}
	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}
	report.Duration = time.Since(start)

	r.Logger.Info("evaluated dataset",
		"entries", report.Total,
		"correct", report.Correct,
		"failed", report.Failed,
		"accuracy", report.Accuracy,
		"duration", report.Duration)
	return report, nil
}
