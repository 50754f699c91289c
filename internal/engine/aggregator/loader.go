package aggregator

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sho/internal/core/domain"
)

// Job is one background load of a design directory.
type Job struct {
	ID  uuid.UUID
	Dir string

	ctx    context.Context //nolint:containedctx // a job owns its cancellation scope
	cancel context.CancelFunc
}

// Context returns the job's context. It is cancelled when the job is superseded.
func (j *Job) Context() context.Context {
	return j.ctx
}

// Result is the outcome of running a Job.
type Result struct {
	Job    *Job
	Design *domain.Design
	Err    error
}

// Loader runs design loads off the interactive loop. A newer request for a
// directory supersedes the older one: the older job is cancelled and its
// result is rejected by Accept.
type Loader struct {
	agg *Aggregator

	mu      sync.Mutex
	current map[string]*Job
}

// NewLoader creates a Loader feeding agg.
func NewLoader(agg *Aggregator) *Loader {
	return &Loader{
		agg:     agg,
		current: make(map[string]*Job),
	}
}

// Request makes dirs the complete set of designs. Directories missing from
// dirs are cancelled and forgotten; every listed directory gets a new job.
func (l *Loader) Request(ctx context.Context, dirs []string) ([]*Job, error) {
	dirs, err := NormalizeDirs(dirs)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	keep := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		keep[dir] = struct{}{}
	}
	for dir, job := range l.current {
		if _, ok := keep[dir]; !ok {
			job.cancel()
			delete(l.current, dir)
		}
	}
	l.agg.Retain(dirs)

	return l.startLocked(ctx, dirs), nil
}

// Reload starts new jobs for dirs and leaves every other directory alone.
func (l *Loader) Reload(ctx context.Context, dirs []string) ([]*Job, error) {
	dirs, err := NormalizeDirs(dirs)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.startLocked(ctx, dirs), nil
}

// startLocked must be called with mu held.
func (l *Loader) startLocked(ctx context.Context, dirs []string) []*Job {
	jobs := make([]*Job, 0, len(dirs))
	for _, dir := range dirs {
		if old, ok := l.current[dir]; ok {
			old.cancel()
		}
		jobCtx, cancel := context.WithCancel(ctx)
		job := &Job{ID: uuid.New(), Dir: dir, ctx: jobCtx, cancel: cancel}
		l.current[dir] = job
		l.agg.MarkPending(dir)
		jobs = append(jobs, job)
	}
	return jobs
}

// Run loads the job's directory. It blocks and must not run on the interactive loop.
func (l *Loader) Run(job *Job) Result {
	ctx, span := otel.Tracer(tracerName).Start(job.ctx, "aggregator.job",
		trace.WithAttributes(
			attribute.String("job.id", job.ID.String()),
			attribute.String("dir", job.Dir),
		))
	defer span.End()

	design, err := l.agg.LoadDesign(ctx, job.Dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
	}
	return Result{Job: job, Design: design, Err: err}
}

// Accept applies a result if its job is still the current one for the
// directory and reports whether it did. Superseded or cancelled results are
// discarded.
func (l *Loader) Accept(res Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	job := res.Job
	if job == nil || l.current[job.Dir] != job || job.ctx.Err() != nil {
		return false
	}

	job.cancel()
	delete(l.current, job.Dir)
	l.agg.Put(res.Design)
	return true
}

// Pending returns the number of jobs that have not been accepted yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.current)
}

// Cancel stops every outstanding job.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for dir, job := range l.current {
		job.cancel()
		delete(l.current, dir)
	}
}
