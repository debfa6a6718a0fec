package iconset

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxRetries is the number of retries after the initial attempt.
	DefaultMaxRetries = 2

	// DefaultRetryBaseDelay is the backoff unit; the delay after failed
	// attempt k is DefaultRetryBaseDelay * 2^k.
	DefaultRetryBaseDelay = time.Second
)

// RunnerOptions configures the task runner. Zero values fall back to the
// package defaults; a negative MaxRetries disables retries entirely.
type RunnerOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *zerolog.Logger

	// Sleep is the backoff wait. Overridable in tests; nil uses a
	// context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Runner executes a batch's tasks concurrently against the backend. Each
// task retries independently; one task's failure never cancels or delays its
// siblings. The backend client is shared read-only across tasks.
type Runner struct {
	backend    Backend
	maxRetries int
	baseDelay  time.Duration
	logger     zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewRunner wires a runner around the given backend.
func NewRunner(backend Backend, opts RunnerOptions) *Runner {
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	if opts.MaxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return &Runner{
		backend:    backend,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
		sleep:      sleep,
	}
}

// Run launches every task concurrently and blocks until all have reached a
// terminal outcome. The returned slice always has exactly one outcome per
// input task; each goroutine writes only its own slot, so no locking is
// needed.
func (r *Runner) Run(ctx context.Context, tasks []GenerationTask) []TaskOutcome {
	outcomes := make([]TaskOutcome, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(slot int, task GenerationTask) {
			defer wg.Done()
			outcomes[slot] = r.runTask(ctx, task)
		}(i, task)
	}
	wg.Wait()
	return outcomes
}

func (r *Runner) runTask(ctx context.Context, task GenerationTask) TaskOutcome {
	outcome := TaskOutcome{
		Index:      task.Index,
		FullPrompt: task.FullPrompt,
		Seed:       task.Seed,
	}

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			delay := r.baseDelay * (1 << (attempt - 1))
			r.logger.Debug().
				Int("index", task.Index).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("iconset: retrying task after backoff")
			if err := r.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		url, err := r.invoke(ctx, task)
		if err == nil {
			outcome.URL = url
			r.logger.Debug().
				Int("index", task.Index).
				Int64("seed", task.Seed).
				Msg("iconset: task succeeded")
			return outcome
		}
		lastErr = err
		r.logger.Warn().
			Err(err).
			Int("index", task.Index).
			Int("attempt", attempt).
			Str("kind", ClassifyKind(err).String()).
			Msg("iconset: task attempt failed")
	}

	outcome.Err = lastErr
	return outcome
}

func (r *Runner) invoke(ctx context.Context, task GenerationTask) (string, error) {
	assets, err := r.backend.Generate(ctx, BackendRequest{
		Prompt:  task.FullPrompt,
		Seed:    task.Seed,
		Width:   OutputSize,
		Height:  OutputSize,
		Format:  OutputFormat,
		Quality: OutputQuality,
	})
	if err != nil {
		return "", err
	}
	// Backends may return several assets; only the first is the task's
	// image reference.
	if len(assets) == 0 || assets[0].URL == "" {
		return "", errors.New("backend returned no image reference")
	}
	return assets[0].URL, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
