package iconset

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// ServiceOptions configures the orchestration service.
type ServiceOptions struct {
	MinSuccess int
	Runner     RunnerOptions
	Logger     *zerolog.Logger
}

// Service runs the full pipeline for one request: validate, derive the base
// seed, plan the variations, fan out to the backend, aggregate. Every
// request is independent; the service holds no cross-request state beyond
// the shared backend client.
type Service struct {
	runner     *Runner
	minSuccess int
	logger     zerolog.Logger
}

// NewService wires the pipeline around the given backend.
func NewService(backend Backend, opts ServiceOptions) *Service {
	minSuccess := opts.MinSuccess
	if minSuccess <= 0 {
		minSuccess = DefaultMinSuccess
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	runnerOpts := opts.Runner
	if runnerOpts.Logger == nil {
		runnerOpts.Logger = &logger
	}
	return &Service{
		runner:     NewRunner(backend, runnerOpts),
		minSuccess: minSuccess,
		logger:     logger,
	}
}

// Generate executes one batch. The returned error is a *ValidationError for
// rejected input, an *InsufficientResultsError when too few tasks succeeded,
// and nil otherwise.
func (s *Service) Generate(ctx context.Context, raw RawRequest) (*BatchResult, error) {
	req, violations := Validate(raw)
	if violations != nil {
		return nil, &ValidationError{Details: violations}
	}

	baseSeed := DeriveSeed(req.Prompt, req.Style)
	tasks := Plan(req, baseSeed)
	s.logger.Debug().
		Int64("base_seed", baseSeed).
		Int("style", req.Style).
		Int("tasks", len(tasks)).
		Msg("iconset: batch planned")

	outcomes := s.runner.Run(ctx, tasks)
	result, err := Aggregate(outcomes, s.minSuccess, len(tasks))
	if err != nil {
		s.logger.Warn().Err(err).Msg("iconset: batch failed")
		return nil, err
	}

	s.logger.Info().
		Int("icons", len(result.Icons)).
		Bool("partial", result.Partial).
		Msg("iconset: batch completed")
	return result, nil
}
