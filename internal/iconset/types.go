package iconset

import "context"

// GenerationRequest is a sanitized icon-set request. Instances are produced
// by Validate and never mutated afterwards.
type GenerationRequest struct {
	Prompt      string
	Style       int
	BrandColors []string
}

// GenerationTask is one of the per-variation generation units derived from a
// request. Tasks are created by Plan, consumed once by the Runner, and
// discarded when the batch completes.
type GenerationTask struct {
	Index      int
	FullPrompt string
	Seed       int64
}

// TaskOutcome records the terminal result of one task. Err is nil on
// success; on failure URL is empty and Err carries the last attempt's error.
type TaskOutcome struct {
	Index      int
	URL        string
	FullPrompt string
	Seed       int64
	Err        error
}

// Icon is one successfully generated icon as returned to callers.
type Icon struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Seed   int64  `json:"seed"`
}

// TaskError is the per-index failure entry attached to partial results.
type TaskError struct {
	Index int    `json:"index"`
	Error string `json:"error"`

	// Kind drives HTTP status selection and is not part of the payload.
	Kind FailureKind `json:"-"`
}

// BatchResult is the aggregated outcome of one batch.
type BatchResult struct {
	Icons   []Icon
	Partial bool
	Errors  []TaskError
}

// BackendRequest carries the parameters for a single backend invocation.
type BackendRequest struct {
	Prompt  string
	Seed    int64
	Width   int
	Height  int
	Format  string
	Quality int
}

// Asset represents one image reference returned by a backend. URL is the
// normalized textual form; backends that only produce raw bytes are expected
// to encode them (e.g. as a data URL) before returning.
type Asset struct {
	URL    string
	Format string
	Width  int
	Height int
}

// Backend is the external image-generation capability. Implementations may
// return more than one asset per call; only the first is used. The shared
// client must be safe for concurrent use.
type Backend interface {
	Generate(ctx context.Context, req BackendRequest) ([]Asset, error)
}

// Fixed output parameters applied to every backend call.
const (
	OutputSize    = 512
	OutputFormat  = "png"
	OutputQuality = 90
)
