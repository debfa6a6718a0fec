package iconset

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailureKind tags a backend failure at the point where it happened so HTTP
// status selection does not depend on matching free-text error messages.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindRateLimited
	KindUnauthenticated
	KindTimedOut
)

func (k FailureKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// BackendError is a tagged failure from the image backend.
type BackendError struct {
	Kind    FailureKind
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// ValidationError carries every violated rule for a rejected request.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// InsufficientResultsError is the batch-level hard failure raised when fewer
// tasks succeeded than the minimum threshold. Failures holds the per-index
// reasons for diagnostics.
type InsufficientResultsError struct {
	Succeeded int
	Expected  int
	Failures  []TaskError
}

func (e *InsufficientResultsError) Error() string {
	return fmt.Sprintf("insufficient results: %d of %d icon generations succeeded", e.Succeeded, e.Expected)
}

// ClassifyKind resolves the failure kind of an arbitrary error. Tagged
// backend errors are authoritative; for everything else the legacy substring
// contract is kept as a fallback.
func ClassifyKind(err error) FailureKind {
	if err == nil {
		return KindUnknown
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimedOut
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return KindRateLimited
	case strings.Contains(msg, "api key"):
		return KindUnauthenticated
	case strings.Contains(msg, "timeout"):
		return KindTimedOut
	default:
		return KindUnknown
	}
}
