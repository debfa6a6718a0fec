package iconset

import "sort"

// DefaultMinSuccess is the minimum number of successful tasks required
// before a batch may return a (possibly partial) payload.
const DefaultMinSuccess = 2

// Aggregate decides the batch outcome from the collected task outcomes.
// Below minSuccess the batch is a hard failure and no partial payload is
// produced. Otherwise the successful icons are returned in ascending index
// order, Partial is set when fewer than expected succeeded, and Errors
// lists the per-index failure reasons when any exist.
func Aggregate(outcomes []TaskOutcome, minSuccess, expected int) (*BatchResult, error) {
	sorted := make([]TaskOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	var icons []Icon
	var failures []TaskError
	for _, outcome := range sorted {
		if outcome.Err != nil {
			failures = append(failures, TaskError{
				Index: outcome.Index,
				Error: outcome.Err.Error(),
				Kind:  ClassifyKind(outcome.Err),
			})
			continue
		}
		icons = append(icons, Icon{
			URL:    outcome.URL,
			Prompt: outcome.FullPrompt,
			Seed:   outcome.Seed,
		})
	}

	if len(icons) < minSuccess {
		return nil, &InsufficientResultsError{
			Succeeded: len(icons),
			Expected:  expected,
			Failures:  failures,
		}
	}

	return &BatchResult{
		Icons:   icons,
		Partial: len(icons) < expected,
		Errors:  failures,
	}, nil
}
