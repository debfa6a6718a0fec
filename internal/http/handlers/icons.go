package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"iconforge/internal/iconset"
)

type generateIconsResponse struct {
	Success bool                `json:"success"`
	Icons   []iconset.Icon      `json:"icons"`
	Partial bool                `json:"partial"`
	Errors  []iconset.TaskError `json:"errors,omitempty"`
}

type validationFailedResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// GenerateIcons runs one icon-set batch for the posted request.
func (a *App) GenerateIcons(w http.ResponseWriter, r *http.Request) {
	var raw iconset.RawRequest
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		a.json(w, http.StatusBadRequest, validationFailedResponse{
			Error:   "Validation failed",
			Details: []string{"request body must be a JSON object"},
		})
		return
	}

	result, err := a.Icons.Generate(r.Context(), raw)
	if err != nil {
		a.writeBatchError(w, err)
		return
	}

	a.json(w, http.StatusOK, generateIconsResponse{
		Success: true,
		Icons:   result.Icons,
		Partial: result.Partial,
		Errors:  result.Errors,
	})
}

func (a *App) writeBatchError(w http.ResponseWriter, err error) {
	var validationErr *iconset.ValidationError
	if errors.As(err, &validationErr) {
		a.json(w, http.StatusBadRequest, validationFailedResponse{
			Error:   "Validation failed",
			Details: validationErr.Details,
		})
		return
	}

	var insufficientErr *iconset.InsufficientResultsError
	if errors.As(err, &insufficientErr) {
		a.Logger.Error().
			Int("succeeded", insufficientErr.Succeeded).
			Int("expected", insufficientErr.Expected).
			Msg("icon batch fell below the success threshold")
		a.error(w, statusForFailures(insufficientErr.Failures), "Icon generation failed", insufficientErr.Error())
		return
	}

	a.Logger.Error().Err(err).Msg("icon batch failed")
	a.error(w, statusForKind(iconset.ClassifyKind(err)), "Icon generation failed", err.Error())
}

// statusForFailures picks the response status from the tagged failure
// kinds. When every failed task reports the same kind, that kind wins;
// mixed batches fall back to a plain server error.
func statusForFailures(failures []iconset.TaskError) int {
	if len(failures) == 0 {
		return http.StatusInternalServerError
	}
	kind := failures[0].Kind
	for _, failure := range failures[1:] {
		if failure.Kind != kind {
			return http.StatusInternalServerError
		}
	}
	return statusForKind(kind)
}

func statusForKind(kind iconset.FailureKind) int {
	switch kind {
	case iconset.KindRateLimited:
		return http.StatusTooManyRequests
	case iconset.KindUnauthenticated:
		return http.StatusServiceUnavailable
	case iconset.KindTimedOut:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
