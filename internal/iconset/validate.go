package iconset

import (
	"encoding/json"
	"strings"
	"unicode/utf16"
)

const (
	// MaxPromptLength bounds the trimmed prompt, counted in UTF-16 code
	// units so the limit matches what browser-side form validation counts.
	MaxPromptLength = 200

	// MaxBrandColors bounds the optional color list.
	MaxBrandColors = 5
)

// RawRequest is the undecoded request body. Fields stay as raw JSON so the
// validator can report shape violations ("prompt must be a string") instead
// of the decoder rejecting the whole body on the first bad field.
type RawRequest struct {
	Prompt      json.RawMessage `json:"prompt"`
	Style       json.RawMessage `json:"style"`
	BrandColors json.RawMessage `json:"brandColors"`
}

// Validate checks every rule independently and collects all violations. On
// success it returns the sanitized request and a nil slice; on failure the
// request is nil and the slice holds every violated rule in field order.
func Validate(raw RawRequest) (*GenerationRequest, []string) {
	var violations []string

	prompt, ok := decodeString(raw.Prompt)
	if !ok {
		violations = append(violations, "prompt is required and must be a string")
	} else {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			violations = append(violations, "prompt must not be empty")
		} else if utf16Length(prompt) > MaxPromptLength {
			violations = append(violations, "prompt must be at most 200 characters")
		}
	}

	style, ok := decodeInt(raw.Style)
	if !ok {
		violations = append(violations, "style is required and must be an integer")
	} else if _, known := StyleProfiles[style]; !known {
		violations = append(violations, "style must be a known style identifier")
	}

	var colors []string
	if isPresent(raw.BrandColors) {
		if err := json.Unmarshal(raw.BrandColors, &colors); err != nil {
			violations = append(violations, "brandColors must be an array of strings")
		} else if len(colors) > MaxBrandColors {
			violations = append(violations, "brandColors must contain at most 5 entries")
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &GenerationRequest{Prompt: prompt, Style: style, BrandColors: colors}, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if !isPresent(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	if !isPresent(raw) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func utf16Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
