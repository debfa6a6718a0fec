package iconset

import (
	"fmt"
	"unicode/utf16"
)

// DeriveSeed computes the deterministic base seed for a (prompt, style)
// pair. The hash is a 31-polynomial accumulation over the UTF-16 code units
// of "{prompt}-{style}", wrapped to signed 32 bits; the absolute value keeps
// seeds non-negative. Pure and stable across runs and platforms, which is
// what makes regenerated icon sets reproducible. Collisions between
// unrelated prompts are acceptable; reproducibility here is best-effort,
// not cryptographic.
func DeriveSeed(trimmedPrompt string, style int) int64 {
	material := fmt.Sprintf("%s-%d", trimmedPrompt, style)
	var h int32
	for _, unit := range utf16.Encode([]rune(material)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
