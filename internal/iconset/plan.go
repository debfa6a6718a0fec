package iconset

import "strings"

// VariationCount is the number of icons generated per batch.
const VariationCount = 4

// renderConstraints is appended to every prompt so all four icons share the
// same output geometry regardless of style or variation.
const renderConstraints = "512x512 resolution, transparent background, subject perfectly centered, high quality"

// Plan expands a validated request into the batch's generation tasks. Output
// order is index order; the aggregator relies on it for final response
// ordering. Each task's seed is baseSeed plus its index.
func Plan(req *GenerationRequest, baseSeed int64) []GenerationTask {
	tasks := make([]GenerationTask, 0, VariationCount)
	for i := 0; i < VariationCount; i++ {
		parts := []string{
			req.Prompt + " icon",
			VariationDescriptors[i],
			StyleProfiles[req.Style].Descriptor,
		}
		if len(req.BrandColors) > 0 {
			parts = append(parts, "using these exact colors: "+strings.Join(req.BrandColors, ", ")+", maintain color consistency")
		}
		parts = append(parts, renderConstraints)
		tasks = append(tasks, GenerationTask{
			Index:      i,
			FullPrompt: strings.Join(parts, ", "),
			Seed:       baseSeed + int64(i),
		})
	}
	return tasks
}
