package icon

import (
	"context"

	"iconforge/internal/iconset"
	"iconforge/internal/providers/genai"
)

// GeminiBackend adapts the Gemini client to the orchestrator's backend
// contract.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend wraps an existing Gemini client.
func NewGeminiBackend(client *genai.Client) *GeminiBackend {
	return &GeminiBackend{client: client}
}

// Generate fulfils iconset.Backend.
func (b *GeminiBackend) Generate(ctx context.Context, req iconset.BackendRequest) ([]iconset.Asset, error) {
	assets, err := b.client.GenerateImage(ctx, genai.ImageRequest{
		Prompt:  req.Prompt,
		Seed:    req.Seed,
		Width:   req.Width,
		Height:  req.Height,
		Format:  req.Format,
		Quality: req.Quality,
	})
	if err != nil {
		return nil, err
	}
	out := make([]iconset.Asset, len(assets))
	for i, asset := range assets {
		out[i] = iconset.Asset{
			URL:    asset.URL,
			Format: asset.Format,
			Width:  asset.Width,
			Height: asset.Height,
		}
	}
	return out, nil
}

var _ iconset.Backend = (*GeminiBackend)(nil)
