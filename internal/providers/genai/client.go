package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"iconforge/internal/iconset"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *zerolog.Logger

	// SyntheticFallback enables deterministic placeholder icons when no API
	// key is configured, keeping the pipeline operable in local and CI
	// environments. Without it a missing key surfaces as an
	// unauthenticated backend error.
	SyntheticFallback bool
}

// Client performs HTTP calls to the Gemini generateContent API for icon
// image generation. Safe for concurrent use; all fields are read-only after
// construction.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
	synthetic  bool
}

// ImageRequest captures one icon generation call.
type ImageRequest struct {
	Prompt  string
	Seed    int64
	Width   int
	Height  int
	Format  string
	Quality int
}

// ImageAsset is the normalized result of a generation call. URL is either a
// remote file URI or a data URL for inline responses.
type ImageAsset struct {
	URL    string
	Format string
	Width  int
	Height int
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	FileData   *geminiFileData   `json:"fileData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiFileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

type geminiGenerationConfig struct {
	CandidateCount     int      `json:"candidateCount,omitempty"`
	Seed               *int64   `json:"seed,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may pass
// a nil HTTP client; a reusable one with a sensible timeout is created.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash-image"
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
		synthetic:  opts.SyntheticFallback,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// HasCredentials reports whether remote calls are possible.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateImage produces one icon image for the given prompt and seed. The
// seed is forwarded to the model's generation config; reproducibility is
// best-effort on the remote side.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) ([]ImageAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, classifyTransport(err)
	}

	if !c.HasCredentials() {
		if c.synthetic {
			return c.syntheticImage(req), nil
		}
		return nil, &iconset.BackendError{
			Kind:    iconset.KindUnauthenticated,
			Message: "gemini: API key is not configured",
		}
	}

	return c.remoteGenerateImage(ctx, req)
}

func (c *Client) remoteGenerateImage(ctx context.Context, req ImageRequest) ([]ImageAsset, error) {
	seed := req.Seed
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			CandidateCount:     1,
			Seed:               &seed,
			ResponseModalities: []string{"IMAGE"},
		},
	}

	var response geminiGenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model))
	if err := c.invoke(ctx, path, payload, &response); err != nil {
		return nil, err
	}

	var assets []ImageAsset
	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			asset, ok := normalizePart(part, req)
			if !ok {
				continue
			}
			assets = append(assets, asset)
		}
	}
	if len(assets) == 0 {
		return nil, &iconset.BackendError{
			Kind:    iconset.KindUnknown,
			Message: "gemini: response contained no image data",
		}
	}

	c.logger.Debug().
		Str("model", c.model).
		Int64("seed", req.Seed).
		Int("assets", len(assets)).
		Msg("genai: generated remote icon assets")
	return assets, nil
}

func (c *Client) invoke(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("genai: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return classifyStatus(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("genai: decode response: %w", err)
	}
	return nil
}

func normalizePart(part geminiPart, req ImageRequest) (ImageAsset, bool) {
	if part.InlineData != nil && part.InlineData.Data != "" {
		mime := part.InlineData.MimeType
		if mime == "" {
			mime = "image/" + req.Format
		}
		// Inline bytes become a data URL so the outcome carries a plain
		// textual image reference.
		return ImageAsset{
			URL:    "data:" + mime + ";base64," + part.InlineData.Data,
			Format: mime,
			Width:  req.Width,
			Height: req.Height,
		}, true
	}
	if part.FileData != nil && part.FileData.FileURI != "" {
		return ImageAsset{
			URL:    part.FileData.FileURI,
			Format: part.FileData.MimeType,
			Width:  req.Width,
			Height: req.Height,
		}, true
	}
	return ImageAsset{}, false
}

// classifyStatus tags the failure kind at the point where the HTTP status is
// known, so callers never have to match on message text.
func classifyStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	message := fmt.Sprintf("gemini: status %d", resp.StatusCode)
	var apiErr geminiErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = fmt.Sprintf("gemini: status %d: %s", resp.StatusCode, apiErr.Error.Message)
	} else if detail := strings.TrimSpace(string(raw)); detail != "" {
		message = fmt.Sprintf("gemini: status %d: %s", resp.StatusCode, detail)
	}

	kind := iconset.KindUnknown
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		kind = iconset.KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = iconset.KindUnauthenticated
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = iconset.KindTimedOut
	}
	return &iconset.BackendError{Kind: kind, Message: message}
}

func classifyTransport(err error) error {
	kind := iconset.KindUnknown
	if errors.Is(err, context.DeadlineExceeded) {
		kind = iconset.KindTimedOut
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = iconset.KindTimedOut
	}
	return &iconset.BackendError{Kind: kind, Message: "gemini: " + err.Error()}
}

func (c *Client) syntheticImage(req ImageRequest) []ImageAsset {
	data := renderSyntheticIcon(req.Width, req.Height, req.Seed)
	c.logger.Debug().
		Str("model", c.model).
		Int64("seed", req.Seed).
		Msg("genai: generated synthetic icon asset")
	return []ImageAsset{{
		URL:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		Format: "image/png",
		Width:  req.Width,
		Height: req.Height,
	}}
}
