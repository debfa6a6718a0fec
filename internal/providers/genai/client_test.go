package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"iconforge/internal/iconset"
)

func iconRequest() ImageRequest {
	return ImageRequest{
		Prompt:  "Toys icon, front-facing view",
		Seed:    12345,
		Width:   512,
		Height:  512,
		Format:  "png",
		Quality: 90,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Options{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestGenerateImageDecodesInlineData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var payload geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.GenerationConfig == nil || payload.GenerationConfig.Seed == nil || *payload.GenerationConfig.Seed != 12345 {
			t.Error("seed not forwarded in generation config")
		}
		_ = json.NewEncoder(w).Encode(geminiGenerateContentResponse{
			Candidates: []geminiCandidate{{
				Content: geminiContent{Parts: []geminiPart{{
					InlineData: &geminiInlineData{MimeType: "image/png", Data: "aWNvbg=="},
				}}},
			}},
		})
	})

	assets, err := client.GenerateImage(context.Background(), iconRequest())
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if assets[0].URL != "data:image/png;base64,aWNvbg==" {
		t.Errorf("URL = %q", assets[0].URL)
	}
	if assets[0].Width != 512 || assets[0].Height != 512 {
		t.Errorf("dimensions = %dx%d, want 512x512", assets[0].Width, assets[0].Height)
	}
}

func TestGenerateImageUsesFileDataURI(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiGenerateContentResponse{
			Candidates: []geminiCandidate{{
				Content: geminiContent{Parts: []geminiPart{{
					FileData: &geminiFileData{MimeType: "image/png", FileURI: "https://files.test/icon.png"},
				}}},
			}},
		})
	})

	assets, err := client.GenerateImage(context.Background(), iconRequest())
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if assets[0].URL != "https://files.test/icon.png" {
		t.Errorf("URL = %q", assets[0].URL)
	}
}

func TestGenerateImageClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		want   iconset.FailureKind
	}{
		{http.StatusTooManyRequests, iconset.KindRateLimited},
		{http.StatusUnauthorized, iconset.KindUnauthenticated},
		{http.StatusForbidden, iconset.KindUnauthenticated},
		{http.StatusGatewayTimeout, iconset.KindTimedOut},
		{http.StatusInternalServerError, iconset.KindUnknown},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream says no"}}`))
		})
		_, err := client.GenerateImage(context.Background(), iconRequest())
		var backendErr *iconset.BackendError
		if !errors.As(err, &backendErr) {
			t.Fatalf("status %d: expected BackendError, got %v", tc.status, err)
		}
		if backendErr.Kind != tc.want {
			t.Errorf("status %d: kind = %v, want %v", tc.status, backendErr.Kind, tc.want)
		}
	}
}

func TestGenerateImageEmptyResponseIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiGenerateContentResponse{})
	})
	if _, err := client.GenerateImage(context.Background(), iconRequest()); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}

func TestSyntheticFallbackWithoutKey(t *testing.T) {
	client, err := NewClient(Options{SyntheticFallback: true})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	first, err := client.GenerateImage(context.Background(), iconRequest())
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	second, err := client.GenerateImage(context.Background(), iconRequest())
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if len(first) != 1 || !strings.HasPrefix(first[0].URL, "data:image/png;base64,") {
		t.Fatalf("unexpected synthetic asset: %+v", first)
	}
	if first[0].URL != second[0].URL {
		t.Error("synthetic assets must be deterministic for a given seed")
	}

	other := iconRequest()
	other.Seed = 54321
	different, err := client.GenerateImage(context.Background(), other)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if different[0].URL == first[0].URL {
		t.Error("different seeds should render different placeholders")
	}
}

func TestMissingKeyWithoutFallbackIsUnauthenticated(t *testing.T) {
	client, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.GenerateImage(context.Background(), iconRequest())
	var backendErr *iconset.BackendError
	if !errors.As(err, &backendErr) || backendErr.Kind != iconset.KindUnauthenticated {
		t.Fatalf("expected unauthenticated backend error, got %v", err)
	}
}
