package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"iconforge/internal/http/handlers"
	"iconforge/internal/iconset"
	"iconforge/internal/infra"
)

type staticBackend struct{}

func (staticBackend) Generate(ctx context.Context, req iconset.BackendRequest) ([]iconset.Asset, error) {
	return []iconset.Asset{{URL: "https://icons.test/ok.png"}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.New(io.Discard)
	svc := iconset.NewService(staticBackend{}, iconset.ServiceOptions{
		Logger: &logger,
		Runner: iconset.RunnerOptions{
			Sleep: func(ctx context.Context, d time.Duration) error { return nil },
		},
	})
	cfg := &infra.Config{
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: 100,
	}
	return NewRouter(handlers.NewApp(svc, logger), cfg)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health = %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/styles")
	if err != nil {
		t.Fatalf("GET /styles: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /styles = %d", resp.StatusCode)
	}

	resp, err = http.Post(server.URL+"/generate-icons", "application/json",
		strings.NewReader(`{"prompt":"Toys","style":1}`))
	if err != nil {
		t.Fatalf("POST /generate-icons: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Errorf("POST /generate-icons = %d: %s", resp.StatusCode, body)
	}
	if rid := resp.Header.Get("X-Request-ID"); rid == "" {
		t.Error("response missing X-Request-ID header")
	}

	resp, err = http.Get(server.URL + "/generate-icons")
	if err != nil {
		t.Fatalf("GET /generate-icons: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /generate-icons = %d, want 405", resp.StatusCode)
	}
}
