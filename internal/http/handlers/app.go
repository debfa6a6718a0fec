package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"iconforge/internal/iconset"
)

// App is the handler container; it owns the orchestration service and the
// shared logger.
type App struct {
	Icons  *iconset.Service
	Logger zerolog.Logger
}

// NewApp builds the handler container.
func NewApp(icons *iconset.Service, logger zerolog.Logger) *App {
	return &App{Icons: icons, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message, details string) {
	a.json(w, code, map[string]string{"error": message, "details": details})
}
