package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"iconforge/internal/http/handlers"
	"iconforge/internal/http/httpapi"
	"iconforge/internal/iconset"
	"iconforge/internal/infra"
	"iconforge/internal/providers/genai"
	iconprovider "iconforge/internal/providers/icon"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		Model:             cfg.GeminiModel,
		HTTPClient:        &http.Client{Timeout: cfg.HTTPWriteTimeout},
		Logger:            &logger,
		SyntheticFallback: cfg.SyntheticFallback,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}
	if !geminiClient.HasCredentials() {
		logger.Warn().
			Str("model", geminiClient.Model()).
			Bool("synthetic_fallback", cfg.SyntheticFallback).
			Msg("gemini api key missing")
	}

	icons := iconset.NewService(iconprovider.NewGeminiBackend(geminiClient), iconset.ServiceOptions{
		MinSuccess: cfg.MinSuccess,
		Runner: iconset.RunnerOptions{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
			Logger:     &logger,
		},
		Logger: &logger,
	})

	app := handlers.NewApp(icons, logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
