package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/batch"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/http/handlers"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/http/httpapi"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/interpreter"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/bria"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/image"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/mcp"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/transport"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	fetcher := transport.NewClient(transport.NewHTTPClient(transport.Options{}))

	briaClient := bria.NewClient(bria.Options{
		APIKey:        cfg.BriaAPIKey,
		BaseURL:       cfg.BriaBaseURL,
		Transport:     fetcher,
		Logger:        &logger,
		Sync:          cfg.BriaSync,
		SubmitTimeout: cfg.SubmitTimeout,
		PollInterval:  cfg.PollInterval,
		PollTimeout:   cfg.PollTimeout,
	})
	mcpClient := mcp.NewClient(mcp.Options{
		APIKey:    cfg.BriaMCPAPIKey,
		Endpoint:  cfg.BriaMCPURL,
		Transport: fetcher,
		Logger:    &logger,
	})
	if !briaClient.HasCredentials() {
		logger.Warn().Msg("BRIA_API_KEY not set, primary generation disabled")
	}
	if !mcpClient.HasCredentials() {
		logger.Warn().Msg("BRIA_MCP_API_KEY not set, fallback generation disabled")
	}

	generator := image.NewOrchestrator(briaClient, mcpClient, &logger)
	scheduler := batch.NewScheduler(generator, cfg.BatchStagger, &logger)

	interp := interpreter.NewGeminiInterpreter(interpreter.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, serving static interpretations")
	}

	app := &handlers.App{
		Logger:      &logger,
		Interpreter: interp,
		Generator:   generator,
		Scheduler:   scheduler,
		History:     history.NewStore(),
		Fetcher:     fetcher,
		BatchSize:   cfg.BatchSize,
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
