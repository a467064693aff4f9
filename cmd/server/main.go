package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/arturoeanton/go-code-review-assistant/internal/adapter/ai"
	"github.com/arturoeanton/go-code-review-assistant/internal/adapter/store"
	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/handler"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
	"github.com/arturoeanton/go-code-review-assistant/internal/service"
	"github.com/arturoeanton/go-code-review-assistant/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting Code Review Assistant",
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := pgStore.Init(context.Background()); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// ── LLM provider ─────────────────────────────────────────────────────
	var provider port.AIProvider
	switch cfg.LLMProvider {
	case "ollama":
		provider = ai.NewOllamaProvider(ai.OllamaConfig{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.OllamaModel,
			Token:   cfg.OllamaToken,
		})
	default:
		if cfg.OpenAIAPIKey == "" {
			slog.Error("GROQ_API_KEY (or OPENAI_API_KEY) not set")
			os.Exit(1)
		}
		provider = ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel)
	}

	// ── Services ─────────────────────────────────────────────────────────
	reviewService := service.NewReviewService(provider, pgStore)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:     cfg.AppName,
		BodyLimit:   cfg.MaxUploadBytes,
		ReadTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// API index / health check
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": cfg.AppName + " API",
			"version": "2.0",
			"status":  "running",
			"model":   provider.ModelName(),
			"allowed_extensions": domain.AllowedExtensions(),
			"endpoints": fiber.Map{
				"review":        "/api/review [POST]",
				"batch_review":  "/api/batch-review [POST]",
				"reviews":       "/api/reviews [GET, DELETE]",
				"review_detail": "/api/review/:id [GET, DELETE]",
				"statistics":    "/api/statistics [GET]",
				"export":        "/api/review/:id/export [GET]",
				"search":        "/api/reviews/search [GET]",
				"compare":       "/api/reviews/compare [POST]",
				"trends":        "/api/trends [GET]",
			},
		})
	})

	api := app.Group("/api")

	reviewHandler := handler.NewReviewHandler(reviewService, pgStore)
	reviewHandler.Register(api)

	insightsHandler := handler.NewInsightsHandler(pgStore)
	insightsHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
