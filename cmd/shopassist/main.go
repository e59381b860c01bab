package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopassist/shopassist/internal/api/handlers"
	"github.com/shopassist/shopassist/internal/api/middleware"
	"github.com/shopassist/shopassist/internal/assistant"
	"github.com/shopassist/shopassist/internal/cache"
	"github.com/shopassist/shopassist/internal/catalog"
	"github.com/shopassist/shopassist/internal/config"
	"github.com/shopassist/shopassist/internal/health"
	"github.com/shopassist/shopassist/internal/metrics"
	repository "github.com/shopassist/shopassist/internal/repositories"
	service "github.com/shopassist/shopassist/internal/services"
	"github.com/shopassist/shopassist/pkg/gemini"
	"github.com/shopassist/shopassist/pkg/storeapi"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repository.RunMigrations(repos.DB, cfg.Database.MigrationsPath); err != nil {
		slog.Error("❌ Error running migrations", "error", err.Error())
		os.Exit(1)
	}

	// Redis-backed product cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := productCache.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Bulk catalog load, when a workbook is configured
	if cfg.Catalog.XLSXPath != "" {
		loader := catalog.NewLoader(repos.Product)

		count, err := loader.LoadFromFile(context.Background(), cfg.Catalog.XLSXPath)
		if err != nil {
			slog.Warn("⚠️ Catalog load skipped", slog.String("path", cfg.Catalog.XLSXPath), slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Catalog loaded", slog.Int("products", count))
		}
	}

	// Services and handlers
	catalogService := service.NewCatalogService(repos.Product, productCache)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)

	// Assistant: model client is optional, keyword fallback covers its absence
	var llm assistant.LLM

	if cfg.Assistant.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.Assistant.GeminiAPIKey, cfg.Assistant.GeminiModel)
		if err != nil {
			slog.Error("❌ Error creating gemini client", "error", err.Error())
			os.Exit(1)
		}
		defer geminiClient.Close()

		llm = geminiClient
	} else {
		slog.Warn("⚠️ GEMINI_API_KEY not set, assistant runs in keyword mode")
	}

	storeClient := storeapi.NewClient(cfg.Assistant.StoreBaseURL)
	shopAssistant := assistant.New(llm, storeClient, catalogService)
	webhookHandler := handlers.NewWebhookHandler(shopAssistant, cfg.Assistant.VerifyToken)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/carts", cartHandler.CreateCart())
	routerMux.HandleFunc("GET /api/v1/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("PATCH /api/v1/carts/{id}", cartHandler.UpdateCart())
	routerMux.HandleFunc("POST /webhook/whatsapp", webhookHandler.Receive())
	routerMux.HandleFunc("GET /webhook/whatsapp", webhookHandler.Verify())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
