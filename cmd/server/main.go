package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/agent-fetch/internal/agent"
	"github.com/dileep-u-k/agent-fetch/internal/alert"
	"github.com/dileep-u-k/agent-fetch/internal/config"
	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/history"
	"github.com/dileep-u-k/agent-fetch/internal/httpapi"
	"github.com/dileep-u-k/agent-fetch/internal/llm"
	"github.com/dileep-u-k/agent-fetch/internal/schedule"
	"github.com/dileep-u-k/agent-fetch/internal/store"
	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// main is the composition root: it loads configuration, initializes every
// service, injects dependencies, starts the polling loops, and runs the web
// server until shutdown.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("Starting Agent Fetch | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("FATAL: Configuration error: %v", err)
	}
	log.Println("Configuration loaded.")

	dataGateway := gateway.New(gateway.Config{
		APIKey: cfg.OpenWeatherAPIKey,
		Cache:  newCache(cfg),
	})

	llmClient, err := newLLMClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	registry := tools.NewRegistry()
	registry.Register(tools.NewWeatherTool(dataGateway))
	registry.Register(tools.NewCryptoTool(dataGateway))
	log.Printf("Tool registry initialized with %d tools.", registry.Count())

	fetchAgent := agent.New(llmClient, registry)
	historyLog := history.NewLog(history.DefaultCapacity)
	dataStore := store.New(cfg.DataDir)

	schedules := schedule.NewEngine(dataGateway, historyLog, cfg.ScheduleInterval)
	alerts := alert.NewEngine(dataGateway, historyLog, cfg.AlertInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go schedules.Run(ctx)
	go alerts.Run(ctx)

	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	handler := httpapi.NewHandler(dataGateway, fetchAgent, historyLog, dataStore, schedules, alerts)
	handler.Register(engine)
	log.Println("All services initialized.")

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(ctx, srv)
}

// newCache picks Redis when REDIS_ADDR is configured, otherwise the
// in-process cache.
func newCache(cfg *config.Config) gateway.Cache {
	if cfg.RedisAddr == "" {
		return gateway.NewMemoryCache(cfg.CacheTTL)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("FATAL: Could not connect to Redis at %s: %v", cfg.RedisAddr, err)
	}
	log.Printf("Using Redis cache at %s.", cfg.RedisAddr)
	return gateway.NewRedisCache(rdb, cfg.CacheTTL)
}

// newLLMClient selects the model backend from configuration.
func newLLMClient(cfg *config.Config) (llm.Client, error) {
	if cfg.LLMMode == config.ModeMock {
		log.Println("LLM_MODE=mock: using canned agent responses.")
		return llm.NewMockClient(), nil
	}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(ctx context.Context, srv *http.Server) {
	go func() {
		log.Printf("Agent Fetch is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Listen error: %s", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown failed:", err)
	}

	log.Println("Server exited gracefully.")
}
