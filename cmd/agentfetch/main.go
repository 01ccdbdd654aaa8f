package main

import (
	"context"
	"log"
	"os"

	"github.com/dileep-u-k/agent-fetch/internal/agent"
	"github.com/dileep-u-k/agent-fetch/internal/cli"
	"github.com/dileep-u-k/agent-fetch/internal/config"
	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/llm"
	"github.com/dileep-u-k/agent-fetch/internal/store"
	"github.com/dileep-u-k/agent-fetch/internal/tools"
)

// The CLI shares the server's gateway, agent and data mirror so a lookup
// behaves identically whether it comes from a terminal or the HTTP API.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("FATAL: Configuration error: %v", err)
	}

	dataGateway := gateway.New(gateway.Config{
		APIKey: cfg.OpenWeatherAPIKey,
		Cache:  gateway.NewMemoryCache(cfg.CacheTTL),
	})

	llmClient, err := newLLMClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	registry := tools.NewRegistry()
	registry.Register(tools.NewWeatherTool(dataGateway))
	registry.Register(tools.NewCryptoTool(dataGateway))

	root := cli.NewRootCmd(cli.Deps{
		Source: dataGateway,
		Agent:  agent.New(llmClient, registry),
		Store:  store.New(cfg.DataDir),
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLLMClient(cfg *config.Config) (llm.Client, error) {
	if cfg.LLMMode == config.ModeMock {
		return llm.NewMockClient(), nil
	}
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	}
}
