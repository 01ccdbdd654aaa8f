// Package config loads runtime configuration from a .env file, environment
// variables, and an optional config.yaml. Environment variables win over the
// YAML file for values both can set.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLM operating modes and providers.
const (
	ModeReal = "real"
	ModeMock = "mock"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds everything the server and CLI need to start.
type Config struct {
	OpenWeatherAPIKey string

	LLMMode      string
	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string
	GeminiAPIKey string

	RedisAddr string
	Port      string
	DataDir   string

	CacheTTL         time.Duration
	ScheduleInterval time.Duration
	AlertInterval    time.Duration
}

// fileConfig is the optional config.yaml shape. All fields are overrides;
// anything absent keeps its default.
type fileConfig struct {
	Port             string `yaml:"port"`
	DataDir          string `yaml:"data_dir"`
	CacheTTLSeconds  int    `yaml:"cache_ttl_seconds"`
	ScheduleSeconds  int    `yaml:"schedule_interval_seconds"`
	AlertSeconds     int    `yaml:"alert_interval_seconds"`
}

// Load reads configuration. yamlPath may be empty to use "config.yaml"; a
// missing YAML file is not an error.
func Load(yamlPath string) (*Config, error) {
	// Only load a .env file for local development. In containers
	// (GIN_MODE=release) configuration arrives as real environment
	// variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		LLMMode:           strings.ToLower(envOr("LLM_MODE", ModeReal)),
		LLMProvider:       strings.ToLower(envOr("LLM_PROVIDER", ProviderOpenAI)),
		LLMModel:          os.Getenv("LLM_MODEL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		Port:              envOr("PORT", "8080"),
		DataDir:           envOr("DATA_DIR", "data"),
		CacheTTL:          60 * time.Second,
		ScheduleInterval:  60 * time.Second,
		AlertInterval:     300 * time.Second,
	}

	if yamlPath == "" {
		yamlPath = "config.yaml"
	}
	if err := applyYAML(cfg, yamlPath); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Env vars take precedence over YAML.
	if fc.Port != "" && os.Getenv("PORT") == "" {
		cfg.Port = fc.Port
	}
	if fc.DataDir != "" && os.Getenv("DATA_DIR") == "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.CacheTTLSeconds > 0 {
		cfg.CacheTTL = time.Duration(fc.CacheTTLSeconds) * time.Second
	}
	if fc.ScheduleSeconds > 0 {
		cfg.ScheduleInterval = time.Duration(fc.ScheduleSeconds) * time.Second
	}
	if fc.AlertSeconds > 0 {
		cfg.AlertInterval = time.Duration(fc.AlertSeconds) * time.Second
	}
	return nil
}

func (c *Config) validate() error {
	if c.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY environment variable is not set")
	}
	if c.LLMMode != ModeReal && c.LLMMode != ModeMock {
		return fmt.Errorf("LLM_MODE must be %q or %q, got %q", ModeReal, ModeMock, c.LLMMode)
	}
	if c.LLMProvider != ProviderOpenAI && c.LLMProvider != ProviderGemini {
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLMProvider)
	}
	// API keys are only required when a real model will be called.
	if c.LLMMode == ModeReal {
		switch c.LLMProvider {
		case ProviderOpenAI:
			if c.OpenAIAPIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY not set in environment or .env")
			}
		case ProviderGemini:
			if c.GeminiAPIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY not set in environment or .env")
			}
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
