// Package gateway fetches weather and crypto data from the upstream
// providers (OpenWeatherMap and CoinGecko), normalizes transport and API
// failures into typed errors, and caches successful responses for a short
// TTL so that the polling engines and ad-hoc lookups do not hammer the
// upstreams.
package gateway

import (
	"net/http"
	"time"
)

const (
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultCryptoBaseURL  = "https://api.coingecko.com/api/v3/simple/price"

	// DefaultCacheTTL is how long a successful response stays valid.
	DefaultCacheTTL = 60 * time.Second

	requestTimeout = 10 * time.Second
)

// Config holds the gateway's construction parameters. Base URLs and the
// HTTP client are overridable for tests; zero values select the real
// providers.
type Config struct {
	APIKey         string // OpenWeatherMap API key
	WeatherBaseURL string
	CryptoBaseURL  string
	HTTPClient     *http.Client
	Cache          Cache
}

// Gateway is the single entry point for external data. One instance is
// shared by the HTTP handlers, the CLI, the agent tools, and both polling
// engines; its only mutable state is the cache.
type Gateway struct {
	apiKey     string
	weatherURL string
	cryptoURL  string
	httpClient *http.Client
	cache      Cache
}

func New(cfg Config) *Gateway {
	g := &Gateway{
		apiKey:     cfg.APIKey,
		weatherURL: cfg.WeatherBaseURL,
		cryptoURL:  cfg.CryptoBaseURL,
		httpClient: cfg.HTTPClient,
		cache:      cfg.Cache,
	}
	if g.weatherURL == "" {
		g.weatherURL = defaultWeatherBaseURL
	}
	if g.cryptoURL == "" {
		g.cryptoURL = defaultCryptoBaseURL
	}
	if g.httpClient == nil {
		g.httpClient = &http.Client{Timeout: requestTimeout}
	}
	if g.cache == nil {
		g.cache = NewMemoryCache(DefaultCacheTTL)
	}
	return g
}
