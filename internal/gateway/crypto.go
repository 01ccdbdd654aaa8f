package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CryptoQuote is the typed projection of a CoinGecko simple-price response.
// Change24h is nil when the provider omits the 24h change field.
type CryptoQuote struct {
	CoinID    string          `json:"coin_id"`
	PriceUSD  float64         `json:"price_usd"`
	Change24h *float64        `json:"change_24h"`
	Raw       json.RawMessage `json:"raw"`
}

// FetchCryptoPrice returns the USD price and 24h change for a CoinGecko
// coin id (e.g. "bitcoin"). The id is trimmed and lower-cased before use;
// results are cached for the configured TTL.
func (g *Gateway) FetchCryptoPrice(ctx context.Context, coin string) (*CryptoQuote, error) {
	coin = strings.ToLower(strings.TrimSpace(coin))
	if coin == "" {
		return nil, &CryptoError{Kind: KindInvalidInput, Message: "coin must not be empty"}
	}

	cacheKey := "crypto:" + coin
	if payload, ok := g.cache.Get(ctx, cacheKey); ok {
		var quote CryptoQuote
		if err := json.Unmarshal(payload, &quote); err == nil {
			return &quote, nil
		}
	}

	params := url.Values{}
	params.Set("ids", coin)
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cryptoURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &CryptoError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling crypto API: %v", err), Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &CryptoError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling crypto API: %v", err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CryptoError{Kind: KindNetwork, Message: fmt.Sprintf("Network error while calling crypto API: %v", err), Err: err}
	}

	// CoinGecko answers 429 when its public rate limit is exhausted.
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &CryptoError{Kind: KindRateLimited, Message: "Crypto data provider is temporarily rate-limited. Please try again in a few minutes."}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CryptoError{Kind: KindBadStatus, Message: fmt.Sprintf("Crypto API error (status %d). Please try again later.", resp.StatusCode)}
	}

	var payload map[string]map[string]*float64
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &CryptoError{Kind: KindBadStatus, Message: "Crypto API returned an unreadable response", Err: err}
	}

	// An unknown coin comes back as {} rather than an error status.
	coinData, ok := payload[coin]
	if !ok || coinData["usd"] == nil {
		return nil, &CryptoError{Kind: KindUnknownCoin, Message: fmt.Sprintf("Coin '%s' not found or has no USD price in CoinGecko.", coin)}
	}

	quote := CryptoQuote{
		CoinID:    coin,
		PriceUSD:  *coinData["usd"],
		Change24h: coinData["usd_24h_change"],
		Raw:       json.RawMessage(body),
	}

	if encoded, err := json.Marshal(quote); err == nil {
		g.cache.Set(ctx, cacheKey, encoded)
	}
	return &quote, nil
}
