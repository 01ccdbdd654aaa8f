package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
)

// CryptoFetcher is the slice of the gateway the crypto tool needs.
type CryptoFetcher interface {
	FetchCryptoPrice(ctx context.Context, coin string) (*gateway.CryptoQuote, error)
}

// CryptoTool exposes live coin prices to the agent.
type CryptoTool struct {
	source CryptoFetcher
}

var _ Executor = (*CryptoTool)(nil)

func NewCryptoTool(source CryptoFetcher) *CryptoTool {
	return &CryptoTool{source: source}
}

func (t *CryptoTool) Definition() Tool {
	return NewFunctionTool(
		"get_crypto_price",
		"Get the latest price and 24h change for a cryptocurrency.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"coin": {
					Type:        "string",
					Description: "Coin id as used by your API backend, e.g. 'bitcoin', 'ethereum', 'dogecoin'.",
				},
			},
			Required: []string{"coin"},
		},
	)
}

func (t *CryptoTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Coin string `json:"coin"`
	}
	_ = json.Unmarshal([]byte(arguments), &args)
	if args.Coin == "" {
		return errorPayload("get_crypto_price", "InternalError", "Missing required argument: coin"), nil
	}

	quote, err := t.source.FetchCryptoPrice(ctx, args.Coin)
	if err != nil {
		var cerr *gateway.CryptoError
		if errors.As(err, &cerr) {
			return errorPayload("get_crypto_price", "CryptoError", cerr.Message), nil
		}
		return errorPayload("get_crypto_price", "InternalError", err.Error()), nil
	}

	return resultPayload("get_crypto_price", map[string]string{"coin": args.Coin}, quote), nil
}
