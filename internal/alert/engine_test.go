package alert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/history"
)

type stubSource struct {
	weather func(city string) (*gateway.WeatherReport, error)
	crypto  func(coin string) (*gateway.CryptoQuote, error)
}

func (s *stubSource) FetchWeather(_ context.Context, city string) (*gateway.WeatherReport, error) {
	return s.weather(city)
}

func (s *stubSource) FetchCryptoPrice(_ context.Context, coin string) (*gateway.CryptoQuote, error) {
	return s.crypto(coin)
}

type recordedEntry struct {
	kind  history.Kind
	query string
}

type stubRecorder struct {
	entries []recordedEntry
}

func (r *stubRecorder) Append(kind history.Kind, query string, _ any) {
	r.entries = append(r.entries, recordedEntry{kind, query})
}

func floatPtr(v float64) *float64 { return &v }

func newTestEngine(source DataSource, recorder Recorder, now time.Time) *Engine {
	e := NewEngine(source, recorder, DefaultInterval)
	e.now = func() time.Time { return now }
	return e
}

func cryptoSource(change *float64) *stubSource {
	return &stubSource{
		crypto: func(coin string) (*gateway.CryptoQuote, error) {
			return &gateway.CryptoQuote{CoinID: coin, PriceUSD: 64000, Change24h: change}, nil
		},
	}
}

func TestCreateValidation(t *testing.T) {
	e := newTestEngine(&stubSource{}, &stubRecorder{}, time.Now())

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"crypto without coin", CreateRequest{Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5}},
		{"weather without city", CreateRequest{Type: TypeWeatherTemp, Operator: OpLess, Threshold: 15}},
		{"unknown type", CreateRequest{Type: "volume_spike", Operator: OpGreater, Threshold: 1, Coin: "bitcoin"}},
		{"bad operator", CreateRequest{Type: TypeCryptoChange, Operator: ">=", Threshold: 5, Coin: "bitcoin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Create(tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
	require.Empty(t, e.List())
}

func TestCreateDefaults(t *testing.T) {
	e := newTestEngine(&stubSource{}, &stubRecorder{}, time.Now())

	alert, err := e.Create(CreateRequest{Name: " ", Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5, Coin: " Bitcoin "})
	require.NoError(t, err)
	require.Equal(t, "Alert", alert.Name)
	require.Equal(t, "bitcoin", alert.Coin)
	require.True(t, alert.Enabled)
	require.Nil(t, alert.LastTrigger)
}

func TestCryptoAlertTriggers(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recorder := &stubRecorder{}
	e := newTestEngine(cryptoSource(floatPtr(6.0)), recorder, now)

	_, err := e.Create(CreateRequest{Name: "BTC pump", Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5.0, Coin: "bitcoin"})
	require.NoError(t, err)

	e.Tick(context.Background())

	got := e.List()[0]
	require.NotNil(t, got.LastTrigger)
	require.Equal(t, now, *got.LastTrigger)
	require.Equal(t, "BITCOIN 24h change is +6.00% (> 5.00%)", got.LastStatus)
	require.Len(t, recorder.entries, 1)
	require.Equal(t, history.KindAgent, recorder.entries[0].kind)
	require.Equal(t, "[Alert] BTC pump", recorder.entries[0].query)
}

func TestCryptoAlertBelowThresholdUpdatesStatusOnly(t *testing.T) {
	recorder := &stubRecorder{}
	e := newTestEngine(cryptoSource(floatPtr(4.0)), recorder, time.Now())

	_, err := e.Create(CreateRequest{Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5.0, Coin: "bitcoin"})
	require.NoError(t, err)

	e.Tick(context.Background())

	got := e.List()[0]
	require.Nil(t, got.LastTrigger)
	require.Equal(t, "BITCOIN 24h change is +4.00% (> 5.00%)", got.LastStatus)
	require.Empty(t, recorder.entries)
}

func TestCryptoAlertChangeUnavailable(t *testing.T) {
	recorder := &stubRecorder{}
	e := newTestEngine(cryptoSource(nil), recorder, time.Now())

	_, err := e.Create(CreateRequest{Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5.0, Coin: "bitcoin"})
	require.NoError(t, err)

	e.Tick(context.Background())

	got := e.List()[0]
	require.Nil(t, got.LastTrigger)
	require.Equal(t, "BITCOIN: 24h change unavailable", got.LastStatus)
	require.Empty(t, recorder.entries)
}

func TestCryptoAlertFetchFailure(t *testing.T) {
	source := &stubSource{
		crypto: func(coin string) (*gateway.CryptoQuote, error) {
			return nil, &gateway.CryptoError{Kind: gateway.KindRateLimited, Message: "Crypto data provider is temporarily rate-limited. Please try again in a few minutes."}
		},
	}
	recorder := &stubRecorder{}
	e := newTestEngine(source, recorder, time.Now())

	_, err := e.Create(CreateRequest{Type: TypeCryptoChange, Operator: OpLess, Threshold: -5.0, Coin: "bitcoin"})
	require.NoError(t, err)

	e.Tick(context.Background())

	got := e.List()[0]
	require.Nil(t, got.LastTrigger)
	require.Contains(t, got.LastStatus, "BITCOIN: crypto alert error")
	require.Contains(t, got.LastStatus, "rate-limited")
	require.Empty(t, recorder.entries)
}

func TestWeatherAlertTriggersBelow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &stubSource{
		weather: func(city string) (*gateway.WeatherReport, error) {
			return &gateway.WeatherReport{City: city, TemperatureC: floatPtr(12.0)}, nil
		},
	}
	recorder := &stubRecorder{}
	e := newTestEngine(source, recorder, now)

	_, err := e.Create(CreateRequest{Name: "Cold snap", Type: TypeWeatherTemp, Operator: OpLess, Threshold: 15.0, City: "London"})
	require.NoError(t, err)

	e.Tick(context.Background())

	got := e.List()[0]
	require.NotNil(t, got.LastTrigger)
	require.Equal(t, "London: 12.0°C (< 15.0°C)", got.LastStatus)
	require.Len(t, recorder.entries, 1)
	require.Equal(t, "[Alert] Cold snap", recorder.entries[0].query)
}

func TestDisabledAlertIsSkipped(t *testing.T) {
	recorder := &stubRecorder{}
	e := newTestEngine(cryptoSource(floatPtr(10.0)), recorder, time.Now())

	alert, err := e.Create(CreateRequest{Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5.0, Coin: "bitcoin"})
	require.NoError(t, err)
	_, err = e.SetEnabled(alert.ID, false)
	require.NoError(t, err)

	e.Tick(context.Background())
	require.Empty(t, recorder.entries)
	require.Empty(t, e.List()[0].LastStatus)
}

func TestTickIsolatesFailures(t *testing.T) {
	source := &stubSource{
		crypto: func(coin string) (*gateway.CryptoQuote, error) {
			if coin == "badcoin" {
				return nil, &gateway.CryptoError{Kind: gateway.KindUnknownCoin, Message: "Coin 'badcoin' not found or has no USD price in CoinGecko."}
			}
			return &gateway.CryptoQuote{CoinID: coin, PriceUSD: 100, Change24h: floatPtr(7.0)}, nil
		},
	}
	recorder := &stubRecorder{}
	e := newTestEngine(source, recorder, time.Now())

	_, err := e.Create(CreateRequest{Name: "bad", Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5, Coin: "badcoin"})
	require.NoError(t, err)
	_, err = e.Create(CreateRequest{Name: "good", Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5, Coin: "dogecoin"})
	require.NoError(t, err)

	e.Tick(context.Background())

	alerts := e.List()
	require.Contains(t, alerts[0].LastStatus, "crypto alert error")
	require.Nil(t, alerts[0].LastTrigger)
	require.NotNil(t, alerts[1].LastTrigger)
	require.Len(t, recorder.entries, 1)
}

func TestMisconfiguredAlertSetsStatus(t *testing.T) {
	recorder := &stubRecorder{}
	e := newTestEngine(&stubSource{}, recorder, time.Now())

	alert, err := e.Create(CreateRequest{Type: TypeCryptoChange, Operator: OpGreater, Threshold: 5, Coin: "bitcoin"})
	require.NoError(t, err)

	// Simulate a bad record slipping past create-time validation.
	e.mu.Lock()
	e.alerts[alert.ID].Coin = ""
	e.mu.Unlock()

	e.Tick(context.Background())
	require.Equal(t, "Alert misconfigured (missing city/coin or unsupported type).", e.List()[0].LastStatus)
	require.Empty(t, recorder.entries)
}

func TestDeleteUnknownID(t *testing.T) {
	e := newTestEngine(&stubSource{}, &stubRecorder{}, time.Now())
	require.ErrorIs(t, e.Delete("missing"), ErrNotFound)
	_, err := e.SetEnabled("missing", true)
	require.ErrorIs(t, err, ErrNotFound)
}
