package alert

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/history"
)

// DefaultInterval is the polling cadence of the alert loop.
const DefaultInterval = 300 * time.Second

// DataSource is the slice of the gateway the engine needs.
type DataSource interface {
	FetchWeather(ctx context.Context, city string) (*gateway.WeatherReport, error)
	FetchCryptoPrice(ctx context.Context, coin string) (*gateway.CryptoQuote, error)
}

// Recorder receives one history entry per triggered alert.
type Recorder interface {
	Append(kind history.Kind, query string, result any)
}

// Engine owns the in-memory alert registry and its evaluation loop.
type Engine struct {
	source   DataSource
	history  Recorder
	interval time.Duration
	now      func() time.Time
	newID    func() string

	mu     sync.Mutex
	alerts map[string]*Alert
	order  []string
}

func NewEngine(source DataSource, recorder Recorder, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		source:   source,
		history:  recorder,
		interval: interval,
		now:      time.Now,
		newID:    uuid.NewString,
		alerts:   make(map[string]*Alert),
	}
}

// CreateRequest carries the user-supplied fields of a new alert.
type CreateRequest struct {
	Name      string
	Type      Type
	Operator  Operator
	Threshold float64
	Coin      string
	City      string
}

// Create registers a new enabled alert. The coin/city requirement matches
// the alert type and is enforced, not advisory.
func (e *Engine) Create(req CreateRequest) (Alert, error) {
	switch req.Type {
	case TypeCryptoChange:
		if strings.TrimSpace(req.Coin) == "" {
			return Alert{}, &ValidationError{Reason: "coin is required for crypto_change alerts"}
		}
	case TypeWeatherTemp:
		if strings.TrimSpace(req.City) == "" {
			return Alert{}, &ValidationError{Reason: "city is required for weather_temp alerts"}
		}
	default:
		return Alert{}, &ValidationError{Reason: fmt.Sprintf("unsupported alert type %q", req.Type)}
	}
	if req.Operator != OpGreater && req.Operator != OpLess {
		return Alert{}, &ValidationError{Reason: "operator must be '>' or '<'"}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Alert"
	}

	alert := &Alert{
		ID:        e.newID(),
		Name:      name,
		Enabled:   true,
		Type:      req.Type,
		Operator:  req.Operator,
		Threshold: req.Threshold,
		Coin:      strings.ToLower(strings.TrimSpace(req.Coin)),
		City:      strings.TrimSpace(req.City),
	}

	e.mu.Lock()
	e.alerts[alert.ID] = alert
	e.order = append(e.order, alert.ID)
	e.mu.Unlock()

	return *alert, nil
}

// List returns copies of all alerts in creation order.
func (e *Engine) List() []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.alerts[id])
	}
	return out
}

// SetEnabled toggles an alert.
func (e *Engine) SetEnabled(id string, enabled bool) (Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	alert, ok := e.alerts[id]
	if !ok {
		return Alert{}, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	alert.Enabled = enabled
	return *alert, nil
}

// Delete removes an alert by id.
func (e *Engine) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.alerts[id]; !ok {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	delete(e.alerts, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Run evaluates alerts until the context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	log.Printf("[alerts] loop started (every %s)", e.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[alerts] loop stopped")
			return
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick evaluates every enabled alert once. Per-alert failures are isolated;
// one alert's error never blocks the others.
func (e *Engine) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[alerts] recovered: %v", r)
		}
	}()

	now := e.now().UTC()

	e.mu.Lock()
	enabled := make([]*Alert, 0)
	for _, id := range e.order {
		if alert := e.alerts[id]; alert.Enabled {
			enabled = append(enabled, alert)
		}
	}
	e.mu.Unlock()

	for _, alert := range enabled {
		e.evaluate(ctx, alert, now)
	}
}

// evaluate fetches the watched metric and applies the comparison. Only a
// true comparison updates last_trigger and writes history; every other path
// just refreshes last_status.
func (e *Engine) evaluate(ctx context.Context, alert *Alert, runTime time.Time) {
	var description string

	switch {
	case alert.Type == TypeCryptoChange && alert.Coin != "":
		upper := strings.ToUpper(alert.Coin)
		quote, err := e.source.FetchCryptoPrice(ctx, alert.Coin)
		if err != nil {
			e.setStatus(alert, fmt.Sprintf("%s: crypto alert error (%v)", upper, err))
			return
		}
		if quote.Change24h == nil {
			e.setStatus(alert, fmt.Sprintf("%s: 24h change unavailable", upper))
			return
		}
		value := *quote.Change24h
		description = fmt.Sprintf("%s 24h change is %+.2f%% (%s %.2f%%)", upper, value, alert.Operator, alert.Threshold)
		if !alert.Operator.holds(value, alert.Threshold) {
			e.setStatus(alert, description)
			return
		}

	case alert.Type == TypeWeatherTemp && alert.City != "":
		report, err := e.source.FetchWeather(ctx, alert.City)
		if err != nil {
			e.setStatus(alert, fmt.Sprintf("%s: weather alert error (%v)", alert.City, err))
			return
		}
		if report.TemperatureC == nil {
			e.setStatus(alert, fmt.Sprintf("%s: temperature unavailable", alert.City))
			return
		}
		value := *report.TemperatureC
		description = fmt.Sprintf("%s: %.1f°C (%s %.1f°C)", alert.City, value, alert.Operator, alert.Threshold)
		if !alert.Operator.holds(value, alert.Threshold) {
			e.setStatus(alert, description)
			return
		}

	default:
		// Should be unreachable given create-time validation.
		e.setStatus(alert, "Alert misconfigured (missing city/coin or unsupported type).")
		return
	}

	e.mu.Lock()
	alert.LastTrigger = &runTime
	alert.LastStatus = description
	e.mu.Unlock()

	e.history.Append(history.KindAgent, "[Alert] "+alert.Name, map[string]any{"answer": description})
	log.Printf("[alerts] triggered %s: %s", alert.Name, description)
}

func (e *Engine) setStatus(alert *Alert, status string) {
	e.mu.Lock()
	alert.LastStatus = status
	e.mu.Unlock()
}
