package schedule

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

// DefaultInterval is the polling cadence of the schedule loop.
const DefaultInterval = 60 * time.Second

// DataSource is the slice of the gateway the engine needs.
type DataSource interface {
	FetchWeather(ctx context.Context, city string) (*gateway.WeatherReport, error)
	FetchCryptoPrice(ctx context.Context, coin string) (*gateway.CryptoQuote, error)
}

// Recorder receives one history entry per executed schedule.
type Recorder interface {
	Append(kind history.Kind, query string, result any)
}

// Engine owns the in-memory schedule registry and the polling loop that
// executes due jobs. All registry access goes through the engine's mutex;
// network calls happen outside critical sections.
type Engine struct {
	source   DataSource
	history  Recorder
	interval time.Duration
	now      func() time.Time
	newID    func() string

	mu        sync.Mutex
	schedules map[string]*Schedule
	order     []string
}

func NewEngine(source DataSource, recorder Recorder, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		source:    source,
		history:   recorder,
		interval:  interval,
		now:       time.Now,
		newID:     uuid.NewString,
		schedules: make(map[string]*Schedule),
	}
}

// CreateRequest carries the user-supplied fields of a new schedule.
type CreateRequest struct {
	Name      string
	TimeOfDay string
	City      string
	Coin      string
}

// Create registers a new enabled schedule and computes its first next-run
// instant. At least one of city or coin is required.
func (e *Engine) Create(req CreateRequest) (Schedule, error) {
	city := strings.TrimSpace(req.City)
	coin := strings.ToLower(strings.TrimSpace(req.Coin))
	if city == "" && coin == "" {
		return Schedule{}, &ValidationError{Reason: "At least one of city or coin must be provided for a schedule."}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Daily Check"
	}

	next := NextRun(req.TimeOfDay, e.now().UTC())
	sched := &Schedule{
		ID:        e.newID(),
		Name:      name,
		Enabled:   true,
		TimeOfDay: req.TimeOfDay,
		City:      city,
		Coin:      coin,
		NextRun:   &next,
	}

	e.mu.Lock()
	e.schedules[sched.ID] = sched
	e.order = append(e.order, sched.ID)
	e.mu.Unlock()

	return *sched, nil
}

// List returns copies of all schedules in creation order.
func (e *Engine) List() []Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Schedule, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.schedules[id])
	}
	return out
}

// SetEnabled toggles a schedule. Enabling recomputes next_run only when none
// is set; disabling leaves next_run untouched so a brief disable does not
// skip an imminent run.
func (e *Engine) SetEnabled(id string, enabled bool) (Schedule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sched, ok := e.schedules[id]
	if !ok {
		return Schedule{}, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	sched.Enabled = enabled
	if enabled && sched.NextRun == nil {
		next := NextRun(sched.TimeOfDay, e.now().UTC())
		sched.NextRun = &next
	}
	return *sched, nil
}

// Delete removes a schedule by id.
func (e *Engine) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.schedules[id]; !ok {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	delete(e.schedules, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Run polls for due schedules until the context is cancelled. Start it once
// at process startup.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	log.Printf("[scheduler] loop started (every %s)", e.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] loop stopped")
			return
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick executes every enabled schedule whose next_run is at or before now.
// Exported so tests can drive the engine without the ticker.
func (e *Engine) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scheduler] recovered: %v", r)
		}
	}()

	now := e.now().UTC()

	e.mu.Lock()
	due := make([]*Schedule, 0)
	for _, id := range e.order {
		sched := e.schedules[id]
		if sched.Enabled && sched.NextRun != nil && !sched.NextRun.After(now) {
			due = append(due, sched)
		}
	}
	e.mu.Unlock()

	for _, sched := range due {
		e.execute(ctx, sched, now)
	}
}

// execute fetches the schedule's configured data, independently per item,
// then records the outcome. One item's failure never blocks the other.
func (e *Engine) execute(ctx context.Context, sched *Schedule, runTime time.Time) {
	var parts []string

	if sched.City != "" {
		report, err := e.source.FetchWeather(ctx, sched.City)
		switch {
		case err != nil:
			parts = append(parts, fmt.Sprintf("%s: weather error (%v)", sched.City, err))
		case report.TemperatureC != nil:
			parts = append(parts, fmt.Sprintf("%s: %.1f°C, %s", sched.City, *report.TemperatureC, report.Description))
		default:
			parts = append(parts, fmt.Sprintf("%s: weather data unavailable", sched.City))
		}
	}

	if sched.Coin != "" {
		upper := strings.ToUpper(sched.Coin)
		quote, err := e.source.FetchCryptoPrice(ctx, sched.Coin)
		if err != nil {
			parts = append(parts, fmt.Sprintf("%s: crypto error (%v)", upper, err))
		} else {
			text := fmt.Sprintf("%s: $%.2f", upper, quote.PriceUSD)
			if quote.Change24h != nil {
				text += fmt.Sprintf(" (%+.2f%% 24h)", *quote.Change24h)
			}
			parts = append(parts, text)
		}
	}

	summary := "No tools configured for this schedule."
	if len(parts) > 0 {
		summary = strings.Join(parts, " | ")
	}

	e.mu.Lock()
	sched.LastRun = &runTime
	sched.LastStatus = summary
	next := NextRun(sched.TimeOfDay, runTime)
	sched.NextRun = &next
	e.mu.Unlock()

	e.history.Append(history.KindAgent, "[Schedule] "+sched.Name, map[string]any{"answer": summary})
	log.Printf("[scheduler] %s: %s", sched.Name, summary)
}
