// Package alert holds named threshold watches (crypto 24h change or current
// temperature with a comparison operator) and evaluates every enabled watch
// on a polling loop, recording a history entry only when the threshold
// condition is satisfied.
package alert

import (
	"errors"
	"time"
)

// Type selects the metric an alert watches.
type Type string

const (
	TypeCryptoChange Type = "crypto_change" // 24h % change of a coin
	TypeWeatherTemp  Type = "weather_temp"  // current temperature of a city, °C
)

// Operator is the comparison applied to the observed value.
type Operator string

const (
	OpGreater Operator = ">"
	OpLess    Operator = "<"
)

// ErrNotFound is returned for operations on unknown alert ids.
var ErrNotFound = errors.New("alert not found")

// ValidationError marks a rejected create request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Alert is one threshold watch. LastTrigger only moves when the condition
// evaluates true; LastStatus is refreshed on every evaluation.
type Alert struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Enabled     bool       `json:"enabled"`
	Type        Type       `json:"type"`
	Operator    Operator   `json:"operator"`
	Threshold   float64    `json:"threshold"`
	Coin        string     `json:"coin,omitempty"`
	City        string     `json:"city,omitempty"`
	LastTrigger *time.Time `json:"last_trigger,omitempty"`
	LastStatus  string     `json:"last_status,omitempty"`
}

func (op Operator) holds(value, threshold float64) bool {
	if op == OpGreater {
		return value > threshold
	}
	return value < threshold
}
