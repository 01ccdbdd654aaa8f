package gateway

// ErrorKind classifies gateway failures so that callers (HTTP handlers, the
// CLI, the agent's tool dispatcher) can map them to user-facing behavior
// without parsing error strings.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindUnknownCoin  ErrorKind = "unknown_coin"
	KindRateLimited  ErrorKind = "rate_limited"
	KindBadStatus    ErrorKind = "bad_status"
	KindNetwork      ErrorKind = "network"
)

// WeatherError is returned for any failure while fetching weather data.
type WeatherError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WeatherError) Error() string { return e.Message }

func (e *WeatherError) Unwrap() error { return e.Err }

// CryptoError is returned for any failure while fetching crypto prices.
type CryptoError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *CryptoError) Error() string { return e.Message }

func (e *CryptoError) Unwrap() error { return e.Err }
