// Package schedule holds named daily recurring jobs (a time of day plus a
// city and/or coin), computes each job's next due instant in the fixed IST
// offset, and executes due jobs on a polling loop.
package schedule

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// IST is the fixed UTC+5:30 offset all schedule times are interpreted in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// ErrNotFound is returned for operations on unknown schedule ids.
var ErrNotFound = errors.New("schedule not found")

// ValidationError marks a rejected create request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Schedule is one daily recurring job. LastRun, NextRun and LastStatus are
// maintained by the engine; the remaining fields are immutable after create.
type Schedule struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Enabled    bool       `json:"enabled"`
	TimeOfDay  string     `json:"time_of_day"`
	City       string     `json:"city,omitempty"`
	Coin       string     `json:"coin,omitempty"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastStatus string     `json:"last_status,omitempty"`
}

// NextRun computes the next UTC instant matching an IST "HH:MM" time of day,
// strictly after the given UTC reference. A malformed or out-of-range time
// of day degrades to one minute after the reference instead of failing.
func NextRun(timeOfDay string, from time.Time) time.Time {
	hour, minute, ok := parseTimeOfDay(timeOfDay)
	if !ok {
		return from.Add(time.Minute)
	}

	local := from.In(IST)
	candidate := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, IST)
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate.UTC()
}

func parseTimeOfDay(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
