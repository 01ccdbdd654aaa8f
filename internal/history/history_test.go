package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppendAndRecentNewestFirst(t *testing.T) {
	log := NewLog(DefaultCapacity)

	log.Append(KindWeather, "Hyderabad", map[string]any{"temp": 28.4})
	log.Append(KindCrypto, "bitcoin", map[string]any{"usd": 64230.10})
	log.Append(KindAgent, "[Schedule] Morning Check", map[string]any{"answer": "ok"})

	recent := log.Recent(10)
	require.Len(t, recent, 3)
	require.Equal(t, "[Schedule] Morning Check", recent[0].Query)
	require.Equal(t, KindAgent, recent[0].Kind)
	require.Equal(t, "bitcoin", recent[1].Query)
	require.Equal(t, "Hyderabad", recent[2].Query)
	require.False(t, recent[0].Timestamp.Before(recent[2].Timestamp))
}

func TestRecentLimit(t *testing.T) {
	log := NewLog(DefaultCapacity)
	for i := 0; i < 5; i++ {
		log.Append(KindWeather, fmt.Sprintf("city-%d", i), nil)
	}

	require.Len(t, log.Recent(2), 2)
	require.Equal(t, "city-4", log.Recent(2)[0].Query)
	require.Empty(t, log.Recent(0))
	require.Empty(t, log.Recent(-1))
	require.Len(t, log.Recent(100), 5)
}

func TestCapacityTrimsOldest(t *testing.T) {
	log := NewLog(200)
	for i := 0; i < 250; i++ {
		log.Append(KindCrypto, fmt.Sprintf("coin-%d", i), nil)
	}

	require.Equal(t, 200, log.Len())
	recent := log.Recent(200)
	require.Len(t, recent, 200)
	require.Equal(t, "coin-249", recent[0].Query)
	require.Equal(t, "coin-50", recent[199].Query)
}

func TestTimestampsAreUTC(t *testing.T) {
	log := NewLog(10)
	log.now = func() time.Time {
		return time.Date(2026, 3, 1, 14, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	}
	log.Append(KindAgent, "q", nil)

	entry := log.Recent(1)[0]
	require.Equal(t, time.UTC, entry.Timestamp.Location())
	require.Equal(t, 9, entry.Timestamp.Hour())
}
