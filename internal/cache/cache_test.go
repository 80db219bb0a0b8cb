package cache

import (
	"owprofile-backend/internal/components/chrono"
	"owprofile-backend/pkg/owtypes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.August, 26, 12, 0, 0, 0, time.UTC)

func identity[V any](v V) V {
	return v
}

func TestFreshness(t *testing.T) {
	window := 20 * time.Minute

	testCases := []struct {
		elapsed time.Duration
		hit     bool
	}{
		{elapsed: 0, hit: true},
		{elapsed: time.Minute, hit: true},
		{elapsed: window - time.Nanosecond, hit: true},
		{elapsed: window, hit: false},
		{elapsed: window + time.Hour, hit: false},
	}

	for _, test := range testCases {
		clock := chrono.NewFakeTime(start)
		cache := NewTimed[string](
			"test", window, identity[int], clock,
		)
		cache.Set("key", 42)

		clock.Advance(test.elapsed)
		value, ok := cache.Get("key")
		require.Equal(t, test.hit, ok, test.elapsed)
		if test.hit {
			require.Equal(t, 42, value)
			require.Equal(t, 1, cache.Len())
		} else {
			require.Equal(t, 0, value)
			// expired entries are dropped by the read that sees them
			require.Equal(t, 0, cache.Len())
		}
	}
}

func TestNeverExpire(t *testing.T) {
	for _, window := range []time.Duration{0, -time.Second} {
		clock := chrono.NewFakeTime(start)
		cache := NewTimed[string]("test", window, identity[string], clock)
		cache.Set("key", "value")

		clock.Advance(24 * 365 * time.Hour)
		value, ok := cache.Get("key")
		require.True(t, ok)
		require.Equal(t, "value", value)
	}
}

func TestOverwrite(t *testing.T) {
	clock := chrono.NewFakeTime(start)
	cache := NewTimed[string]("test", time.Minute, identity[int], clock)

	cache.Set("key", 1)
	clock.Advance(50 * time.Second)
	cache.Set("key", 2)
	clock.Advance(50 * time.Second)

	// the second write restarted the window
	value, ok := cache.Get("key")
	require.True(t, ok)
	require.Equal(t, 2, value)

	_, ok = cache.Get("other")
	require.False(t, ok)
}

func TestCloneOnReadAndWrite(t *testing.T) {
	clock := chrono.NewFakeTime(start)
	cache := NewTimed[owtypes.Battletag]("overbuff", time.Minute, owtypes.Overbuff.Clone, clock)
	btag := owtypes.NewBattletag("Player", 1)

	original := owtypes.Overbuff{Ranks: []owtypes.Rank{{Group: owtypes.GROUP_GOLD, Tier: 3}}}
	cache.Set(btag, original)
	original.Ranks[0].Tier = 1

	first, ok := cache.Get(btag)
	require.True(t, ok)
	require.Equal(t, owtypes.Tier(3), first.Ranks[0].Tier)

	first.Ranks[0].Tier = 5
	second, ok := cache.Get(btag)
	require.True(t, ok)
	require.Equal(t, owtypes.Tier(3), second.Ranks[0].Tier)
}

func TestConcurrentAccess(t *testing.T) {
	clock := chrono.NewFakeTime(start)
	cache := NewTimed[int]("test", time.Minute, identity[int], clock)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set(j%10, i)
				cache.Get(j % 10)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 10, cache.Len())
}
