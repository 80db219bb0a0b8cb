package cache

import (
	"context"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/chrono"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("owprofile.cache")
var hitCounter, _ = meter.Int64Counter("cache.hits")
var missCounter, _ = meter.Int64Counter("cache.misses")

// API is a key value store whose entries may disappear at any time.
type API[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Timed is an API whose entries expire after a fixed window.
//
// Expiry is lazy, an expired entry is only removed by the Get that observes it.
// There is no eviction otherwise, so keys that are never read again stay resident.
//
// The lock is only held around map access, callers that miss are expected to
// fetch outside of it, so concurrent misses on one key all fetch and the last
// Set wins.
type Timed[K comparable, V any] struct {
	name   string
	window time.Duration
	clone  func(V) V
	time   chrono.TimeAPI

	mutex   sync.Mutex
	entries map[K]entry[V]
}

// NewTimed creates a Timed cache, a window <= 0 disables expiry. clone is
// applied to values going in and out so that callers never share memory
// with the cache.
func NewTimed[K comparable, V any](name string, window time.Duration, clone func(V) V, time chrono.TimeAPI) *Timed[K, V] {
	assert.NotEmptyStr(name)
	assert.NotNil(clone)
	assert.NotNil(time)
	return &Timed[K, V]{
		name:    name,
		window:  window,
		clone:   clone,
		time:    time,
		entries: map[K]entry[V]{},
	}
}

func (c *Timed[K, V]) fresh(e entry[V], now time.Time) bool {
	if c.window <= 0 {
		return true
	}
	return now.Sub(e.insertedAt) < c.window
}

func (c *Timed[K, V]) Get(key K) (V, bool) {
	now := c.time.Now()

	c.mutex.Lock()
	e, ok := c.entries[key]
	if ok && !c.fresh(e, now) {
		delete(c.entries, key)
		ok = false
	}
	c.mutex.Unlock()

	attrs := metric.WithAttributes(attribute.String("cache", c.name))
	if !ok {
		missCounter.Add(context.Background(), 1, attrs)
		var zero V
		return zero, false
	}
	hitCounter.Add(context.Background(), 1, attrs)
	return c.clone(e.value), true
}

func (c *Timed[K, V]) Set(key K, value V) {
	value = c.clone(value)
	now := c.time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = entry[V]{value: value, insertedAt: now}
}

// Len counts resident entries, expired ones included.
func (c *Timed[K, V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
