package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// set overrides one key for the duration of the test.
func set(t *testing.T, key, value string) {
	t.Helper()
	_ = Load()
	mu.Lock()
	prev := values[key]
	values[key] = value
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		values[key] = prev
		mu.Unlock()
	})
}

func TestRateLimit(t *testing.T) {
	set(t, "RATE_LIMIT", "")
	assert.Equal(t, 300, RateLimit())

	set(t, "RATE_LIMIT", "42")
	assert.Equal(t, 42, RateLimit())

	set(t, "RATE_LIMIT", "not-a-number")
	assert.Equal(t, 300, RateLimit())

	set(t, "RATE_LIMIT", "-1")
	assert.Equal(t, 300, RateLimit())
}

func TestRateWindow(t *testing.T) {
	set(t, "RATE_WINDOW", "")
	assert.Equal(t, time.Minute, RateWindow())

	set(t, "RATE_WINDOW", "30s")
	assert.Equal(t, 30*time.Second, RateWindow())

	set(t, "RATE_WINDOW", "soon")
	assert.Equal(t, time.Minute, RateWindow())
}
