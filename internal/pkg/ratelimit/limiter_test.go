package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_PerKeyBudget(t *testing.T) {
	l := NewPerMinute(3)
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))

	// One token refills every 20 seconds at 3/min.
	fixed = fixed.Add(21 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestKeyedLimiter_Cleanup(t *testing.T) {
	l := NewPerMinute(5)
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Allow("a")
	fixed = fixed.Add(5 * time.Minute)
	l.Allow("b")
	fixed = fixed.Add(6 * time.Minute)

	l.Cleanup()
	assert.Equal(t, 1, l.Len())
}
