package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterLocksAfterMaxAttempts(t *testing.T) {
	limiter := NewLoginLimiter(3, 10*time.Minute, time.Hour)

	locked, _ := limiter.IsLocked("budi")
	assert.False(t, locked)
	assert.Equal(t, 3, limiter.RemainingAttempts("budi"))

	locked, _ = limiter.RecordFailedLogin("budi")
	assert.False(t, locked)
	locked, _ = limiter.RecordFailedLogin("budi")
	assert.False(t, locked)
	assert.Equal(t, 1, limiter.RemainingAttempts("budi"))

	locked, minutes := limiter.RecordFailedLogin("budi")
	assert.True(t, locked)
	assert.Equal(t, 10, minutes)

	locked, remaining := limiter.IsLocked("budi")
	assert.True(t, locked)
	assert.Greater(t, remaining, 0)

	// other usernames are unaffected
	locked, _ = limiter.IsLocked("siti")
	assert.False(t, locked)
}

func TestLoginLimiterResetAttempts(t *testing.T) {
	limiter := NewLoginLimiter(3, 10*time.Minute, time.Hour)

	limiter.RecordFailedLogin("budi")
	limiter.RecordFailedLogin("budi")
	limiter.ResetAttempts("budi")

	assert.Equal(t, 3, limiter.RemainingAttempts("budi"))
	locked, _ := limiter.IsLocked("budi")
	assert.False(t, locked)
}

func TestGenerateProspectCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateProspectCode()
		assert.True(t, len(code) > 4)
		assert.Equal(t, "PRS-", code[:4])
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
