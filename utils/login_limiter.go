package utils

import (
	"sync"
	"time"
)

// loginAttempt tracks failed logins for one username.
type loginAttempt struct {
	Count     int
	LastTry   time.Time
	LockUntil time.Time
}

// LoginLimiter throttles failed logins per username to slow down
// brute-force attempts. State is in-process only; a restart clears it.
type LoginLimiter struct {
	attempts      map[string]*loginAttempt
	mutex         sync.RWMutex
	maxAttempts   int
	lockDuration  time.Duration
	cleanInterval time.Duration
}

// NewLoginLimiter creates a limiter that locks a username for
// lockDuration after maxAttempts consecutive failures and sweeps stale
// records every cleanInterval.
func NewLoginLimiter(maxAttempts int, lockDuration, cleanInterval time.Duration) *LoginLimiter {
	limiter := &LoginLimiter{
		attempts:      make(map[string]*loginAttempt),
		maxAttempts:   maxAttempts,
		lockDuration:  lockDuration,
		cleanInterval: cleanInterval,
	}

	go limiter.cleanupLoop()

	return limiter
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.cleanup()
	}
}

// cleanup drops records whose lock expired and whose last failure is
// more than a day old.
func (l *LoginLimiter) cleanup() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	for username, attempt := range l.attempts {
		if now.After(attempt.LockUntil) && now.Sub(attempt.LastTry) > 24*time.Hour {
			delete(l.attempts, username)
		}
	}
}

// RecordFailedLogin counts a failed attempt. It returns whether the
// username is now locked and, if so, the lock duration in minutes.
func (l *LoginLimiter) RecordFailedLogin(username string) (bool, int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()

	attempt, exists := l.attempts[username]
	if !exists {
		attempt = &loginAttempt{LastTry: now}
		l.attempts[username] = attempt
	}

	attempt.Count++
	attempt.LastTry = now

	if attempt.Count >= l.maxAttempts {
		attempt.LockUntil = now.Add(l.lockDuration)
		return true, int(l.lockDuration.Minutes())
	}

	return false, 0
}

// IsLocked reports whether the username is locked and the remaining
// lock time in minutes.
func (l *LoginLimiter) IsLocked(username string) (bool, int) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	attempt, exists := l.attempts[username]
	if !exists {
		return false, 0
	}

	now := time.Now()
	if now.Before(attempt.LockUntil) {
		remainingMinutes := int(attempt.LockUntil.Sub(now).Minutes()) + 1
		return true, remainingMinutes
	}

	return false, 0
}

// ResetAttempts clears the failure count after a successful login.
func (l *LoginLimiter) ResetAttempts(username string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.attempts, username)
}

// RemainingAttempts returns how many failures are left before lockout.
func (l *LoginLimiter) RemainingAttempts(username string) int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	attempt, exists := l.attempts[username]
	if !exists {
		return l.maxAttempts
	}

	remaining := l.maxAttempts - attempt.Count
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}

// DefaultLoginLimiter locks after 5 failures for 15 minutes and sweeps
// hourly.
var DefaultLoginLimiter = NewLoginLimiter(5, 15*time.Minute, 1*time.Hour)
