package auth

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimitError is returned by the validator when an attempt is refused
// before the credentials are even looked at.
type RateLimitError struct {
	RetryAfter int // seconds until the window elapses
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Too many attempts. Please try again in %d seconds.", e.RetryAfter)
}

// Result is the outcome of a single rate-limit check.
type Result struct {
	Allowed    bool
	RetryAfter int
}

type attemptEntry struct {
	count       int
	windowStart time.Time
}

// Limiter counts login attempts per username over a fixed window. It is a
// fixed window with refresh-on-check: every allowed attempt slides
// windowStart forward, so a username that keeps retrying keeps its window
// open. Constructed once at startup and handed to the validator.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry

	maxAttempts int
	window      time.Duration

	now func() time.Time
}

func NewLimiter(maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{
		entries:     make(map[string]*attemptEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Check records one attempt for username and reports whether it may proceed.
// An entry whose window has elapsed is evicted and the attempt allowed
// without being recorded; the next failed attempt starts a fresh count.
func (l *Limiter) Check(username string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.entries[username]
	if exists && now.Sub(entry.windowStart) > l.window {
		delete(l.entries, username)
		return Result{Allowed: true}
	}
	if !exists {
		entry = &attemptEntry{windowStart: now}
		l.entries[username] = entry
	}
	if entry.count >= l.maxAttempts {
		remaining := l.window - now.Sub(entry.windowStart)
		return Result{RetryAfter: int(math.Ceil(remaining.Seconds()))}
	}
	entry.count++
	entry.windowStart = now
	return Result{Allowed: true}
}

// Reset drops the entry for username, typically after a successful login so
// earlier failures do not count toward a future lockout.
func (l *Limiter) Reset(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, username)
}

// Janitor evicts expired entries until ctx is cancelled. Check is correct
// without it; this only bounds the map's size.
func (l *Limiter) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for username, entry := range l.entries {
				if now.Sub(entry.windowStart) > l.window {
					delete(l.entries, username)
				}
			}
			l.mu.Unlock()
		}
	}
}
