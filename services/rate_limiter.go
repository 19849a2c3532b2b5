package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiter paces outbound calls through a sliding one-minute window.
type RateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	lastRequests      []time.Time
}

func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: rpm,
		lastRequests:      make([]time.Time, 0),
	}
}

// Wait blocks until a request fits the window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-time.Minute)

	validRequests := make([]time.Time, 0)
	for _, t := range r.lastRequests {
		if t.After(windowStart) {
			validRequests = append(validRequests, t)
		}
	}
	r.lastRequests = validRequests

	if len(r.lastRequests) >= r.requestsPerMinute {
		oldestRequest := r.lastRequests[0]
		waitUntil := oldestRequest.Add(time.Minute)
		waitDuration := waitUntil.Sub(now)

		if waitDuration > 0 {
			slog.Info("Rate limit reached, waiting...",
				"waitSeconds", waitDuration.Seconds(),
				"rpm", r.requestsPerMinute,
			)

			select {
			case <-time.After(waitDuration):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	r.lastRequests = append(r.lastRequests, now)
	return nil
}

// Keeps the forum scraper polite. The forum bans aggressive crawlers.
var scrapeRateLimiter = NewRateLimiter(10)

// AttemptLimiter counts events per key in a sliding window. Used to slow
// password guessing on the admin login and spam on the support form.
type AttemptLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	attempts map[string][]time.Time
}

func NewAttemptLimiter(max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		max:      max,
		window:   window,
		attempts: make(map[string][]time.Time),
	}
}

// Allow reports whether the key is still under its limit.
func (a *AttemptLimiter) Allow(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	valid := a.prune(key)
	return len(valid) < a.max
}

// Record charges one attempt against the key.
func (a *AttemptLimiter) Record(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	valid := a.prune(key)
	a.attempts[key] = append(valid, time.Now())
}

// Reset clears the key, for example after a successful login.
func (a *AttemptLimiter) Reset(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attempts, key)
}

func (a *AttemptLimiter) prune(key string) []time.Time {
	windowStart := time.Now().Add(-a.window)

	valid := a.attempts[key][:0]
	for _, t := range a.attempts[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(a.attempts, key)
		return nil
	}
	a.attempts[key] = valid
	return valid
}

// LoginLimiter guards the admin login form.
var LoginLimiter = NewAttemptLimiter(5, 15*time.Minute)

// SupportLimiter guards the public support form.
var SupportLimiter = NewAttemptLimiter(3, time.Hour)
