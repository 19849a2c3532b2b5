package services

import (
	"testing"
	"time"
)

func TestAttemptLimiter(t *testing.T) {
	limiter := NewAttemptLimiter(3, time.Minute)
	key := "192.0.2.1"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(key) {
			t.Fatalf("Allow() = false after %d attempts, want true", i)
		}
		limiter.Record(key)
	}

	if limiter.Allow(key) {
		t.Error("Allow() = true after limit reached, want false")
	}

	// A different key is unaffected.
	if !limiter.Allow("198.51.100.7") {
		t.Error("Allow() = false for fresh key, want true")
	}

	limiter.Reset(key)
	if !limiter.Allow(key) {
		t.Error("Allow() = false after Reset(), want true")
	}
}

func TestAttemptLimiterWindowExpiry(t *testing.T) {
	limiter := NewAttemptLimiter(1, 30*time.Millisecond)
	key := "192.0.2.2"

	limiter.Record(key)
	if limiter.Allow(key) {
		t.Fatal("Allow() = true inside window, want false")
	}

	time.Sleep(50 * time.Millisecond)
	if !limiter.Allow(key) {
		t.Error("Allow() = false after window expired, want true")
	}
}
