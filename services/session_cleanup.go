package services

import (
	"context"
	"log/slog"
	"time"
)

// StartSessionCleanup starts a background goroutine that periodically removes
// expired admin sessions and stale one-time verification tokens
func StartSessionCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour) // Run cleanup every hour
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Session cleanup stopped")
				return
			case <-ticker.C:
				cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

				count, err := CleanupExpiredAdminSessions(cleanupCtx)
				if err != nil {
					slog.Error("Failed to cleanup expired sessions", "error", err)
				} else if count > 0 {
					slog.Info("Cleaned up expired sessions", "count", count)
				}

				tokens, err := CleanupStaleTokens(cleanupCtx)
				if err != nil {
					slog.Error("Failed to cleanup stale verify tokens", "error", err)
				} else if tokens > 0 {
					slog.Info("Cleaned up stale verify tokens", "count", tokens)
				}

				cancel()
			}
		}
	}()

	slog.Info("Session cleanup started")
}
