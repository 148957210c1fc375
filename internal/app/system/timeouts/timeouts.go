// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around database calls in HTTP
// handlers so that a slow or unreachable Mongo deployment fails a request
// instead of hanging it.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: list queries and report aggregations
//   - Long: exports and anything that walks whole collections
package timeouts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	Ping   = 2 * time.Second
	Short  = 5 * time.Second
	Medium = 10 * time.Second
	Long   = 30 * time.Second
)

// WithTimeout creates a context with the given timeout and returns a cancel
// function that logs a warning if the deadline was actually hit. Use it for
// report and export handlers where timeout debugging matters.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "task export")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
