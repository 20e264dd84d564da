// Package reqctx tags one scrape run with an id that follows it through logs and errors.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type key int

const runKey key = 0

// RunContext identifies a single scrape run
type RunContext struct {
	RunID     string
	Keyword   string
	StartTime time.Time
}

// WithRun attaches a fresh RunContext for keyword to ctx
func WithRun(ctx context.Context, keyword string) context.Context {
	return context.WithValue(ctx, runKey, &RunContext{
		RunID:     generateID(),
		Keyword:   keyword,
		StartTime: time.Now(),
	})
}

// FromContext returns the RunContext of ctx, or a placeholder when none is set
func FromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runKey).(*RunContext); ok {
		return rc
	}
	return &RunContext{
		RunID:     "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns base enriched with the run id and keyword carried by ctx
func Logger(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	rc := FromContext(ctx)
	lc := base.With().Str("run_id", rc.RunID)
	if rc.Keyword != "" {
		lc = lc.Str("keyword", rc.Keyword)
	}
	return lc.Logger()
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// RunError wraps an error with the id of the run that produced it
type RunError struct {
	RunID string
	Err   error
}

// Error implements the error interface
func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %v", e.RunID, e.Err)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

// WrapError tags err with the run id from ctx. A nil err stays nil.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &RunError{
		RunID: FromContext(ctx).RunID,
		Err:   err,
	}
}
