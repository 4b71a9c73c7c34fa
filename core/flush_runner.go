package core

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	defaultFlushMaxAttempts    = 3
	defaultFlushInitialBackoff = 500 * time.Millisecond
	defaultFlushMaxBackoff     = 10 * time.Second

	// AnalyticsFlushJobID identifies queued analytics flush work.
	AnalyticsFlushJobID = "social.analytics.flush"
)

type FlushBackoffScheduler interface {
	NextDelay(attempt int) time.Duration
}

type ExponentialBackoffScheduler struct {
	Initial time.Duration
	Max     time.Duration
}

func (s ExponentialBackoffScheduler) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := s.Initial
	if initial <= 0 {
		initial = defaultFlushInitialBackoff
	}
	max := s.Max
	if max <= 0 {
		max = defaultFlushMaxBackoff
	}

	delay := initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

type FlushRunResult struct {
	Attempts int
}

type FlushRunOptions struct {
	MaxAttempts int
}

// RunAnalyticsFlushWithRetry wraps SendAnalytics with bounded retries and
// exponential backoff. Auth and validation failures abort immediately since
// retrying the same request cannot succeed.
func (c *Coordinator) RunAnalyticsFlushWithRetry(ctx context.Context, opts FlushRunOptions) (FlushRunResult, error) {
	if c == nil {
		return FlushRunResult{}, fmt.Errorf("core: coordinator is nil")
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = c.config.Analytics.FlushMaxAttempts
	}
	if maxAttempts < 1 {
		maxAttempts = defaultFlushMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := c.SendAnalytics(ctx)
		if err == nil {
			return FlushRunResult{Attempts: attempt}, nil
		}
		lastErr = err

		if isUnrecoverableFlushError(err) {
			return FlushRunResult{Attempts: attempt}, err
		}
		if attempt == maxAttempts {
			break
		}

		delay := defaultFlushInitialBackoff
		if c.flushScheduler != nil {
			delay = c.flushScheduler.NextDelay(attempt)
		}
		if waitErr := waitWithContext(ctx, delay); waitErr != nil {
			return FlushRunResult{Attempts: attempt}, waitErr
		}
	}

	return FlushRunResult{Attempts: maxAttempts}, lastErr
}

// EnqueueAnalyticsFlush hands the flush off to the configured job queue. The
// installation id doubles as the idempotency key so a backlog collapses to a
// single pending flush.
func (c *Coordinator) EnqueueAnalyticsFlush(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("core: coordinator is nil")
	}
	if c.jobEnqueuer == nil {
		return internalError("core: job enqueuer is not configured")
	}
	installationID, err := c.sessionStore.InstallationID(ctx)
	if err != nil {
		return err
	}
	return c.jobEnqueuer.Enqueue(ctx, &JobExecutionMessage{
		JobID:          AnalyticsFlushJobID,
		IdempotencyKey: AnalyticsFlushJobID + "::" + installationID,
		Parameters: map[string]any{
			"installation_id": installationID,
		},
	})
}

func isUnrecoverableFlushError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		switch richErr.Category {
		case goerrors.CategoryAuth, goerrors.CategoryAuthz, goerrors.CategoryValidation, goerrors.CategoryBadInput, goerrors.CategoryNotFound:
			return true
		}
	}
	return false
}

func waitWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
