package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExponentialBackoffSchedulerBounds(t *testing.T) {
	scheduler := ExponentialBackoffScheduler{
		Initial: 100 * time.Millisecond,
		Max:     400 * time.Millisecond,
	}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 100 * time.Millisecond},
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 400 * time.Millisecond},
		{attempt: 10, want: 400 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := scheduler.NextDelay(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: got %v want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestRunAnalyticsFlushRetriesTransientFailures(t *testing.T) {
	client := &stubService{analyticsErr: errors.New("flaky")}
	coordinator, _, _ := newTestCoordinator(t, client)
	coordinator.flushScheduler = ExponentialBackoffScheduler{Initial: time.Millisecond, Max: time.Millisecond}

	result, err := coordinator.RunAnalyticsFlushWithRetry(context.Background(), FlushRunOptions{MaxAttempts: 3})
	if err == nil {
		t.Fatalf("expected the final failure to surface")
	}
	if result.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", result.Attempts)
	}

	attempts := 0
	for _, call := range client.calls {
		if call == "send_analytics" {
			attempts++
		}
	}
	if attempts != 3 {
		t.Fatalf("expected 3 transport calls, got %d", attempts)
	}
}

func TestRunAnalyticsFlushStopsOnSuccess(t *testing.T) {
	client := &stubService{}
	coordinator, _, _ := newTestCoordinator(t, client)

	result, err := coordinator.RunAnalyticsFlushWithRetry(context.Background(), FlushRunOptions{MaxAttempts: 5})
	if err != nil {
		t.Fatalf("RunAnalyticsFlushWithRetry: %v", err)
	}
	if result.Attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", result.Attempts)
	}
}

func TestRunAnalyticsFlushAbortsOnAuthFailure(t *testing.T) {
	client := &stubService{analyticsErr: notAuthenticatedError("core: session expired")}
	coordinator, _, _ := newTestCoordinator(t, client)
	coordinator.flushScheduler = ExponentialBackoffScheduler{Initial: time.Millisecond, Max: time.Millisecond}

	result, err := coordinator.RunAnalyticsFlushWithRetry(context.Background(), FlushRunOptions{MaxAttempts: 5})
	if err == nil {
		t.Fatalf("expected the auth failure to surface")
	}
	if result.Attempts != 1 {
		t.Fatalf("auth failures must not be retried, got %d attempts", result.Attempts)
	}
}

type capturingEnqueuer struct {
	messages []*JobExecutionMessage
}

func (e *capturingEnqueuer) Enqueue(_ context.Context, msg *JobExecutionMessage) error {
	e.messages = append(e.messages, msg)
	return nil
}

func TestEnqueueAnalyticsFlush(t *testing.T) {
	client := &stubService{}
	factory := &fakeFactory{client: client}
	store := NewMemorySessionStore()
	enqueuer := &capturingEnqueuer{}
	coordinator, err := NewCoordinator(DefaultConfig(),
		WithClientFactory(factory),
		WithSessionStore(store),
		WithJobEnqueuer(enqueuer),
	)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}

	if err := coordinator.EnqueueAnalyticsFlush(context.Background()); err != nil {
		t.Fatalf("EnqueueAnalyticsFlush: %v", err)
	}
	if len(enqueuer.messages) != 1 {
		t.Fatalf("expected one enqueued message, got %d", len(enqueuer.messages))
	}
	msg := enqueuer.messages[0]
	if msg.JobID != AnalyticsFlushJobID {
		t.Fatalf("unexpected job id: %s", msg.JobID)
	}
	if msg.IdempotencyKey == AnalyticsFlushJobID+"::" {
		t.Fatalf("idempotency key missing the installation id")
	}
}

func TestEnqueueAnalyticsFlushRequiresEnqueuer(t *testing.T) {
	client := &stubService{}
	coordinator, _, _ := newTestCoordinator(t, client)

	if err := coordinator.EnqueueAnalyticsFlush(context.Background()); err == nil {
		t.Fatalf("expected a configuration error without an enqueuer")
	}
}
