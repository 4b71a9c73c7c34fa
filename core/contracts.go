package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Service is the per-endpoint transport contract. Implementations are bound
// to a single Session at construction; rotation happens by constructing a
// new instance through a ClientFactory, never by mutating an existing one.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*User, error)
	Logout(ctx context.Context) error
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateCurrentUser(ctx context.Context, user *User) (*User, error)
	RefreshCurrentUser(ctx context.Context) (*User, error)
	DeleteCurrentUser(ctx context.Context) error
	RetrieveUser(ctx context.Context, id string) (*User, error)
	RetrieveFollowings(ctx context.Context) (*UsersFeed, error)
	RetrieveFollowers(ctx context.Context) (*UsersFeed, error)
	RetrieveFriends(ctx context.Context) (*UsersFeed, error)
	CreateConnection(ctx context.Context, connection *Connection) (*Connection, error)
	RetrievePendingConnections(ctx context.Context) (*ConnectionsFeed, error)
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	RemoveEvent(ctx context.Context, id string) error
	SendAnalytics(ctx context.Context) error
}

// ClientFactory owns the authoritative current client. OnSessionChanged
// constructs a new client bound to the given session and makes it the one
// returned by subsequent CurrentClient calls; clients already handed out
// keep the binding they were issued with.
type ClientFactory interface {
	CurrentClient() Service
	CurrentSession() Session
	OnSessionChanged(session Session) Service
}

// SessionStore persists the session credential, the installation identifier,
// and the current-user record across process restarts. An absent session is
// reported as a zero Session with a nil error; I/O failures surface as
// errors and are never swallowed.
type SessionStore interface {
	Get(ctx context.Context) (Session, error)
	Put(ctx context.Context, session Session) error
	// Clear removes the session credential and the current-user record. The
	// installation identifier survives a clear.
	Clear(ctx context.Context) error
	// InstallationID returns the persisted installation identifier, minting
	// and persisting one on first access.
	InstallationID(ctx context.Context) (string, error)
	CurrentUser(ctx context.Context) (*User, error)
	PutCurrentUser(ctx context.Context, user *User) error
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type JobExecutionMessage struct {
	JobID          string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}

type JobWorkerEvent struct {
	Message   *JobExecutionMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}
