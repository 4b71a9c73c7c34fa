package social

import (
	"fmt"
	"time"

	socialcommand "github.com/goliatone/go-social-sdk/command"
	"github.com/goliatone/go-social-sdk/core"
	"github.com/goliatone/go-social-sdk/transport"
)

type Config = core.Config

type AnalyticsConfig = core.AnalyticsConfig

type Option = core.Option

type Coordinator = core.Coordinator

type Service = core.Service

type ClientFactory = core.ClientFactory

type SessionStore = core.SessionStore

type ConfigProvider = core.ConfigProvider

type Session = core.Session
type User = core.User
type Connection = core.Connection
type ConnectionsFeed = core.ConnectionsFeed
type ConnectionList = core.ConnectionList
type UsersFeed = core.UsersFeed
type Event = core.Event
type EventObject = core.EventObject
type LoginRequest = core.LoginRequest

type ConnectionState = core.ConnectionState
type ConnectionType = core.ConnectionType

type FlushBackoffScheduler = core.FlushBackoffScheduler
type FlushRunOptions = core.FlushRunOptions
type FlushRunResult = core.FlushRunResult

var (
	WithLogger                = core.WithLogger
	WithLoggerProvider        = core.WithLoggerProvider
	WithMetricsRecorder       = core.WithMetricsRecorder
	WithSessionStore          = core.WithSessionStore
	WithClientFactory         = core.WithClientFactory
	WithClientFactoryBuilder  = core.WithClientFactoryBuilder
	WithConfigProvider        = core.WithConfigProvider
	WithOptionsResolver       = core.WithOptionsResolver
	WithFlushBackoffScheduler = core.WithFlushBackoffScheduler
	WithJobEnqueuer           = core.WithJobEnqueuer
)

var (
	IsValidationError       = core.IsValidationError
	IsNotAuthenticatedError = core.IsNotAuthenticatedError
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New builds a coordinator wired to the REST transport. The factory is
// constructed from the fully resolved configuration, so an app token or base
// URL supplied through a WithConfigProvider loader reaches the transport. A
// WithClientFactory option supplied by the caller takes precedence over the
// built-in transport factory.
func New(cfg Config, opts ...Option) (*Coordinator, error) {
	combined := append([]Option{core.WithClientFactoryBuilder(newTransportFactory)}, opts...)
	return core.NewCoordinator(cfg, combined...)
}

func newTransportFactory(cfg core.Config) core.ClientFactory {
	return transport.NewFactory(transport.ClientConfig{
		AppToken:       cfg.AppToken,
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.SDKName,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	})
}

// Commands groups the asynchronous command handlers bound to one
// coordinator. Handles passed at construction receive typed errors raised by
// these commands.
type Commands struct {
	CreateEvent    *socialcommand.CreateEventCommand
	RemoveEvent    *socialcommand.RemoveEventCommand
	FlushAnalytics *socialcommand.FlushAnalyticsCommand
}

func NewCommands(coordinator *Coordinator, handles ...any) (Commands, error) {
	if coordinator == nil {
		return Commands{}, fmt.Errorf("social: coordinator is required")
	}
	return Commands{
		CreateEvent:    socialcommand.NewCreateEventCommand(coordinator, handles...),
		RemoveEvent:    socialcommand.NewRemoveEventCommand(coordinator, handles...),
		FlushAnalytics: socialcommand.NewFlushAnalyticsCommand(coordinator, handles...),
	}, nil
}
