package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type coordinatorBuilder struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	sessionStore    SessionStore
	clientFactory   ClientFactory
	factoryBuilder  func(Config) ClientFactory
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	flushScheduler  FlushBackoffScheduler
	jobEnqueuer     JobEnqueuer
}

type Option func(*coordinatorBuilder)

func WithLogger(logger Logger) Option {
	return func(b *coordinatorBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *coordinatorBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *coordinatorBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithSessionStore(store SessionStore) Option {
	return func(b *coordinatorBuilder) {
		b.sessionStore = store
	}
}

func WithClientFactory(factory ClientFactory) Option {
	return func(b *coordinatorBuilder) {
		b.clientFactory = factory
	}
}

// WithClientFactoryBuilder defers client factory construction until the
// configuration layers are resolved, so credentials supplied through a
// config provider reach the transport. A WithClientFactory option takes
// precedence over the builder.
func WithClientFactoryBuilder(build func(Config) ClientFactory) Option {
	return func(b *coordinatorBuilder) {
		b.factoryBuilder = build
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *coordinatorBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *coordinatorBuilder) {
		b.optionsResolver = resolver
	}
}

func WithFlushBackoffScheduler(scheduler FlushBackoffScheduler) Option {
	return func(b *coordinatorBuilder) {
		b.flushScheduler = scheduler
	}
}

func WithJobEnqueuer(enqueuer JobEnqueuer) Option {
	return func(b *coordinatorBuilder) {
		b.jobEnqueuer = enqueuer
	}
}

func defaultCoordinatorBuilder(runtime Config) coordinatorBuilder {
	loggerProvider, logger := glog.Resolve("social", nil, nil)
	return coordinatorBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
	}
}

func resolveLogger(provider LoggerProvider, logger Logger) (LoggerProvider, Logger) {
	resolvedProvider, resolved := glog.Resolve("social", provider, logger)
	resolved = glog.Ensure(resolved)
	if resolvedProvider != nil {
		if named := resolvedProvider.GetLogger("social"); named != nil {
			resolved = glog.Ensure(named)
		}
	}
	return resolvedProvider, resolved
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver merges configuration layers with a fixed precedence:
// runtime beats loaded config, loaded config beats defaults.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.SDKName) != "" {
		layer["sdk_name"] = cfg.SDKName
	}
	if includeZero || strings.TrimSpace(cfg.AppToken) != "" {
		layer["app_token"] = cfg.AppToken
	}
	if includeZero || strings.TrimSpace(cfg.BaseURL) != "" {
		layer["base_url"] = cfg.BaseURL
	}
	if includeZero || strings.TrimSpace(cfg.SessionNamespace) != "" {
		layer["session_namespace"] = cfg.SessionNamespace
	}
	if includeZero || cfg.RequestTimeoutSeconds != 0 {
		layer["request_timeout_seconds"] = cfg.RequestTimeoutSeconds
	}
	if includeZero || cfg.Analytics.FlushMaxAttempts != 0 {
		layer["analytics"] = map[string]any{
			"flush_max_attempts": cfg.Analytics.FlushMaxAttempts,
		}
	}
	return layer
}
