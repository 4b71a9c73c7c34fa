package core

import (
	"context"
	"strings"
	"time"
)

// Coordinator orchestrates the credential lifecycle around every
// authenticated operation: it reconciles the stored session with the client
// factory before each call, invokes the endpoint once, and on
// credential-issuing operations rotates the client and persists the new
// session before the result reaches the caller.
//
// Operations are independent single attempts. The coordinator does not
// synchronize concurrent credential mutations: callers that need strict
// login/logout/refresh ordering must serialize those calls themselves.
type Coordinator struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	sessionStore    SessionStore
	clientFactory   ClientFactory
	flushScheduler  FlushBackoffScheduler
	jobEnqueuer     JobEnqueuer
}

func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	builder := defaultCoordinatorBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := resolveLogger(builder.loggerProvider, builder.logger)

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.sessionStore == nil {
		builder.sessionStore = NewMemorySessionStore()
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.flushScheduler == nil {
		builder.flushScheduler = ExponentialBackoffScheduler{
			Initial: defaultFlushInitialBackoff,
			Max:     defaultFlushMaxBackoff,
		}
	}
	if builder.clientFactory == nil && builder.factoryBuilder == nil {
		return nil, internalError("core: client factory is required")
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, err
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}

	if builder.clientFactory == nil {
		builder.clientFactory = builder.factoryBuilder(finalConfig)
	}
	if builder.clientFactory == nil {
		return nil, internalError("core: client factory is required")
	}

	return &Coordinator{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		sessionStore:    builder.sessionStore,
		clientFactory:   builder.clientFactory,
		flushScheduler:  builder.flushScheduler,
		jobEnqueuer:     builder.jobEnqueuer,
	}, nil
}

func (c *Coordinator) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Coordinator) SessionStore() SessionStore {
	if c == nil {
		return nil
	}
	return c.sessionStore
}

// resolveClient re-reads the session store and regenerates the request
// client when the stored session differs from the factory's current binding.
// The coordinator never caches a client across operations.
func (c *Coordinator) resolveClient(ctx context.Context) (Service, error) {
	stored, err := c.sessionStore.Get(ctx)
	if err != nil {
		return nil, err
	}
	installationID, err := c.sessionStore.InstallationID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(stored.InstallationID) == "" {
		stored.InstallationID = installationID
	}
	if !stored.Equal(c.clientFactory.CurrentSession()) {
		return c.clientFactory.OnSessionChanged(stored), nil
	}
	return c.clientFactory.CurrentClient(), nil
}

// adoptSession rotates the client factory to the credential embedded in a
// freshly returned user and persists both the session and the current-user
// record. Runs only after a successful transport response.
func (c *Coordinator) adoptSession(ctx context.Context, user *User) error {
	if user == nil || strings.TrimSpace(user.SessionToken) == "" {
		return nil
	}
	installationID, err := c.sessionStore.InstallationID(ctx)
	if err != nil {
		return err
	}
	session := Session{Token: user.SessionToken, InstallationID: installationID}
	c.clientFactory.OnSessionChanged(session)
	if err := c.sessionStore.Put(ctx, session); err != nil {
		return err
	}
	return c.sessionStore.PutCurrentUser(ctx, user)
}

func (c *Coordinator) clearSession(ctx context.Context) error {
	return c.sessionStore.Clear(ctx)
}

func (c *Coordinator) LoginWithUsername(ctx context.Context, username string, password string) (user *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "login_username", err, map[string]any{"user_name": username})
	}()

	if strings.TrimSpace(username) == "" {
		return nil, validationError("user_name", "username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationError("password", "password is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	user, err = client.Login(ctx, LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if err = c.adoptSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Coordinator) LoginWithEmail(ctx context.Context, email string, password string) (user *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "login_email", err, map[string]any{"email": email})
	}()

	if strings.TrimSpace(email) == "" {
		return nil, validationError("email", "email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationError("password", "password is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	user, err = client.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err = c.adoptSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout invokes the transport logout endpoint and clears the persisted
// session only on success. A failed logout leaves session state untouched.
func (c *Coordinator) Logout(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "logout", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return err
	}
	if err = client.Logout(ctx); err != nil {
		return err
	}
	return c.clearSession(ctx)
}

// CreateUser is a pre-authentication pass-through; it never touches the
// stored credential.
func (c *Coordinator) CreateUser(ctx context.Context, user *User) (created *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "create_user", err, nil)
	}()

	if user == nil {
		return nil, validationError("user", "user is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.CreateUser(ctx, user)
}

func (c *Coordinator) UpdateCurrentUser(ctx context.Context, user *User) (updated *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "update_current_user", err, nil)
	}()

	if user == nil {
		return nil, validationError("user", "user is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	updated, err = client.UpdateCurrentUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if err = c.adoptSession(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Coordinator) RefreshCurrentUser(ctx context.Context) (user *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "refresh_current_user", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	user, err = client.RefreshCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err = c.adoptSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteCurrentUser removes the account and clears session state exactly as
// logout does.
func (c *Coordinator) DeleteCurrentUser(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "delete_current_user", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return err
	}
	if err = client.DeleteCurrentUser(ctx); err != nil {
		return err
	}
	return c.clearSession(ctx)
}

func (c *Coordinator) RetrieveUser(ctx context.Context, id string) (user *User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "retrieve_user", err, map[string]any{"user_id": id})
	}()

	if strings.TrimSpace(id) == "" {
		return nil, validationError("id", "user id is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.RetrieveUser(ctx, id)
}

func (c *Coordinator) RetrieveFollowings(ctx context.Context) (users []*User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "retrieve_followings", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := client.RetrieveFollowings(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractUsers(feed), nil
}

func (c *Coordinator) RetrieveFollowers(ctx context.Context) (users []*User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "retrieve_followers", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := client.RetrieveFollowers(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractUsers(feed), nil
}

func (c *Coordinator) RetrieveFriends(ctx context.Context) (users []*User, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "retrieve_friends", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := client.RetrieveFriends(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractUsers(feed), nil
}

func (c *Coordinator) CreateConnection(ctx context.Context, connection *Connection) (created *Connection, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "create_connection", err, nil)
	}()

	if connection == nil {
		return nil, validationError("connection", "connection is required")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.CreateConnection(ctx, connection)
}

// RetrievePendingConnections fetches the combined feed and normalizes it.
// The returned collection always carries non-nil incoming and outgoing
// sequences, even when the raw feed arrives as wire null.
func (c *Coordinator) RetrievePendingConnections(ctx context.Context) (list ConnectionList, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "retrieve_pending_connections", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return ConnectionList{}, err
	}
	feed, err := client.RetrievePendingConnections(ctx)
	if err != nil {
		return ConnectionList{}, err
	}
	return NormalizeConnectionsFeed(feed), nil
}

func (c *Coordinator) CreateEvent(ctx context.Context, event *Event) (created *Event, err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "create_event", err, nil)
	}()

	if event == nil || strings.TrimSpace(event.Type) == "" {
		return nil, validationError("type", "event type is required")
	}
	currentUser, err := c.sessionStore.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if currentUser == nil {
		return nil, notAuthenticatedError("core: create event requires a logged in user")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.CreateEvent(ctx, event)
}

func (c *Coordinator) RemoveEvent(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "remove_event", err, map[string]any{"event_id": id})
	}()

	if strings.TrimSpace(id) == "" {
		return validationError("id", "event id is required")
	}
	currentUser, err := c.sessionStore.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if currentUser == nil {
		return notAuthenticatedError("core: remove event requires a logged in user")
	}
	client, err := c.resolveClient(ctx)
	if err != nil {
		return err
	}
	return client.RemoveEvent(ctx, id)
}

// SendAnalytics is a fire-and-forget flush: a single attempt with no
// batching or retry at this layer.
func (c *Coordinator) SendAnalytics(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() {
		c.observeOperation(ctx, startedAt, "send_analytics", err, nil)
	}()

	client, err := c.resolveClient(ctx)
	if err != nil {
		return err
	}
	return client.SendAnalytics(ctx)
}

// CurrentUser reads the persisted current-user record. A nil user with a nil
// error means nobody is logged in.
func (c *Coordinator) CurrentUser(ctx context.Context) (*User, error) {
	return c.sessionStore.CurrentUser(ctx)
}
