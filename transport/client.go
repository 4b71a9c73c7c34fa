package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-social-sdk/core"
)

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB
const defaultUserAgent = "go-social-sdk"

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	AppToken             string
	BaseURL              string
	UserAgent            string
	RequestTimeout       time.Duration
	MaxResponseBodyBytes int64
	HTTPClient           HTTPDoer
}

func (c ClientConfig) Validate() error {
	if strings.TrimSpace(c.AppToken) == "" {
		return fmt.Errorf("transport: app token is required")
	}
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		return fmt.Errorf("transport: base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("transport: invalid base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("transport: base url must be absolute")
	}
	return nil
}

// Client is a single-session REST client. The session it authenticates with
// is fixed at construction; a rotated session means a new Client built by the
// Factory.
type Client struct {
	config  ClientConfig
	session core.Session
	baseURL string
	doer    HTTPDoer
}

func NewClient(cfg ClientConfig, session core.Session) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = defaultClientTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:  cfg,
		session: session,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		doer:    doer,
	}, nil
}

// Session reports the credential this client was constructed with.
func (c *Client) Session() core.Session {
	if c == nil {
		return core.Session{}
	}
	return c.session
}

func (c *Client) authorizationHeader() string {
	raw := c.config.AppToken + ":" + c.session.Token
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

func (c *Client) do(ctx context.Context, method string, path string, payload any, out any) error {
	if c == nil || c.doer == nil {
		return transportError(
			"transport: client is not configured",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return transportWrapError(
				err,
				goerrors.CategoryBadInput,
				"transport: encode request payload",
				http.StatusBadRequest,
				map[string]any{"method": method, "path": path},
			)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"method": method, "path": path},
		)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authorizationHeader())
	userAgent := strings.TrimSpace(c.config.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpReq.Header.Set("User-Agent", userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpRes, err := c.doer.Do(httpReq)
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"method": method, "path": path},
		)
	}
	defer httpRes.Body.Close()

	maxBodyBytes := c.config.MaxResponseBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultResponseBodyLimit
	}
	resBody, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"method": method, "path": path, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(resBody)) > maxBodyBytes {
		return transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{"method": method, "path": path, "status_code": httpRes.StatusCode},
		)
	}

	if httpRes.StatusCode >= 400 {
		return c.statusError(method, path, httpRes.StatusCode, resBody)
	}

	if out == nil {
		return nil
	}
	// A null or empty body decodes to the zero value, callers normalize.
	if len(bytes.TrimSpace(resBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resBody, out); err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode response payload",
			http.StatusBadGateway,
			map[string]any{"method": method, "path": path, "status_code": httpRes.StatusCode},
		)
	}
	return nil
}

func (c *Client) statusError(method string, path string, status int, body []byte) error {
	category := categoryForStatus(status)
	message := fmt.Sprintf("transport: %s %s returned status %d", method, path, status)
	metadata := map[string]any{
		"method":      method,
		"path":        path,
		"status_code": status,
	}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		detail := envelope.Errors[0]
		if strings.TrimSpace(detail.Message) != "" {
			message = fmt.Sprintf("transport: %s", detail.Message)
		}
		metadata["api_error_code"] = detail.Code
	}
	return transportError(message, category, status, metadata)
}

func (c *Client) Login(ctx context.Context, req core.LoginRequest) (*core.User, error) {
	var payload any
	if strings.TrimSpace(req.Email) != "" {
		payload = emailLoginPayload{Email: req.Email, Password: req.Password}
	} else {
		payload = usernameLoginPayload{Username: req.Username, Password: req.Password}
	}
	user := &core.User{}
	if err := c.do(ctx, http.MethodPost, "/users/login", payload, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/me/logout", nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, user *core.User) (*core.User, error) {
	created := &core.User{}
	if err := c.do(ctx, http.MethodPost, "/users", user, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateCurrentUser(ctx context.Context, user *core.User) (*core.User, error) {
	updated := &core.User{}
	if err := c.do(ctx, http.MethodPut, "/me", user, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) RefreshCurrentUser(ctx context.Context) (*core.User, error) {
	user := &core.User{}
	if err := c.do(ctx, http.MethodGet, "/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) DeleteCurrentUser(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/me", nil, nil)
}

func (c *Client) RetrieveUser(ctx context.Context, id string) (*core.User, error) {
	user := &core.User{}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) RetrieveFollowings(ctx context.Context) (*core.UsersFeed, error) {
	feed := &core.UsersFeed{}
	if err := c.do(ctx, http.MethodGet, "/me/follows", nil, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *Client) RetrieveFollowers(ctx context.Context) (*core.UsersFeed, error) {
	feed := &core.UsersFeed{}
	if err := c.do(ctx, http.MethodGet, "/me/followers", nil, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *Client) RetrieveFriends(ctx context.Context) (*core.UsersFeed, error) {
	feed := &core.UsersFeed{}
	if err := c.do(ctx, http.MethodGet, "/me/friends", nil, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *Client) CreateConnection(ctx context.Context, connection *core.Connection) (*core.Connection, error) {
	created := &core.Connection{}
	if err := c.do(ctx, http.MethodPut, "/me/connections", connection, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) RetrievePendingConnections(ctx context.Context) (*core.ConnectionsFeed, error) {
	feed := &core.ConnectionsFeed{}
	if err := c.do(ctx, http.MethodGet, "/me/connections/pending", nil, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *Client) CreateEvent(ctx context.Context, event *core.Event) (*core.Event, error) {
	created := &core.Event{}
	if err := c.do(ctx, http.MethodPost, "/me/events", event, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) RemoveEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/me/events/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SendAnalytics(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/analytics", nil, nil)
}

var _ core.Service = (*Client)(nil)
