package social_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	social "github.com/goliatone/go-social-sdk"
)

func TestNewWiresTransportFactory(t *testing.T) {
	var loginHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			loginHits++
			_ = json.NewEncoder(w).Encode(&social.User{ID: "u1", Username: "alice", SessionToken: "T"})
		case "/me/followers":
			_, _ = w.Write([]byte(`{"users":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := social.DefaultConfig()
	cfg.AppToken = "app-token"
	cfg.BaseURL = server.URL

	coordinator, err := social.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	user, err := coordinator.LoginWithUsername(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("LoginWithUsername: %v", err)
	}
	if user.SessionToken != "T" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if loginHits != 1 {
		t.Fatalf("expected one login call, got %d", loginHits)
	}

	followers, err := coordinator.RetrieveFollowers(context.Background())
	if err != nil {
		t.Fatalf("RetrieveFollowers: %v", err)
	}
	if followers == nil || len(followers) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", followers)
	}

	current, err := coordinator.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.ID != "u1" {
		t.Fatalf("unexpected current user: %+v", current)
	}
}

type loadedConfigProvider struct {
	appToken string
	baseURL  string
}

func (p loadedConfigProvider) Load(_ context.Context, defaults social.Config) (social.Config, error) {
	loaded := defaults
	loaded.AppToken = p.appToken
	loaded.BaseURL = p.baseURL
	return loaded, nil
}

func TestNewBindsTransportToLoadedConfig(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" {
			http.NotFound(w, r)
			return
		}
		authorization = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(&social.User{ID: "u1", SessionToken: "T"})
	}))
	defer server.Close()

	provider := loadedConfigProvider{
		appToken: "loaded-token",
		baseURL:  server.URL,
	}
	coordinator, err := social.New(social.DefaultConfig(), social.WithConfigProvider(provider))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := coordinator.LoginWithUsername(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("LoginWithUsername: %v", err)
	}
	if authorization == "" {
		t.Fatalf("expected the loaded base URL to be hit with credentials")
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("loaded-token:"))
	if authorization != want {
		t.Fatalf("expected the loaded app token in the auth header, got %q", authorization)
	}
}

func TestNewSurfacesTransportMisconfigurationOnUse(t *testing.T) {
	coordinator, err := social.New(social.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := coordinator.SendAnalytics(context.Background()); err == nil {
		t.Fatalf("expected the transport misconfiguration to surface")
	}
}

func TestNewCommandsRequiresCoordinator(t *testing.T) {
	if _, err := social.NewCommands(nil); err == nil {
		t.Fatalf("expected an error for a nil coordinator")
	}
}

func TestNewCommandsWiresHandlers(t *testing.T) {
	coordinator, err := social.New(social.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	commands, err := social.NewCommands(coordinator)
	if err != nil {
		t.Fatalf("NewCommands: %v", err)
	}
	if commands.CreateEvent == nil || commands.RemoveEvent == nil || commands.FlushAnalytics == nil {
		t.Fatalf("expected all command handlers to be wired: %+v", commands)
	}
}
