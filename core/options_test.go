package core

import (
	"context"
	"testing"
)

func TestCfgxConfigProviderAppliesDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(nil)
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SDKName != "social-sdk" {
		t.Fatalf("unexpected sdk name: %q", cfg.SDKName)
	}
	if cfg.SessionNamespace != "social_sdk" {
		t.Fatalf("unexpected session namespace: %q", cfg.SessionNamespace)
	}
}

func TestCfgxConfigProviderMergesLoaderValues(t *testing.T) {
	provider := NewCfgxConfigProvider(staticRawConfigLoader{Values: map[string]any{
		"app_token": "token-from-config",
		"base_url":  "https://api.example.com",
	}})
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppToken != "token-from-config" {
		t.Fatalf("loader value not applied: %q", cfg.AppToken)
	}
	if cfg.SDKName != "social-sdk" {
		t.Fatalf("default lost during merge: %q", cfg.SDKName)
	}
}

func TestGoOptionsResolverPrecedence(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{
		AppToken: "from-config",
		BaseURL:  "https://config.example.com",
	}
	runtime := Config{
		AppToken: "from-runtime",
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.AppToken != "from-runtime" {
		t.Fatalf("runtime layer must win: %q", resolved.AppToken)
	}
	if resolved.BaseURL != "https://config.example.com" {
		t.Fatalf("config layer must beat defaults: %q", resolved.BaseURL)
	}
	if resolved.SDKName != "social-sdk" {
		t.Fatalf("defaults must fill unset fields: %q", resolved.SDKName)
	}
}

func TestGoOptionsResolverRejectsInvalidMerge(t *testing.T) {
	defaults := DefaultConfig()
	runtime := Config{RequestTimeoutSeconds: -5}

	if _, err := (GoOptionsResolver{}).Resolve(defaults, Config{}, runtime); err == nil {
		t.Fatalf("expected validation to reject a negative timeout")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.SDKName = " "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected sdk_name to be required")
	}

	cfg = DefaultConfig()
	cfg.SessionNamespace = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected session_namespace to be required")
	}
}

func TestNewCoordinatorRequiresClientFactory(t *testing.T) {
	if _, err := NewCoordinator(DefaultConfig()); err == nil {
		t.Fatalf("expected an error without a client factory")
	}
}
