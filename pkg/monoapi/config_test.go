package monoapi

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "missing secret key", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: true},
		{name: "missing base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "relative base url", mutate: func(c *Config) { c.BaseURL = "/accounts" }, wantErr: true},
		{name: "ftp base url", mutate: func(c *Config) { c.BaseURL = "ftp://api.withmono.com" }, wantErr: true},
		{name: "local base url", mutate: func(c *Config) { c.BaseURL = "http://127.0.0.1:8080/" }},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: true},
		{name: "no timeout", mutate: func(c *Config) { c.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("sk_live_abc")
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvSecretKey, "sk_env")
	t.Setenv(EnvBaseURL, "https://sandbox.withmono.com")
	t.Setenv(EnvTimeout, "5s")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv failed: %v", err)
	}

	if cfg.SecretKey != "sk_env" {
		t.Errorf("SecretKey = %q", cfg.SecretKey)
	}
	if cfg.BaseURL != "https://sandbox.withmono.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if got := cfg.normalizedBaseURL(); got != "https://sandbox.withmono.com/" {
		t.Errorf("normalizedBaseURL() = %q", got)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvSecretKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv_BadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	if _, err := LoadConfigFromEnv(); err == nil {
		t.Error("Expected error for an unparsable timeout")
	}
}

func TestSecretKeyAuthHeader(t *testing.T) {
	if _, err := NewSecretKeyAuthHeader(nil); !errors.Is(err, ErrConstruction) {
		t.Errorf("Expected ErrConstruction for nil config, got %v", err)
	}
	if _, err := NewSecretKeyAuthHeader(NewConfig(" ")); !errors.Is(err, ErrConstruction) {
		t.Errorf("Expected ErrConstruction for blank key, got %v", err)
	}

	auth, err := NewSecretKeyAuthHeader(NewConfig(" sk_trim "))
	if err != nil {
		t.Fatalf("NewSecretKeyAuthHeader failed: %v", err)
	}
	h := http.Header{}
	auth.Apply(h)
	if got := h.Get(SecretKeyHeader); got != "sk_trim" {
		t.Errorf("header = %q, want sk_trim", got)
	}
}

func TestArgumentError_Is(t *testing.T) {
	err := error(NewArgumentError("start", "must be a date"))

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("Expected ArgumentError to match ErrInvalidArgument")
	}
	if errors.Is(err, ErrConstruction) {
		t.Error("ArgumentError must not match ErrConstruction")
	}
	if err.Error() != `invalid argument "start": must be a date` {
		t.Errorf("Error() = %q", err.Error())
	}
}
