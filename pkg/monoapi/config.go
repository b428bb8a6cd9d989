package monoapi

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultBaseURL is the production Mono API root.
	DefaultBaseURL = "https://api.withmono.com/"

	// DefaultTimeout bounds a single request made by HTTPTransport.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies this SDK to the API.
	DefaultUserAgent = "mono-go"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvSecretKey = "MONO_SECRET_KEY"
	EnvBaseURL   = "MONO_BASE_URL"
	EnvTimeout   = "MONO_TIMEOUT"
)

// Config is the static configuration shared by the clients.
type Config struct {
	SecretKey string        `json:"secret_key"`
	BaseURL   string        `json:"base_url"`
	Timeout   time.Duration `json:"timeout"`
	UserAgent string        `json:"user_agent"`
}

// NewConfig returns a Config for secretKey with every other field defaulted.
func NewConfig(secretKey string) *Config {
	return &Config{
		SecretKey: secretKey,
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// LoadConfigFromEnv builds a Config from MONO_* environment variables.
func LoadConfigFromEnv() (*Config, error) {
	cfg := NewConfig(os.Getenv(EnvSecretKey))

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("LoadConfigFromEnv: parse %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// Validate checks the fields every client relies on.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SecretKey, validation.Required.Error("secret key is required")),
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0)).Error("must not be negative")),
	)
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// normalizedBaseURL returns BaseURL with exactly one trailing slash.
func (c *Config) normalizedBaseURL() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/"
}
