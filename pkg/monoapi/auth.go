package monoapi

import (
	"fmt"
	"net/http"
	"strings"
)

// SecretKeyHeader carries the account's secret key on every request.
const SecretKeyHeader = "mono-sec-key"

// AuthHeader computes the authorization header for a request.
type AuthHeader interface {
	Apply(h http.Header)
}

// SecretKeyAuthHeader authenticates with the static secret key from Config.
type SecretKeyAuthHeader struct {
	secretKey string
}

// Ensure SecretKeyAuthHeader implements AuthHeader
var _ AuthHeader = (*SecretKeyAuthHeader)(nil)

// NewSecretKeyAuthHeader builds the header provider from cfg.
func NewSecretKeyAuthHeader(cfg *Config) (*SecretKeyAuthHeader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrConstruction)
	}
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, fmt.Errorf("%w: secret key is required", ErrConstruction)
	}
	return &SecretKeyAuthHeader{secretKey: key}, nil
}

// Apply sets the secret key header on h.
func (a *SecretKeyAuthHeader) Apply(h http.Header) {
	h.Set(SecretKeyHeader, a.secretKey)
}
