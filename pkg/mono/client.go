// Package mono is the entry point of the SDK. NewClient validates the
// configuration, builds the HTTP transport and exposes the resource clients.
//
//	cfg := monoapi.NewConfig(os.Getenv("MONO_SECRET_KEY"))
//	client, err := mono.NewClient(cfg)
//	if err != nil { ... }
//	info, err := client.Accounts.GetInformation(ctx, accountID)
package mono

import (
	"fmt"
	"net/http"

	"github.com/dvloznov/mono-go/pkg/accounts"
	"github.com/dvloznov/mono-go/pkg/monoapi"
)

// Client groups the resource clients that share one transport.
type Client struct {
	Accounts *accounts.Client

	transport monoapi.Transport
}

type options struct {
	httpClient *http.Client
	transport  monoapi.Transport
}

// Option customizes NewClient.
type Option func(*options)

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t monoapi.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// NewClient creates a Client for cfg.
func NewClient(cfg *monoapi.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", monoapi.ErrConstruction)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", monoapi.ErrConstruction, err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		httpTransport, err := monoapi.NewHTTPTransport(cfg, o.httpClient)
		if err != nil {
			return nil, err
		}
		transport = httpTransport
	}

	accountsClient, err := accounts.NewClient(transport, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		Accounts:  accountsClient,
		transport: transport,
	}, nil
}

// Transport returns the transport shared by the resource clients.
func (c *Client) Transport() monoapi.Transport {
	return c.transport
}
