package monoapi

import "context"

// Request describes a GET against a path relative to the API base URL.
// Path may carry a query string.
type Request struct {
	Path string
	Auth AuthHeader
}

// Transport performs an authenticated GET and decodes the JSON body into out.
// Implementations must be safe for concurrent use.
type Transport interface {
	Get(ctx context.Context, req Request, out any) (*Result, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req Request, out any) (*Result, error)

// Get calls f.
func (f TransportFunc) Get(ctx context.Context, req Request, out any) (*Result, error) {
	return f(ctx, req, out)
}
