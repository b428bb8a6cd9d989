package monoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// errorResponse is the body the API sends with non-2xx statuses.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Ensure HTTPTransport implements Transport
var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport rooted at cfg.BaseURL. When httpClient is
// nil a client with cfg.Timeout is created. Either way the client's round
// tripper is wrapped with request logging and OpenTelemetry instrumentation.
func NewHTTPTransport(cfg *Config, httpClient *http.Client) (*HTTPTransport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrConstruction)
	}

	var client http.Client
	if httpClient != nil {
		client = *httpClient
	} else {
		client.Timeout = cfg.Timeout
	}
	client.Transport = instrument(client.Transport)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &HTTPTransport{
		httpClient: &client,
		baseURL:    cfg.normalizedBaseURL(),
		userAgent:  userAgent,
	}, nil
}

func instrument(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(&loggingRoundTripper{next: base})
}

// Get performs the request and decodes a 2xx JSON body into out.
func (t *HTTPTransport) Get(ctx context.Context, req Request, out any) (*Result, error) {
	url := t.baseURL + strings.TrimLeft(req.Path, "/")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: req.Path, Err: fmt.Errorf("create request: %w", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)
	if req.Auth != nil {
		req.Auth.Apply(httpReq.Header)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	result := &Result{StatusCode: resp.StatusCode, Header: resp.Header}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &TransportError{Method: http.MethodGet, Path: req.Path, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		return result, apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return result, &TransportError{Method: http.MethodGet, Path: req.Path, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return result, nil
}
