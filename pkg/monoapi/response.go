package monoapi

import "net/http"

// RequestIDHeader is the response header the API uses to identify a request.
const RequestIDHeader = "X-Request-Id"

// Result is what a Transport reports about a completed exchange, next to the
// payload it decoded.
type Result struct {
	StatusCode int
	Header     http.Header
}

// Response is the envelope every resource operation returns.
type Response[T any] struct {
	Data       T      `json:"data"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id,omitempty"`
}

// ToResponse wraps a decoded payload together with the exchange metadata.
func ToResponse[T any](data T, res *Result) *Response[T] {
	resp := &Response[T]{Data: data}
	if res == nil {
		return resp
	}
	resp.StatusCode = res.StatusCode
	if res.Header != nil {
		resp.RequestID = res.Header.Get(RequestIDHeader)
	}
	return resp
}
