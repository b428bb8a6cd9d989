package monoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/rs/zerolog"
)

// WithLogger attaches log to ctx. Requests made with the returned context are
// logged at debug level; without it the SDK writes no logs.
func WithLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return logger.WithContext(ctx, log)
}

// loggingRoundTripper writes one debug line per request to the context logger.
type loggingRoundTripper struct {
	next http.RoundTripper
}

func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.FromContext(req.Context())

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Mono API request failed")
		return nil, err
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Mono API request")

	return resp, nil
}
