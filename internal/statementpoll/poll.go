// Package statementpoll waits for a PDF statement job to finish. The accounts
// client only polls once per call; the loop, its interval and its bound live here.
package statementpoll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/accounts"
)

// DefaultInterval is the wait between polls when Options.Interval is unset.
const DefaultInterval = 5 * time.Second

var (
	// ErrJobFailed is returned when the job reaches FAILED.
	ErrJobFailed = errors.New("statement job failed")

	// ErrStillBuilding is returned when MaxAttempts polls all saw a non-terminal job.
	ErrStillBuilding = errors.New("statement job still building")
)

// Options bounds the polling loop.
type Options struct {
	// Interval between polls. Defaults to DefaultInterval.
	Interval time.Duration

	// MaxAttempts caps the number of polls; 0 polls until ctx is done.
	MaxAttempts int
}

// Poll polls jobID until it is terminal, MaxAttempts is reached or ctx is done.
// The last snapshot seen is returned together with any error.
func Poll(ctx context.Context, poller accounts.JobPoller, accountID, jobID string, opts Options) (*accounts.StatementJob, error) {
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"account_id": accountID,
		"job_id":     jobID,
	})

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var last *accounts.StatementJob
	for attempt := 1; ; attempt++ {
		resp, err := poller.PollStatementJob(ctx, accountID, jobID)
		if err != nil {
			return last, fmt.Errorf("Poll: attempt %d: %w", attempt, err)
		}

		job := resp.Data
		last = &job

		log.Debug().
			Int("attempt", attempt).
			Str("status", string(job.Status)).
			Msg("Polled statement job")

		if job.Status.IsTerminal() {
			if job.Status == accounts.StatementFailed {
				return last, fmt.Errorf("Poll: %w: %s", ErrJobFailed, job.ID)
			}
			log.Info().Int("attempts", attempt).Str("path", job.Path).Msg("Statement job complete")
			return last, nil
		}

		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return last, fmt.Errorf("Poll: %w after %d attempts", ErrStillBuilding, attempt)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}
	}
}
