package statementpoll

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/accounts"
	"github.com/dvloznov/mono-go/pkg/monoapi"
)

// mockPoller answers with the given statuses in order, repeating the last one.
type mockPoller struct {
	statuses []accounts.StatementStatus
	err      error
	calls    int
}

func (m *mockPoller) PollStatementJob(ctx context.Context, accountID, jobID string) (*monoapi.Response[accounts.StatementJob], error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	i := m.calls - 1
	if i >= len(m.statuses) {
		i = len(m.statuses) - 1
	}
	return &monoapi.Response[accounts.StatementJob]{
		StatusCode: http.StatusOK,
		Data: accounts.StatementJob{
			ID:     jobID,
			Status: m.statuses[i],
			Path:   "https://example.com/" + jobID + ".pdf",
		},
	}, nil
}

func TestPoll(t *testing.T) {
	tests := []struct {
		name        string
		statuses    []accounts.StatementStatus
		maxAttempts int
		wantErr     error
		wantStatus  accounts.StatementStatus
		wantCalls   int
	}{
		{
			name:       "complete after building",
			statuses:   []accounts.StatementStatus{accounts.StatementBuilding, accounts.StatementBuilding, accounts.StatementComplete},
			wantStatus: accounts.StatementComplete,
			wantCalls:  3,
		},
		{
			name:       "already complete",
			statuses:   []accounts.StatementStatus{accounts.StatementComplete},
			wantStatus: accounts.StatementComplete,
			wantCalls:  1,
		},
		{
			name:       "failed",
			statuses:   []accounts.StatementStatus{accounts.StatementBuilding, accounts.StatementFailed},
			wantErr:    ErrJobFailed,
			wantStatus: accounts.StatementFailed,
			wantCalls:  2,
		},
		{
			name:        "max attempts",
			statuses:    []accounts.StatementStatus{accounts.StatementBuilding},
			maxAttempts: 4,
			wantErr:     ErrStillBuilding,
			wantStatus:  accounts.StatementBuilding,
			wantCalls:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poller := &mockPoller{statuses: tt.statuses}

			job, err := Poll(context.Background(), poller, "acc_1", "job_1", Options{
				Interval:    time.Millisecond,
				MaxAttempts: tt.maxAttempts,
			})

			if tt.wantErr == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if job == nil || job.Status != tt.wantStatus {
				t.Errorf("Expected last status %s, got %+v", tt.wantStatus, job)
			}
			if poller.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", poller.calls, tt.wantCalls)
			}
		})
	}
}

func TestPoll_PollError(t *testing.T) {
	sentinel := errors.New("connection reset")
	poller := &mockPoller{err: sentinel}

	job, err := Poll(context.Background(), poller, "acc_1", "job_1", Options{Interval: time.Millisecond})

	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected poll error to be wrapped, got %v", err)
	}
	if job != nil {
		t.Errorf("Expected no snapshot, got %+v", job)
	}
	if poller.calls != 1 {
		t.Errorf("Expected no retry after an error, got %d calls", poller.calls)
	}
}

func TestPoll_ContextCancelled(t *testing.T) {
	poller := &mockPoller{statuses: []accounts.StatementStatus{accounts.StatementBuilding}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	job, err := Poll(ctx, poller, "acc_1", "job_1", Options{Interval: time.Hour})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
	if job == nil || job.Status != accounts.StatementBuilding {
		t.Errorf("Expected the BUILDING snapshot, got %+v", job)
	}
}

func TestPoll_LogsJobFields(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))
	poller := &mockPoller{statuses: []accounts.StatementStatus{accounts.StatementComplete}}

	if _, err := Poll(ctx, poller, "acc_1", "job_1", Options{Interval: time.Millisecond}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{`"account_id":"acc_1"`, `"job_id":"job_1"`, "Statement job complete"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %s, got: %s", want, output)
		}
	}
}
