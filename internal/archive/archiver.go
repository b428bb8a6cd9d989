// Package archive copies finished PDF statements into long-term storage.
package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/accounts"
)

// PDFContentType is the content type archived statements are stored with.
const PDFContentType = "application/pdf"

// ErrNotComplete is returned for jobs that are not COMPLETE or carry no path.
var ErrNotComplete = errors.New("statement job is not complete")

// Archiver downloads statement PDFs and writes them to a Storage.
type Archiver struct {
	storage    Storage
	httpClient *http.Client
}

// NewArchiver returns an Archiver. A nil httpClient means http.DefaultClient.
func NewArchiver(storage Storage, httpClient *http.Client) *Archiver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Archiver{storage: storage, httpClient: httpClient}
}

// ObjectName is the object a statement is archived under.
func ObjectName(accountID, jobID string) string {
	return path.Join("statements", accountID, jobID+".pdf")
}

// Archive downloads job.Path and stores it under ObjectName(accountID, job.ID).
// It returns the URI reported by the storage.
func (a *Archiver) Archive(ctx context.Context, accountID string, job *accounts.StatementJob) (string, error) {
	if job == nil || job.Status != accounts.StatementComplete || strings.TrimSpace(job.Path) == "" {
		return "", fmt.Errorf("Archive: %w", ErrNotComplete)
	}
	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(job.ID) == "" {
		return "", fmt.Errorf("Archive: account id and job id are required")
	}

	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"account_id": accountID,
		"job_id":     job.ID,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.Path, nil)
	if err != nil {
		return "", fmt.Errorf("Archive: build download request: %w", err)
	}
	req.Header.Set("Accept", PDFContentType)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Archive: download statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("Archive: download statement: unexpected status %d", resp.StatusCode)
	}

	uri, err := a.storage.Write(ctx, ObjectName(accountID, job.ID), PDFContentType, resp.Body)
	if err != nil {
		return "", fmt.Errorf("Archive: %w", err)
	}

	log.Info().Str("uri", uri).Msg("Archived statement")
	return uri, nil
}
