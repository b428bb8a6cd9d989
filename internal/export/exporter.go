// Package export copies transactions fetched from the API into BigQuery.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/accounts"
	"github.com/google/uuid"
)

// Result summarizes one export run.
type Result struct {
	RunID    string `json:"run_id"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// Exporter writes transactions to a Repository, skipping ones already stored.
type Exporter struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// NewExporter returns an Exporter backed by repo.
func NewExporter(repo Repository) *Exporter {
	return &Exporter{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Export inserts the transactions of accountID that are not yet in the repository.
// Duplicate ids within txs are inserted once.
func (e *Exporter) Export(ctx context.Context, accountID string, txs []accounts.Transaction) (*Result, error) {
	result := &Result{RunID: e.newID()}
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"account_id":    accountID,
		"export_run_id": result.RunID,
	})

	if len(txs) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}

	existing, err := e.repo.ExistingTransactionIDs(ctx, accountID, ids)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}

	now := e.now()
	seen := make(map[string]bool, len(txs))
	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		if existing[tx.ID] || seen[tx.ID] {
			result.Skipped++
			continue
		}
		row, err := ToRow(accountID, result.RunID, tx, now)
		if err != nil {
			return nil, fmt.Errorf("Export: %w", err)
		}
		seen[tx.ID] = true
		rows = append(rows, row)
	}

	if err := e.repo.InsertTransactions(ctx, rows); err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	result.Inserted = len(rows)

	log.Info().
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Msg("Exported transactions")

	return result, nil
}
