package export

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/dvloznov/mono-go/pkg/accounts"
)

// TransactionRow is one exported transaction.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	AccountID     string `bigquery:"account_id"`     // REQUIRED
	ExportRunID   string `bigquery:"export_run_id"`  // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	Amount       *big.Rat            `bigquery:"amount"`        // REQUIRED NUMERIC, major units
	BalanceAfter *big.Rat            `bigquery:"balance_after"` // NULLABLE NUMERIC
	Currency     bigquery.NullString `bigquery:"currency"`
	Direction    string              `bigquery:"direction"` // credit | debit

	Narration string              `bigquery:"narration"`
	Category  bigquery.NullString `bigquery:"category"`

	CreatedTS time.Time `bigquery:"created_ts"`
}

// ToRow maps an API transaction to a row of the export table.
func ToRow(accountID, runID string, tx accounts.Transaction, now time.Time) (*TransactionRow, error) {
	if strings.TrimSpace(tx.ID) == "" {
		return nil, fmt.Errorf("ToRow: transaction without id")
	}

	date, err := tx.ParsedDate()
	if err != nil {
		return nil, fmt.Errorf("ToRow: %s: %w", tx.ID, err)
	}
	if date == nil {
		return nil, fmt.Errorf("ToRow: %s: missing date", tx.ID)
	}

	return &TransactionRow{
		TransactionID:   tx.ID,
		AccountID:       accountID,
		ExportRunID:     runID,
		TransactionDate: civil.DateOf(*date),
		Amount:          tx.Amount.Decimal().Rat(),
		BalanceAfter:    tx.Balance.Decimal().Rat(),
		Currency:        nullString(tx.Currency),
		Direction:       string(tx.Type),
		Narration:       tx.Narration,
		Category:        nullString(tx.Category),
		CreatedTS:       now.UTC(),
	}, nil
}

func nullString(s string) bigquery.NullString {
	s = strings.TrimSpace(s)
	return bigquery.NullString{StringVal: s, Valid: s != ""}
}
