package accounts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Money is an amount in kobo, the unit the API reports balances and
// transaction amounts in.
type Money int64

// UnmarshalJSON accepts numbers, numeric strings and null. Kobo is the
// smallest unit, so fractional amounts are rounded half away from zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse amount '%s': %w", string(raw), err)
	}
	*m = Money(d.Round(0).IntPart())
	return nil
}

// Decimal returns the amount in major currency units (naira).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// InformationResponse is returned by GET accounts/{id}.
type InformationResponse struct {
	Meta    InformationMeta `json:"meta"`
	Account Account         `json:"account"`
}

// InformationMeta describes the freshness of the account data.
type InformationMeta struct {
	DataStatus string `json:"data_status"` // AVAILABLE, PROCESSING, FAILED
	AuthMethod string `json:"auth_method"`
}

// Account is a linked bank account.
type Account struct {
	ID            string      `json:"_id"`
	Institution   Institution `json:"institution"`
	Name          string      `json:"name"`
	Currency      string      `json:"currency"`
	Type          string      `json:"type"`
	AccountNumber string      `json:"accountNumber"`
	Balance       Money       `json:"balance"`
	BVN           string      `json:"bvn"`
}

// Institution is the bank holding an account.
type Institution struct {
	Name     string `json:"name"`
	BankCode string `json:"bankCode"`
	Type     string `json:"type"`
}

// TransactionType filters and labels transactions.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a single statement or transaction-list entry.
type Transaction struct {
	ID        string          `json:"_id"`
	Type      TransactionType `json:"type"`
	Amount    Money           `json:"amount"`
	Narration string          `json:"narration"`
	Date      string          `json:"date"`
	Balance   Money           `json:"balance"`
	Category  string          `json:"category,omitempty"`
	Currency  string          `json:"currency,omitempty"`
}

// ParsedDate parses the transaction date.
func (t *Transaction) ParsedDate() (*time.Time, error) {
	if t.Date == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, t.Date)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", t.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date '%s': %w", t.Date, err)
		}
	}
	return &parsed, nil
}

// StatementResponse is the JSON rendition of an account statement.
type StatementResponse struct {
	Meta StatementMeta `json:"meta"`
	Data []Transaction `json:"data"`
}

// StatementMeta carries the number of entries in a statement.
type StatementMeta struct {
	Count int `json:"count"`
}

// StatementStatus is the build state of a PDF statement job.
type StatementStatus string

const (
	StatementBuilding StatementStatus = "BUILDING"
	StatementComplete StatementStatus = "COMPLETE"
	StatementFailed   StatementStatus = "FAILED"
)

// IsTerminal reports whether the job will no longer change.
func (s StatementStatus) IsTerminal() bool {
	return s == StatementComplete || s == StatementFailed
}

// StatementJob is an asynchronously built PDF statement. Path is only
// downloadable once Status is COMPLETE.
type StatementJob struct {
	ID     string          `json:"id"`
	Status StatementStatus `json:"status"`
	Path   string          `json:"path"`
}

// TransactionsResponse is returned by GET accounts/{id}/transactions.
type TransactionsResponse struct {
	Paging Paging        `json:"paging"`
	Data   []Transaction `json:"data"`
}

// Paging links to neighbouring pages when the query asked to paginate.
type Paging struct {
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
}

// IncomeResponse is the income estimate for an account holder.
type IncomeResponse struct {
	Type       string  `json:"type"`
	Amount     Money   `json:"amount"`
	Employer   string  `json:"employer"`
	Confidence float64 `json:"confidence"`
}

// IdentityResponse is the KYC identity of an account holder.
type IdentityResponse struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	BVN           string `json:"bvn"`
	MaritalStatus string `json:"maritalStatus"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
}
