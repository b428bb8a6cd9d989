package accounts

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dvloznov/mono-go/pkg/monoapi"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DateLayout is the only date format the transactions endpoint accepts (dd-MM-yyyy).
	DateLayout = "02-01-2006"

	// DefaultPeriod is the statement window used when StatementOptions.Period is zero.
	DefaultPeriod = 1

	// DefaultTransactionType is sent when TransactionQuery.Type is empty.
	DefaultTransactionType = TransactionCredit

	dateFormatHint = "must be a date in dd-MM-yyyy format, e.g. 05-01-2020"
)

// OutputType selects the statement rendition.
type OutputType string

const (
	OutputJSON OutputType = "json"
	OutputPDF  OutputType = "pdf"
)

// StatementOptions are the per-call options of the statement operations.
// A zero Period means DefaultPeriod.
type StatementOptions struct {
	Period int
}

// StatementRequest is the query of a statement call.
type StatementRequest struct {
	Output OutputType
	Period int
}

func newStatementRequest(output OutputType, opts StatementOptions) (StatementRequest, error) {
	period := opts.Period
	if period == 0 {
		period = DefaultPeriod
	}
	if period < 0 {
		return StatementRequest{}, monoapi.NewArgumentError("period", "must be a positive number of months")
	}
	return StatementRequest{Output: output, Period: period}, nil
}

// PeriodToken renders the period the way the API expects it. The token is
// never pluralization-corrected: a period of 1 is "last1months".
func (r StatementRequest) PeriodToken() string {
	return "last" + strconv.Itoa(r.Period) + "months"
}

// Query returns the query parameters of the request.
func (r StatementRequest) Query() url.Values {
	q := url.Values{}
	q.Set("output", string(r.Output))
	q.Set("period", r.PeriodToken())
	return q
}

// PathWithQuery appends the encoded query to resource.
func (r StatementRequest) PathWithQuery(resource string) string {
	return resource + "?" + r.Query().Encode()
}

// TransactionQuery filters GET accounts/{id}/transactions. Blank strings, a zero
// Limit and a false Paginate are left out of the query; an empty Type means
// DefaultTransactionType.
type TransactionQuery struct {
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Narration string          `json:"narration"`
	Limit     int             `json:"limit"`
	Type      TransactionType `json:"type"`
	Paginate  bool            `json:"paginate"`
}

func (q TransactionQuery) withDefaults() TransactionQuery {
	if strings.TrimSpace(q.Start) == "" {
		q.Start = ""
	}
	if strings.TrimSpace(q.End) == "" {
		q.End = ""
	}
	if strings.TrimSpace(q.Narration) == "" {
		q.Narration = ""
	}
	if strings.TrimSpace(string(q.Type)) == "" {
		q.Type = DefaultTransactionType
	}
	return q
}

// Validate checks the filters locally. The returned error is an
// *monoapi.ArgumentError naming the first offending field.
func (q TransactionQuery) Validate() error {
	q = q.withDefaults()
	err := validation.ValidateStruct(&q,
		validation.Field(&q.Start, validation.Date(DateLayout).Error(dateFormatHint)),
		validation.Field(&q.End, validation.Date(DateLayout).Error(dateFormatHint)),
		validation.Field(&q.Type, validation.In(TransactionCredit, TransactionDebit).Error("must be credit or debit")),
		validation.Field(&q.Limit, validation.Min(0).Error("must not be negative")),
	)
	return argumentError(err)
}

// Query returns the non-default filters as query parameters.
func (q TransactionQuery) Query() url.Values {
	q = q.withDefaults()
	v := url.Values{}
	if q.Start != "" {
		v.Set("start", q.Start)
	}
	if q.End != "" {
		v.Set("end", q.End)
	}
	if q.Narration != "" {
		v.Set("narration", q.Narration)
	}
	v.Set("type", string(q.Type))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Paginate {
		v.Set("paginate", "true")
	}
	return v
}

// PathWithQuery appends the encoded filters to resource. Keys are sorted.
func (q TransactionQuery) PathWithQuery(resource string) string {
	encoded := q.Query().Encode()
	if encoded == "" {
		return resource
	}
	return resource + "?" + encoded
}

// argumentError converts ozzo-validation field errors to an ArgumentError for
// the alphabetically first failing field.
func argumentError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]string, 0, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)

	return monoapi.NewArgumentError(fields[0], errs[fields[0]].Error())
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return monoapi.NewArgumentError(field, "must not be blank")
	}
	return nil
}
