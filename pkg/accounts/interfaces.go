package accounts

import (
	"context"

	"github.com/dvloznov/mono-go/pkg/monoapi"
)

// Service is the accounts API surface.
// It lets callers swap the client for a fake in tests.
type Service interface {
	GetInformation(ctx context.Context, accountID string) (*monoapi.Response[InformationResponse], error)
	GetStatementJSON(ctx context.Context, accountID string, opts StatementOptions) (*monoapi.Response[StatementResponse], error)
	GetStatementPDF(ctx context.Context, accountID string, opts StatementOptions) (*monoapi.Response[StatementJob], error)
	PollStatementJob(ctx context.Context, accountID, jobID string) (*monoapi.Response[StatementJob], error)
	GetTransactions(ctx context.Context, accountID string, query TransactionQuery) (*monoapi.Response[TransactionsResponse], error)
	GetIncome(ctx context.Context, accountID string) (*monoapi.Response[IncomeResponse], error)
	GetUserIdentity(ctx context.Context, accountID string) (*monoapi.Response[IdentityResponse], error)
}

// JobPoller is the part of Service a statement polling loop needs.
type JobPoller interface {
	PollStatementJob(ctx context.Context, accountID, jobID string) (*monoapi.Response[StatementJob], error)
}
