// Package accounts is the Mono accounts resource client: account information,
// statements (JSON and asynchronously built PDF), transactions, income and
// identity.
package accounts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/monoapi"
)

// Client translates validated calls into transport requests. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	transport monoapi.Transport
	auth      monoapi.AuthHeader
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)

// NewClient creates an accounts client. Both transport and cfg are required;
// the auth header provider is built once from cfg.
func NewClient(transport monoapi.Transport, cfg *monoapi.Config) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is required", monoapi.ErrConstruction)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", monoapi.ErrConstruction)
	}

	auth, err := monoapi.NewSecretKeyAuthHeader(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		transport: transport,
		auth:      auth,
	}, nil
}

// GetInformation fetches the account details.
func (c *Client) GetInformation(ctx context.Context, accountID string) (*monoapi.Response[InformationResponse], error) {
	if err := requireID("accountID", accountID); err != nil {
		return nil, reject(ctx, "GetInformation", err)
	}
	return get[InformationResponse](ctx, c, accountPath(accountID))
}

// GetStatementJSON fetches the statement for the trailing period as JSON.
func (c *Client) GetStatementJSON(ctx context.Context, accountID string, opts StatementOptions) (*monoapi.Response[StatementResponse], error) {
	path, err := statementPath(accountID, OutputJSON, opts)
	if err != nil {
		return nil, reject(ctx, "GetStatementJSON", err)
	}
	return get[StatementResponse](ctx, c, path)
}

// GetStatementPDF requests a PDF statement. The returned job starts out
// BUILDING; observe it with PollStatementJob.
func (c *Client) GetStatementPDF(ctx context.Context, accountID string, opts StatementOptions) (*monoapi.Response[StatementJob], error) {
	path, err := statementPath(accountID, OutputPDF, opts)
	if err != nil {
		return nil, reject(ctx, "GetStatementPDF", err)
	}
	return get[StatementJob](ctx, c, path)
}

// PollStatementJob returns the current snapshot of a PDF statement job. It
// polls once; sleeping and bounding the number of polls is up to the caller.
func (c *Client) PollStatementJob(ctx context.Context, accountID, jobID string) (*monoapi.Response[StatementJob], error) {
	if err := requireID("accountID", accountID); err != nil {
		return nil, reject(ctx, "PollStatementJob", err)
	}
	if err := requireID("jobID", jobID); err != nil {
		return nil, reject(ctx, "PollStatementJob", err)
	}
	return get[StatementJob](ctx, c, accountPath(accountID)+"/statement/jobs/"+url.PathEscape(jobID))
}

// GetTransactions lists transactions matching query.
func (c *Client) GetTransactions(ctx context.Context, accountID string, query TransactionQuery) (*monoapi.Response[TransactionsResponse], error) {
	if err := requireID("accountID", accountID); err != nil {
		return nil, reject(ctx, "GetTransactions", err)
	}
	if err := query.Validate(); err != nil {
		return nil, reject(ctx, "GetTransactions", err)
	}
	return get[TransactionsResponse](ctx, c, query.PathWithQuery(accountPath(accountID)+"/transactions"))
}

// GetIncome fetches the income estimate of the account holder.
func (c *Client) GetIncome(ctx context.Context, accountID string) (*monoapi.Response[IncomeResponse], error) {
	if err := requireID("accountID", accountID); err != nil {
		return nil, reject(ctx, "GetIncome", err)
	}
	return get[IncomeResponse](ctx, c, accountPath(accountID)+"/income")
}

// GetUserIdentity fetches the identity of the account holder.
func (c *Client) GetUserIdentity(ctx context.Context, accountID string) (*monoapi.Response[IdentityResponse], error) {
	if err := requireID("accountID", accountID); err != nil {
		return nil, reject(ctx, "GetUserIdentity", err)
	}
	return get[IdentityResponse](ctx, c, accountPath(accountID)+"/identity")
}

func get[T any](ctx context.Context, c *Client, path string) (*monoapi.Response[T], error) {
	var payload T
	res, err := c.transport.Get(ctx, monoapi.Request{Path: path, Auth: c.auth}, &payload)
	if err != nil {
		return nil, err
	}
	return monoapi.ToResponse(payload, res), nil
}

func accountPath(accountID string) string {
	return "accounts/" + url.PathEscape(accountID)
}

func statementPath(accountID string, output OutputType, opts StatementOptions) (string, error) {
	if err := requireID("accountID", accountID); err != nil {
		return "", err
	}
	req, err := newStatementRequest(output, opts)
	if err != nil {
		return "", err
	}
	return accountPath(accountID) + "/" + req.PathWithQuery("statement"), nil
}

func reject(ctx context.Context, op string, err error) error {
	log := logger.FromContext(ctx)
	log.Debug().
		Err(err).
		Str("operation", op).
		Msg("Rejected invalid request")
	return err
}
