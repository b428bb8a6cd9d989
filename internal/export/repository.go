package export

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

const transactionsTable = "transactions"

// Repository stores exported transactions.
type Repository interface {
	// ExistingTransactionIDs returns the subset of ids already stored for accountID.
	ExistingTransactionIDs(ctx context.Context, accountID string, ids []string) (map[string]bool, error)

	// InsertTransactions inserts a batch of rows.
	InsertTransactions(ctx context.Context, rows []*TransactionRow) error
}

// BigQueryRepository implements Repository on a BigQuery dataset.
type BigQueryRepository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

var _ Repository = (*BigQueryRepository)(nil)

// NewBigQueryRepository creates a BigQuery client for projectID.
func NewBigQueryRepository(ctx context.Context, projectID, datasetID string) (*BigQueryRepository, error) {
	if projectID == "" || datasetID == "" {
		return nil, fmt.Errorf("NewBigQueryRepository: project and dataset are required")
	}
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryRepository: creating client: %w", err)
	}
	return NewBigQueryRepositoryWithClient(client, projectID, datasetID), nil
}

// NewBigQueryRepositoryWithClient wraps an existing client.
func NewBigQueryRepositoryWithClient(client *bigquery.Client, projectID, datasetID string) *BigQueryRepository {
	return &BigQueryRepository{client: client, projectID: projectID, datasetID: datasetID}
}

// Close releases the BigQuery client.
func (r *BigQueryRepository) Close() error {
	return r.client.Close()
}

// ExistingTransactionIDs queries the transactions table for ids.
func (r *BigQueryRepository) ExistingTransactionIDs(ctx context.Context, accountID string, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(ids) == 0 {
		return existing, nil
	}

	q := r.client.Query(fmt.Sprintf(`
		SELECT transaction_id
		FROM `+"`%s.%s.%s`"+`
		WHERE account_id = @account_id
		  AND transaction_id IN UNNEST(@ids)
	`, r.projectID, r.datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "account_id", Value: accountID},
		{Name: "ids", Value: ids},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExistingTransactionIDs: reading query: %w", err)
	}

	for {
		var row struct {
			TransactionID string `bigquery:"transaction_id"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ExistingTransactionIDs: iterating: %w", err)
		}
		existing[row.TransactionID] = true
	}

	return existing, nil
}

// InsertTransactions streams rows into the transactions table.
func (r *BigQueryRepository) InsertTransactions(ctx context.Context, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := r.client.DatasetInProject(r.projectID, r.datasetID).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting rows: %w", err)
	}
	return nil
}
