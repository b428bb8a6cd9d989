package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dvloznov/mono-go/internal/archive"
	"github.com/dvloznov/mono-go/internal/export"
	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/internal/statementpoll"
	"github.com/dvloznov/mono-go/pkg/accounts"
)

func runInfo(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("info")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.GetInformation(ctx, cf.accountID)
	if err != nil {
		return err
	}
	return writeJSON(stdout, resp)
}

func runStatement(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("statement")
	period := fs.Int("period", accounts.DefaultPeriod, "number of months")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.GetStatementJSON(ctx, cf.accountID, accounts.StatementOptions{Period: *period})
	if err != nil {
		return err
	}
	return writeJSON(stdout, resp)
}

func runStatementPDF(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("statement-pdf")
	period := fs.Int("period", accounts.DefaultPeriod, "number of months")
	wait := fs.Bool("wait", false, "poll the job until it leaves BUILDING")
	interval := fs.Duration("interval", statementpoll.DefaultInterval, "wait between polls")
	maxAttempts := fs.Int("max-attempts", 60, "poll at most this many times (0 = until timeout)")
	bucket := fs.String("gcs-bucket", "", "archive the finished PDF to this GCS bucket (implies -wait)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	resp, err := client.Accounts.GetStatementPDF(ctx, cf.accountID, accounts.StatementOptions{Period: *period})
	if err != nil {
		return err
	}
	job := resp.Data
	log.Info().Str("job_id", job.ID).Str("status", string(job.Status)).Msg("Statement job submitted")

	if !*wait && *bucket == "" {
		return writeJSON(stdout, resp)
	}

	final, err := statementpoll.Poll(ctx, client.Accounts, cf.accountID, job.ID, statementpoll.Options{
		Interval:    *interval,
		MaxAttempts: *maxAttempts,
	})
	if err != nil {
		return err
	}

	out := struct {
		Job        *accounts.StatementJob `json:"job"`
		ArchiveURI string                 `json:"archive_uri,omitempty"`
	}{Job: final}

	if *bucket != "" {
		storage, err := archive.NewGCSStorage(ctx, *bucket)
		if err != nil {
			return err
		}
		defer storage.Close()

		uri, err := archive.NewArchiver(storage, nil).Archive(ctx, cf.accountID, final)
		if err != nil {
			return err
		}
		out.ArchiveURI = uri
	}

	return writeJSON(stdout, out)
}

func runPoll(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("poll")
	jobID := fs.String("job", "", "statement job ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.PollStatementJob(ctx, cf.accountID, *jobID)
	if err != nil {
		return err
	}
	return writeJSON(stdout, resp)
}

func runTransactions(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("transactions")
	start := fs.String("start", "", "start date (dd-mm-yyyy)")
	end := fs.String("end", "", "end date (dd-mm-yyyy)")
	narration := fs.String("narration", "", "narration filter")
	txType := fs.String("type", string(accounts.DefaultTransactionType), "credit or debit")
	limit := fs.Int("limit", 0, "maximum number of transactions")
	paginate := fs.Bool("paginate", false, "request paginated results")
	bqProject := fs.String("bq-project", "", "export to BigQuery in this project")
	bqDataset := fs.String("bq-dataset", "", "BigQuery dataset holding the transactions table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*bqProject == "") != (*bqDataset == "") {
		return fmt.Errorf("%w: -bq-project and -bq-dataset must be set together", errUsage)
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.GetTransactions(ctx, cf.accountID, accounts.TransactionQuery{
		Start:     *start,
		End:       *end,
		Narration: *narration,
		Type:      accounts.TransactionType(*txType),
		Limit:     *limit,
		Paginate:  *paginate,
	})
	if err != nil {
		return err
	}

	if *bqProject == "" {
		return writeJSON(stdout, resp)
	}

	repo, err := export.NewBigQueryRepository(ctx, *bqProject, *bqDataset)
	if err != nil {
		return err
	}
	defer repo.Close()

	exportCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	result, err := export.NewExporter(repo).Export(exportCtx, cf.accountID, resp.Data.Data)
	if err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

func runIncome(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("income")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.GetIncome(ctx, cf.accountID)
	if err != nil {
		return err
	}
	return writeJSON(stdout, resp)
}

func runIdentity(ctx context.Context, args []string, stdout io.Writer) error {
	fs, cf := newFlagSet("identity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := cf.client()
	if err != nil {
		return err
	}

	resp, err := client.Accounts.GetUserIdentity(ctx, cf.accountID)
	if err != nil {
		return err
	}
	return writeJSON(stdout, resp)
}
