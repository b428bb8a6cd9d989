package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dvloznov/mono-go/internal/logger"
	"github.com/dvloznov/mono-go/pkg/mono"
	"github.com/dvloznov/mono-go/pkg/monoapi"
)

const envLogLevel = "MONO_LOG_LEVEL"

var errUsage = errors.New("usage")

func main() {
	log := logger.New(os.Getenv(envLogLevel))

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if helpRequested(err) {
			return
		}
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Command failed")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "info":
		return runInfo(ctx, rest, stdout)
	case "statement":
		return runStatement(ctx, rest, stdout)
	case "statement-pdf":
		return runStatementPDF(ctx, rest, stdout)
	case "poll":
		return runPoll(ctx, rest, stdout)
	case "transactions":
		return runTransactions(ctx, rest, stdout)
	case "income":
		return runIncome(ctx, rest, stdout)
	case "identity":
		return runIdentity(ctx, rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// helpRequested reports whether a command was run with -h; the flag set has
// already printed its usage by then.
func helpRequested(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Mono accounts CLI")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  mono <command> -account ID [options]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  info            Account details and balance")
	fmt.Fprintln(w, "  statement       Statement as JSON")
	fmt.Fprintln(w, "  statement-pdf   Request a PDF statement, optionally wait and archive it")
	fmt.Fprintln(w, "  poll            Poll a PDF statement job once")
	fmt.Fprintln(w, "  transactions    List transactions, optionally export them to BigQuery")
	fmt.Fprintln(w, "  income          Income estimate")
	fmt.Fprintln(w, "  identity        Account holder identity")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w, "\nConfiguration is read from MONO_SECRET_KEY, MONO_BASE_URL and MONO_TIMEOUT;")
	fmt.Fprintln(w, "the -secret-key, -base-url and -timeout flags override it.")
	fmt.Fprintln(w, "\nRun 'mono <command> -h' for more information on a command.")
}

// clientFlags are accepted by every command.
type clientFlags struct {
	accountID string
	secretKey string
	baseURL   string
	timeout   time.Duration
}

func newFlagSet(name string) (*flag.FlagSet, *clientFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &clientFlags{}
	fs.StringVar(&cf.accountID, "account", "", "Mono account ID")
	fs.StringVar(&cf.secretKey, "secret-key", "", "secret key (overrides "+monoapi.EnvSecretKey+")")
	fs.StringVar(&cf.baseURL, "base-url", "", "API base URL (overrides "+monoapi.EnvBaseURL+")")
	fs.DurationVar(&cf.timeout, "timeout", 0, "request timeout (overrides "+monoapi.EnvTimeout+")")
	return fs, cf
}

func (cf *clientFlags) config() (*monoapi.Config, error) {
	cfg, err := monoapi.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cf.secretKey != "" {
		cfg.SecretKey = cf.secretKey
	}
	if cf.baseURL != "" {
		cfg.BaseURL = cf.baseURL
	}
	if cf.timeout > 0 {
		cfg.Timeout = cf.timeout
	}
	return cfg, nil
}

func (cf *clientFlags) client() (*mono.Client, error) {
	if cf.accountID == "" {
		return nil, fmt.Errorf("%w: -account is required", errUsage)
	}
	cfg, err := cf.config()
	if err != nil {
		return nil, err
	}
	return mono.NewClient(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
