package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/infrastructure/config"
	"github.com/iho/walletledger/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	timeout time.Duration
}

func (o *options) client() *apiClient {
	return newAPIClient(o.baseURL, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "walletledger-cli",
		Short:         "walletledger CLI tool",
		Long:          `A command line interface for interacting with the walletledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the walletledger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		transactionCmd(opts),
		accountsCmd(opts),
		ledgerCmd(opts),
		healthCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}

func transactionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var (
		req         dto.CreateTransactionRequest
		from, to    int64
		description string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a deposit, withdrawal or transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from") {
				req.FromAccountID = &from
			}
			if cmd.Flags().Changed("to") {
				req.ToAccountID = &to
			}
			if req.IdempotencyKey == "" {
				req.IdempotencyKey = uuid.NewString()
			}
			if req.ReferenceNumber == "" {
				req.ReferenceNumber = "REF-" + ulid.Make().String()
			}
			req.Description = description

			header := http.Header{}
			header.Set("Idempotency-Key", req.IdempotencyKey)

			data, _, err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions", &req, header)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), data)
		},
	}
	createCmd.Flags().StringVar(&req.Type, "type", "", "Transaction type: DEPOSIT, WITHDRAWAL or TRANSFER (server default TRANSFER)")
	createCmd.Flags().Int64Var(&req.Amount, "amount", 0, "Amount in minor units of --currency")
	createCmd.Flags().StringVar(&req.CurrencyCode, "currency", "EGP", "ISO currency code")
	createCmd.Flags().Int64Var(&from, "from", 0, "Source account id")
	createCmd.Flags().Int64Var(&to, "to", 0, "Destination account id")
	createCmd.Flags().StringVar(&req.IdempotencyKey, "key", "", "Idempotency key (random UUID when empty)")
	createCmd.Flags().StringVar(&req.ReferenceNumber, "reference", "", "Reference number (generated when empty)")
	createCmd.Flags().StringVar(&req.ExternalReference, "external-reference", "", "External reference")
	createCmd.Flags().StringVar(&description, "description", "", "Description")
	createCmd.Flags().Int64Var(&req.InitiatedBy, "initiated-by", 0, "Id of the initiating user")
	_ = createCmd.MarkFlagRequired("amount")

	getCmd := &cobra.Command{
		Use:   "get <idempotency-key>",
		Short: "Show a transaction by idempotency key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/transactions/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), data)
		},
	}

	cmd.AddCommand(createCmd, getCmd)
	return cmd
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, _, err := opts.client().do(cmd.Context(), http.MethodGet, fmt.Sprintf("/api/v1/accounts/%d", id), nil, nil)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), data)
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <id>...",
		Short: "Close zero-balance accounts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			data, _, err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/accounts/close", dto.CloseAccountsRequest{AccountIDs: ids}, nil)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), data)
		},
	}

	cmd.AddCommand(getCmd, closeCmd)
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd, opts.client())
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

var errInconsistent = errors.New("ledger is inconsistent")

func checkConsistency(cmd *cobra.Command, client *apiClient) error {
	data, status, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, nil)
	out := cmd.OutOrStdout()

	if status == http.StatusConflict {
		fmt.Fprintln(out, "Consistency check FAILED")
		if printErr := printRaw(out, data); printErr != nil {
			return printErr
		}
		return errInconsistent
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Consistency check PASSED")
	return printRaw(out, data)
}

func healthCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Service health",
	}

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database health and table counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/transactions/health/db", nil, nil)
			if len(data) > 0 {
				if printErr := printRaw(cmd.OutOrStdout(), data); printErr != nil && err == nil {
					return printErr
				}
			}
			return err
		},
	}

	cmd.AddCommand(dbCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RunMigrations(databaseURL, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RunMigrationsDown(databaseURL, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
			return nil
		},
	}

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid account id %q", raw)
	}
	return id, nil
}
