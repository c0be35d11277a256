package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/streamvault/pkg/client"
)

const dateLayout = "2006-01-02"

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage streaming accounts",
	}

	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountUpdateCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	cmd.AddCommand(newAccountStatsCmd())
	cmd.AddCommand(newAccountExportCmd())
	cmd.AddCommand(newAccountImportCmd())

	return cmd
}

func parseAccountID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid account ID %q", arg)
	}
	return id, nil
}

func newAccountListCmd() *cobra.Command {
	var opts client.AccountListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := apiClient.Accounts().List(context.Background(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(accounts)
			}

			t := NewTable("ID", "CLIENT", "PLATFORM", "TYPE", "EXPIRES", "REMAINING", "LIFECYCLE", "STATUS")
			for _, a := range accounts {
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					truncate(a.ClientName, 24),
					a.Platform,
					a.AccountType,
					a.ExpirationDate,
					a.Remaining,
					formatLifecycle(a.Lifecycle),
					a.Status,
				)
			}
			t.Render()
			fmt.Fprintf(stdout, "\n%d accounts\n", len(accounts))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by client name substring")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "filter by platform")
	cmd.Flags().StringVar(&opts.AccountType, "type", "", "filter by account type")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by stored status")
	cmd.Flags().StringVar(&opts.Lifecycle, "lifecycle", "", "filter by lifecycle (active, expiring, expired)")

	return cmd
}

func newAccountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}

			a, err := apiClient.Accounts().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			printAccount(a)
			return nil
		},
	}
}

func printAccount(a *client.Account) {
	fmt.Fprintf(stdout, "ID:          %d\n", a.ID)
	fmt.Fprintf(stdout, "Client:      %s\n", a.ClientName)
	fmt.Fprintf(stdout, "Platform:    %s\n", a.Platform)
	fmt.Fprintf(stdout, "Type:        %s\n", a.AccountType)
	fmt.Fprintf(stdout, "Delivered:   %s\n", a.DeliveryDate)
	fmt.Fprintf(stdout, "Expires:     %s (%s)\n", a.ExpirationDate, a.Remaining)
	fmt.Fprintf(stdout, "Lifecycle:   %s\n", formatLifecycle(a.Lifecycle))
	fmt.Fprintf(stdout, "Status:      %s\n", a.Status)
	if a.Price != nil {
		fmt.Fprintf(stdout, "Price:       %s\n", *a.Price)
	}
	if notes := deref(a.Notes); notes != "" {
		fmt.Fprintf(stdout, "Notes:       %s\n", notes)
	}
	if len(a.Credentials) > 0 {
		fmt.Fprintln(stdout, "Credentials:")
		for k, v := range a.Credentials {
			fmt.Fprintf(stdout, "  %s: %v\n", k, v)
		}
	}
}

// accountFlags are the editable fields shared by create and update
type accountFlags struct {
	client, platform, accountType string
	delivered, expires            string
	price, notes, status          string
	credentials                   map[string]string
}

func (f *accountFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", "", "client name")
	cmd.Flags().StringVar(&f.platform, "platform", "", "platform (e.g. Netflix)")
	cmd.Flags().StringVar(&f.accountType, "type", "", "account type (Perfil, Cuenta completa)")
	cmd.Flags().StringVar(&f.delivered, "delivered", "", "delivery date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.expires, "expires", "", "expiration date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.price, "price", "", "price paid")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.status, "status", "", "stored status (active, suspended, cancelled)")
	cmd.Flags().StringToStringVar(&f.credentials, "credential", nil, "credential entry key=value, repeatable")
}

func (f *accountFlags) credentialMap() map[string]interface{} {
	if len(f.credentials) == 0 {
		return nil
	}
	creds := make(map[string]interface{}, len(f.credentials))
	for k, v := range f.credentials {
		creds[k] = v
	}
	return creds
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newAccountCreateCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			delivered := f.delivered
			if delivered == "" {
				delivered = time.Now().Format(dateLayout)
			}

			a, err := apiClient.Accounts().Create(context.Background(), &client.CreateAccountRequest{
				ClientName:     f.client,
				Platform:       f.platform,
				AccountType:    f.accountType,
				DeliveryDate:   delivered,
				ExpirationDate: f.expires,
				Credentials:    f.credentialMap(),
				Notes:          optional(f.notes),
				Price:          optional(f.price),
				Status:         f.status,
			})
			if err != nil {
				return describeError("failed to create account", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}
			fmt.Fprintf(stdout, "Account %d created for %s\n", a.ID, a.ClientName)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("expires")

	return cmd
}

func newAccountUpdateCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}

			changed := func(name, value string) *string {
				if !cmd.Flags().Changed(name) {
					return nil
				}
				return &value
			}

			req := &client.UpdateAccountRequest{
				ClientName:     changed("client", f.client),
				Platform:       changed("platform", f.platform),
				AccountType:    changed("type", f.accountType),
				DeliveryDate:   changed("delivered", f.delivered),
				ExpirationDate: changed("expires", f.expires),
				Notes:          changed("notes", f.notes),
				Price:          changed("price", f.price),
				Status:         changed("status", f.status),
				Credentials:    f.credentialMap(),
			}

			a, err := apiClient.Accounts().Update(context.Background(), id, req)
			if err != nil {
				return describeError("failed to update account", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}
			fmt.Fprintf(stdout, "Account %d updated\n", a.ID)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.Accounts().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			fmt.Fprintf(stdout, "Account %d deleted\n", id)
			return nil
		},
	}
}

func newAccountStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lifecycle counts over every account",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Accounts().Statistics(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get statistics: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			t := NewTable("TOTAL", "ACTIVE", "EXPIRING", "EXPIRED")
			t.AddRow(strconv.Itoa(stats.Total), strconv.Itoa(stats.Active), strconv.Itoa(stats.Expiring), strconv.Itoa(stats.Expired))
			t.Render()
			return nil
		},
	}
}

func newAccountExportCmd() *cobra.Command {
	var format, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download every account as JSON, YAML or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := apiClient.Accounts().Export(context.Background(), format)
			if err != nil {
				return fmt.Errorf("failed to export accounts: %w", err)
			}

			if file == "-" {
				_, err := stdout.Write(data)
				return err
			}
			if file == "" {
				file = "streaming_accounts." + format
			}
			if err := os.WriteFile(file, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			fmt.Fprintf(stdout, "Exported to %s (%d bytes)\n", file, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: json, yaml, csv")
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file, - for stdout (default streaming_accounts.<format>)")

	return cmd
}

func newAccountImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import accounts from a JSON export document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			result, err := apiClient.Accounts().ImportDocument(context.Background(), data)
			if err != nil {
				return fmt.Errorf("failed to import accounts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			fmt.Fprintf(stdout, "Imported %d, failed %d\n", result.Imported, result.Failed)
			if len(result.Errors) > 0 {
				t := NewTable("ENTRY", "ERROR")
				for _, e := range result.Errors {
					t.AddRow(strconv.Itoa(e.Index), e.Error)
				}
				t.Render()
			}
			return nil
		},
	}
}

// describeError appends per-field validation messages to err
func describeError(msg string, err error) error {
	apiErr, ok := err.(*client.APIError)
	if !ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	fields := apiErr.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("%s: %w", msg, err)
	}
	detail := ""
	for _, f := range fields {
		detail += "\n  " + f.Message
	}
	return fmt.Errorf("%s: %s%s", msg, apiErr.Message, detail)
}
