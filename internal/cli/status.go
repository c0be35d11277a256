package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store connectivity and lifecycle summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, healthErr := apiClient.Health(ctx)
			stats, statsErr := apiClient.Accounts().Statistics(ctx)

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{"server": apiClient.BaseURL()}
				if healthErr == nil {
					summary["database"] = health
				}
				if statsErr == nil {
					summary["accounts"] = stats
				}
				return printOutput(summary)
			}

			fmt.Fprintln(stdout, "StreamVault")
			fmt.Fprintln(stdout, strings.Repeat("=", 40))
			fmt.Fprintf(stdout, "  Server:        %s\n", apiClient.BaseURL())

			if healthErr != nil {
				fmt.Fprintf(stdout, "  Database:      (error: %v)\n", healthErr)
			} else {
				fmt.Fprintf(stdout, "  Database:      %s (%s)\n", health.Status, health.Database)
			}

			if statsErr != nil {
				fmt.Fprintf(stdout, "  Accounts:      (error: %v)\n", statsErr)
				return nil
			}
			fmt.Fprintf(stdout, "  Accounts:      %d total\n", stats.Total)
			fmt.Fprintf(stdout, "  Active:        %d\n", stats.Active)
			fmt.Fprintf(stdout, "  Expiring:      %d\n", stats.Expiring)
			fmt.Fprintf(stdout, "  Expired:       %d\n", stats.Expired)

			return nil
		},
	}
}
