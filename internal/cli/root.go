// Package cli builds the studioctl command tree.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eastdocs/studioctl/internal/client"
)

// NewRootCmd builds the studioctl root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studioctl",
		Short: "CLI control plane for the studio website daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("server", "", "Base URL of studioservd (default "+client.DefaultBaseURL+", or STUDIOCTL_SERVER)")
	cmd.PersistentFlags().String("token", "", "Admin API token (or STUDIOCTL_API_TOKEN)")

	cmd.AddCommand(newContentCmd())
	cmd.AddCommand(newPortfolioCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newQuoteCmd())
	cmd.AddCommand(newBookingsCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func clientFromCommand(cmd *cobra.Command) *client.APIClient {
	server, _ := cmd.Flags().GetString("server")
	if strings.TrimSpace(server) == "" {
		server = os.Getenv("STUDIOCTL_SERVER")
	}
	token, _ := cmd.Flags().GetString("token")
	if strings.TrimSpace(token) == "" {
		token = os.Getenv("STUDIOCTL_API_TOKEN")
	}
	return client.New(server, token)
}
