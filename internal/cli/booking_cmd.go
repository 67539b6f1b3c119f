package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eastdocs/studioctl/internal/output"
)

func newCatalogCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the booking packages, extras and durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			api := clientFromCommand(cmd)
			catalog, err := api.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, catalog)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(catalog.Packages))
			for _, p := range catalog.Packages {
				rows = append(rows, []string{p.ID, p.Label, fmt.Sprintf("£%d/hr", p.HourlyPrice)})
			}
			if err := output.WriteTable(out, []string{"PACKAGE", "LABEL", "RATE"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out)

			rows = rows[:0]
			for _, e := range catalog.Extras {
				price := fmt.Sprintf("£%d", e.Price)
				if e.PerHour {
					price += "/hr"
				}
				rows = append(rows, []string{e.ID, e.Label, price})
			}
			return output.WriteTable(out, []string{"EXTRA", "LABEL", "PRICE"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func newQuoteCmd() *cobra.Command {
	var pkg, duration, extrasCSV string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a booking without starting one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var extras []string
			for _, id := range strings.Split(extrasCSV, ",") {
				if id = strings.TrimSpace(id); id != "" {
					extras = append(extras, id)
				}
			}
			api := clientFromCommand(cmd)
			quote, err := api.Quote(cmd.Context(), pkg, duration, extras)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: £%d for %d hour(s)\n", quote.Total, quote.Hours)
			if len(quote.UnknownItems) > 0 {
				fmt.Fprintf(out, "Warning: unknown items skipped: %s\n", strings.Join(quote.UnknownItems, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "Package id (see 'studioctl catalog')")
	cmd.Flags().StringVar(&duration, "duration", "", "Session duration in hours")
	cmd.Flags().StringVar(&extrasCSV, "extras", "", "Comma-separated extra ids")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect submitted bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newBookingsLsCmd())
	return cmd
}

func newBookingsLsCmd() *cobra.Command {
	var outputMode string
	var limit int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List submitted bookings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			api := clientFromCommand(cmd)
			resp, err := api.ListBookings(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, resp)
			}
			if len(resp.Bookings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookings found.")
				return nil
			}
			rows := make([][]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				rows = append(rows, []string{
					b.Reference,
					output.Truncate(b.Name, 30),
					b.Package,
					b.Date,
					strconv.Itoa(b.Hours),
					fmt.Sprintf("£%d", b.Total),
					b.CreatedAt,
				})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"REFERENCE", "NAME", "PACKAGE", "DATE", "HOURS", "TOTAL", "CREATED_AT"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to return (default 100)")
	return cmd
}

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the admin audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newAuditLsCmd())
	return cmd
}

func newAuditLsCmd() *cobra.Command {
	var outputMode string
	var limit int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List audit entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			api := clientFromCommand(cmd)
			resp, err := api.ListAudit(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, resp)
			}
			if len(resp.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
				return nil
			}
			rows := make([][]string, 0, len(resp.Entries))
			for _, e := range resp.Entries {
				rows = append(rows, []string{
					e.Timestamp,
					e.Actor,
					e.Operation,
					output.OrDash(e.Subject),
				})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"TIMESTAMP", "ACTOR", "OPERATION", "SUBJECT"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to return (default 100)")
	return cmd
}
